package wm

// applySizeHints corrects a proposed geometry against the client's
// declared size constraints and the screen or monitor bounds. The
// interact flag distinguishes live pointer drags, which may push a
// window partially off screen, from automatic layout placement, which
// stays inside the monitor's usable area. Reports whether the corrected
// geometry differs from the client's current one.
func (wm *WM) applySizeHints(c *Client, g Geom, interact bool) (Geom, bool) {
	m := c.Mon

	g.W = max(1, g.W)
	g.H = max(1, g.H)
	if interact {
		if g.X > wm.screenW {
			g.X = wm.screenW - c.TotalW()
		}
		if g.Y > wm.screenH {
			g.Y = wm.screenH - c.TotalH()
		}
		if g.X+g.W+2*c.BorderWidth < 0 {
			g.X = 0
		}
		if g.Y+g.H+2*c.BorderWidth < 0 {
			g.Y = 0
		}
	} else {
		if g.X >= m.WX+m.WW {
			g.X = m.WX + m.WW - c.TotalW()
		}
		if g.Y >= m.WY+m.WH {
			g.Y = m.WY + m.WH - c.TotalH()
		}
		if g.X+g.W+2*c.BorderWidth <= m.WX {
			g.X = m.WX
		}
		if g.Y+g.H+2*c.BorderWidth <= m.WY {
			g.Y = m.WY
		}
	}
	if g.H < wm.barHeight {
		g.H = wm.barHeight
	}
	if g.W < wm.barHeight {
		g.W = wm.barHeight
	}
	if wm.cfg.ResizeHints || c.Floating || !m.Tiling() {
		// See the last two sentences in ICCCM 4.1.2.3.
		baseIsMin := c.BaseW == c.MinW && c.BaseH == c.MinH
		if !baseIsMin {
			g.W -= c.BaseW
			g.H -= c.BaseH
		}
		if c.MinA > 0 && c.MaxA > 0 {
			if c.MaxA < float64(g.W)/float64(g.H) {
				g.W = int(float64(g.H)*c.MaxA + 0.5)
			} else if c.MinA < float64(g.H)/float64(g.W) {
				g.H = int(float64(g.W)*c.MinA + 0.5)
			}
		}
		if baseIsMin {
			// The increment calculation wants base-relative sizes.
			g.W -= c.BaseW
			g.H -= c.BaseH
		}
		if c.IncW > 0 {
			g.W -= g.W % c.IncW
		}
		if c.IncH > 0 {
			g.H -= g.H % c.IncH
		}
		g.W = max(g.W+c.BaseW, c.MinW)
		g.H = max(g.H+c.BaseH, c.MinH)
		if c.MaxW > 0 {
			g.W = min(g.W, c.MaxW)
		}
		if c.MaxH > 0 {
			g.H = min(g.H, c.MaxH)
		}
	}
	return g, g != c.Geom
}

// resize applies a hint-corrected geometry, skipping the window-system
// call when nothing would change.
func (wm *WM) resize(c *Client, g Geom, interact bool) {
	if g, dirty := wm.applySizeHints(c, g, interact); dirty {
		wm.resizeClient(c, g)
	}
}

// resizeClient applies a geometry unconditionally, snapshotting the old
// one first. When the sole visible tiled client fills its monitor, or
// under monocle, the border is collapsed to zero and the client absorbs
// the border area, avoiding a pointless 1px outline.
func (wm *WM) resizeClient(c *Client, g Geom) {
	c.OldGeom = c.Geom
	c.Geom = g
	bw := c.BorderWidth
	m := c.Mon
	if !c.Fullscreen && !c.Floating && m.Tiling() {
		_, monocle := m.CurLayout().(MonocleLayout)
		if monocle || len(m.tiled()) == 1 {
			c.Geom.W += 2 * bw
			c.Geom.H += 2 * bw
			bw = 0
		}
	}
	wm.backend.MoveResize(c.Win, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H, bw)
	wm.backend.SendConfigureNotify(c.Win, c.Geom, c.BorderWidth)
}
