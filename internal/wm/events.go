package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// handleEvent is the dispatcher: a total mapping from event kind to
// handler. Unrecognized kinds are ignored.
func (wm *WM) handleEvent(ev interface{}) {
	switch e := ev.(type) {
	case xp.ButtonPressEvent:
		wm.buttonPress(e)
	case xp.ClientMessageEvent:
		wm.clientMessage(e)
	case xp.ConfigureRequestEvent:
		wm.configureRequest(e)
	case xp.ConfigureNotifyEvent:
		wm.configureNotify(e)
	case xp.DestroyNotifyEvent:
		if c := wm.windowToClient(e.Window); c != nil {
			wm.unmanage(c, true)
		}
	case xp.EnterNotifyEvent:
		wm.enterNotify(e)
	case xp.ExposeEvent:
		if e.Count == 0 {
			if m := wm.windowToMonitor(e.Window); m != nil {
				wm.drawBar(m)
			}
		}
	case xp.FocusInEvent:
		// Some broken clients acquire focus behind our back.
		if sel := wm.selMon.Sel; sel != nil && e.Event != sel.Win {
			wm.setFocus(sel)
		}
	case xp.KeyPressEvent:
		wm.keyPress(e)
	case xp.MappingNotifyEvent:
		wm.backend.RefreshKeyboardMapping(e)
		if e.Request == xp.MappingKeyboard {
			wm.numLockMask = wm.backend.NumLockMask()
			wm.backend.GrabKeys(wm.keySpecs())
		}
	case xp.MapRequestEvent:
		wm.mapRequest(e)
	case xp.MotionNotifyEvent:
		wm.motionNotify(e)
	case xp.PropertyNotifyEvent:
		wm.propertyNotify(e)
	case xp.UnmapNotifyEvent:
		if c := wm.windowToClient(e.Window); c != nil {
			wm.unmanage(c, false)
		}
	}
}

func (wm *WM) mapRequest(e xp.MapRequestEvent) {
	attrs, ok := wm.backend.WindowAttributes(e.Window)
	if !ok || attrs.OverrideRedirect {
		return
	}
	if wm.windowToClient(e.Window) == nil {
		wm.manage(e.Window, attrs)
	}
}

// manage adopts a new top-level window: rule matching, geometry
// clamping, hint-derived state, attachment to both orderings, then a
// re-arrange and refocus of its monitor.
func (wm *WM) manage(w xp.Window, attrs WindowAttrs) {
	c := &Client{
		Win:            w,
		Geom:           attrs.Geom,
		OldGeom:        attrs.Geom,
		OldBorderWidth: attrs.BorderWidth,
	}
	wm.updateTitle(c)

	var trans *Client
	tw, transient := wm.backend.TransientFor(w)
	if transient {
		trans = wm.windowToClient(tw)
	}
	if trans != nil {
		c.Mon = trans.Mon
		c.Tags = trans.Tags
	} else {
		c.Mon = wm.selMon
		wm.applyRules(c)
	}

	m := c.Mon
	if c.Geom.X+c.TotalW() > m.MX+m.MW {
		c.Geom.X = m.MX + m.MW - c.TotalW()
	}
	if c.Geom.Y+c.TotalH() > m.MY+m.MH {
		c.Geom.Y = m.MY + m.MH - c.TotalH()
	}
	c.Geom.X = max(c.Geom.X, m.MX)
	// Only fix the y offset when the client's center might cover the bar.
	minY := m.MY
	if m.BarY == m.MY && c.Geom.X+c.Geom.W/2 >= m.WX && c.Geom.X+c.Geom.W/2 < m.WX+m.WW {
		minY = wm.barHeight
	}
	c.Geom.Y = max(c.Geom.Y, minY)
	c.BorderWidth = wm.cfg.BorderWidth

	wm.backend.SetBorderWidth(w, c.BorderWidth)
	wm.backend.SetBorderColor(w, wm.cfg.NormScheme.Border)
	wm.backend.SendConfigureNotify(w, c.Geom, c.BorderWidth)
	wm.updateWindowType(c)
	wm.updateSizeHints(c)
	wm.updateWMHints(c)
	wm.backend.SelectClientEvents(w)
	wm.backend.GrabButtons(w, false, wm.clientButtons())
	if !c.Floating {
		// The hint alone floats the client, even when its leader window
		// is not one we manage.
		c.Floating = transient || c.Fixed
		c.oldFloating = c.Floating
	}
	if c.Floating {
		wm.backend.Raise(w)
	}
	m.attachBelow(c)
	m.attachStack(c)
	wm.updateClientList()
	// Some clients only behave when moved off screen before the map.
	wm.backend.MoveResize(w, c.Geom.X+2*wm.screenW, c.Geom.Y, c.Geom.W, c.Geom.H, c.BorderWidth)
	wm.backend.SetWMState(w, stateNormal)
	if m == wm.selMon {
		wm.unfocus(wm.selMon.Sel, false)
	}
	m.Sel = c
	wm.arrange(m)
	wm.backend.MapWindow(w)
	wm.focus(nil)
	log.WithFields(log.Fields{"window": w, "name": c.Name, "monitor": m.Num}).Debug("managed client")
}

// unmanage drops a client from the model. destroyed means the window is
// already gone, so no cleanup requests should touch it.
func (wm *WM) unmanage(c *Client, destroyed bool) {
	m := c.Mon
	m.detach(c)
	m.detachStack(c)
	if !destroyed {
		wm.backend.SetBorderWidth(c.Win, c.OldBorderWidth)
		wm.backend.UngrabButtons(c.Win)
		wm.backend.SetWMState(c.Win, stateWithdrawn)
	}
	wm.focus(nil)
	wm.updateClientList()
	wm.arrange(m)
}

// configureRequest trusts unmanaged and floating clients; a managed
// tiled client only gets a synthetic confirmation of the geometry the
// layout already decided.
func (wm *WM) configureRequest(e xp.ConfigureRequestEvent) {
	c := wm.windowToClient(e.Window)
	if c == nil {
		wm.backend.ConfigureUnmanaged(e)
		wm.backend.Flush()
		return
	}
	if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		c.BorderWidth = int(e.BorderWidth)
	} else if c.Floating || !wm.selMon.Tiling() {
		m := c.Mon
		if e.ValueMask&xp.ConfigWindowX != 0 {
			c.OldGeom.X = c.Geom.X
			c.Geom.X = m.MX + int(e.X)
		}
		if e.ValueMask&xp.ConfigWindowY != 0 {
			c.OldGeom.Y = c.Geom.Y
			c.Geom.Y = m.MY + int(e.Y)
		}
		if e.ValueMask&xp.ConfigWindowWidth != 0 {
			c.OldGeom.W = c.Geom.W
			c.Geom.W = int(e.Width)
		}
		if e.ValueMask&xp.ConfigWindowHeight != 0 {
			c.OldGeom.H = c.Geom.H
			c.Geom.H = int(e.Height)
		}
		if c.Geom.X+c.Geom.W > m.MX+m.MW && c.Floating {
			c.Geom.X = m.MX + (m.MW/2 - c.TotalW()/2)
		}
		if c.Geom.Y+c.Geom.H > m.MY+m.MH && c.Floating {
			c.Geom.Y = m.MY + (m.MH/2 - c.TotalH()/2)
		}
		if e.ValueMask&(xp.ConfigWindowX|xp.ConfigWindowY) != 0 &&
			e.ValueMask&(xp.ConfigWindowWidth|xp.ConfigWindowHeight) == 0 {
			wm.backend.SendConfigureNotify(c.Win, c.Geom, c.BorderWidth)
		}
		if c.Visible() {
			wm.backend.MoveResize(c.Win, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H, c.BorderWidth)
		}
	} else {
		wm.backend.SendConfigureNotify(c.Win, c.Geom, c.BorderWidth)
	}
	wm.backend.Flush()
}

// configureNotify on the root means the screen changed size.
func (wm *WM) configureNotify(e xp.ConfigureNotifyEvent) {
	if e.Window != wm.backend.Root() {
		return
	}
	dirty := wm.screenW != int(e.Width) || wm.screenH != int(e.Height)
	wm.screenW = int(e.Width)
	wm.screenH = int(e.Height)
	if wm.updateGeometry() || dirty {
		wm.surface.Resize(wm.screenW, wm.barHeight)
		wm.updateBars()
		for _, m := range wm.monitors {
			for _, c := range m.clients {
				if c.Fullscreen {
					wm.resizeClient(c, Geom{m.MX, m.MY, m.MW, m.MH})
				}
			}
			wm.backend.MoveResize(m.BarWin, m.WX, m.BarY, m.WW, wm.barHeight, 0)
		}
		wm.focus(nil)
		wm.arrange(nil)
	}
}

func (wm *WM) clientMessage(e xp.ClientMessageEvent) {
	c := wm.windowToClient(e.Window)
	if c == nil {
		return
	}
	data := e.Data.Data32
	switch wm.backend.AtomName(e.Type) {
	case "_NET_WM_STATE":
		fs := wm.backend.Atom(netWMStateFullscreen)
		if xp.Atom(data[1]) == fs || xp.Atom(data[2]) == fs {
			const add, toggle = 1, 2
			wm.setFullscreen(c, data[0] == add || (data[0] == toggle && !c.Fullscreen))
		}
	case "_NET_ACTIVE_WINDOW":
		if c != wm.selMon.Sel && !c.Urgent {
			wm.setUrgent(c, true)
		}
	}
}

func (wm *WM) enterNotify(e xp.EnterNotifyEvent) {
	if (e.Mode != xp.NotifyModeNormal || e.Detail == xp.NotifyDetailInferior) &&
		e.Event != wm.backend.Root() {
		return
	}
	c := wm.windowToClient(e.Event)
	var m *Monitor
	if c != nil {
		m = c.Mon
	} else {
		m = wm.windowToMonitor(e.Event)
	}
	if m != wm.selMon {
		wm.unfocus(wm.selMon.Sel, true)
		wm.selMon = m
	} else if c == nil || c == wm.selMon.Sel {
		return
	}
	wm.focus(c)
}

// motionNotify on the root implements focus-follows-monitor.
func (wm *WM) motionNotify(e xp.MotionNotifyEvent) {
	if e.Event != wm.backend.Root() {
		return
	}
	m := wm.rectToMonitor(int(e.RootX), int(e.RootY), 1, 1)
	if m != wm.motionMon && wm.motionMon != nil {
		wm.unfocus(wm.selMon.Sel, true)
		wm.selMon = m
		wm.focus(nil)
	}
	wm.motionMon = m
}

func (wm *WM) propertyNotify(e xp.PropertyNotifyEvent) {
	if e.Window == wm.backend.Root() && e.Atom == xp.AtomWmName {
		wm.updateStatus()
		return
	}
	if e.State == xp.PropertyDelete {
		return
	}
	c := wm.windowToClient(e.Window)
	if c == nil {
		return
	}
	switch e.Atom {
	case xp.AtomWmTransientFor:
		if !c.Floating {
			if tw, ok := wm.backend.TransientFor(c.Win); ok {
				if c.Floating = wm.windowToClient(tw) != nil; c.Floating {
					wm.arrange(c.Mon)
				}
			}
		}
	case xp.AtomWmNormalHints:
		wm.updateSizeHints(c)
	case xp.AtomWmHints:
		wm.updateWMHints(c)
		wm.drawBars()
	}
	name := wm.backend.AtomName(e.Atom)
	if e.Atom == xp.AtomWmName || name == "_NET_WM_NAME" {
		wm.updateTitle(c)
		if c == c.Mon.Sel {
			wm.drawBar(c.Mon)
		}
	}
	if name == "_NET_WM_WINDOW_TYPE" {
		wm.updateWindowType(c)
	}
}

func (wm *WM) keyPress(e xp.KeyPressEvent) {
	for _, k := range wm.keys {
		if !wm.backend.KeycodeMatches(e.Detail, k.Key) {
			continue
		}
		if wm.cleanMask(k.Mod) != wm.cleanMask(e.State) {
			continue
		}
		if k.Do != nil {
			k.Do(wm, &k.Arg)
		}
	}
}

// buttonPress classifies the click target (bar region, client window or
// root) and runs the matching button bindings.
func (wm *WM) buttonPress(e xp.ButtonPressEvent) {
	click := ClickRootWin
	arg := Arg{}
	if m := wm.windowToMonitor(e.Event); m != nil && m != wm.selMon {
		wm.unfocus(wm.selMon.Sel, true)
		wm.selMon = m
		wm.focus(nil)
	}
	if e.Event == wm.selMon.BarWin {
		x, i := 0, 0
		for ; i < len(wm.cfg.Tags); i++ {
			x += wm.textWidth(wm.cfg.Tags[i])
			if int(e.EventX) < x {
				break
			}
		}
		if i < len(wm.cfg.Tags) {
			click = ClickTagBar
			arg.UI = 1 << uint(i)
		} else if int(e.EventX) < x+wm.barLayoutWidth {
			click = ClickLayoutSymbol
		} else if int(e.EventX) > wm.selMon.WW-wm.textWidth(wm.statusText) {
			click = ClickStatusText
		} else {
			click = ClickWinTitle
		}
	} else if c := wm.windowToClient(e.Event); c != nil {
		wm.focus(c)
		wm.restack(wm.selMon)
		wm.backend.AllowEvents()
		click = ClickClientWin
	}
	for _, b := range wm.buttons {
		if b.Click != click || b.Do == nil || b.Button != e.Detail {
			continue
		}
		if wm.cleanMask(b.Mod) != wm.cleanMask(e.State) {
			continue
		}
		a := &b.Arg
		if click == ClickTagBar && b.Arg.I == 0 && b.Arg.UI == 0 {
			a = &arg
		}
		b.Do(wm, a)
	}
}

// cleanMask strips lock modifiers so Caps/Num Lock never break chords.
func (wm *WM) cleanMask(mask uint16) uint16 {
	return mask &^ (wm.numLockMask | xp.ModMaskLock) &
		(xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 |
			xp.ModMask2 | xp.ModMask3 | xp.ModMask4 | xp.ModMask5)
}

// updateClientList republishes the set of managed windows.
func (wm *WM) updateClientList() {
	var ws []xp.Window
	for _, m := range wm.monitors {
		for _, c := range m.clients {
			ws = append(ws, c.Win)
		}
	}
	wm.backend.SetClientList(ws)
}
