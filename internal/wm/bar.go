package wm

import (
	log "github.com/sirupsen/logrus"
)

// drawBar renders one monitor's bar: tag cells with occupancy and
// urgency marks, the layout symbol, the focused client's title, and on
// the selected monitor the root window's status text, right aligned.
func (wm *WM) drawBar(m *Monitor) {
	if !m.ShowBar {
		return
	}
	bh := wm.barHeight
	boxs := wm.surface.FontHeight() / 9
	boxw := wm.surface.FontHeight()/6 + 2

	tw := 0
	if m == wm.selMon {
		wm.surface.SetScheme(wm.cfg.NormScheme)
		tw = wm.textWidth(wm.statusText) - wm.surface.Pad() + 2
		wm.surface.Text(m.WW-tw, tw, 0, wm.statusText, false)
	}

	var occ, urg uint32
	for _, c := range m.clients {
		occ |= c.Tags
		if c.Urgent {
			urg |= c.Tags
		}
	}

	x := 0
	for i, tag := range wm.cfg.Tags {
		w := wm.textWidth(tag)
		bit := uint32(1) << uint(i)
		if m.ActiveTags()&bit != 0 {
			wm.surface.SetScheme(wm.cfg.SelScheme)
		} else {
			wm.surface.SetScheme(wm.cfg.NormScheme)
		}
		wm.surface.Text(x, w, wm.surface.Pad()/2, tag, urg&bit != 0)
		if occ&bit != 0 {
			filled := m == wm.selMon && m.Sel != nil && m.Sel.Tags&bit != 0
			wm.surface.Rect(x+boxs, boxs, boxw, boxw, filled, urg&bit != 0)
		}
		x += w
	}

	wm.barLayoutWidth = wm.textWidth(m.LayoutSymbol)
	wm.surface.SetScheme(wm.cfg.NormScheme)
	x = wm.surface.Text(x, wm.barLayoutWidth, wm.surface.Pad()/2, m.LayoutSymbol, false)

	if w := m.WW - tw - x; w > bh {
		if m.Sel != nil {
			if m == wm.selMon {
				wm.surface.SetScheme(wm.cfg.SelScheme)
			} else {
				wm.surface.SetScheme(wm.cfg.NormScheme)
			}
			wm.surface.Text(x, w, wm.surface.Pad()/2, m.Sel.Name, false)
			if m.Sel.Floating {
				wm.surface.Rect(x+boxs, boxs, boxw, boxw, m.Sel.Fixed, false)
			}
		} else {
			wm.surface.SetScheme(wm.cfg.NormScheme)
			wm.surface.Rect(x, 0, w, bh, true, true)
		}
	}
	wm.surface.MapTo(m.BarWin, 0, 0, m.WW, bh)
}

func (wm *WM) drawBars() {
	for _, m := range wm.monitors {
		wm.drawBar(m)
	}
}

// textWidth measures a string in the bar font, padding included.
func (wm *WM) textWidth(s string) int {
	return wm.surface.TextWidth(s)
}

// updateBars creates a bar window for any monitor missing one.
func (wm *WM) updateBars() {
	for _, m := range wm.monitors {
		if m.BarWin != 0 {
			continue
		}
		w, err := wm.backend.CreateBarWindow(
			Geom{m.WX, m.BarY, m.WW, wm.barHeight}, wm.cursors[CursorNormal])
		if err != nil {
			log.WithError(err).WithField("monitor", m.Num).Error("bar window creation failed")
			continue
		}
		m.BarWin = w
	}
}

// updateStatus rereads the root window name into the status area, with
// a version banner as the fallback.
func (wm *WM) updateStatus() {
	wm.statusText = wm.backend.StatusText()
	if wm.statusText == "" {
		wm.statusText = "tatami-" + Version
	}
	wm.drawBar(wm.selMon)
}

// clientButtons lists the chords grabbed on every client window.
func (wm *WM) clientButtons() []ButtonSpec {
	var specs []ButtonSpec
	for _, b := range wm.buttons {
		if b.Click == ClickClientWin {
			specs = append(specs, ButtonSpec{Mod: b.Mod, Button: b.Button})
		}
	}
	return specs
}
