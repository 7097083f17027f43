package wm

import "fmt"

// Layout computes geometry for a monitor's visible tiled clients.
// Floating clients and no-arrange layouts leave geometry untouched.
type Layout interface {
	Symbol() string
	Arrange(wm *WM, m *Monitor)
}

// TileLayout is the classic master-stack split: up to NMaster clients
// stack in a left column sized by MFact, the rest stack on the right.
type TileLayout struct{ Sym string }

func (l TileLayout) Symbol() string { return l.Sym }

func (l TileLayout) Arrange(wm *WM, m *Monitor) {
	ts := m.tiled()
	n := len(ts)
	if n == 0 {
		return
	}
	mw := m.WW
	if n > m.NMaster {
		mw = 0
		if m.NMaster > 0 {
			mw = int(float64(m.WW) * m.MFact)
		}
	}
	my, ty := 0, 0
	for i, c := range ts {
		if i < m.NMaster {
			// Divide the remaining height by the remaining column
			// members so rounding error lands in the last slot only.
			h := (m.WH - my) / (min(n, m.NMaster) - i)
			wm.resize(c, Geom{m.WX, m.WY + my, mw - 2*c.BorderWidth, h - 2*c.BorderWidth}, false)
			if my+c.TotalH() < m.WH {
				my += c.TotalH()
			}
		} else {
			h := (m.WH - ty) / (n - i)
			wm.resize(c, Geom{m.WX + mw, m.WY + ty, m.WW - mw - 2*c.BorderWidth, h - 2*c.BorderWidth}, false)
			if ty+c.TotalH() < m.WH {
				ty += c.TotalH()
			}
		}
	}
}

// MonocleLayout stacks every visible tiled client on the full usable
// rect. The layout symbol is overwritten with the visible count.
type MonocleLayout struct{ Sym string }

func (l MonocleLayout) Symbol() string { return l.Sym }

func (l MonocleLayout) Arrange(wm *WM, m *Monitor) {
	n := 0
	for _, c := range m.clients {
		if c.Visible() {
			n++
		}
	}
	if n > 0 {
		m.LayoutSymbol = fmt.Sprintf("[%d]", n)
	}
	for _, c := range m.tiled() {
		wm.resize(c, Geom{m.WX, m.WY, m.WW - 2*c.BorderWidth, m.WH - 2*c.BorderWidth}, false)
	}
}

// DwindleLayout splits the remaining region in half for each successive
// client, alternating the split axis, with the first client sized by
// MFact along the primary axis. A client whose split would leave less
// room than two border widths keeps the undivided remainder instead of
// consuming space. That guard's interaction with the axis parity is
// deliberate, quirks included.
type DwindleLayout struct{ Sym string }

func (l DwindleLayout) Symbol() string { return l.Sym }

func (l DwindleLayout) Arrange(wm *WM, m *Monitor) {
	ts := m.tiled()
	n := len(ts)
	if n == 0 {
		return
	}
	nx := m.WX
	ny := 0
	nw := m.WW
	nh := m.WH
	i := 0
	for _, c := range ts {
		if (i%2 == 1 && nh/2 > 2*c.BorderWidth) ||
			(i%2 == 0 && nw/2 > 2*c.BorderWidth) {
			if i < n-1 {
				if i%2 == 1 {
					nh /= 2
				} else {
					nw /= 2
				}
			}
			switch i % 4 {
			case 0, 2:
				ny += nh
			case 1, 3:
				nx += nw
			}
			if i == 0 {
				if n != 1 {
					nw = int(float64(m.WW) * m.MFact)
				}
				ny = m.WY
			} else if i == 1 {
				nw = m.WW - nw
			}
			i++
		}
		wm.resize(c, Geom{nx, ny, nw - 2*c.BorderWidth, nh - 2*c.BorderWidth}, false)
	}
}

// FloatLayout is the no-arrange sentinel: clients keep their last
// explicit geometry.
type FloatLayout struct{ Sym string }

func (l FloatLayout) Symbol() string { return l.Sym }

func (l FloatLayout) Arrange(wm *WM, m *Monitor) {}

// arrangeMon refreshes the layout symbol and runs the active layout.
func (wm *WM) arrangeMon(m *Monitor) {
	m.LayoutSymbol = m.CurLayout().Symbol()
	if m.Tiling() {
		m.CurLayout().Arrange(wm, m)
	}
}

// arrange re-derives visibility for a monitor's clients, re-runs the
// layout and restacks. A nil monitor arranges everything.
func (wm *WM) arrange(m *Monitor) {
	if m != nil {
		wm.showHide(m)
		wm.arrangeMon(m)
		wm.restack(m)
		return
	}
	for _, m := range wm.monitors {
		wm.showHide(m)
		wm.arrangeMon(m)
	}
}

// showHide moves visible clients on screen top-down in focus order and
// parks hidden ones off screen bottom-up, so windows being revealed
// appear above windows being concealed.
func (wm *WM) showHide(m *Monitor) {
	for _, c := range m.stack {
		if !c.Visible() {
			continue
		}
		wm.backend.Move(c.Win, c.Geom.X, c.Geom.Y)
		if (!c.Mon.Tiling() || c.Floating) && !c.Fullscreen {
			wm.resize(c, c.Geom, false)
		}
	}
	for i := len(m.stack) - 1; i >= 0; i-- {
		c := m.stack[i]
		if c.Visible() {
			continue
		}
		wm.backend.Move(c.Win, c.TotalW()*-2, c.Geom.Y)
	}
}
