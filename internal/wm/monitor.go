package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Monitor is one physical or virtual display region. It owns the manage
// order of its clients, their focus-order stack, and the active tag view.
type Monitor struct {
	Num int

	// Full monitor rectangle and the usable window area after the bar
	// strip is subtracted.
	MX, MY, MW, MH int
	WX, WY, WW, WH int

	BarY    int
	ShowBar bool
	TopBar  bool
	BarWin  xp.Window

	LayoutSymbol string
	MFact        float64
	NMaster      int

	// Two tag views; SelTags picks the active one, so toggling it
	// implements "view previous tag set".
	SelTags int
	TagSet  [2]uint32

	selLayout int
	layouts   [2]Layout

	// Manage order (tiling and bar titles) and focus order (most
	// recently focused first). A client is in both or in neither.
	clients []*Client
	stack   []*Client

	Sel *Client
}

// ActiveTags is the tag mask of the currently viewed tag set.
func (m *Monitor) ActiveTags() uint32 {
	return m.TagSet[m.SelTags]
}

// CurLayout is the active layout of the current/alternate pair.
func (m *Monitor) CurLayout() Layout {
	return m.layouts[m.selLayout]
}

// Tiling reports whether the active layout auto-arranges clients. A
// floating layout leaves every client at its last explicit geometry.
func (m *Monitor) Tiling() bool {
	_, floating := m.CurLayout().(FloatLayout)
	return !floating
}

func newMonitor(cfg monitorDefaults) *Monitor {
	m := &Monitor{
		TagSet:  [2]uint32{1, 1},
		MFact:   cfg.MFact,
		NMaster: cfg.NMaster,
		ShowBar: cfg.ShowBar,
		TopBar:  cfg.TopBar,
		layouts: [2]Layout{cfg.Layouts[0], cfg.Layouts[1%len(cfg.Layouts)]},
	}
	m.LayoutSymbol = m.layouts[0].Symbol()
	return m
}

type monitorDefaults struct {
	MFact   float64
	NMaster int
	ShowBar bool
	TopBar  bool
	Layouts []Layout
}

// attach prepends c to its monitor's manage order.
func (m *Monitor) attach(c *Client) {
	m.clients = append([]*Client{c}, m.clients...)
}

// attachBelow splices c after the client the user is looking at: after
// the selected client if it is tiled, otherwise after the first tiled
// client sharing a tag with c, otherwise at the head.
func (m *Monitor) attachBelow(c *Client) {
	at := -1
	if m.Sel == nil || m.Sel.Floating {
		for i, o := range m.clients {
			if !o.Floating && o.VisibleOnTags(c.Tags) {
				at = i
				break
			}
		}
		if at < 0 {
			m.attach(c)
			return
		}
	} else {
		for i, o := range m.clients {
			if o == m.Sel {
				at = i
				break
			}
		}
		if at < 0 {
			m.attach(c)
			return
		}
	}
	m.clients = append(m.clients, nil)
	copy(m.clients[at+2:], m.clients[at+1:])
	m.clients[at+1] = c
}

// detach unlinks c from the manage order.
func (m *Monitor) detach(c *Client) {
	for i, o := range m.clients {
		if o == c {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			return
		}
	}
}

// attachStack prepends c to the focus-order stack.
func (m *Monitor) attachStack(c *Client) {
	m.stack = append([]*Client{c}, m.stack...)
}

// detachStack unlinks c from the focus-order stack. If c was the
// selected client, selection falls back to the most recently focused
// client that is still visible, or nil.
func (m *Monitor) detachStack(c *Client) {
	for i, o := range m.stack {
		if o == c {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}
	if c == m.Sel {
		m.Sel = m.firstVisibleOnStack()
	}
}

func (m *Monitor) firstVisibleOnStack() *Client {
	for _, o := range m.stack {
		if o.Visible() {
			return o
		}
	}
	return nil
}

// tiled returns the visible non-floating clients in manage order.
func (m *Monitor) tiled() []*Client {
	var ts []*Client
	for _, c := range m.clients {
		if !c.Floating && c.Visible() {
			ts = append(ts, c)
		}
	}
	return ts
}

// updateBarPos derives the usable window area and the bar offset from
// the monitor rectangle and the bar placement flags.
func (m *Monitor) updateBarPos(barHeight int) {
	m.WY = m.MY
	m.WH = m.MH
	if m.ShowBar {
		m.WH -= barHeight
		if m.TopBar {
			m.BarY = m.WY
			m.WY += barHeight
		} else {
			m.BarY = m.WY + m.WH
		}
	} else {
		m.BarY = -barHeight
	}
}

// windowToClient finds the managed client owning an X window.
func (wm *WM) windowToClient(w xp.Window) *Client {
	for _, m := range wm.monitors {
		for _, c := range m.clients {
			if c.Win == w {
				return c
			}
		}
	}
	return nil
}

// windowToMonitor maps an X window to the monitor it belongs to: the
// pointer's monitor for the root, the bar's monitor for a bar window,
// the owning client's monitor otherwise.
func (wm *WM) windowToMonitor(w xp.Window) *Monitor {
	if w == wm.backend.Root() {
		if x, y, ok := wm.backend.QueryPointer(); ok {
			return wm.rectToMonitor(x, y, 1, 1)
		}
	}
	for _, m := range wm.monitors {
		if w == m.BarWin {
			return m
		}
	}
	if c := wm.windowToClient(w); c != nil {
		return c.Mon
	}
	return wm.selMon
}

// rectToMonitor picks the monitor with the largest intersection with the
// given rectangle, defaulting to the selected monitor.
func (wm *WM) rectToMonitor(x, y, w, h int) *Monitor {
	r := wm.selMon
	area := 0
	for _, m := range wm.monitors {
		if a := intersectArea(x, y, w, h, m); a > area {
			area = a
			r = m
		}
	}
	return r
}

func intersectArea(x, y, w, h int, m *Monitor) int {
	iw := min(x+w, m.WX+m.WW) - max(x, m.WX)
	ih := min(y+h, m.WY+m.WH) - max(y, m.WY)
	if iw < 0 {
		iw = 0
	}
	if ih < 0 {
		ih = 0
	}
	return iw * ih
}

// dirToMonitor returns the next or previous monitor relative to the
// selected one, wrapping around.
func (wm *WM) dirToMonitor(dir int) *Monitor {
	n := len(wm.monitors)
	i := wm.monitorIndex(wm.selMon)
	if dir > 0 {
		return wm.monitors[(i+1)%n]
	}
	return wm.monitors[(i+n-1)%n]
}

func (wm *WM) monitorIndex(m *Monitor) int {
	for i, o := range wm.monitors {
		if o == m {
			return i
		}
	}
	return 0
}

// updateGeometry reconciles the monitor list with the screens reported
// by the backend. Clients on monitors that vanished migrate to the
// first monitor. Reports whether anything changed.
func (wm *WM) updateGeometry() bool {
	screens, err := wm.backend.Screens()
	if err != nil || len(screens) == 0 {
		screens = []Geom{{0, 0, wm.screenW, wm.screenH}}
	}
	dirty := false
	for len(wm.monitors) < len(screens) {
		wm.monitors = append(wm.monitors, newMonitor(wm.monDefaults))
	}
	for len(wm.monitors) > len(screens) {
		last := wm.monitors[len(wm.monitors)-1]
		first := wm.monitors[0]
		for len(last.clients) > 0 {
			dirty = true
			c := last.clients[0]
			last.detach(c)
			last.detachStack(c)
			c.Mon = first
			first.attach(c)
			first.attachStack(c)
		}
		if wm.selMon == last {
			wm.selMon = first
		}
		wm.backend.DestroyBarWindow(last.BarWin)
		wm.monitors = wm.monitors[:len(wm.monitors)-1]
	}
	for i, g := range screens {
		m := wm.monitors[i]
		if m.MX != g.X || m.MY != g.Y || m.MW != g.W || m.MH != g.H {
			dirty = true
			m.Num = i
			m.MX, m.MY, m.MW, m.MH = g.X, g.Y, g.W, g.H
			m.WX, m.WW = g.X, g.W
			m.updateBarPos(wm.barHeight)
		}
	}
	if dirty || wm.selMon == nil {
		wm.selMon = wm.monitors[0]
		wm.selMon = wm.windowToMonitor(wm.backend.Root())
	}
	return dirty
}
