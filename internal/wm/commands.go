package wm

import (
	"os/exec"

	xp "github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// Arg carries a command's parameter. Only the field the command reads
// is meaningful.
type Arg struct {
	I  int
	UI uint32
	F  float64
	V  interface{}
}

// Key binds a modifier chord on the root window to a command.
type Key struct {
	Mod uint16
	Key string
	Do  func(*WM, *Arg)
	Arg Arg
}

// Click regions for button bindings.
const (
	ClickTagBar = iota
	ClickLayoutSymbol
	ClickStatusText
	ClickWinTitle
	ClickClientWin
	ClickRootWin
)

// Button binds a pointer button in a click region to a command.
type Button struct {
	Click  int
	Mod    uint16
	Button xp.Button
	Do     func(*WM, *Arg)
	Arg    Arg
}

// spawn forks a command detached from the window manager. The argv
// slice rides in Arg.V.
func (wm *WM) spawn(a *Arg) {
	argv, ok := a.V.([]string)
	if !ok || len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		log.WithError(err).WithField("cmd", argv[0]).Error("spawn failed")
		return
	}
	go cmd.Wait()
}

// focusStack moves the selection forward (positive) or backward through
// the visible clients in manage order, wrapping at the ends.
func (wm *WM) focusStack(a *Arg) {
	sel := wm.selMon.Sel
	if sel == nil || (sel.Fullscreen && wm.cfg.LockFullscreen) {
		return
	}
	var c *Client
	if a.I > 0 {
		c = wm.selMon.nextVisible()
	} else {
		c = wm.selMon.prevVisible()
	}
	if c != nil {
		wm.focus(c)
		wm.restack(wm.selMon)
	}
}

// incNMaster grows or shrinks the master area's client count.
func (wm *WM) incNMaster(a *Arg) {
	wm.selMon.NMaster = max(wm.selMon.NMaster+a.I, 0)
	wm.arrange(wm.selMon)
}

// setMFact adjusts the master area ratio. Values above 1.0 set the
// ratio absolutely (value minus one); smaller values are relative
// deltas. Results outside [0.05, 0.95] are ignored.
func (wm *WM) setMFact(a *Arg) {
	if a.F == 0 || !wm.selMon.Tiling() {
		return
	}
	f := a.F + wm.selMon.MFact
	if a.F >= 1.0 {
		f = a.F - 1.0
	}
	if f < 0.05 || f > 0.95 {
		return
	}
	wm.selMon.MFact = f
	wm.arrange(wm.selMon)
}

// zoom promotes the selected tiled client to the head of the manage
// order, swapping it out of the master slot if it already leads.
func (wm *WM) zoom(a *Arg) {
	c := wm.selMon.Sel
	if !wm.selMon.Tiling() || c == nil || c.Floating {
		return
	}
	ts := wm.selMon.tiled()
	if len(ts) > 0 && c == ts[0] {
		if len(ts) < 2 {
			return
		}
		c = ts[1]
	}
	wm.pop(c)
}

// pop reattaches c at the head of its monitor's manage order and
// focuses it.
func (wm *WM) pop(c *Client) {
	c.Mon.detach(c)
	c.Mon.attach(c)
	wm.focus(c)
	wm.arrange(c.Mon)
}

// view replaces the selected monitor's visible tag set. A zero mask
// flips back to the previously viewed set.
func (wm *WM) view(a *Arg) {
	m := wm.selMon
	if a.UI&wm.tagMask() == m.TagSet[m.SelTags] {
		return
	}
	m.SelTags ^= 1
	if a.UI&wm.tagMask() != 0 {
		m.TagSet[m.SelTags] = a.UI & wm.tagMask()
	}
	wm.focus(nil)
	wm.arrange(m)
}

// toggleView xors tags in and out of the visible set, refusing to
// empty it.
func (wm *WM) toggleView(a *Arg) {
	m := wm.selMon
	newSet := m.TagSet[m.SelTags] ^ (a.UI & wm.tagMask())
	if newSet == 0 {
		return
	}
	m.TagSet[m.SelTags] = newSet
	wm.focus(nil)
	wm.arrange(m)
}

// tag moves the selected client to the given tag set.
func (wm *WM) tag(a *Arg) {
	sel := wm.selMon.Sel
	if sel == nil || a.UI&wm.tagMask() == 0 {
		return
	}
	sel.Tags = a.UI & wm.tagMask()
	wm.focus(nil)
	wm.arrange(wm.selMon)
}

// toggleTag xors tags on the selected client, refusing to leave it
// tagless.
func (wm *WM) toggleTag(a *Arg) {
	sel := wm.selMon.Sel
	if sel == nil {
		return
	}
	newTags := sel.Tags ^ (a.UI & wm.tagMask())
	if newTags == 0 {
		return
	}
	sel.Tags = newTags
	wm.focus(nil)
	wm.arrange(wm.selMon)
}

// killClient asks the selected client to close, falling back to a
// forced kill when it speaks no WM_DELETE_WINDOW.
func (wm *WM) killClient(a *Arg) {
	sel := wm.selMon.Sel
	if sel == nil {
		return
	}
	if !wm.backend.SendWMProtocol(sel.Win, wmDeleteWindow) {
		wm.backend.KillClient(sel.Win)
	}
}

// setLayout switches the active layout. A nil layout in Arg.V toggles
// between the monitor's two layout slots.
func (wm *WM) setLayout(a *Arg) {
	m := wm.selMon
	lt, _ := a.V.(Layout)
	if lt == nil || lt != m.CurLayout() {
		m.selLayout ^= 1
	}
	if lt != nil {
		m.layouts[m.selLayout] = lt
	}
	m.LayoutSymbol = m.CurLayout().Symbol()
	if m.Sel != nil {
		wm.arrange(m)
	} else {
		wm.drawBar(m)
	}
}

// toggleFloating floats or re-tiles the selected client. Fullscreen
// clients are left alone.
func (wm *WM) toggleFloating(a *Arg) {
	sel := wm.selMon.Sel
	if sel == nil || sel.Fullscreen {
		return
	}
	sel.Floating = !sel.Floating || sel.Fixed
	if sel.Floating {
		wm.resize(sel, sel.Geom, false)
	}
	wm.arrange(wm.selMon)
}

// toggleBar shows or hides the selected monitor's bar and reclaims the
// space.
func (wm *WM) toggleBar(a *Arg) {
	m := wm.selMon
	m.ShowBar = !m.ShowBar
	m.updateBarPos(wm.barHeight)
	wm.backend.MoveResize(m.BarWin, m.WX, m.BarY, m.WW, wm.barHeight, 0)
	wm.arrange(m)
}

// focusMon shifts the selection to the monitor in the given direction.
func (wm *WM) focusMon(a *Arg) {
	if len(wm.monitors) <= 1 {
		return
	}
	m := wm.dirToMonitor(a.I)
	if m == wm.selMon {
		return
	}
	wm.unfocus(wm.selMon.Sel, false)
	wm.selMon = m
	wm.focus(nil)
}

// tagMon sends the selected client to the monitor in the given
// direction.
func (wm *WM) tagMon(a *Arg) {
	if wm.selMon.Sel == nil || len(wm.monitors) <= 1 {
		return
	}
	wm.sendMon(wm.selMon.Sel, wm.dirToMonitor(a.I))
}

// sendMon moves c to monitor m, assigning it m's visible tags.
func (wm *WM) sendMon(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	wm.unfocus(c, true)
	c.Mon.detach(c)
	c.Mon.detachStack(c)
	c.Mon = m
	c.Tags = m.ActiveTags()
	m.attachBelow(c)
	m.attachStack(c)
	wm.focus(nil)
	wm.arrange(nil)
}

// quit ends the event loop after the current event.
func (wm *WM) quit(a *Arg) {
	wm.running = false
}
