package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Pointer motion is throttled to sixty updates a second during drags.
const motionInterval = 1000 / 60

// moveMouse drags the selected client with the pointer until the
// button is released. Dragging a tiled client further than the snap
// distance floats it first. Events not involved in the drag are queued
// for the main loop.
func (wm *WM) moveMouse(a *Arg) {
	c := wm.selMon.Sel
	if c == nil || c.Fullscreen {
		return
	}
	wm.restack(wm.selMon)
	ocx, ocy := c.Geom.X, c.Geom.Y
	if !wm.backend.GrabPointer(wm.cursors[CursorMove]) {
		return
	}
	px, py, ok := wm.backend.QueryPointer()
	if !ok {
		wm.backend.UngrabPointer()
		return
	}
	// Deferred events are held locally until the drag ends; feeding them
	// back through nextEvent inside this loop would re-read them forever.
	var deferred []EventOrError
	defer func() { wm.pending = append(deferred, wm.pending...) }()
	var lastTime xp.Timestamp
	for {
		ee := wm.nextEvent()
		if ee.Error != nil {
			wm.xError(ee.Error)
			continue
		}
		if ee.Event == nil {
			wm.backend.UngrabPointer()
			return
		}
		switch e := ee.Event.(type) {
		case xp.ConfigureRequestEvent:
			wm.configureRequest(e)
		case xp.ExposeEvent, xp.MapRequestEvent:
			wm.handleEvent(ee.Event)
		case xp.MotionNotifyEvent:
			if e.Time-lastTime <= motionInterval {
				continue
			}
			lastTime = e.Time
			nx := ocx + int(e.RootX) - px
			ny := ocy + int(e.RootY) - py
			m := wm.selMon
			snap := wm.cfg.Snap
			if abs(m.WX-nx) < snap {
				nx = m.WX
			} else if abs(m.WX+m.WW-(nx+c.TotalW())) < snap {
				nx = m.WX + m.WW - c.TotalW()
			}
			if abs(m.WY-ny) < snap {
				ny = m.WY
			} else if abs(m.WY+m.WH-(ny+c.TotalH())) < snap {
				ny = m.WY + m.WH - c.TotalH()
			}
			if !c.Floating && m.Tiling() &&
				(abs(nx-c.Geom.X) > snap || abs(ny-c.Geom.Y) > snap) {
				wm.toggleFloating(nil)
			}
			if !m.Tiling() || c.Floating {
				wm.resize(c, Geom{nx, ny, c.Geom.W, c.Geom.H}, true)
			}
		case xp.ButtonReleaseEvent:
			wm.backend.UngrabPointer()
			wm.dragHandoff(c)
			return
		default:
			deferred = append(deferred, ee)
		}
	}
}

// resizeMouse drags the selected client's bottom-right corner until
// the button is released. The pointer is warped to the corner at both
// ends of the drag so the grab looks anchored.
func (wm *WM) resizeMouse(a *Arg) {
	c := wm.selMon.Sel
	if c == nil || c.Fullscreen {
		return
	}
	wm.restack(wm.selMon)
	ocx, ocy := c.Geom.X, c.Geom.Y
	if !wm.backend.GrabPointer(wm.cursors[CursorResize]) {
		return
	}
	wm.backend.WarpPointer(c.Win, c.Geom.W+c.BorderWidth-1, c.Geom.H+c.BorderWidth-1)
	var deferred []EventOrError
	defer func() { wm.pending = append(deferred, wm.pending...) }()
	var lastTime xp.Timestamp
	for {
		ee := wm.nextEvent()
		if ee.Error != nil {
			wm.xError(ee.Error)
			continue
		}
		if ee.Event == nil {
			wm.backend.UngrabPointer()
			return
		}
		switch e := ee.Event.(type) {
		case xp.ConfigureRequestEvent:
			wm.configureRequest(e)
		case xp.ExposeEvent, xp.MapRequestEvent:
			wm.handleEvent(ee.Event)
		case xp.MotionNotifyEvent:
			if e.Time-lastTime <= motionInterval {
				continue
			}
			lastTime = e.Time
			nw := max(int(e.RootX)-ocx-2*c.BorderWidth+1, 1)
			nh := max(int(e.RootY)-ocy-2*c.BorderWidth+1, 1)
			m := c.Mon
			if m.WX+nw >= wm.selMon.WX && m.WX+nw <= wm.selMon.WX+wm.selMon.WW &&
				m.WY+nh >= wm.selMon.WY && m.WY+nh <= wm.selMon.WY+wm.selMon.WH {
				if !c.Floating && wm.selMon.Tiling() &&
					(abs(nw-c.Geom.W) > wm.cfg.Snap || abs(nh-c.Geom.H) > wm.cfg.Snap) {
					wm.toggleFloating(nil)
				}
			}
			if !wm.selMon.Tiling() || c.Floating {
				wm.resize(c, Geom{c.Geom.X, c.Geom.Y, nw, nh}, true)
			}
		case xp.ButtonReleaseEvent:
			wm.backend.WarpPointer(c.Win, c.Geom.W+c.BorderWidth-1, c.Geom.H+c.BorderWidth-1)
			wm.backend.UngrabPointer()
			wm.drainEnterNotify()
			wm.dragHandoff(c)
			return
		default:
			deferred = append(deferred, ee)
		}
	}
}

// dragHandoff transfers the client to whichever monitor now contains
// it, if the drag crossed a boundary.
func (wm *WM) dragHandoff(c *Client) {
	m := wm.rectToMonitor(c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H)
	if m != wm.selMon {
		wm.sendMon(c, m)
		wm.selMon = m
		wm.focus(nil)
	}
}

// nextEvent pops a queued event left over from a drag, or blocks on
// the X stream.
func (wm *WM) nextEvent() EventOrError {
	if len(wm.pending) > 0 {
		ee := wm.pending[0]
		wm.pending = wm.pending[1:]
		return ee
	}
	return <-wm.events
}

// drainEnterNotify discards queued crossing events, so restacks and
// resize warps do not retrigger focus-follows-pointer. Everything else
// is requeued for the main loop.
func (wm *WM) drainEnterNotify() {
	for {
		select {
		case ee := <-wm.events:
			if ee.Event == nil && ee.Error == nil {
				return
			}
			if _, crossing := ee.Event.(xp.EnterNotifyEvent); crossing {
				continue
			}
			wm.pending = append(wm.pending, ee)
		default:
			return
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
