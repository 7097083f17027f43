package wm

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
)

func TestMoveMouseFloatsTiledClient(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	fb.pointerX, fb.pointerY = 10, 10

	fb.events <- EventOrError{Event: xp.MotionNotifyEvent{
		Time: 1000, RootX: 210, RootY: 110,
	}}
	fb.events <- EventOrError{Event: xp.ButtonReleaseEvent{}}
	w.moveMouse(nil)

	if !c.Floating {
		t.Fatal("drag past the snap distance did not float the client")
	}
	if c.Geom.X != 200 || c.Geom.Y != 120 {
		t.Errorf("geometry = %+v, want origin (200,120)", c.Geom)
	}
}

func TestMoveMouseSnapsToEdge(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.toggleFloating(nil)
	w.resize(c, Geom{200, 200, 400, 300}, false)
	fb.pointerX, fb.pointerY = 0, 0

	// A drag ending within the snap distance of the work area edge
	// sticks to it.
	fb.events <- EventOrError{Event: xp.MotionNotifyEvent{
		Time: 1000, RootX: -190, RootY: -170,
	}}
	fb.events <- EventOrError{Event: xp.ButtonReleaseEvent{}}
	w.moveMouse(nil)

	if c.Geom.X != 0 || c.Geom.Y != 20 {
		t.Errorf("geometry = %+v, want snapped to (0,20)", c.Geom)
	}
}

func TestMoveMouseThrottlesMotion(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.toggleFloating(nil)
	w.resize(c, Geom{200, 200, 400, 300}, false)
	fb.pointerX, fb.pointerY = 0, 0

	// The second motion arrives within the frame interval and is
	// dropped.
	fb.events <- EventOrError{Event: xp.MotionNotifyEvent{
		Time: 1000, RootX: 100, RootY: 100,
	}}
	fb.events <- EventOrError{Event: xp.MotionNotifyEvent{
		Time: 1005, RootX: 150, RootY: 150,
	}}
	fb.events <- EventOrError{Event: xp.ButtonReleaseEvent{}}
	w.moveMouse(nil)

	if c.Geom.X != 300 || c.Geom.Y != 300 {
		t.Errorf("geometry = %+v, want (300,300) from the first motion only", c.Geom)
	}
}

func TestResizeMouseGrowsFloatingClient(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.toggleFloating(nil)

	fb.events <- EventOrError{Event: xp.MotionNotifyEvent{
		Time: 1000, RootX: 500, RootY: 400,
	}}
	fb.events <- EventOrError{Event: xp.ButtonReleaseEvent{}}
	w.resizeMouse(nil)

	// Bottom-right corner lands at the pointer, minus borders.
	wantW := 500 - c.Geom.X - 2*c.BorderWidth + 1
	wantH := 400 - c.Geom.Y - 2*c.BorderWidth + 1
	if c.Geom.W != wantW || c.Geom.H != wantH {
		t.Errorf("geometry = %dx%d, want %dx%d", c.Geom.W, c.Geom.H, wantW, wantH)
	}
}

func TestDragIgnoredWhenGrabFails(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	fb.grabDenied = true
	before := c.Geom

	w.moveMouse(nil)
	if c.Geom != before {
		t.Error("geometry changed despite a failed pointer grab")
	}
}

func TestDragQueuesUnrelatedEvents(t *testing.T) {
	w, fb := newTestWM(t)
	addClient(w, fb, 100, Geom{0, 0, 400, 300})
	fb.pointerX, fb.pointerY = 0, 0

	// Events unrelated to the drag are deferred, in order, and the drag
	// still terminates on the button release queued behind them.
	fb.events <- EventOrError{Event: xp.KeyPressEvent{Detail: 42}}
	fb.events <- EventOrError{Event: xp.PropertyNotifyEvent{Window: 100}}
	fb.events <- EventOrError{Event: xp.ButtonReleaseEvent{}}
	w.moveMouse(nil)

	if len(w.pending) != 2 {
		t.Fatalf("pending = %d events, want 2", len(w.pending))
	}
	if _, ok := w.nextEvent().Event.(xp.KeyPressEvent); !ok {
		t.Error("first replayed event is not the key press")
	}
	if _, ok := w.nextEvent().Event.(xp.PropertyNotifyEvent); !ok {
		t.Error("second replayed event is not the property change")
	}
}

func TestMoveMouseRefusesFullscreen(t *testing.T) {
	w, fb := newTestWM(t)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.setFullscreen(c, true)
	before := c.Geom

	w.moveMouse(nil)
	if c.Geom != before {
		t.Error("fullscreen client moved")
	}
}
