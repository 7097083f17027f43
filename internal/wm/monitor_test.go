package wm

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
)

func manageOrder(m *Monitor) []xp.Window {
	var ws []xp.Window
	for _, c := range m.clients {
		ws = append(ws, c.Win)
	}
	return ws
}

func TestAttachBelowInsertsAfterSelection(t *testing.T) {
	w, fb := newTestWM(t)
	addClient(w, fb, 100, Geom{0, 0, 400, 300})
	addClient(w, fb, 101, Geom{0, 0, 400, 300})
	addClient(w, fb, 102, Geom{0, 0, 400, 300})

	// Each new client lands after the previously selected one.
	want := []xp.Window{100, 101, 102}
	got := manageOrder(w.selMon)
	if len(got) != len(want) {
		t.Fatalf("manage order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("manage order %v, want %v", got, want)
		}
	}

	// Refocusing the head and managing another puts it second.
	w.focus(w.windowToClient(100))
	addClient(w, fb, 103, Geom{0, 0, 400, 300})
	got = manageOrder(w.selMon)
	want = []xp.Window{100, 103, 101, 102}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("manage order %v, want %v", got, want)
		}
	}
}

func TestAttachBelowWithFloatingSelection(t *testing.T) {
	w, fb := newTestWM(t)
	addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.toggleFloating(nil)

	// With a floating selection the new client goes after the first
	// tiled client sharing a tag, or to the head if there is none.
	addClient(w, fb, 101, Geom{0, 0, 400, 300})
	got := manageOrder(w.selMon)
	if got[0] != 101 {
		t.Fatalf("manage order %v, want 101 first", got)
	}
}

func TestDetachStackFallsBackToVisibleClient(t *testing.T) {
	w, fb := newTestWM(t)
	a := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	b := addClient(w, fb, 101, Geom{0, 0, 400, 300})
	c := addClient(w, fb, 102, Geom{0, 0, 400, 300})

	if w.selMon.Sel != c {
		t.Fatalf("Sel = %v, want %v", w.selMon.Sel.Win, c.Win)
	}
	w.unmanage(c, true)
	// Selection falls to the most recently focused survivor.
	if w.selMon.Sel != b {
		t.Fatalf("Sel = %v after unmanage, want %v", w.selMon.Sel.Win, b.Win)
	}
	w.unmanage(b, true)
	if w.selMon.Sel != a {
		t.Fatalf("Sel = %v after unmanage, want %v", w.selMon.Sel.Win, a.Win)
	}
	w.unmanage(a, true)
	if w.selMon.Sel != nil {
		t.Fatalf("Sel = %v after last unmanage, want nil", w.selMon.Sel.Win)
	}
	if fb.focused != fb.Root() {
		t.Errorf("input focus = %v, want root", fb.focused)
	}
}

func TestUpdateGeometryTwoMonitors(t *testing.T) {
	w, _ := newTestWM(t,
		Geom{0, 0, 1280, 800},
		Geom{1280, 0, 1024, 768},
	)
	if len(w.monitors) != 2 {
		t.Fatalf("monitors = %d, want 2", len(w.monitors))
	}
	m1 := w.monitors[1]
	if m1.WX != 1280 || m1.WY != 20 || m1.WW != 1024 || m1.WH != 748 {
		t.Errorf("second monitor area = (%d,%d %dx%d), want (1280,20 1024x748)",
			m1.WX, m1.WY, m1.WW, m1.WH)
	}
}

func TestMonitorVanishMigratesClients(t *testing.T) {
	w, fb := newTestWM(t,
		Geom{0, 0, 1280, 800},
		Geom{1280, 0, 1024, 768},
	)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.sendMon(c, w.monitors[1])
	if c.Mon != w.monitors[1] {
		t.Fatal("sendMon did not move the client")
	}

	fb.screens = fb.screens[:1]
	if !w.updateGeometry() {
		t.Fatal("updateGeometry reported no change")
	}
	if len(w.monitors) != 1 {
		t.Fatalf("monitors = %d, want 1", len(w.monitors))
	}
	if c.Mon != w.monitors[0] {
		t.Error("client did not migrate to the surviving monitor")
	}
}

func TestRectToMonitorPicksLargestOverlap(t *testing.T) {
	w, _ := newTestWM(t,
		Geom{0, 0, 1280, 800},
		Geom{1280, 0, 1024, 768},
	)
	if m := w.rectToMonitor(1500, 100, 200, 200); m != w.monitors[1] {
		t.Error("rect on second monitor mapped to the first")
	}
	if m := w.rectToMonitor(1100, 100, 200, 200); m != w.monitors[0] {
		t.Error("rect mostly on first monitor mapped to the second")
	}
}

func TestDirToMonitorWraps(t *testing.T) {
	w, _ := newTestWM(t,
		Geom{0, 0, 1280, 800},
		Geom{1280, 0, 1024, 768},
	)
	if m := w.dirToMonitor(+1); m != w.monitors[1] {
		t.Error("next monitor is not the second")
	}
	w.selMon = w.monitors[1]
	if m := w.dirToMonitor(+1); m != w.monitors[0] {
		t.Error("next monitor did not wrap to the first")
	}
	if m := w.dirToMonitor(-1); m != w.monitors[0] {
		t.Error("previous monitor is not the first")
	}
}

func TestSendMonAssignsTargetTags(t *testing.T) {
	w, fb := newTestWM(t,
		Geom{0, 0, 1280, 800},
		Geom{1280, 0, 1024, 768},
	)
	c := addClient(w, fb, 100, Geom{0, 0, 400, 300})
	w.monitors[1].TagSet[0] = 1 << 3
	w.sendMon(c, w.monitors[1])
	if c.Tags != 1<<3 {
		t.Errorf("tags = %b, want %b", c.Tags, uint32(1<<3))
	}
}
