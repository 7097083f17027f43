package wm

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/tatami-wm/tatami/internal/draw"
)

// fakeWindow is the server-side view of one window in the fake backend.
type fakeWindow struct {
	geom        Geom
	borderWidth int
	mapped      bool
	title       string
	instance    string
	class       string
	hints       SizeHints
	wmHints     WMHints
	hasWMHints  bool
	transient   xp.Window
	states      []string
	types       []string
	protocols   []string
	wmState     uint32
	urgentHint  bool
	borderPixel uint32
	fullscreen  bool
	overrideRed bool
}

// fakeBackend records every request the state machine issues so tests
// can assert on the resulting window geometry and ordering.
type fakeBackend struct {
	screens []Geom
	windows map[xp.Window]*fakeWindow

	events chan EventOrError

	focused    xp.Window
	active     xp.Window
	clientList []xp.Window
	protoSent  []string
	killed     []xp.Window
	raised     []xp.Window
	status     string

	nextBarWin xp.Window
	barWins    []xp.Window

	grabDenied  bool
	pointerX    int
	pointerY    int
	moveResizes int
	atoms       map[string]xp.Atom
	keycodes    map[string]xp.Keycode
}

func newFakeBackend(screens ...Geom) *fakeBackend {
	if len(screens) == 0 {
		screens = []Geom{{0, 0, 1280, 800}}
	}
	return &fakeBackend{
		screens:    screens,
		windows:    make(map[xp.Window]*fakeWindow),
		events:     make(chan EventOrError, 64),
		nextBarWin: 9000,
	}
}

func (b *fakeBackend) addWindow(w xp.Window, g Geom) *fakeWindow {
	fw := &fakeWindow{geom: g, borderWidth: 0}
	b.windows[w] = fw
	return fw
}

func (b *fakeBackend) win(w xp.Window) *fakeWindow {
	fw, ok := b.windows[w]
	if !ok {
		fw = &fakeWindow{}
		b.windows[w] = fw
	}
	return fw
}

func (b *fakeBackend) Root() xp.Window { return 1 }

func (b *fakeBackend) ScreenSize() (int, int) {
	w, h := 0, 0
	for _, s := range b.screens {
		w = max(w, s.X+s.W)
		h = max(h, s.Y+s.H)
	}
	return w, h
}

func (b *fakeBackend) Events() <-chan EventOrError  { return b.events }
func (b *fakeBackend) Flush()                       {}
func (b *fakeBackend) Announce(c xp.Cursor) error   { return nil }
func (b *fakeBackend) Screens() ([]Geom, error)     { return b.screens, nil }
func (b *fakeBackend) TopLevelWindows() ([]xp.Window, error) {
	var ws []xp.Window
	for w := range b.windows {
		ws = append(ws, w)
	}
	return ws, nil
}

func (b *fakeBackend) WindowAttributes(w xp.Window) (WindowAttrs, bool) {
	fw, ok := b.windows[w]
	if !ok {
		return WindowAttrs{}, false
	}
	return WindowAttrs{
		Geom:             fw.geom,
		BorderWidth:      fw.borderWidth,
		OverrideRedirect: fw.overrideRed,
		Mapped:           fw.mapped,
	}, true
}

func (b *fakeBackend) QueryPointer() (int, int, bool) {
	return b.pointerX, b.pointerY, true
}

func (b *fakeBackend) WindowTitle(w xp.Window) string { return b.win(w).title }

func (b *fakeBackend) WindowClass(w xp.Window) (string, string) {
	fw := b.win(w)
	return fw.instance, fw.class
}

func (b *fakeBackend) SizeHints(w xp.Window) SizeHints { return b.win(w).hints }

func (b *fakeBackend) WMHints(w xp.Window) (WMHints, bool) {
	fw := b.win(w)
	return fw.wmHints, fw.hasWMHints
}

func (b *fakeBackend) TransientFor(w xp.Window) (xp.Window, bool) {
	fw := b.win(w)
	return fw.transient, fw.transient != 0
}

func (b *fakeBackend) NetWMStates(w xp.Window) []string { return b.win(w).states }
func (b *fakeBackend) NetWMTypes(w xp.Window) []string  { return b.win(w).types }
func (b *fakeBackend) StatusText() string { return b.status }

func (b *fakeBackend) AtomName(a xp.Atom) string {
	for name, atom := range b.atoms {
		if atom == a {
			return name
		}
	}
	return ""
}

func (b *fakeBackend) Atom(name string) xp.Atom {
	if a, ok := b.atoms[name]; ok {
		return a
	}
	if b.atoms == nil {
		b.atoms = make(map[string]xp.Atom)
	}
	a := xp.Atom(1000 + len(b.atoms))
	b.atoms[name] = a
	return a
}

func (b *fakeBackend) MoveResize(w xp.Window, x, y, width, height, borderWidth int) {
	b.moveResizes++
	fw := b.win(w)
	fw.geom = Geom{x, y, width, height}
	fw.borderWidth = borderWidth
}

func (b *fakeBackend) Move(w xp.Window, x, y int) {
	fw := b.win(w)
	fw.geom.X, fw.geom.Y = x, y
}

func (b *fakeBackend) Raise(w xp.Window) { b.raised = append(b.raised, w) }

func (b *fakeBackend) StackBelow(w, sibling xp.Window) {}

func (b *fakeBackend) MapWindow(w xp.Window) { b.win(w).mapped = true }

func (b *fakeBackend) SendConfigureNotify(w xp.Window, g Geom, borderWidth int) {}

func (b *fakeBackend) ConfigureUnmanaged(ev xp.ConfigureRequestEvent) {
	fw := b.win(ev.Window)
	if ev.ValueMask&xp.ConfigWindowX != 0 {
		fw.geom.X = int(ev.X)
	}
	if ev.ValueMask&xp.ConfigWindowY != 0 {
		fw.geom.Y = int(ev.Y)
	}
	if ev.ValueMask&xp.ConfigWindowWidth != 0 {
		fw.geom.W = int(ev.Width)
	}
	if ev.ValueMask&xp.ConfigWindowHeight != 0 {
		fw.geom.H = int(ev.Height)
	}
}

func (b *fakeBackend) SetBorderWidth(w xp.Window, borderWidth int) {
	b.win(w).borderWidth = borderWidth
}

func (b *fakeBackend) SelectClientEvents(w xp.Window) {}

func (b *fakeBackend) SetInputFocus(w xp.Window) { b.focused = w }
func (b *fakeBackend) FocusRoot()                { b.focused = b.Root() }

func (b *fakeBackend) SetBorderColor(w xp.Window, pixel uint32) {
	b.win(w).borderPixel = pixel
}

func (b *fakeBackend) GrabKeys(keys []KeySpec)                                {}
func (b *fakeBackend) GrabButtons(w xp.Window, f bool, buttons []ButtonSpec)  {}
func (b *fakeBackend) UngrabButtons(w xp.Window)                              {}
func (b *fakeBackend) GrabPointer(cursor xp.Cursor) bool                      { return !b.grabDenied }
func (b *fakeBackend) UngrabPointer()                                         {}
func (b *fakeBackend) WarpPointer(w xp.Window, x, y int)                      {}
func (b *fakeBackend) AllowEvents()                                           {}
func (b *fakeBackend) KeycodeMatches(code xp.Keycode, key string) bool {
	return b.keycodes[key] == code && code != 0
}
func (b *fakeBackend) NumLockMask() uint16                                    { return xp.ModMask2 }
func (b *fakeBackend) RefreshKeyboardMapping(ev xp.MappingNotifyEvent)        {}

func (b *fakeBackend) SendWMProtocol(w xp.Window, proto string) bool {
	for _, p := range b.win(w).protocols {
		if p == proto {
			b.protoSent = append(b.protoSent, proto)
			return true
		}
	}
	return false
}

func (b *fakeBackend) KillClient(w xp.Window) { b.killed = append(b.killed, w) }

func (b *fakeBackend) SetWMState(w xp.Window, state uint32) { b.win(w).wmState = state }

func (b *fakeBackend) SetFullscreenProp(w xp.Window, on bool) { b.win(w).fullscreen = on }

func (b *fakeBackend) SetUrgencyHint(w xp.Window, urgent bool) { b.win(w).urgentHint = urgent }

func (b *fakeBackend) SetActiveWindow(w xp.Window) { b.active = w }
func (b *fakeBackend) ClearActiveWindow()          { b.active = 0 }

func (b *fakeBackend) SetClientList(ws []xp.Window) {
	b.clientList = append([]xp.Window(nil), ws...)
}

func (b *fakeBackend) CreateBarWindow(g Geom, cursor xp.Cursor) (xp.Window, error) {
	w := b.nextBarWin
	b.nextBarWin++
	b.barWins = append(b.barWins, w)
	b.addWindow(w, g)
	return w, nil
}

func (b *fakeBackend) DestroyBarWindow(w xp.Window) {}

var _ Backend = (*fakeBackend)(nil)

// fakeSurface measures text with a fixed-width pretend font and ignores
// all drawing.
type fakeSurface struct{}

func (fakeSurface) Resize(w, h int)                              {}
func (fakeSurface) FontHeight() int                              { return 18 }
func (fakeSurface) Pad() int                                     { return 18 }
func (fakeSurface) TextWidth(s string) int                       { return len(s)*9 + 18 }
func (fakeSurface) SetScheme(s draw.Scheme)                      {}
func (fakeSurface) Text(x, w, pad int, s string, inv bool) int   { return x + w }
func (fakeSurface) Rect(x, y, w, h int, filled, inv bool)        {}
func (fakeSurface) MapTo(win xp.Window, x, y, w, h int)          {}
func (fakeSurface) Cursor(shape int) (xp.Cursor, error)          { return xp.Cursor(shape), nil }
func (fakeSurface) Close()                                       {}

var _ draw.Surface = fakeSurface{}

// newTestWM builds a WM on the fake backend with the tile layout first
// and the bar at the top, which pins the usable area to y >= 20.
func newTestWM(t *testing.T, screens ...Geom) (*WM, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(screens...)
	cfg := DefaultConfig()
	cfg.ShowBar = true
	cfg.TopBar = true
	cfg.Layouts = []Layout{Tile, Float, Monocle, Dwindle}
	w := New(fb, fakeSurface{}, cfg)
	if err := w.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return w, fb
}

// addClient manages a new window with the given id and initial
// geometry.
func addClient(w *WM, fb *fakeBackend, win xp.Window, g Geom) *Client {
	fb.addWindow(win, g)
	w.manage(win, WindowAttrs{Geom: g})
	return w.windowToClient(win)
}
