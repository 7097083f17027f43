package wm

import (
	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
)

// Size-hint flag bits, per ICCCM WM_NORMAL_HINTS.
const (
	hintMinSize   = 1 << 4
	hintMaxSize   = 1 << 5
	hintResizeInc = 1 << 6
	hintAspect    = 1 << 7
	hintBaseSize  = 1 << 8
)

// ICCCM WM_STATE values.
const (
	stateWithdrawn = 0
	stateNormal    = 1
	stateIconic    = 3
)

// EWMH atom names the state machine compares against.
const (
	netWMStateFullscreen = "_NET_WM_STATE_FULLSCREEN"
	netWMTypeDialog      = "_NET_WM_WINDOW_TYPE_DIALOG"
	wmDeleteWindow       = "WM_DELETE_WINDOW"
	wmTakeFocus          = "WM_TAKE_FOCUS"
)

// Cursor shapes from the X cursor font.
const (
	CursorNormal = 68  // XC_left_ptr
	CursorResize = 120 // XC_sizing
	CursorMove   = 52  // XC_fleur
)

// SizeHints is a client's WM_NORMAL_HINTS, raw.
type SizeHints struct {
	Flags                      uint32
	BaseW, BaseH               int
	IncW, IncH                 int
	MaxW, MaxH                 int
	MinW, MinH                 int
	MinAspectNum, MinAspectDen int
	MaxAspectNum, MaxAspectDen int
}

// WMHints is the subset of WM_HINTS the state machine cares about.
type WMHints struct {
	Urgent   bool
	InputSet bool
	Input    bool
}

// WindowAttrs is the subset of a window's attributes consulted at
// manage time.
type WindowAttrs struct {
	Geom             Geom
	BorderWidth      int
	OverrideRedirect bool
	Mapped           bool
	Iconic           bool
}

// ButtonSpec is one grabbable button chord on a client window.
type ButtonSpec struct {
	Mod    uint16
	Button xp.Button
}

// KeySpec is one grabbable key chord on the root window.
type KeySpec struct {
	Mod uint16
	Key string // keysym name, e.g. "j", "Return", "space"
}

// EventOrError is one item from the X event stream.
type EventOrError struct {
	Event xgb.Event
	Error xgb.Error
}

// Backend is the windowing collaborator: every X side effect and query
// the state machine performs goes through it, so tests can substitute a
// recording fake.
type Backend interface {
	Root() xp.Window
	ScreenSize() (w, h int)
	Events() <-chan EventOrError
	Flush()

	// Announce publishes the supported EWMH hints and the supporting
	// WM check window, and installs the root cursor.
	Announce(cursor xp.Cursor) error

	// Queries.
	Screens() ([]Geom, error)
	TopLevelWindows() ([]xp.Window, error)
	WindowAttributes(w xp.Window) (WindowAttrs, bool)
	QueryPointer() (x, y int, ok bool)
	WindowTitle(w xp.Window) string
	WindowClass(w xp.Window) (instance, class string)
	SizeHints(w xp.Window) SizeHints
	WMHints(w xp.Window) (WMHints, bool)
	TransientFor(w xp.Window) (xp.Window, bool)
	NetWMStates(w xp.Window) []string
	NetWMTypes(w xp.Window) []string
	StatusText() string
	AtomName(a xp.Atom) string
	Atom(name string) xp.Atom

	// Geometry and stacking.
	MoveResize(w xp.Window, x, y, width, height, borderWidth int)
	Move(w xp.Window, x, y int)
	Raise(w xp.Window)
	StackBelow(w, sibling xp.Window)
	MapWindow(w xp.Window)
	SendConfigureNotify(w xp.Window, g Geom, borderWidth int)
	ConfigureUnmanaged(ev xp.ConfigureRequestEvent)
	SetBorderWidth(w xp.Window, borderWidth int)

	// Focus and input.
	SelectClientEvents(w xp.Window)
	SetInputFocus(w xp.Window)
	FocusRoot()
	SetBorderColor(w xp.Window, pixel uint32)
	GrabKeys(keys []KeySpec)
	GrabButtons(w xp.Window, focused bool, buttons []ButtonSpec)
	UngrabButtons(w xp.Window)
	GrabPointer(cursor xp.Cursor) bool
	UngrabPointer()
	WarpPointer(w xp.Window, x, y int)
	AllowEvents()
	KeycodeMatches(code xp.Keycode, key string) bool
	NumLockMask() uint16
	RefreshKeyboardMapping(ev xp.MappingNotifyEvent)

	// Protocols and properties.
	SendWMProtocol(w xp.Window, proto string) bool
	KillClient(w xp.Window)
	SetWMState(w xp.Window, state uint32)
	SetFullscreenProp(w xp.Window, on bool)
	SetUrgencyHint(w xp.Window, urgent bool)
	SetActiveWindow(w xp.Window)
	ClearActiveWindow()
	SetClientList(ws []xp.Window)

	// Bar windows.
	CreateBarWindow(g Geom, cursor xp.Cursor) (xp.Window, error)
	DestroyBarWindow(w xp.Window)
}
