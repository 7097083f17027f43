package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	log "github.com/sirupsen/logrus"
)

const (
	rootEventMask = xp.EventMaskSubstructureRedirect |
		xp.EventMaskSubstructureNotify |
		xp.EventMaskButtonPress |
		xp.EventMaskPointerMotion |
		xp.EventMaskEnterWindow |
		xp.EventMaskLeaveWindow |
		xp.EventMaskStructureNotify |
		xp.EventMaskPropertyChange

	clientEventMask = xp.EventMaskEnterWindow |
		xp.EventMaskFocusChange |
		xp.EventMaskPropertyChange |
		xp.EventMaskStructureNotify

	buttonEventMask = xp.EventMaskButtonPress | xp.EventMaskButtonRelease

	pointerEventMask = buttonEventMask | xp.EventMaskPointerMotion
)

// X11Backend is the live implementation of Backend on a real X server.
type X11Backend struct {
	conn   *xgb.Conn
	xu     *xgbutil.XUtil
	root   xp.Window
	screen *xp.ScreenInfo

	xineramaActive bool
	checkWin       xp.Window

	events chan EventOrError
}

// NewX11Backend connects to the display and claims substructure
// redirection on the root window, which fails if another window
// manager is already running.
func NewX11Backend() (*X11Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	xu, err := xgbutil.NewConnXgb(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	screen := xp.Setup(conn).DefaultScreen(conn)
	b := &X11Backend{
		conn:   conn,
		xu:     xu,
		root:   screen.Root,
		screen: screen,
		events: make(chan EventOrError),
	}
	if err := xinerama.Init(conn); err == nil {
		b.xineramaActive = true
	}

	if err := xp.ChangeWindowAttributesChecked(conn, b.root,
		xp.CwEventMask, []uint32{rootEventMask}).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("another window manager is already running (%v)", err)
	}

	go func() {
		for {
			ev, err := conn.WaitForEvent()
			if ev == nil && err == nil {
				close(b.events)
				return
			}
			b.events <- EventOrError{Event: ev, Error: err}
		}
	}()
	return b, nil
}

func (b *X11Backend) Root() xp.Window { return b.root }

// Conn exposes the underlying connection for the drawing surface,
// which shares it.
func (b *X11Backend) Conn() *xgb.Conn { return b.conn }

func (b *X11Backend) ScreenSize() (int, int) {
	return int(b.screen.WidthInPixels), int(b.screen.HeightInPixels)
}

func (b *X11Backend) Events() <-chan EventOrError { return b.events }

func (b *X11Backend) Flush() { b.conn.Sync() }

var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
}

// Announce publishes the EWMH support window and hint list, installs
// the root cursor and clears any stale client list.
func (b *X11Backend) Announce(cursor xp.Cursor) error {
	win, err := xp.NewWindowId(b.conn)
	if err != nil {
		return err
	}
	// A 1x1 window that is never mapped, per the EWMH check-window dance.
	if err := xp.CreateWindowChecked(b.conn, b.screen.RootDepth, win, b.root,
		-1, -1, 1, 1, 0, xp.WindowClassInputOutput, b.screen.RootVisual,
		0, nil).Check(); err != nil {
		return err
	}
	b.checkWin = win
	if err := ewmh.SupportingWmCheckSet(b.xu, b.root, win); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(b.xu, win, win); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(b.xu, win, "tatami"); err != nil {
		return err
	}
	if err := ewmh.SupportedSet(b.xu, supportedHints); err != nil {
		return err
	}
	if atom, err := xprop.Atm(b.xu, "_NET_CLIENT_LIST"); err == nil {
		xp.DeleteProperty(b.conn, b.root, atom)
	}
	b.ClearActiveWindow()
	xp.ChangeWindowAttributes(b.conn, b.root, xp.CwEventMask|xp.CwCursor,
		[]uint32{rootEventMask, uint32(cursor)})
	return nil
}

// Screens lists the physical screens via Xinerama, deduplicating
// mirrored outputs. Without Xinerama there is one screen.
func (b *X11Backend) Screens() ([]Geom, error) {
	if !b.xineramaActive {
		w, h := b.ScreenSize()
		return []Geom{{0, 0, w, h}}, nil
	}
	reply, err := xinerama.QueryScreens(b.conn).Reply()
	if err != nil {
		return nil, err
	}
	var screens []Geom
	for _, si := range reply.ScreenInfo {
		g := Geom{int(si.XOrg), int(si.YOrg), int(si.Width), int(si.Height)}
		unique := true
		for _, o := range screens {
			if o == g {
				unique = false
				break
			}
		}
		if unique {
			screens = append(screens, g)
		}
	}
	return screens, nil
}

func (b *X11Backend) TopLevelWindows() ([]xp.Window, error) {
	reply, err := xp.QueryTree(b.conn, b.root).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

func (b *X11Backend) WindowAttributes(w xp.Window) (WindowAttrs, bool) {
	attrs, err := xp.GetWindowAttributes(b.conn, w).Reply()
	if err != nil {
		return WindowAttrs{}, false
	}
	geom, err := xp.GetGeometry(b.conn, xp.Drawable(w)).Reply()
	if err != nil {
		return WindowAttrs{}, false
	}
	iconic := false
	if st, err := icccm.WmStateGet(b.xu, w); err == nil {
		iconic = st.State == icccm.StateIconic
	}
	return WindowAttrs{
		Geom:             Geom{int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height)},
		BorderWidth:      int(geom.BorderWidth),
		OverrideRedirect: attrs.OverrideRedirect,
		Mapped:           attrs.MapState == xp.MapStateViewable,
		Iconic:           iconic,
	}, true
}

func (b *X11Backend) QueryPointer() (int, int, bool) {
	reply, err := xp.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

func (b *X11Backend) WindowTitle(w xp.Window) string {
	if name, err := ewmh.WmNameGet(b.xu, w); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(b.xu, w)
	return name
}

func (b *X11Backend) WindowClass(w xp.Window) (string, string) {
	class, err := icccm.WmClassGet(b.xu, w)
	if err != nil {
		return "", ""
	}
	return class.Instance, class.Class
}

func (b *X11Backend) SizeHints(w xp.Window) SizeHints {
	nh, err := icccm.WmNormalHintsGet(b.xu, w)
	if err != nil {
		// Size 0x0 hints behave like no hints at all.
		return SizeHints{Flags: hintMinSize}
	}
	return SizeHints{
		Flags:        uint32(nh.Flags),
		BaseW:        int(nh.BaseWidth),
		BaseH:        int(nh.BaseHeight),
		IncW:         int(nh.WidthInc),
		IncH:         int(nh.HeightInc),
		MaxW:         int(nh.MaxWidth),
		MaxH:         int(nh.MaxHeight),
		MinW:         int(nh.MinWidth),
		MinH:         int(nh.MinHeight),
		MinAspectNum: int(nh.MinAspectNum),
		MinAspectDen: int(nh.MinAspectDen),
		MaxAspectNum: int(nh.MaxAspectNum),
		MaxAspectDen: int(nh.MaxAspectDen),
	}
}

func (b *X11Backend) WMHints(w xp.Window) (WMHints, bool) {
	h, err := icccm.WmHintsGet(b.xu, w)
	if err != nil {
		return WMHints{}, false
	}
	return WMHints{
		Urgent:   h.Flags&icccm.HintUrgency != 0,
		InputSet: h.Flags&icccm.HintInput != 0,
		Input:    h.Input == 1,
	}, true
}

func (b *X11Backend) TransientFor(w xp.Window) (xp.Window, bool) {
	t, err := icccm.WmTransientForGet(b.xu, w)
	if err != nil || t == 0 {
		return 0, false
	}
	return t, true
}

func (b *X11Backend) NetWMStates(w xp.Window) []string {
	states, _ := ewmh.WmStateGet(b.xu, w)
	return states
}

func (b *X11Backend) NetWMTypes(w xp.Window) []string {
	types, _ := ewmh.WmWindowTypeGet(b.xu, w)
	return types
}

// StatusText reads the root window name, the xsetroot -name channel.
func (b *X11Backend) StatusText() string {
	name, _ := icccm.WmNameGet(b.xu, b.root)
	return name
}

func (b *X11Backend) AtomName(a xp.Atom) string {
	name, _ := xprop.AtomName(b.xu, a)
	return name
}

func (b *X11Backend) Atom(name string) xp.Atom {
	atom, err := xprop.Atm(b.xu, name)
	if err != nil {
		return 0
	}
	return atom
}

func (b *X11Backend) MoveResize(w xp.Window, x, y, width, height, borderWidth int) {
	xp.ConfigureWindow(b.conn, w,
		xp.ConfigWindowX|xp.ConfigWindowY|xp.ConfigWindowWidth|
			xp.ConfigWindowHeight|xp.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(x)), uint32(int32(y)),
			uint32(width), uint32(height), uint32(borderWidth)})
}

func (b *X11Backend) Move(w xp.Window, x, y int) {
	xp.ConfigureWindow(b.conn, w, xp.ConfigWindowX|xp.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))})
}

func (b *X11Backend) Raise(w xp.Window) {
	xp.ConfigureWindow(b.conn, w, xp.ConfigWindowStackMode,
		[]uint32{xp.StackModeAbove})
}

func (b *X11Backend) StackBelow(w, sibling xp.Window) {
	xp.ConfigureWindow(b.conn, w,
		xp.ConfigWindowSibling|xp.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xp.StackModeBelow})
}

func (b *X11Backend) MapWindow(w xp.Window) {
	xp.MapWindow(b.conn, w)
}

func (b *X11Backend) SendConfigureNotify(w xp.Window, g Geom, borderWidth int) {
	ev := xp.ConfigureNotifyEvent{
		Event:       w,
		Window:      w,
		X:           int16(g.X),
		Y:           int16(g.Y),
		Width:       uint16(g.W),
		Height:      uint16(g.H),
		BorderWidth: uint16(borderWidth),
	}
	xp.SendEvent(b.conn, false, w, xp.EventMaskStructureNotify, string(ev.Bytes()))
}

// ConfigureUnmanaged replays a configure request verbatim for a window
// this manager does not own.
func (b *X11Backend) ConfigureUnmanaged(ev xp.ConfigureRequestEvent) {
	var values []uint32
	if ev.ValueMask&xp.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ev.X)))
	}
	if ev.ValueMask&xp.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ev.Y)))
	}
	if ev.ValueMask&xp.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if ev.ValueMask&xp.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if ev.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if ev.ValueMask&xp.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if ev.ValueMask&xp.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	xp.ConfigureWindow(b.conn, ev.Window, ev.ValueMask, values)
}

func (b *X11Backend) SetBorderWidth(w xp.Window, borderWidth int) {
	xp.ConfigureWindow(b.conn, w, xp.ConfigWindowBorderWidth,
		[]uint32{uint32(borderWidth)})
}

func (b *X11Backend) SelectClientEvents(w xp.Window) {
	xp.ChangeWindowAttributes(b.conn, w, xp.CwEventMask,
		[]uint32{clientEventMask})
}

func (b *X11Backend) SetInputFocus(w xp.Window) {
	xp.SetInputFocus(b.conn, xp.InputFocusPointerRoot, w, xp.TimeCurrentTime)
}

func (b *X11Backend) FocusRoot() {
	xp.SetInputFocus(b.conn, xp.InputFocusPointerRoot, b.root, xp.TimeCurrentTime)
}

func (b *X11Backend) SetBorderColor(w xp.Window, pixel uint32) {
	xp.ChangeWindowAttributes(b.conn, w, xp.CwBorderPixel, []uint32{pixel})
}

// modVariants are the lock-modifier combinations every grab is repeated
// under, so bindings work with Caps Lock or Num Lock held.
func (b *X11Backend) modVariants() []uint16 {
	numLock := b.NumLockMask()
	return []uint16{0, xp.ModMaskLock, numLock, numLock | xp.ModMaskLock}
}

func (b *X11Backend) GrabKeys(keys []KeySpec) {
	xp.UngrabKey(b.conn, xp.Keycode(xp.GrabAny), b.root, xp.ModMaskAny)
	variants := b.modVariants()
	for _, k := range keys {
		codes := keybind.StrToKeycodes(b.xu, k.Key)
		if len(codes) == 0 {
			log.WithField("key", k.Key).Warn("unresolvable key binding")
			continue
		}
		for _, code := range codes {
			for _, v := range variants {
				xp.GrabKey(b.conn, true, b.root, k.Mod|v, code,
					xp.GrabModeAsync, xp.GrabModeAsync)
			}
		}
	}
}

func (b *X11Backend) GrabButtons(w xp.Window, focused bool, buttons []ButtonSpec) {
	xp.UngrabButton(b.conn, xp.ButtonIndexAny, w, xp.ModMaskAny)
	if !focused {
		// A single synchronous catch-all grab; the click is replayed to
		// the client after the manager has processed it.
		xp.GrabButton(b.conn, false, w, buttonEventMask,
			xp.GrabModeSync, xp.GrabModeSync, xp.WindowNone, xp.CursorNone,
			xp.ButtonIndexAny, xp.ModMaskAny)
		return
	}
	variants := b.modVariants()
	for _, spec := range buttons {
		for _, v := range variants {
			xp.GrabButton(b.conn, false, w, buttonEventMask,
				xp.GrabModeAsync, xp.GrabModeSync, xp.WindowNone, xp.CursorNone,
				byte(spec.Button), spec.Mod|v)
		}
	}
}

func (b *X11Backend) UngrabButtons(w xp.Window) {
	xp.UngrabButton(b.conn, xp.ButtonIndexAny, w, xp.ModMaskAny)
}

func (b *X11Backend) GrabPointer(cursor xp.Cursor) bool {
	reply, err := xp.GrabPointer(b.conn, false, b.root, pointerEventMask,
		xp.GrabModeAsync, xp.GrabModeAsync, xp.WindowNone, cursor,
		xp.TimeCurrentTime).Reply()
	return err == nil && reply.Status == xp.GrabStatusSuccess
}

func (b *X11Backend) UngrabPointer() {
	xp.UngrabPointer(b.conn, xp.TimeCurrentTime)
}

func (b *X11Backend) WarpPointer(w xp.Window, x, y int) {
	xp.WarpPointer(b.conn, xp.WindowNone, w, 0, 0, 0, 0, int16(x), int16(y))
}

func (b *X11Backend) AllowEvents() {
	xp.AllowEvents(b.conn, xp.AllowReplayPointer, xp.TimeCurrentTime)
}

func (b *X11Backend) KeycodeMatches(code xp.Keycode, key string) bool {
	for _, c := range keybind.StrToKeycodes(b.xu, key) {
		if c == code {
			return true
		}
	}
	return false
}

// NumLockMask finds which modifier slot Num_Lock is mapped into.
func (b *X11Backend) NumLockMask() uint16 {
	reply, err := xp.GetModifierMapping(b.conn).Reply()
	if err != nil {
		return 0
	}
	numLock := keybind.StrToKeycodes(b.xu, "Num_Lock")
	per := int(reply.KeycodesPerModifier)
	for i := 0; i < 8; i++ {
		for j := 0; j < per; j++ {
			code := reply.Keycodes[i*per+j]
			if code == 0 {
				continue
			}
			for _, nl := range numLock {
				if code == nl {
					return 1 << uint(i)
				}
			}
		}
	}
	return 0
}

func (b *X11Backend) RefreshKeyboardMapping(ev xp.MappingNotifyEvent) {
	keybind.Initialize(b.xu)
}

// SendWMProtocol delivers a WM_PROTOCOLS client message if the window
// advertises the protocol.
func (b *X11Backend) SendWMProtocol(w xp.Window, proto string) bool {
	protos, err := icccm.WmProtocolsGet(b.xu, w)
	if err != nil {
		return false
	}
	found := false
	for _, p := range protos {
		if p == proto {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	protocolsAtom, err := xprop.Atm(b.xu, "WM_PROTOCOLS")
	if err != nil {
		return false
	}
	protoAtom, err := xprop.Atm(b.xu, proto)
	if err != nil {
		return false
	}
	ev := xp.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocolsAtom,
		Data: xp.ClientMessageDataUnionData32New([]uint32{
			uint32(protoAtom), uint32(xp.TimeCurrentTime), 0, 0, 0,
		}),
	}
	xp.SendEvent(b.conn, false, w, xp.EventMaskNoEvent, string(ev.Bytes()))
	return true
}

// KillClient severs the client's connection outright.
func (b *X11Backend) KillClient(w xp.Window) {
	xp.GrabServer(b.conn)
	xp.SetCloseDownMode(b.conn, xp.CloseDownDestroyAll)
	xp.KillClient(b.conn, uint32(w))
	b.conn.Sync()
	xp.UngrabServer(b.conn)
}

func (b *X11Backend) SetWMState(w xp.Window, state uint32) {
	icccm.WmStateSet(b.xu, w, &icccm.WmState{State: uint(state)})
}

func (b *X11Backend) SetFullscreenProp(w xp.Window, on bool) {
	if on {
		ewmh.WmStateSet(b.xu, w, []string{netWMStateFullscreen})
	} else {
		ewmh.WmStateSet(b.xu, w, []string{})
	}
}

func (b *X11Backend) SetUrgencyHint(w xp.Window, urgent bool) {
	h, err := icccm.WmHintsGet(b.xu, w)
	if err != nil {
		return
	}
	if urgent {
		h.Flags |= icccm.HintUrgency
	} else {
		h.Flags &^= icccm.HintUrgency
	}
	icccm.WmHintsSet(b.xu, w, h)
}

func (b *X11Backend) SetActiveWindow(w xp.Window) {
	ewmh.ActiveWindowSet(b.xu, w)
}

func (b *X11Backend) ClearActiveWindow() {
	if atom, err := xprop.Atm(b.xu, "_NET_ACTIVE_WINDOW"); err == nil {
		xp.DeleteProperty(b.conn, b.root, atom)
	}
}

func (b *X11Backend) SetClientList(ws []xp.Window) {
	ewmh.ClientListSet(b.xu, ws)
}

// CreateBarWindow makes an override-redirect strip window that receives
// clicks and exposures, raised above everything it manages.
func (b *X11Backend) CreateBarWindow(g Geom, cursor xp.Cursor) (xp.Window, error) {
	win, err := xp.NewWindowId(b.conn)
	if err != nil {
		return 0, err
	}
	err = xp.CreateWindowChecked(b.conn, b.screen.RootDepth, win, b.root,
		int16(g.X), int16(g.Y), uint16(g.W), uint16(g.H), 0,
		xp.WindowClassInputOutput, b.screen.RootVisual,
		xp.CwBackPixmap|xp.CwOverrideRedirect|xp.CwEventMask|xp.CwCursor,
		[]uint32{
			xp.BackPixmapParentRelative,
			1,
			xp.EventMaskButtonPress | xp.EventMaskExposure,
			uint32(cursor),
		}).Check()
	if err != nil {
		return 0, err
	}
	xp.MapWindow(b.conn, win)
	b.Raise(win)
	return win, nil
}

func (b *X11Backend) DestroyBarWindow(w xp.Window) {
	if w != 0 {
		xp.DestroyWindow(b.conn, w)
	}
}

// Close shuts the connection down; the event goroutine ends with it.
func (b *X11Backend) Close() {
	if b.checkWin != 0 {
		xp.DestroyWindow(b.conn, b.checkWin)
	}
	b.conn.Close()
}
