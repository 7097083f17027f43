// Package wm implements the window management state machine: tag-based
// views, master-stack tiling, focus and stacking policy, and the event
// handlers that keep the X server in step with the model. All X traffic
// goes through the Backend interface.
package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/tatami-wm/tatami/internal/draw"
)

// Version is reported by the binary and used as the status fallback.
const Version = "0.1.0"

// Config is the fully resolved runtime configuration.
type Config struct {
	Tags  []string
	Rules []Rule

	NormScheme draw.Scheme
	SelScheme  draw.Scheme

	BorderWidth int
	Snap        int
	ShowBar     bool
	TopBar      bool

	MFact   float64
	NMaster int

	ResizeHints    bool
	LockFullscreen bool

	Layouts []Layout
	Keys    []Key
	Buttons []Button
}

// WM holds all window manager state. There is exactly one per X
// connection, and it is only ever touched from the event loop
// goroutine.
type WM struct {
	backend Backend
	surface draw.Surface
	cfg     Config

	monitors  []*Monitor
	selMon    *Monitor
	motionMon *Monitor

	screenW, screenH int
	barHeight        int

	statusText     string
	barLayoutWidth int

	keys    []Key
	buttons []Button

	cursors     map[int]xp.Cursor
	numLockMask uint16

	monDefaults monitorDefaults

	events  <-chan EventOrError
	pending []EventOrError

	running bool
}

// New wires a WM to its backend and drawing surface. Call Setup before
// Run.
func New(b Backend, s draw.Surface, cfg Config) *WM {
	return &WM{
		backend: b,
		surface: s,
		cfg:     cfg,
		keys:    cfg.Keys,
		buttons: cfg.Buttons,
		cursors: make(map[int]xp.Cursor),
		events:  b.Events(),
		monDefaults: monitorDefaults{
			MFact:   cfg.MFact,
			NMaster: cfg.NMaster,
			ShowBar: cfg.ShowBar,
			TopBar:  cfg.TopBar,
			Layouts: cfg.Layouts,
		},
		running: true,
	}
}

// Setup builds the initial monitor list, bars, cursors and key grabs,
// and publishes the supported EWMH hints.
func (wm *WM) Setup() error {
	wm.screenW, wm.screenH = wm.backend.ScreenSize()
	wm.barHeight = wm.surface.FontHeight() + 2
	for _, shape := range []int{CursorNormal, CursorResize, CursorMove} {
		cur, err := wm.surface.Cursor(shape)
		if err != nil {
			return err
		}
		wm.cursors[shape] = cur
	}
	wm.updateGeometry()
	wm.updateBars()
	wm.updateStatus()
	if err := wm.backend.Announce(wm.cursors[CursorNormal]); err != nil {
		return err
	}
	wm.numLockMask = wm.backend.NumLockMask()
	wm.backend.GrabKeys(wm.keySpecs())
	wm.focus(nil)
	log.WithFields(log.Fields{
		"monitors": len(wm.monitors),
		"screen":   [2]int{wm.screenW, wm.screenH},
	}).Info("setup complete")
	return nil
}

// Scan adopts windows that already exist, the way a restarted manager
// inherits a running session. Transients are managed after their
// leaders so they can inherit monitor and tags.
func (wm *WM) Scan() {
	ws, err := wm.backend.TopLevelWindows()
	if err != nil {
		log.WithError(err).Error("window scan failed")
		return
	}
	for _, w := range ws {
		attrs, ok := wm.backend.WindowAttributes(w)
		if !ok || attrs.OverrideRedirect {
			continue
		}
		if _, transient := wm.backend.TransientFor(w); transient {
			continue
		}
		if attrs.Mapped || attrs.Iconic {
			wm.manage(w, attrs)
		}
	}
	for _, w := range ws {
		if wm.windowToClient(w) != nil {
			continue
		}
		attrs, ok := wm.backend.WindowAttributes(w)
		if !ok {
			continue
		}
		if _, transient := wm.backend.TransientFor(w); transient &&
			(attrs.Mapped || attrs.Iconic) {
			wm.manage(w, attrs)
		}
	}
}

// Run is the event loop. It returns when quit is invoked or the X
// connection dies.
func (wm *WM) Run() {
	wm.backend.Flush()
	for wm.running {
		ee := wm.nextEvent()
		if ee.Error != nil {
			wm.xError(ee.Error)
			continue
		}
		if ee.Event == nil {
			log.Info("X connection closed")
			return
		}
		wm.handleEvent(ee.Event)
	}
}

// Cleanup releases every client back to the session: all tags become
// visible, layouts stop arranging, and clients are unmanaged with
// their borders restored.
func (wm *WM) Cleanup() {
	wm.view(&Arg{UI: ^uint32(0)})
	for _, m := range wm.monitors {
		m.layouts[m.selLayout] = FloatLayout{Sym: "F"}
		for len(m.stack) > 0 {
			wm.unmanage(m.stack[0], false)
		}
	}
	wm.backend.FocusRoot()
	wm.backend.ClearActiveWindow()
	for _, m := range wm.monitors {
		wm.backend.DestroyBarWindow(m.BarWin)
	}
	wm.surface.Close()
	wm.backend.Flush()
}

func (wm *WM) keySpecs() []KeySpec {
	specs := make([]KeySpec, 0, len(wm.keys))
	for _, k := range wm.keys {
		specs = append(specs, KeySpec{Mod: k.Mod, Key: k.Key})
	}
	return specs
}
