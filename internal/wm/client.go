package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// broken is the display name for clients that never set a usable title.
const broken = "broken"

// Geom is a window geometry in root coordinates, excluding the border.
type Geom struct {
	X, Y, W, H int
}

// Client is one managed top-level window.
type Client struct {
	Win  xp.Window
	Name string

	Geom    Geom
	OldGeom Geom // snapshot before the last geometry mutation

	// Size-hint derived fields, see updateSizeHints.
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64

	BorderWidth    int
	OldBorderWidth int

	Tags uint32

	Fixed      bool
	Floating   bool
	Urgent     bool
	Fullscreen bool
	NeverFocus bool

	// Floating state saved on entering fullscreen, restored on leaving.
	oldFloating bool

	Mon *Monitor
}

// TotalW and TotalH are the on-screen extents including both borders.
func (c *Client) TotalW() int { return c.Geom.W + 2*c.BorderWidth }
func (c *Client) TotalH() int { return c.Geom.H + 2*c.BorderWidth }

// VisibleOnTags reports whether the client shows when the given tag set
// is viewed.
func (c *Client) VisibleOnTags(tags uint32) bool {
	return c.Tags&tags != 0
}

// Visible reports whether the client shows on its monitor's current view.
func (c *Client) Visible() bool {
	return c.VisibleOnTags(c.Mon.ActiveTags())
}

func (wm *WM) updateTitle(c *Client) {
	c.Name = wm.backend.WindowTitle(c.Win)
	if c.Name == "" {
		c.Name = broken
	}
}

func (wm *WM) updateSizeHints(c *Client) {
	h := wm.backend.SizeHints(c.Win)
	if h.Flags&hintBaseSize != 0 {
		c.BaseW, c.BaseH = h.BaseW, h.BaseH
	} else if h.Flags&hintMinSize != 0 {
		c.BaseW, c.BaseH = h.MinW, h.MinH
	} else {
		c.BaseW, c.BaseH = 0, 0
	}
	if h.Flags&hintResizeInc != 0 {
		c.IncW, c.IncH = h.IncW, h.IncH
	} else {
		c.IncW, c.IncH = 0, 0
	}
	if h.Flags&hintMaxSize != 0 {
		c.MaxW, c.MaxH = h.MaxW, h.MaxH
	} else {
		c.MaxW, c.MaxH = 0, 0
	}
	if h.Flags&hintMinSize != 0 {
		c.MinW, c.MinH = h.MinW, h.MinH
	} else if h.Flags&hintBaseSize != 0 {
		c.MinW, c.MinH = h.BaseW, h.BaseH
	} else {
		c.MinW, c.MinH = 0, 0
	}
	if h.Flags&hintAspect != 0 && h.MinAspectDen > 0 && h.MaxAspectDen > 0 {
		c.MinA = float64(h.MinAspectNum) / float64(h.MinAspectDen)
		c.MaxA = float64(h.MaxAspectNum) / float64(h.MaxAspectDen)
	} else {
		c.MinA, c.MaxA = 0, 0
	}
	c.Fixed = c.MaxW != 0 && c.MaxH != 0 && c.MaxW == c.MinW && c.MaxH == c.MinH
}

func (wm *WM) updateWMHints(c *Client) {
	h, ok := wm.backend.WMHints(c.Win)
	if !ok {
		return
	}
	if c == wm.selMon.Sel && h.Urgent {
		// The focused client has no business being urgent.
		wm.backend.SetUrgencyHint(c.Win, false)
	} else {
		c.Urgent = h.Urgent
	}
	if h.InputSet {
		c.NeverFocus = !h.Input
	} else {
		c.NeverFocus = false
	}
}

func (wm *WM) updateWindowType(c *Client) {
	for _, s := range wm.backend.NetWMStates(c.Win) {
		if s == netWMStateFullscreen {
			wm.setFullscreen(c, true)
		}
	}
	for _, t := range wm.backend.NetWMTypes(c.Win) {
		if t == netWMTypeDialog {
			c.Floating = true
		}
	}
}

// setFullscreen drives the normal <-> fullscreen transition, saving and
// restoring the floating flag, border width and geometry.
func (wm *WM) setFullscreen(c *Client, fullscreen bool) {
	if fullscreen && !c.Fullscreen {
		wm.backend.SetFullscreenProp(c.Win, true)
		c.Fullscreen = true
		c.oldFloating = c.Floating
		c.OldBorderWidth = c.BorderWidth
		c.BorderWidth = 0
		c.Floating = true
		wm.resizeClient(c, Geom{c.Mon.MX, c.Mon.MY, c.Mon.MW, c.Mon.MH})
		wm.backend.Raise(c.Win)
	} else if !fullscreen && c.Fullscreen {
		wm.backend.SetFullscreenProp(c.Win, false)
		c.Fullscreen = false
		c.Floating = c.oldFloating
		c.BorderWidth = c.OldBorderWidth
		c.Geom = c.OldGeom
		wm.resizeClient(c, c.Geom)
		wm.arrange(c.Mon)
	}
}

func (wm *WM) setUrgent(c *Client, urgent bool) {
	c.Urgent = urgent
	wm.backend.SetUrgencyHint(c.Win, urgent)
}
