// Package draw renders the status bar with X core fonts and server-side
// drawing primitives, double buffered through a pixmap.
package draw

import (
	"fmt"
	"strconv"

	xp "github.com/BurntSushi/xgb/xproto"
)

// Scheme is a color triple, as raw pixel values. Pixel values assume a
// 24-bit TrueColor visual.
type Scheme struct {
	Fg, Bg, Border uint32
}

// ParseColor converts "#rrggbb" to a pixel value.
func ParseColor(s string) (uint32, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("draw: bad color %q, want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("draw: bad color %q: %v", s, err)
	}
	return uint32(v), nil
}

// Surface is the bar renderer. Coordinates are pixels within the
// bar-height strip; drawing accumulates in a buffer until MapTo copies
// it onto a bar window.
type Surface interface {
	// Resize replaces the buffer, after the screen changes size.
	Resize(w, h int)
	// FontHeight is the bar font's ascent plus descent.
	FontHeight() int
	// TextWidth measures s, including the standard horizontal padding.
	TextWidth(s string) int
	// Pad is the standard horizontal padding around text cells.
	Pad() int
	// SetScheme selects the colors used by subsequent Text and Rect
	// calls.
	SetScheme(s Scheme)
	// Text fills a w-wide cell at x with the background color, draws s
	// with pad leading pixels, truncated to the cell, and returns x+w.
	// invert swaps foreground and background.
	Text(x, w, pad int, s string, invert bool) int
	// Rect draws a rectangle, filled or outlined, in the foreground
	// color, or the background color when inverted.
	Rect(x, y, w, h int, filled, invert bool)
	// MapTo copies the buffer region onto a window.
	MapTo(win xp.Window, x, y, w, h int)
	// Cursor creates a glyph cursor from the standard cursor font.
	Cursor(shape int) (xp.Cursor, error)
	// Close releases server-side resources.
	Close()
}
