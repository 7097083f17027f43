package draw

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// XSurface draws into an off-screen pixmap spanning the screen width at
// bar height. One GC is reused for every primitive; its colors are
// rewritten as the scheme changes.
type XSurface struct {
	conn  *xgb.Conn
	root  xp.Window
	depth byte

	pixmap xp.Pixmap
	gc     xp.Gcontext
	w, h   int

	font      xp.Font
	ascent    int
	descent   int
	charWidth int

	cursorFont xp.Font
	scheme     Scheme
}

// NewXSurface opens the first available font from fontNames, falling
// back to "fixed", and allocates the buffer pixmap and GC.
func NewXSurface(conn *xgb.Conn, fontNames []string) (*XSurface, error) {
	screen := xp.Setup(conn).DefaultScreen(conn)
	s := &XSurface{
		conn:  conn,
		root:  screen.Root,
		depth: screen.RootDepth,
	}
	if err := s.openFont(append(fontNames, "fixed")); err != nil {
		return nil, err
	}

	gc, err := xp.NewGcontextId(conn)
	if err != nil {
		return nil, err
	}
	s.gc = gc
	if err := xp.CreateGCChecked(conn, s.gc, xp.Drawable(s.root),
		xp.GcFont|xp.GcGraphicsExposures,
		[]uint32{uint32(s.font), 0}).Check(); err != nil {
		return nil, err
	}

	s.w = int(screen.WidthInPixels)
	s.h = s.FontHeight() + 2
	pixmap, err := xp.NewPixmapId(conn)
	if err != nil {
		return nil, err
	}
	s.pixmap = pixmap
	if err := xp.CreatePixmapChecked(conn, s.depth, s.pixmap,
		xp.Drawable(s.root), uint16(s.w), uint16(s.h)).Check(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *XSurface) openFont(names []string) error {
	for _, name := range names {
		font, err := xp.NewFontId(s.conn)
		if err != nil {
			return err
		}
		if err := xp.OpenFontChecked(s.conn, font, uint16(len(name)), name).Check(); err != nil {
			log.WithField("font", name).Debug("font unavailable")
			continue
		}
		reply, err := xp.QueryFont(s.conn, xp.Fontable(font)).Reply()
		if err != nil {
			xp.CloseFont(s.conn, font)
			continue
		}
		s.font = font
		s.ascent = int(reply.FontAscent)
		s.descent = int(reply.FontDescent)
		s.charWidth = int(reply.MaxBounds.CharacterWidth)
		if s.charWidth <= 0 {
			s.charWidth = 1
		}
		return nil
	}
	return fmt.Errorf("draw: no usable font among %q", names)
}

func (s *XSurface) FontHeight() int {
	return s.ascent + s.descent
}

// Pad is one font height, split between the two sides of a text cell.
func (s *XSurface) Pad() int {
	return s.FontHeight()
}

func (s *XSurface) TextWidth(text string) int {
	return len(text)*s.charWidth + s.Pad()
}

func (s *XSurface) SetScheme(sc Scheme) {
	s.scheme = sc
}

func (s *XSurface) setColors(fg, bg uint32) {
	xp.ChangeGC(s.conn, s.gc, xp.GcForeground|xp.GcBackground, []uint32{fg, bg})
}

func (s *XSurface) Text(x, w, pad int, text string, invert bool) int {
	fg, bg := s.scheme.Fg, s.scheme.Bg
	if invert {
		fg, bg = bg, fg
	}
	s.setColors(bg, bg)
	xp.PolyFillRectangle(s.conn, xp.Drawable(s.pixmap), s.gc, []xp.Rectangle{
		{X: int16(x), Y: 0, Width: uint16(w), Height: uint16(s.h)},
	})
	if text == "" {
		return x + w
	}
	if maxChars := (w - pad) / s.charWidth; len(text) > maxChars {
		if maxChars <= 0 {
			return x + w
		}
		text = text[:maxChars]
	}
	if len(text) > 255 {
		text = text[:255]
	}
	s.setColors(fg, bg)
	ty := (s.h-s.FontHeight())/2 + s.ascent
	xp.ImageText8(s.conn, byte(len(text)), xp.Drawable(s.pixmap), s.gc,
		int16(x+pad), int16(ty), text)
	return x + w
}

func (s *XSurface) Rect(x, y, w, h int, filled, invert bool) {
	color := s.scheme.Fg
	if invert {
		color = s.scheme.Bg
	}
	s.setColors(color, color)
	rect := []xp.Rectangle{
		{X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h)},
	}
	if filled {
		xp.PolyFillRectangle(s.conn, xp.Drawable(s.pixmap), s.gc, rect)
	} else {
		// Outline rectangles are drawn inside the given extent.
		rect[0].Width--
		rect[0].Height--
		xp.PolyRectangle(s.conn, xp.Drawable(s.pixmap), s.gc, rect)
	}
}

func (s *XSurface) MapTo(win xp.Window, x, y, w, h int) {
	xp.CopyArea(s.conn, xp.Drawable(s.pixmap), xp.Drawable(win), s.gc,
		int16(x), int16(y), int16(x), int16(y), uint16(w), uint16(h))
}

// Cursor builds a glyph cursor from the standard X cursor font. The
// font is opened on first use and kept for the surface's lifetime.
func (s *XSurface) Cursor(shape int) (xp.Cursor, error) {
	if s.cursorFont == 0 {
		font, err := xp.NewFontId(s.conn)
		if err != nil {
			return 0, err
		}
		if err := xp.OpenFontChecked(s.conn, font, uint16(len("cursor")), "cursor").Check(); err != nil {
			return 0, err
		}
		s.cursorFont = font
	}
	cursor, err := xp.NewCursorId(s.conn)
	if err != nil {
		return 0, err
	}
	if err := xp.CreateGlyphCursorChecked(s.conn, cursor, s.cursorFont, s.cursorFont,
		uint16(shape), uint16(shape)+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check(); err != nil {
		return 0, err
	}
	return cursor, nil
}

// Resize replaces the pixmap after a root geometry change. The height
// never changes, only the width tracks the screen.
func (s *XSurface) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	xp.FreePixmap(s.conn, s.pixmap)
	s.w, s.h = w, h
	pixmap, err := xp.NewPixmapId(s.conn)
	if err != nil {
		log.WithError(err).Error("pixmap reallocation failed")
		return
	}
	s.pixmap = pixmap
	xp.CreatePixmap(s.conn, s.depth, s.pixmap, xp.Drawable(s.root),
		uint16(s.w), uint16(s.h))
}

func (s *XSurface) Close() {
	xp.FreePixmap(s.conn, s.pixmap)
	xp.FreeGC(s.conn, s.gc)
	xp.CloseFont(s.conn, s.font)
	if s.cursorFont != 0 {
		xp.CloseFont(s.conn, s.cursorFont)
	}
}
