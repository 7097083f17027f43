package wm

import (
	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// Core request opcodes that show up in tolerated errors.
const (
	opConfigureWindow   = 12
	opGrabButton        = 28
	opGrabKey           = 33
	opSetInputFocus     = 42
	opCopyArea          = 62
	opPolySegment       = 66
	opPolyFillRectangle = 70
	opPolyText8         = 74
	opImageText8        = 76
)

// xError filters the asynchronous X error stream. Races against
// clients destroying their own windows are routine, so a BadWindow for
// any request, and BadMatch, BadDrawable or BadAccess for the requests
// below, are logged and dropped. Anything else is fatal.
func (wm *WM) xError(err xgb.Error) {
	benign := false
	switch e := err.(type) {
	case xp.WindowError:
		benign = true
	case xp.MatchError:
		benign = e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xp.DrawableError:
		switch e.MajorOpcode {
		case opCopyArea, opPolySegment, opPolyFillRectangle, opPolyText8, opImageText8:
			benign = true
		}
	case xp.AccessError:
		benign = e.MajorOpcode == opGrabButton || e.MajorOpcode == opGrabKey
	}
	if benign {
		log.WithField("error", err.Error()).Debug("ignoring X error")
		return
	}
	log.WithField("error", err.Error()).Fatal("fatal X request error")
}
