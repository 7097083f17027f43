package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/tatami-wm/tatami/internal/draw"
)

// Mod is the global modifier for default bindings.
const Mod = xp.ModMask4

// Default layout instances, shared by layouts, keys and buttons.
var (
	Dwindle = DwindleLayout{Sym: "D"}
	Tile    = TileLayout{Sym: "T"}
	Float   = FloatLayout{Sym: "F"}
	Monocle = MonocleLayout{Sym: "M"}
)

// DefaultConfig is the stock configuration. The YAML file overrides
// individual fields; key and button tables are code only.
func DefaultConfig() Config {
	cfg := Config{
		Tags: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Rules: []Rule{
			{Class: "Gimp", Floating: true, Monitor: -1},
			{Class: "Firefox", Tags: 1 << 8, Monitor: -1},
		},
		NormScheme: draw.Scheme{Fg: 0x585858, Bg: 0x000000, Border: 0x585858},
		SelScheme:  draw.Scheme{Fg: 0xffffff, Bg: 0x0025ff, Border: 0x0025ff},

		BorderWidth: 1,
		Snap:        32,
		ShowBar:     false,
		TopBar:      false,

		MFact:   0.5,
		NMaster: 1,

		ResizeHints:    true,
		LockFullscreen: true,

		Layouts: []Layout{Dwindle, Tile, Float, Monocle},
	}
	cfg.Keys = defaultKeys()
	cfg.Buttons = defaultButtons()
	return cfg
}

var (
	termCmd  = []string{"st"}
	dmenuCmd = []string{"dmenu_run"}
)

func defaultKeys() []Key {
	keys := []Key{
		{Mod, "p", (*WM).spawn, Arg{V: dmenuCmd}},
		{Mod | xp.ModMaskShift, "Return", (*WM).spawn, Arg{V: termCmd}},
		{Mod, "b", (*WM).toggleBar, Arg{}},
		{Mod, "j", (*WM).focusStack, Arg{I: +1}},
		{Mod, "k", (*WM).focusStack, Arg{I: -1}},
		{Mod, "Left", (*WM).incNMaster, Arg{I: +1}},
		{Mod, "Right", (*WM).incNMaster, Arg{I: -1}},
		{Mod, "h", (*WM).setMFact, Arg{F: -0.05}},
		{Mod, "l", (*WM).setMFact, Arg{F: +0.05}},
		{Mod, "Return", (*WM).zoom, Arg{}},
		{Mod, "Tab", (*WM).view, Arg{}},
		{Mod | xp.ModMaskShift, "c", (*WM).killClient, Arg{}},
		{Mod, "d", (*WM).setLayout, Arg{V: Layout(Dwindle)}},
		{Mod, "t", (*WM).setLayout, Arg{V: Layout(Tile)}},
		{Mod, "f", (*WM).setLayout, Arg{V: Layout(Float)}},
		{Mod, "m", (*WM).setLayout, Arg{V: Layout(Monocle)}},
		{Mod, "space", (*WM).setLayout, Arg{}},
		{Mod | xp.ModMaskShift, "space", (*WM).toggleFloating, Arg{}},
		{Mod, "0", (*WM).view, Arg{UI: ^uint32(0)}},
		{Mod | xp.ModMaskShift, "0", (*WM).tag, Arg{UI: ^uint32(0)}},
		{Mod, "comma", (*WM).focusMon, Arg{I: -1}},
		{Mod, "period", (*WM).focusMon, Arg{I: +1}},
		{Mod | xp.ModMaskShift, "comma", (*WM).tagMon, Arg{I: -1}},
		{Mod | xp.ModMaskShift, "period", (*WM).tagMon, Arg{I: +1}},
		{Mod | xp.ModMaskShift, "q", (*WM).quit, Arg{}},
	}
	digits := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for i, d := range digits {
		bit := uint32(1) << uint(i)
		keys = append(keys,
			Key{Mod, d, (*WM).view, Arg{UI: bit}},
			Key{Mod | xp.ModMaskControl, d, (*WM).toggleView, Arg{UI: bit}},
			Key{Mod | xp.ModMaskShift, d, (*WM).tag, Arg{UI: bit}},
			Key{Mod | xp.ModMaskControl | xp.ModMaskShift, d, (*WM).toggleTag, Arg{UI: bit}},
		)
	}
	return keys
}

func defaultButtons() []Button {
	return []Button{
		{ClickLayoutSymbol, 0, xp.ButtonIndex1, (*WM).setLayout, Arg{}},
		{ClickLayoutSymbol, 0, xp.ButtonIndex3, (*WM).setLayout, Arg{V: Layout(Float)}},
		{ClickWinTitle, 0, xp.ButtonIndex2, (*WM).zoom, Arg{}},
		{ClickStatusText, 0, xp.ButtonIndex2, (*WM).spawn, Arg{V: termCmd}},
		{ClickClientWin, Mod, xp.ButtonIndex1, (*WM).moveMouse, Arg{}},
		{ClickClientWin, Mod, xp.ButtonIndex2, (*WM).toggleFloating, Arg{}},
		{ClickClientWin, Mod, xp.ButtonIndex3, (*WM).resizeMouse, Arg{}},
		{ClickTagBar, 0, xp.ButtonIndex1, (*WM).view, Arg{}},
		{ClickTagBar, 0, xp.ButtonIndex3, (*WM).toggleView, Arg{}},
		{ClickTagBar, Mod, xp.ButtonIndex1, (*WM).tag, Arg{}},
		{ClickTagBar, Mod, xp.ButtonIndex3, (*WM).toggleTag, Arg{}},
	}
}
