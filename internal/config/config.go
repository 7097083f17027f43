// Package config loads the optional YAML configuration file and
// resolves it against the built-in defaults. Key and button bindings
// are code only; the file covers appearance, tags, rules and layout
// parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tatami-wm/tatami/internal/draw"
	"github.com/tatami-wm/tatami/internal/wm"
)

// Rule is one window rule in file form. Tags are 1-based tag numbers.
type Rule struct {
	Class    string `yaml:"class"`
	Instance string `yaml:"instance"`
	Title    string `yaml:"title"`
	Tags     []int  `yaml:"tags"`
	Floating bool   `yaml:"floating"`
	Monitor  *int   `yaml:"monitor"`
}

// Colors are "#rrggbb" strings for the two schemes.
type Colors struct {
	NormFg     string `yaml:"norm_fg"`
	NormBg     string `yaml:"norm_bg"`
	NormBorder string `yaml:"norm_border"`
	SelFg      string `yaml:"sel_fg"`
	SelBg      string `yaml:"sel_bg"`
	SelBorder  string `yaml:"sel_border"`
}

// File is the raw YAML document. Pointer fields distinguish "absent"
// from zero values.
type File struct {
	Tags  []string `yaml:"tags"`
	Fonts []string `yaml:"fonts"`
	Rules []Rule   `yaml:"rules"`

	BorderWidth *int  `yaml:"border_width"`
	Snap        *int  `yaml:"snap"`
	ShowBar     *bool `yaml:"show_bar"`
	TopBar      *bool `yaml:"top_bar"`

	MFact   *float64 `yaml:"mfact"`
	NMaster *int     `yaml:"nmaster"`

	ResizeHints    *bool `yaml:"resize_hints"`
	LockFullscreen *bool `yaml:"lock_fullscreen"`

	// Layout slot order by name: dwindle, tile, float, monocle. The
	// first entry is the startup layout.
	Layouts []string `yaml:"layouts"`

	Colors *Colors `yaml:"colors"`
}

// DefaultPath is ~/.config/tatami/tatami.yaml, or the XDG equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tatami", "tatami.yaml")
}

// Load parses the file at path. A missing file is not an error; the
// defaults stand.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.WithField("path", path).Debug("no config file, using defaults")
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Fonts returns the configured bar fonts, if any.
func (f *File) BarFonts() []string {
	return f.Fonts
}

// Resolve folds the file into the built-in defaults and validates the
// result.
func Resolve(f *File) (wm.Config, error) {
	cfg := wm.DefaultConfig()

	if len(f.Tags) > 0 {
		cfg.Tags = f.Tags
	}
	if len(cfg.Tags) == 0 || len(cfg.Tags) > 31 {
		return cfg, fmt.Errorf("config: tag count %d outside 1..31", len(cfg.Tags))
	}
	if f.BorderWidth != nil {
		if *f.BorderWidth < 0 {
			return cfg, fmt.Errorf("config: negative border_width")
		}
		cfg.BorderWidth = *f.BorderWidth
	}
	if f.Snap != nil {
		cfg.Snap = *f.Snap
	}
	if f.ShowBar != nil {
		cfg.ShowBar = *f.ShowBar
	}
	if f.TopBar != nil {
		cfg.TopBar = *f.TopBar
	}
	if f.MFact != nil {
		if *f.MFact < 0.05 || *f.MFact > 0.95 {
			return cfg, fmt.Errorf("config: mfact %v outside [0.05, 0.95]", *f.MFact)
		}
		cfg.MFact = *f.MFact
	}
	if f.NMaster != nil {
		if *f.NMaster < 0 {
			return cfg, fmt.Errorf("config: negative nmaster")
		}
		cfg.NMaster = *f.NMaster
	}
	if f.ResizeHints != nil {
		cfg.ResizeHints = *f.ResizeHints
	}
	if f.LockFullscreen != nil {
		cfg.LockFullscreen = *f.LockFullscreen
	}
	if len(f.Layouts) > 0 {
		layouts, err := resolveLayouts(f.Layouts)
		if err != nil {
			return cfg, err
		}
		cfg.Layouts = layouts
	}
	if f.Colors != nil {
		if err := applyColors(f.Colors, &cfg); err != nil {
			return cfg, err
		}
	}
	if len(f.Rules) > 0 {
		rules, err := resolveRules(f.Rules, len(cfg.Tags))
		if err != nil {
			return cfg, err
		}
		cfg.Rules = rules
	}
	return cfg, nil
}

func resolveLayouts(names []string) ([]wm.Layout, error) {
	var layouts []wm.Layout
	for _, name := range names {
		switch name {
		case "dwindle":
			layouts = append(layouts, wm.Dwindle)
		case "tile":
			layouts = append(layouts, wm.Tile)
		case "float":
			layouts = append(layouts, wm.Float)
		case "monocle":
			layouts = append(layouts, wm.Monocle)
		default:
			return nil, fmt.Errorf("config: unknown layout %q", name)
		}
	}
	return layouts, nil
}

func applyColors(c *Colors, cfg *wm.Config) error {
	set := func(s string, dst *uint32) error {
		if s == "" {
			return nil
		}
		pixel, err := draw.ParseColor(s)
		if err != nil {
			return err
		}
		*dst = pixel
		return nil
	}
	for _, pair := range []struct {
		s   string
		dst *uint32
	}{
		{c.NormFg, &cfg.NormScheme.Fg},
		{c.NormBg, &cfg.NormScheme.Bg},
		{c.NormBorder, &cfg.NormScheme.Border},
		{c.SelFg, &cfg.SelScheme.Fg},
		{c.SelBg, &cfg.SelScheme.Bg},
		{c.SelBorder, &cfg.SelScheme.Border},
	} {
		if err := set(pair.s, pair.dst); err != nil {
			return err
		}
	}
	return nil
}

func resolveRules(rules []Rule, tagCount int) ([]wm.Rule, error) {
	var out []wm.Rule
	for _, r := range rules {
		var mask uint32
		for _, t := range r.Tags {
			if t < 1 || t > tagCount {
				return nil, fmt.Errorf("config: rule tag %d outside 1..%d", t, tagCount)
			}
			mask |= 1 << uint(t-1)
		}
		monitor := -1
		if r.Monitor != nil {
			monitor = *r.Monitor
		}
		out = append(out, wm.Rule{
			Class:    r.Class,
			Instance: r.Instance,
			Title:    r.Title,
			Tags:     mask,
			Floating: r.Floating,
			Monitor:  monitor,
		})
	}
	return out, nil
}
