package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tatami-wm/tatami/internal/wm"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, err := Resolve(f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	def := wm.DefaultConfig()
	if len(cfg.Tags) != len(def.Tags) || cfg.MFact != def.MFact {
		t.Error("missing file did not resolve to the defaults")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tatami.yaml")
	if err := os.WriteFile(path, []byte("tags: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML did not fail")
	}
}

func TestResolveOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tatami.yaml")
	doc := `
tags: ["www", "dev", "im"]
border_width: 2
mfact: 0.6
show_bar: true
layouts: [monocle, tile]
colors:
  sel_bg: "#112233"
rules:
  - class: "mpv"
    floating: true
    tags: [3]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, err := Resolve(f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(cfg.Tags) != 3 || cfg.Tags[0] != "www" {
		t.Errorf("tags = %v", cfg.Tags)
	}
	if cfg.BorderWidth != 2 || cfg.MFact != 0.6 || !cfg.ShowBar {
		t.Errorf("scalars not applied: bw=%d mfact=%v showbar=%v",
			cfg.BorderWidth, cfg.MFact, cfg.ShowBar)
	}
	if len(cfg.Layouts) != 2 || cfg.Layouts[0] != wm.Layout(wm.Monocle) {
		t.Errorf("layouts = %v", cfg.Layouts)
	}
	if cfg.SelScheme.Bg != 0x112233 {
		t.Errorf("sel_bg = %#x, want 0x112233", cfg.SelScheme.Bg)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Tags != 1<<2 || !cfg.Rules[0].Floating {
		t.Errorf("rules = %+v", cfg.Rules)
	}
	if cfg.Rules[0].Monitor != -1 {
		t.Errorf("rule monitor = %d, want -1 when absent", cfg.Rules[0].Monitor)
	}
}

func TestResolveValidation(t *testing.T) {
	neg := -1
	badMFact := 1.5
	cases := []struct {
		name string
		file File
	}{
		{"too many tags", File{Tags: make([]string, 32)}},
		{"negative border", File{BorderWidth: &neg}},
		{"mfact out of range", File{MFact: &badMFact}},
		{"negative nmaster", File{NMaster: &neg}},
		{"unknown layout", File{Layouts: []string{"spiral"}}},
		{"bad color", File{Colors: &Colors{NormBg: "red"}}},
		{"rule tag out of range", File{Rules: []Rule{{Class: "x", Tags: []int{10}}}}},
	}
	for _, tc := range cases {
		if _, err := Resolve(&tc.file); err == nil {
			t.Errorf("%s: Resolve accepted an invalid file", tc.name)
		}
	}
}
