package wm

import "strings"

// Rule matches newly managed clients by class/instance/title substring
// and applies tags, floating state and a target monitor. Empty match
// fields match everything; every matching rule contributes.
type Rule struct {
	Class    string
	Instance string
	Title    string
	Tags     uint32
	Floating bool
	Monitor  int // monitor index, or -1 for unchanged
}

// applyRules runs the rules table against a freshly managed client.
// Tag effects accumulate across matching rules; the last matching
// monitor target wins. A client left without valid tags falls back to
// its monitor's current view.
func (wm *WM) applyRules(c *Client) {
	c.Floating = false
	c.Tags = 0
	instance, class := wm.backend.WindowClass(c.Win)
	if class == "" {
		class = broken
	}
	if instance == "" {
		instance = broken
	}
	for _, r := range wm.cfg.Rules {
		if r.Title != "" && !strings.Contains(c.Name, r.Title) {
			continue
		}
		if r.Class != "" && !strings.Contains(class, r.Class) {
			continue
		}
		if r.Instance != "" && !strings.Contains(instance, r.Instance) {
			continue
		}
		c.Floating = r.Floating
		c.Tags |= r.Tags
		if r.Monitor >= 0 && r.Monitor < len(wm.monitors) {
			c.Mon = wm.monitors[r.Monitor]
		}
	}
	if masked := c.Tags & wm.tagMask(); masked != 0 {
		c.Tags = masked
	} else {
		c.Tags = c.Mon.ActiveTags()
	}
}

// tagMask is the bitmask covering every configured tag.
func (wm *WM) tagMask() uint32 {
	return 1<<uint(len(wm.cfg.Tags)) - 1
}
