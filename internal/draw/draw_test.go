package draw

import "testing"

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#000000", 0x000000, true},
		{"#0025ff", 0x0025ff, true},
		{"#FFFFFF", 0xffffff, true},
		{"0025ff", 0, false},
		{"#0025f", 0, false},
		{"#0025fg", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseColor(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}
