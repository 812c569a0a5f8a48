package theme

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		name string
		want GlyphTheme
	}{
		"default":       {"default", Default},
		"light":         {"light", Light},
		"rounded":       {"rounded", Rounded},
		"heavy":         {"heavy", Heavy},
		"empty":         {"", Default},
		"unknown falls back to default": {"nonexistent", Default},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualValuesf(t, Parse(tt.name), tt.want, "Parse(%q)", tt.name)
		})
	}
}

func TestIsJunction(t *testing.T) {
	tests := map[string]struct {
		glyph string
		want  bool
	}{
		"cross":      {Default.Cross, true},
		"corner":     {Default.CornerTopLeft, true},
		"tee":        {Default.TeeDown, true},
		"vertical":   {Default.Vertical, false},
		"horizontal": {Default.Horizontal, false},
		"space":      {" ", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualValuesf(t, Default.IsJunction(tt.glyph), tt.want, "IsJunction(%q)", tt.glyph)
		})
	}
}
