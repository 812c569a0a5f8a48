// Package theme defines the glyph sets dagascii uses to draw box connectors
// and edges. A [GlyphTheme] is a plain value: it carries no behavior beyond
// grouping its own characters for membership tests, so it can be constructed
// once and shared freely across concurrent [github.com/teleivo/dagascii.Render]
// calls.
package theme

// GlyphTheme names every non-space, non-content character dagascii's
// rasterizer introduces. Any field may hold any single-display-column
// character; assigning a double-width glyph to a theme field is undefined
// behavior.
type GlyphTheme struct {
	Vertical   string
	Horizontal string

	CornerTopLeft     string
	CornerTopRight    string
	CornerBottomLeft  string
	CornerBottomRight string

	TeeDown  string
	TeeUp    string
	TeeRight string
	TeeLeft  string

	Cross     string
	ArrowDown string
}

// Corners returns the four corner glyphs.
func (t GlyphTheme) Corners() [4]string {
	return [4]string{t.CornerTopLeft, t.CornerTopRight, t.CornerBottomLeft, t.CornerBottomRight}
}

// Tees returns the four T-junction glyphs.
func (t GlyphTheme) Tees() [4]string {
	return [4]string{t.TeeDown, t.TeeUp, t.TeeRight, t.TeeLeft}
}

// IsCorner reports whether s is one of t's corner glyphs.
func (t GlyphTheme) IsCorner(s string) bool {
	for _, c := range t.Corners() {
		if s == c {
			return true
		}
	}
	return false
}

// IsJunction reports whether s is a corner, a T-junction, or the cross
// glyph.
func (t GlyphTheme) IsJunction(s string) bool {
	if s == t.Cross || t.IsCorner(s) {
		return true
	}
	for _, tee := range t.Tees() {
		if s == tee {
			return true
		}
	}
	return false
}

// IsBasicLine reports whether s is a plain vertical or horizontal line
// glyph, as opposed to a corner, junction, or arrow.
func (t GlyphTheme) IsBasicLine(s string) bool {
	return s == t.Vertical || s == t.Horizontal
}

// Default is the ASCII-safe fallback theme: '|' and '-' lines with Unicode
// corners and junctions, 'v' in place of an arrow glyph.
var Default = GlyphTheme{
	Vertical:   "|",
	Horizontal: "-",

	CornerTopLeft:     "┌",
	CornerTopRight:    "┐",
	CornerBottomLeft:  "└",
	CornerBottomRight: "┘",

	TeeDown:  "┬",
	TeeUp:    "┴",
	TeeRight: "├",
	TeeLeft:  "┤",

	Cross:     "┼",
	ArrowDown: "v",
}

// Light uses plain Unicode box-drawing lines throughout.
var Light = GlyphTheme{
	Vertical:   "│",
	Horizontal: "─",

	CornerTopLeft:     "┌",
	CornerTopRight:    "┐",
	CornerBottomLeft:  "└",
	CornerBottomRight: "┘",

	TeeDown:  "┬",
	TeeUp:    "┴",
	TeeRight: "├",
	TeeLeft:  "┤",

	Cross:     "┼",
	ArrowDown: "▼",
}

// Rounded is Light with rounded corner glyphs.
var Rounded = GlyphTheme{
	Vertical:   "│",
	Horizontal: "─",

	CornerTopLeft:     "╭",
	CornerTopRight:    "╮",
	CornerBottomLeft:  "╰",
	CornerBottomRight: "╯",

	TeeDown:  "┬",
	TeeUp:    "┴",
	TeeRight: "├",
	TeeLeft:  "┤",

	Cross:     "┼",
	ArrowDown: "▼",
}

// Heavy uses heavyweight Unicode box-drawing glyphs throughout.
var Heavy = GlyphTheme{
	Vertical:   "┃",
	Horizontal: "━",

	CornerTopLeft:     "┏",
	CornerTopRight:    "┓",
	CornerBottomLeft:  "┗",
	CornerBottomRight: "┛",

	TeeDown:  "┳",
	TeeUp:    "┻",
	TeeRight: "┣",
	TeeLeft:  "┫",

	Cross:     "╋",
	ArrowDown: "▼",
}

// byName maps VISUALFLOW_THEME's accepted values to their themes.
var byName = map[string]GlyphTheme{
	"default": Default,
	"light":   Light,
	"rounded": Rounded,
	"heavy":   Heavy,
}

// Parse resolves a theme name (as read from VISUALFLOW_THEME) to a
// GlyphTheme. An unknown or empty name resolves to Default, never an error.
func Parse(name string) GlyphTheme {
	t, ok := byName[name]
	if !ok {
		return Default
	}
	return t
}
