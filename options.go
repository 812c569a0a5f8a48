package dagascii

import (
	"github.com/teleivo/dagascii/layout"
	"github.com/teleivo/dagascii/router"
	"github.com/teleivo/dagascii/theme"
)

// Options collects a Render call's collaborators. Use the With* functions
// rather than constructing one directly; the zero value is not meant to be
// usable on its own.
type Options struct {
	positioner layout.Positioner
	router     router.Router
	theme      theme.GlyphTheme
	spacing    layout.Spacing
}

// Option configures a Render call.
type Option func(*Options)

// WithPositioner overrides the reference layered positioner.
func WithPositioner(p layout.Positioner) Option {
	return func(o *Options) { o.positioner = p }
}

// WithRouter overrides the reference orthogonal router.
func WithRouter(r router.Router) Option {
	return func(o *Options) { o.router = r }
}

// WithTheme overrides the glyph theme that would otherwise come from
// [github.com/teleivo/dagascii/config.Theme].
func WithTheme(t theme.GlyphTheme) Option {
	return func(o *Options) { o.theme = t }
}

// WithSpacing overrides the reference positioner's default spacing. It has
// no effect if combined with WithPositioner.
func WithSpacing(s layout.Spacing) Option {
	return func(o *Options) { o.spacing = s }
}
