// Package dagascii renders a directed acyclic graph of pre-formatted
// rectangular text boxes into a single ASCII/Unicode diagram suitable for
// terminal display.
//
// Render partitions the graph into its connected components, lays out and
// routes each independently, rasterizes each onto its own character grid,
// and stacks the results with a blank line between them. Layout and routing
// are pluggable (rasterization is not, beyond the glyph theme): supply a
// [github.com/teleivo/dagascii/layout.Positioner] or
// [github.com/teleivo/dagascii/router.Router] of your own via
// [WithPositioner] and [WithRouter] to replace the reference
// implementations.
package dagascii
