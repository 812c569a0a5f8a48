// Package layout declares the contract a position-computing collaborator
// must satisfy. dagascii's core ships one implementation,
// internal/layout.Layered, but any positioner may be substituted — including
// one delegating to an external Sugiyama layout tool — as long as it upholds
// the same guarantees.
package layout

import "github.com/teleivo/dagascii/graph"

// Positioner computes node positions for a DAG. Implementations must
// guarantee, for the returned LayoutResult:
//
//   - for every edge (u, v): y(u) + height(u) <= y(v) — parents sit strictly
//     above children, with no vertical overlap;
//   - no two boxes overlap in their bounding rectangles;
//   - every coordinate is a non-negative integer;
//   - Width and Height are large enough that every box fits inside
//     [0, Width) x [0, Height) with at least one unit of top/left padding
//     and the configured spacing on the right/bottom.
type Positioner interface {
	Compute(dag graph.DAG) (graph.LayoutResult, error)
}

// Spacing configures the whitespace a Positioner leaves between boxes.
type Spacing struct {
	// Horizontal is the minimum number of columns between sibling boxes in
	// the same layer.
	Horizontal int
	// Vertical is the minimum number of rows between a layer's tallest box
	// and the next layer.
	Vertical int
	// ComponentGutterMultiple scales Horizontal to produce the wider gutter
	// placed between independently laid out connected components.
	ComponentGutterMultiple int
}

// DefaultSpacing matches the reference positioner's defaults.
var DefaultSpacing = Spacing{
	Horizontal:              4,
	Vertical:                6,
	ComponentGutterMultiple: 4,
}
