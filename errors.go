package dagascii

import "github.com/teleivo/dagascii/graph"

// Error and Kind are defined in package graph, where graph.Builder already
// needs them to report invalid DAGs. They are aliased here so callers of
// Render never need to import graph just to do an errors.As on the Kind
// this package can also return.
type (
	Error = graph.Error
	Kind  = graph.Kind
)

const (
	InvalidGraph      = graph.InvalidGraph
	PositionerFailure = graph.PositionerFailure
	InternalInvariant = graph.InternalInvariant
)
