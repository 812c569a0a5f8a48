// Package router declares the contract an edge-routing collaborator must
// satisfy. dagascii's core ships one implementation, internal/router.Simple,
// but any router may be substituted as long as it upholds the same
// guarantees.
package router

import "github.com/teleivo/dagascii/graph"

// Router derives orthogonal paths connecting already-positioned nodes.
// Implementations must guarantee, for each returned [graph.EdgePath]:
//
//   - every segment is either purely horizontal or purely vertical;
//   - the path starts in the row directly below the source box and ends in
//     the row directly above the target box;
//   - edges sharing a source in the same layer may share a leading vertical
//     trunk before splitting;
//   - edges converging on the same target may share a trailing trunk before
//     merging.
type Router interface {
	Route(positions map[string]graph.NodePosition, edges []graph.Edge) ([]graph.EdgePath, error)
}

// Options configures a Router's classification thresholds.
type Options struct {
	// RankTolerance is the maximum vertical-coordinate difference at which
	// two nodes are still considered to occupy the same rank for trunk
	// sharing purposes. The reference router defaults to
	// DefaultRankTolerance.
	RankTolerance int
}

// DefaultRankTolerance is the reference router's same-rank tolerance, large
// enough to absorb the height difference between single-line and
// multi-line boxes placed in what a human reader would call the same row.
const DefaultRankTolerance = 10

// DefaultOptions returns the reference router's default configuration.
func DefaultOptions() Options {
	return Options{RankTolerance: DefaultRankTolerance}
}
