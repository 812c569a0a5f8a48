package dagascii

import (
	"strings"

	"github.com/teleivo/dagascii/config"
	"github.com/teleivo/dagascii/graph"
	"github.com/teleivo/dagascii/internal/canvas"
	internallayout "github.com/teleivo/dagascii/internal/layout"
	internalrouter "github.com/teleivo/dagascii/internal/router"
	"github.com/teleivo/dagascii/layout"
	"github.com/teleivo/dagascii/partition"
	"github.com/teleivo/dagascii/router"
	"github.com/teleivo/dagascii/theme"
)

// Render draws dag as a single multi-line ASCII/Unicode diagram. An empty
// DAG renders to the empty string; that is not an error.
func Render(dag graph.DAG, opts ...Option) (string, error) {
	o := Options{spacing: layout.DefaultSpacing}
	for _, opt := range opts {
		opt(&o)
	}
	if o.positioner == nil {
		o.positioner = internallayout.NewLayered(o.spacing)
	}
	if o.router == nil {
		o.router = internalrouter.NewSimple(router.DefaultOptions())
	}
	th := o.theme
	if th == (theme.GlyphTheme{}) {
		th = config.Theme()
	}

	components, standalone := partition.Partition(dag)

	var blocks []string
	for _, comp := range components {
		block, err := renderGroup(comp, o.positioner, o.router, th, true)
		if err != nil {
			return "", err
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	if standalone.Len() > 0 {
		block, err := renderGroup(standalone, o.positioner, o.router, th, false)
		if err != nil {
			return "", err
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}

// renderGroup lays out, routes, and rasterizes one already-partitioned
// weakly connected component (or the standalone group, which carries no
// edges and so skips routing).
func renderGroup(dag graph.DAG, positioner layout.Positioner, rtr router.Router, th theme.GlyphTheme, routeEdges bool) (string, error) {
	if dag.Len() == 0 {
		return "", nil
	}

	result, err := positioner.Compute(dag)
	if err != nil {
		return "", &graph.Error{Kind: graph.PositionerFailure, Msg: err.Error()}
	}

	var paths []graph.EdgePath
	if routeEdges && len(dag.Edges()) > 0 {
		paths, err = rtr.Route(result.Positions, dag.Edges())
		if err != nil {
			return "", err
		}
	}

	cv := canvas.New(result.Width, result.Height, th)
	for _, n := range dag.Nodes() {
		cv.PlaceBox(result.Positions[n.ID])
	}
	for _, p := range paths {
		cv.DrawPath(p)
	}
	cv.ResolveLines()
	cv.PlaceConnectors(result.Positions, paths)
	cv.Repair()

	return cv.Render(), nil
}
