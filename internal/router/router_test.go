package router

import (
	"errors"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/teleivo/dagascii/graph"
	publicrouter "github.com/teleivo/dagascii/router"
)

func pos(id, content string, x, y int) graph.NodePosition {
	return graph.NodePosition{Node: graph.Node{ID: id, Content: content}, X: x, Y: y}
}

func assertAxisAligned(t *testing.T, path graph.EdgePath) {
	t.Helper()
	for _, seg := range path.Segments {
		horizontal := seg.Y1 == seg.Y2
		vertical := seg.X1 == seg.X2
		assert.Truef(t, horizontal || vertical, "segment %+v should be purely horizontal or vertical", seg)
	}
}

func TestRouteStraightVertical(t *testing.T) {
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 0, 0),
		"b": pos("b", "B", 0, 3),
	}
	edges := []graph.Edge{{Source: "a", Target: "b"}}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 1, "len(paths)")

	assertAxisAligned(t, paths[0])
	require.EqualValuesf(t, len(paths[0].Segments), 1, "a straight vertical path should need one segment")
}

func TestRouteTrunkAndSplit(t *testing.T) {
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 10, 0),
		"b": pos("b", "B", 0, 5),
		"c": pos("c", "C", 20, 5),
	}
	edges := []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
	}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 2, "len(paths)")

	for _, p := range paths {
		assertAxisAligned(t, p)
	}

	first := paths[0].Segments[0]
	second := paths[1].Segments[0]
	assert.EqualValuesf(t, first.X1, second.X1, "both branches should share the trunk's exit column")
	assert.EqualValuesf(t, first.Y2, second.Y2, "both branches should share the trunk's split row")
}

func TestRouteMergeSharesEntryColumn(t *testing.T) {
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 0, 0),
		"b": pos("b", "B", 20, 0),
		"d": pos("d", "D", 10, 5),
	}
	edges := []graph.Edge{
		{Source: "a", Target: "d"},
		{Source: "b", Target: "d"},
	}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 2, "len(paths)")

	for _, p := range paths {
		assertAxisAligned(t, p)
		last := p.Segments[len(p.Segments)-1]
		assert.EqualValuesf(t, last.X2, positions["d"].X+positions["d"].Node.Width()/2, "path should land on d's entry column")
	}

	lastA := paths[0].Segments[len(paths[0].Segments)-1]
	lastB := paths[1].Segments[len(paths[1].Segments)-1]
	assert.EqualValuesf(t, lastA.X1, lastB.X1, "both paths should converge on the same entry column before d")
}

func TestRouteDiamondTrunkAndMerge(t *testing.T) {
	// a fans out to b and c (trunk-and-split), then b and c both feed d
	// (merge): a diamond mixing both patterns.
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 10, 0),
		"b": pos("b", "B", 0, 4),
		"c": pos("c", "C", 20, 4),
		"d": pos("d", "D", 10, 8),
	}
	edges := []graph.Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
		{Source: "b", Target: "d"},
		{Source: "c", Target: "d"},
	}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 4, "len(paths)")

	for _, p := range paths {
		assertAxisAligned(t, p)
	}
}

func TestRouteIndependentExitsLeftOfMergeExit(t *testing.T) {
	// u has one independent edge (to x) and one merge edge (to y, which also
	// receives from z), both targets at the same rank. They must not collapse
	// into a single trunk-and-split exit: independent gets the left column,
	// merge the right. u is wide enough for two interior exit columns.
	positions := map[string]graph.NodePosition{
		"u": pos("u", "+-------+", 10, 0),
		"x": pos("x", "X", 0, 5),
		"y": pos("y", "Y", 20, 5),
		"z": pos("z", "Z", 30, 0),
	}
	edges := []graph.Edge{
		{Source: "u", Target: "x"},
		{Source: "u", Target: "y"},
		{Source: "z", Target: "y"},
	}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 3, "len(paths)")

	var toX, toY graph.EdgePath
	for _, p := range paths {
		if p.SourceID == "u" && p.TargetID == "x" {
			toX = p
		}
		if p.SourceID == "u" && p.TargetID == "y" {
			toY = p
		}
	}

	exitToX := toX.Segments[0].X1
	exitToY := toY.Segments[0].X1
	assert.Falsef(t, exitToX == exitToY, "u's independent and merge edges should not share an exit column, got %d for both", exitToX)
	assert.Truef(t, exitToX < exitToY, "u's independent exit (%d) should be left of its merge exit (%d)", exitToX, exitToY)
}

func TestRouteEndpointsOnBoxBoundaries(t *testing.T) {
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 5, 0),
		"b": pos("b", "longer box", 0, 3),
	}
	edges := []graph.Edge{{Source: "a", Target: "b"}}

	paths, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.NoErrorf(t, err, "Route()")
	require.EqualValuesf(t, len(paths), 1, "len(paths)")

	first := paths[0].Segments[0]
	last := paths[0].Segments[len(paths[0].Segments)-1]
	assert.EqualValuesf(t, first.Y1, positions["a"].Y+positions["a"].Node.Height(), "path should start just below the source box")
	assert.EqualValuesf(t, last.Y2, positions["b"].Y-1, "path should end just above the target box")
}

func TestRouteUnknownNodeIsInvariantError(t *testing.T) {
	positions := map[string]graph.NodePosition{
		"a": pos("a", "A", 0, 0),
	}
	edges := []graph.Edge{{Source: "a", Target: "missing"}}

	_, err := NewSimple(publicrouter.DefaultOptions()).Route(positions, edges)
	require.Errorf(t, err, "Route() with an unresolved target")

	var ge *graph.Error
	require.Truef(t, errors.As(err, &ge), "error should be *graph.Error, got %T", err)
	assert.EqualValuesf(t, ge.Kind, graph.InternalInvariant, "Kind")
}
