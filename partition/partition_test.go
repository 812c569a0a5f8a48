package partition

import (
	"sort"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/teleivo/dagascii/graph"
)

func nodeIDs(d graph.DAG) []string {
	var ids []string
	for _, n := range d.Nodes() {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestPartitionEdgeFreeDAG(t *testing.T) {
	d, err := graph.New().
		AddNode("a", "A").
		AddNode("b", "B").
		Build()
	require.NoErrorf(t, err, "Build()")

	components, standalone := Partition(d)

	assert.EqualValuesf(t, len(components), 0, "len(components)")
	assert.EqualValuesf(t, nodeIDs(standalone), []string{"a", "b"}, "standalone node ids")
}

func TestPartitionEmptyDAG(t *testing.T) {
	d, err := graph.New().Build()
	require.NoErrorf(t, err, "Build()")

	components, standalone := Partition(d)

	assert.EqualValuesf(t, len(components), 0, "len(components)")
	assert.EqualValuesf(t, standalone.Len(), 0, "standalone.Len()")
}

func TestPartitionMixedConnectedAndStandalone(t *testing.T) {
	d, err := graph.New().
		AddNode("a", "A").
		AddNode("b", "B").
		AddNode("c", "C").
		AddNode("x", "X").
		AddEdge("a", "b").
		AddEdge("a", "c").
		Build()
	require.NoErrorf(t, err, "Build()")

	components, standalone := Partition(d)

	require.EqualValuesf(t, len(components), 1, "len(components)")
	assert.EqualValuesf(t, nodeIDs(components[0]), []string{"a", "b", "c"}, "component node ids")
	assert.EqualValuesf(t, len(components[0].Edges()), 2, "len(component edges)")
	assert.EqualValuesf(t, nodeIDs(standalone), []string{"x"}, "standalone node ids")
}

func TestPartitionSortedBySizeDescending(t *testing.T) {
	d, err := graph.New().
		AddNode("a", "A").AddNode("b", "B").
		AddNode("p", "P").AddNode("q", "Q").AddNode("r", "R").
		AddEdge("a", "b").
		AddEdge("p", "q").AddEdge("q", "r").
		Build()
	require.NoErrorf(t, err, "Build()")

	components, _ := Partition(d)

	require.EqualValuesf(t, len(components), 2, "len(components)")
	assert.Truef(t, components[0].Len() >= components[1].Len(), "components should be sorted largest first")
	assert.EqualValuesf(t, components[0].Len(), 3, "components[0].Len()")
}

func TestPartitionRoundTrip(t *testing.T) {
	d, err := graph.New().
		AddNode("a", "A").AddNode("b", "B").AddNode("c", "C").AddNode("x", "X").
		AddEdge("a", "b").AddEdge("a", "c").
		Build()
	require.NoErrorf(t, err, "Build()")

	components, standalone := Partition(d)

	var gotIDs []string
	gotIDs = append(gotIDs, nodeIDs(standalone)...)
	var gotEdges int
	for _, c := range components {
		gotIDs = append(gotIDs, nodeIDs(c)...)
		gotEdges += len(c.Edges())
	}
	sort.Strings(gotIDs)

	assert.EqualValuesf(t, gotIDs, nodeIDs(d), "concatenated node ids should equal input node set")
	assert.EqualValuesf(t, gotEdges, len(d.Edges()), "concatenated edge count should equal input edge count")
}
