package graph

import (
	"errors"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestNodeWidthHeight(t *testing.T) {
	tests := map[string]struct {
		content    string
		wantWidth  int
		wantHeight int
	}{
		"single line":       {"+---+", 5, 1},
		"box with border":   {"+---+\n| A |\n+---+", 5, 3},
		"empty content":     {"", 0, 0},
		"wide glyph border": {"+-----+\n| 中 |\n+-----+", 7, 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n := Node{ID: "n", Content: tt.content}
			assert.EqualValuesf(t, n.Width(), tt.wantWidth, "Width()")
			assert.EqualValuesf(t, n.Height(), tt.wantHeight, "Height()")
		})
	}
}

func TestBuildSuccess(t *testing.T) {
	d, err := New().
		AddNode("a", "A").
		AddNode("b", "B").
		AddEdge("a", "b").
		Build()

	require.NoErrorf(t, err, "Build()")
	assert.EqualValuesf(t, d.Len(), 2, "Len()")
	assert.EqualValuesf(t, len(d.Edges()), 1, "len(Edges())")

	n, ok := d.Node("a")
	require.Truef(t, ok, "Node(%q) found", "a")
	assert.EqualValuesf(t, n.Content, "A", "Node(%q).Content", "a")
}

func TestBuildErrors(t *testing.T) {
	tests := map[string]struct {
		build func() (DAG, error)
	}{
		"duplicate node id": {
			build: func() (DAG, error) {
				return New().AddNode("a", "A").AddNode("a", "A2").Build()
			},
		},
		"edge to unknown target": {
			build: func() (DAG, error) {
				return New().AddNode("a", "A").AddEdge("a", "missing").Build()
			},
		},
		"edge from unknown source": {
			build: func() (DAG, error) {
				return New().AddNode("a", "A").AddEdge("missing", "a").Build()
			},
		},
		"two-node cycle": {
			build: func() (DAG, error) {
				return New().
					AddNode("a", "A").
					AddNode("b", "B").
					AddEdge("a", "b").
					AddEdge("b", "a").
					Build()
			},
		},
		"self loop": {
			build: func() (DAG, error) {
				return New().AddNode("a", "A").AddEdge("a", "a").Build()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tt.build()
			require.NotNilf(t, err, "Build()")

			var ge *Error
			require.Truef(t, errors.As(err, &ge), "error should be *graph.Error, got %T", err)
			assert.EqualValuesf(t, ge.Kind, InvalidGraph, "Kind")
		})
	}
}

func TestBuildEmptyDAG(t *testing.T) {
	d, err := New().Build()

	require.NoErrorf(t, err, "Build()")
	assert.EqualValuesf(t, d.Len(), 0, "Len()")
	assert.EqualValuesf(t, len(d.Edges()), 0, "len(Edges())")
}

func TestBuildMultigraphEdges(t *testing.T) {
	d, err := New().
		AddNode("a", "A").
		AddNode("b", "B").
		AddEdge("a", "b").
		AddEdge("a", "b").
		Build()

	require.NoErrorf(t, err, "Build()")
	assert.EqualValuesf(t, len(d.Edges()), 2, "len(Edges())")
}
