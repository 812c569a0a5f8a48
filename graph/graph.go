// Package graph implements the data model for dagascii: nodes carrying
// pre-rendered box content, directed edges between them, and the DAG that
// owns both.
//
// A [DAG] is built incrementally with [New] and [*Builder.AddNode] /
// [*Builder.AddEdge], then frozen into an immutable value with
// [*Builder.Build]. Build validates the three invariants a DAG must hold:
// node ids are unique, every edge resolves to existing nodes, and the graph
// is acyclic.
package graph

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Node is a single box in the diagram. Content is the complete, pre-rendered
// box including its own borders; dagascii never draws box interiors, only
// positions them and draws the edges between them.
type Node struct {
	ID      string
	Content string
}

// Width returns the box width in terminal columns, measured on the first
// line of Content using East-Asian-width rules (double-width glyphs count as
// 2). Only the first line determines width; later lines need not share it.
func (n Node) Width() int {
	lines := strings.SplitN(n.Content, "\n", 2)
	if len(lines) == 0 || lines[0] == "" {
		return 0
	}
	w := runewidth.StringWidth(lines[0])
	if w < 0 {
		return len(lines[0])
	}
	return w
}

// Height returns the number of lines in Content.
func (n Node) Height() int {
	if n.Content == "" {
		return 0
	}
	return strings.Count(n.Content, "\n") + 1
}

// Edge is a directed connection from Source to Target, both node ids.
// Multigraph edges (repeated (Source, Target) pairs) are permitted; a
// [router.Router] treats each occurrence as a distinct path.
type Edge struct {
	Source string
	Target string
}

// DAG is an immutable directed acyclic graph of [Node]s and [Edge]s. Build
// one with [New].
type DAG struct {
	nodes map[string]Node
	order []string // insertion order, used for deterministic iteration
	edges []Edge
}

// Nodes returns the DAG's nodes in insertion order.
func (d DAG) Nodes() []Node {
	out := make([]Node, len(d.order))
	for i, id := range d.order {
		out[i] = d.nodes[id]
	}
	return out
}

// Edges returns the DAG's edges in insertion order.
func (d DAG) Edges() []Edge {
	return d.edges
}

// Node looks up a node by id.
func (d DAG) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Len returns the number of nodes in the DAG.
func (d DAG) Len() int {
	return len(d.order)
}

// Builder accumulates nodes and edges before validation. The zero value is
// not usable; create one with [New].
type Builder struct {
	nodes map[string]Node
	order []string
	edges []Edge
	err   error
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{nodes: make(map[string]Node)}
}

// AddNode registers a node with the given id and complete box content.
// Duplicate ids are reported by [*Builder.Build], not here, so that callers
// can add nodes and edges in any order without checking every call.
func (b *Builder) AddNode(id, content string) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.nodes[id]; exists {
		b.err = &Error{Kind: InvalidGraph, Msg: fmt.Sprintf("duplicate node id %q", id)}
		return b
	}
	b.nodes[id] = Node{ID: id, Content: content}
	b.order = append(b.order, id)
	return b
}

// AddEdge registers a directed edge from source to target. Endpoint
// resolution is deferred to [*Builder.Build].
func (b *Builder) AddEdge(source, target string) *Builder {
	if b.err != nil {
		return b
	}
	b.edges = append(b.edges, Edge{Source: source, Target: target})
	return b
}

// Build validates accumulated nodes and edges and returns the resulting DAG.
// It reports InvalidGraph for a duplicate node id recorded during AddNode,
// an edge referencing an unknown node, or a cycle.
func (b *Builder) Build() (DAG, error) {
	if b.err != nil {
		return DAG{}, b.err
	}
	for _, e := range b.edges {
		if _, ok := b.nodes[e.Source]; !ok {
			return DAG{}, &Error{Kind: InvalidGraph, Msg: fmt.Sprintf("edge references unknown source %q", e.Source)}
		}
		if _, ok := b.nodes[e.Target]; !ok {
			return DAG{}, &Error{Kind: InvalidGraph, Msg: fmt.Sprintf("edge references unknown target %q", e.Target)}
		}
	}

	d := DAG{nodes: b.nodes, order: b.order, edges: b.edges}
	if cyc := findCycle(d); cyc != "" {
		return DAG{}, &Error{Kind: InvalidGraph, Msg: fmt.Sprintf("graph contains a cycle through node %q", cyc)}
	}
	return d, nil
}

// findCycle performs a depth-first search with a recursion stack and returns
// the id of a node on a detected cycle, or "" if the graph is acyclic.
func findCycle(d DAG) string {
	adjacency := make(map[string][]string, len(d.order))
	for _, e := range d.edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(d.order))

	var visit func(id string) string
	visit = func(id string) string {
		state[id] = visiting
		for _, next := range adjacency[id] {
			switch state[next] {
			case visiting:
				return next
			case unvisited:
				if cyc := visit(next); cyc != "" {
					return cyc
				}
			}
		}
		state[id] = done
		return ""
	}

	for _, id := range d.order {
		if state[id] == unvisited {
			if cyc := visit(id); cyc != "" {
				return cyc
			}
		}
	}
	return ""
}

// NodePosition is the top-left grid cell assigned to a node by a
// [layout.Positioner]. X is a column index, Y a row index; both are
// non-negative.
type NodePosition struct {
	Node Node
	X, Y int
}

// LayoutResult is a [layout.Positioner]'s output: a position for every laid
// out node, plus canvas bounds guaranteed to contain every box with padding.
type LayoutResult struct {
	Positions map[string]NodePosition
	Width     int
	Height    int
}

// Segment is one axis-aligned leg of an [EdgePath]. Exactly one of X1==X2 or
// Y1==Y2 holds; a zero-length segment is valid and renders as a single
// glyph.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// EdgePath is a [router.Router]'s output for one edge: an ordered,
// piecewise-connected polyline from SourceID to TargetID. Segment i+1 begins
// where segment i ends.
type EdgePath struct {
	SourceID string
	TargetID string
	Segments []Segment
}
