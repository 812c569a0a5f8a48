// Package layout implements the reference [layout.Positioner]: a layered
// placement algorithm modeled on Sugiyama-style graph drawing. Layered needs
// no external library — longest-path layering, barycenter ordering, and
// left-to-right packing are all it takes to place pre-sized boxes.
package layout

import (
	"sort"

	"github.com/teleivo/dagascii/graph"
	publiclayout "github.com/teleivo/dagascii/layout"
)

// crossingReductionSweeps bounds the barycenter ordering passes. Four
// sweeps (two down, two up) is the point past which additional sweeps
// rarely change the outcome for diagrams of the size dagascii targets.
const crossingReductionSweeps = 4

// Layered is the reference [publiclayout.Positioner]. The zero value uses
// [publiclayout.DefaultSpacing]; construct with [NewLayered] to override it.
type Layered struct {
	spacing publiclayout.Spacing
}

// NewLayered creates a Layered positioner with the given spacing.
func NewLayered(spacing publiclayout.Spacing) *Layered {
	return &Layered{spacing: spacing}
}

// Compute implements [publiclayout.Positioner]. It never returns an error:
// the algorithm only needs the DAG's own (already-validated) invariants to
// produce a placement satisfying the Positioner contract.
func (l *Layered) Compute(dag graph.DAG) (graph.LayoutResult, error) {
	spacing := l.spacing
	if spacing == (publiclayout.Spacing{}) {
		spacing = publiclayout.DefaultSpacing
	}

	nodes := dag.Nodes()
	if len(nodes) == 0 {
		return graph.LayoutResult{Positions: map[string]graph.NodePosition{}}, nil
	}

	leftPad := max(1, spacing.Horizontal)
	topPad := max(1, spacing.Vertical)

	groups := weaklyConnectedGroups(nodes, dag.Edges())
	positions := make(map[string]graph.NodePosition, len(nodes))

	xOffset := leftPad
	maxRight, maxBottom := 0, 0
	for _, group := range groups {
		local, width, height := placeComponent(group, dag, spacing)
		for id, p := range local {
			final := graph.NodePosition{Node: p.Node, X: p.X + xOffset, Y: p.Y + topPad}
			positions[id] = final
			if right := final.X + final.Node.Width(); right > maxRight {
				maxRight = right
			}
			if bottom := final.Y + final.Node.Height(); bottom > maxBottom {
				maxBottom = bottom
			}
		}
		xOffset += width + spacing.Horizontal*spacing.ComponentGutterMultiple
		_ = height
	}

	return graph.LayoutResult{
		Positions: positions,
		Width:     maxRight + spacing.Horizontal,
		Height:    maxBottom + spacing.Vertical,
	}, nil
}

// componentEdge is an edge restricted to nodes within one weakly connected
// group, kept separate from graph.Edge so layering math doesn't need to
// re-filter the full edge list per group.
type componentEdge struct {
	source, target string
}

// weaklyConnectedGroups partitions nodes into weakly connected groups using
// the DAG's edges as undirected links. A node touched by no edge becomes its
// own singleton group. Groups are returned in the order their first member
// was discovered while scanning nodes, which follows dag's insertion order
// and keeps placement deterministic.
func weaklyConnectedGroups(nodes []graph.Node, edges []graph.Edge) [][]graph.Node {
	adjacency := make(map[string][]string)
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	byID := make(map[string]graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	visited := make(map[string]bool, len(nodes))
	var groups [][]graph.Node
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		var group []graph.Node
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group = append(group, byID[cur])
			for _, neighbor := range adjacency[cur] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// placeComponent lays out one weakly connected group in local coordinates
// starting at (0, 0) and returns its positions plus the group's own
// bounding width and height (before spacing offsets are applied by the
// caller).
func placeComponent(group []graph.Node, dag graph.DAG, spacing publiclayout.Spacing) (map[string]graph.NodePosition, int, int) {
	ids := make(map[string]bool, len(group))
	for _, n := range group {
		ids[n.ID] = true
	}

	var localEdges []componentEdge
	for _, e := range dag.Edges() {
		if ids[e.Source] && ids[e.Target] {
			localEdges = append(localEdges, componentEdge{e.Source, e.Target})
		}
	}

	layerOf := assignLayers(group, localEdges)
	layers := groupByLayer(group, layerOf)
	orderWithinLayers(layers, localEdges)

	nodeByID := make(map[string]graph.Node, len(group))
	for _, n := range group {
		nodeByID[n.ID] = n
	}

	positions := make(map[string]graph.NodePosition, len(group))

	// y coordinates: cumulative sum of the tallest box in each preceding
	// layer plus the configured vertical spacing.
	y := make(map[string]int, len(group))
	cursorY := 0
	for _, layer := range layers {
		maxHeight := 0
		for _, n := range layer {
			y[n.ID] = cursorY
			if h := n.Height(); h > maxHeight {
				maxHeight = h
			}
		}
		cursorY += maxHeight + spacing.Vertical
	}

	// x coordinates: pack each layer left to right, then nudge non-root
	// layers toward the mean center of their predecessors.
	x := make(map[string]int, len(group))
	for i, layer := range layers {
		if i == 0 {
			packLeftToRight(layer, x, spacing.Horizontal)
			continue
		}
		centerLayerOnParents(layer, x, nodeByID, localEdges, spacing.Horizontal)
	}

	maxRight, maxBottom := 0, 0
	for _, n := range group {
		positions[n.ID] = graph.NodePosition{Node: n, X: x[n.ID], Y: y[n.ID]}
		if right := x[n.ID] + n.Width(); right > maxRight {
			maxRight = right
		}
		if bottom := y[n.ID] + n.Height(); bottom > maxBottom {
			maxBottom = bottom
		}
	}

	return positions, maxRight, maxBottom
}

// assignLayers computes each node's layer as the length of the longest path
// reaching it from any root, via a Kahn-style topological sweep: a node's
// layer is only finalized once every predecessor's layer already is.
func assignLayers(nodes []graph.Node, edges []componentEdge) map[string]int {
	succ := make(map[string][]string)
	indegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		indegree[n.ID] = 0
	}
	for _, e := range edges {
		succ[e.source] = append(succ[e.source], e.target)
		indegree[e.target]++
	}

	layer := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range succ[cur] {
			if layer[cur]+1 > layer[next] {
				layer[next] = layer[cur] + 1
			}
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return layer
}

func groupByLayer(nodes []graph.Node, layerOf map[string]int) [][]graph.Node {
	maxLayer := 0
	for _, n := range nodes {
		if l := layerOf[n.ID]; l > maxLayer {
			maxLayer = l
		}
	}
	layers := make([][]graph.Node, maxLayer+1)
	for _, n := range nodes {
		l := layerOf[n.ID]
		layers[l] = append(layers[l], n)
	}
	return layers
}

// orderWithinLayers reduces crossings with alternating barycenter sweeps: a
// downward sweep orders each layer by the mean position of its predecessors
// in the layer above, an upward sweep by the mean position of successors in
// the layer below. Nodes with no neighbor in the reference layer keep their
// current position.
func orderWithinLayers(layers [][]graph.Node, edges []componentEdge) {
	if len(layers) < 2 {
		return
	}

	predecessors := make(map[string][]string)
	successors := make(map[string][]string)
	for _, e := range edges {
		predecessors[e.target] = append(predecessors[e.target], e.source)
		successors[e.source] = append(successors[e.source], e.target)
	}

	for sweep := 0; sweep < crossingReductionSweeps; sweep++ {
		if sweep%2 == 0 {
			for i := 1; i < len(layers); i++ {
				reorderLayer(layers[i], layers[i-1], predecessors)
			}
		} else {
			for i := len(layers) - 2; i >= 0; i-- {
				reorderLayer(layers[i], layers[i+1], successors)
			}
		}
	}
}

func reorderLayer(layer, reference []graph.Node, neighborsOf map[string][]string) {
	positionIn := make(map[string]int, len(reference))
	for i, n := range reference {
		positionIn[n.ID] = i
	}

	barycenter := make(map[string]float64, len(layer))
	for i, n := range layer {
		sum, count := 0, 0
		for _, nb := range neighborsOf[n.ID] {
			if p, ok := positionIn[nb]; ok {
				sum += p
				count++
			}
		}
		if count == 0 {
			barycenter[n.ID] = float64(i)
			continue
		}
		barycenter[n.ID] = float64(sum) / float64(count)
	}

	sort.SliceStable(layer, func(i, j int) bool {
		return barycenter[layer[i].ID] < barycenter[layer[j].ID]
	})
}

func packLeftToRight(layer []graph.Node, x map[string]int, spacing int) {
	cursor := 0
	for _, n := range layer {
		x[n.ID] = cursor
		cursor += n.Width() + spacing
	}
}

// centerLayerOnParents packs layer left to right but biases each node's x
// toward the mean center of its already-placed predecessors, enforcing
// minimum spacing left to right so the bias never introduces overlap.
func centerLayerOnParents(layer []graph.Node, x map[string]int, nodeByID map[string]graph.Node, edges []componentEdge, spacing int) {
	parentsOf := make(map[string][]string)
	for _, e := range edges {
		if _, placed := x[e.source]; placed {
			parentsOf[e.target] = append(parentsOf[e.target], e.source)
		}
	}

	desired := make([]int, len(layer))
	cursor := 0
	for i, n := range layer {
		parents := parentsOf[n.ID]
		if len(parents) == 0 {
			desired[i] = cursor
		} else {
			sum := 0
			for _, p := range parents {
				sum += x[p] + nodeByID[p].Width()/2
			}
			desired[i] = sum/len(parents) - n.Width()/2
		}
		if desired[i] < cursor {
			desired[i] = cursor
		}
		x[n.ID] = desired[i]
		cursor = desired[i] + n.Width() + spacing
	}
}
