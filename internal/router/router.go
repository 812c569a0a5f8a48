// Package router implements the reference [router.Router]: an orthogonal
// edge router where same-source fan-out shares a trunk before splitting,
// same-target fan-in shares one entry column before merging, and everything
// else falls back to a path with one horizontal run between two vertical
// legs (collapsing to a straight line when source and target line up).
package router

import (
	"sort"

	"github.com/teleivo/dagascii/graph"
	"github.com/teleivo/dagascii/internal/assert"
	publicrouter "github.com/teleivo/dagascii/router"
)

// Simple is the reference [publicrouter.Router].
type Simple struct {
	opts publicrouter.Options
}

// NewSimple creates a Simple router with the given options.
func NewSimple(opts publicrouter.Options) *Simple {
	return &Simple{opts: opts}
}

// Route implements [publicrouter.Router].
func (s *Simple) Route(positions map[string]graph.NodePosition, edges []graph.Edge) ([]graph.EdgePath, error) {
	opts := s.opts
	if opts.RankTolerance == 0 {
		opts = publicrouter.DefaultOptions()
	}

	for _, e := range edges {
		if _, ok := positions[e.Source]; !ok {
			return nil, &graph.Error{Kind: graph.InternalInvariant, Msg: "edge source " + e.Source + " has no position"}
		}
		if _, ok := positions[e.Target]; !ok {
			return nil, &graph.Error{Kind: graph.InternalInvariant, Msg: "edge target " + e.Target + " has no position"}
		}
	}

	exitX, entryX := AllocateExits(positions, edges, opts.RankTolerance)
	clusterJogY := clusterJogRows(positions, edges, opts.RankTolerance)

	paths := make([]graph.EdgePath, 0, len(edges))
	for _, e := range edges {
		src := positions[e.Source]
		dst := positions[e.Target]

		startX := exitX[e.Source][e.Target]
		startY := src.Y + src.Node.Height()
		endX := entryX[e.Target]
		endY := dst.Y - 1

		jogY, shared := clusterJogY[e.Source][e.Target]
		if !shared {
			jogY = startY + halfGap(startY, endY)
		}
		jogY = clamp(jogY, startY, endY)

		paths = append(paths, graph.EdgePath{
			SourceID: e.Source,
			TargetID: e.Target,
			Segments: buildPath(startX, startY, endX, endY, jogY),
		})
	}

	orderPaths(paths, edges, positions)
	return paths, nil
}

// buildPath returns the orthogonal segments connecting (startX, startY) to
// (endX, endY), running horizontally once at row jogY. The leading vertical
// segment is omitted when jogY equals startY, the trailing one when jogY
// equals endY. A path with startX == endX needs no bend at all.
func buildPath(startX, startY, endX, endY, jogY int) []graph.Segment {
	assert.That(startY <= endY, "edge path must run downward, got startY=%d endY=%d", startY, endY)

	if startX == endX {
		return []graph.Segment{{X1: startX, Y1: startY, X2: startX, Y2: endY}}
	}

	var segments []graph.Segment
	if jogY > startY {
		segments = append(segments, graph.Segment{X1: startX, Y1: startY, X2: startX, Y2: jogY})
	}
	segments = append(segments, graph.Segment{X1: startX, Y1: jogY, X2: endX, Y2: jogY})
	if jogY < endY {
		segments = append(segments, graph.Segment{X1: endX, Y1: jogY, X2: endX, Y2: endY})
	}
	return segments
}

// AllocateExits assigns an exit column per (source, target) edge along the
// source box's bottom edge, and one shared entry column per target along
// its top edge. It is exported for callers that want the reference router's
// allocation; internal/canvas does not call it and reads attachment points
// from the routed paths instead.
//
// Outgoing edges are first classified independent or merge by the target's
// indegree. A source with no merge edges whose entire fan-out lands in one
// same-rank cluster shares a single center exit (trunk-and-split): pure
// fan-out, nothing to keep apart. Any source with at least one merge edge
// routes as mixed instead, even if its targets are same-rank: independent
// edges take the leftmost columns in left-to-right target-x order, merge
// edges the rightmost, so flows about to converge on a shared target stay
// visually separated from the ones that aren't.
func AllocateExits(positions map[string]graph.NodePosition, edges []graph.Edge, rankTolerance int) (exitX map[string]map[string]int, entryX map[string]int) {
	exitX = make(map[string]map[string]int)
	entryX = make(map[string]int)
	indeg := indegree(edges)

	bySource := groupBySource(edges)
	for _, sourceID := range orderedKeys(edges, func(e graph.Edge) string { return e.Source }) {
		out := bySource[sourceID]
		box := positions[sourceID]

		independent, merge := classifyBySourceFanIn(out, indeg)

		if len(merge) == 0 {
			if clusters := clusterByTargetRank(out, positions, rankTolerance); len(clusters) <= 1 {
				col := box.X + box.Node.Width()/2
				exitX[sourceID] = make(map[string]int, len(out))
				for _, e := range out {
					exitX[sourceID][e.Target] = col
				}
				continue
			}
		}

		sort.SliceStable(independent, func(i, j int) bool {
			return positions[independent[i].Target].X < positions[independent[j].Target].X
		})
		sort.SliceStable(merge, func(i, j int) bool {
			return positions[merge[i].Target].X < positions[merge[j].Target].X
		})
		ordered := append(independent, merge...)

		cols := spreadColumns(box.X, box.Node.Width(), len(ordered))
		exitX[sourceID] = make(map[string]int, len(ordered))
		for i, e := range ordered {
			exitX[sourceID][e.Target] = cols[i]
		}
	}

	byTarget := groupByTarget(edges)
	for targetID, incoming := range byTarget {
		box := positions[targetID]
		sum, n := 0, 0
		for _, e := range incoming {
			if cols, ok := exitX[e.Source]; ok {
				sum += cols[e.Target]
				n++
			}
		}
		center := box.X + box.Node.Width()/2
		if n == 0 {
			entryX[targetID] = center
			continue
		}
		avg := sum / n
		entryX[targetID] = clamp(avg, box.X, box.X+max(0, box.Node.Width()-1))
	}

	return exitX, entryX
}

// clusterJogRows computes, for every edge whose source fans out to two or
// more same-rank targets, the shared row at which that trunk splits. Edges
// routed independently are absent from the result; Route falls back to a
// per-edge midpoint for those.
func clusterJogRows(positions map[string]graph.NodePosition, edges []graph.Edge, rankTolerance int) map[string]map[string]int {
	jogs := make(map[string]map[string]int)

	bySource := groupBySource(edges)
	for sourceID, out := range bySource {
		clusters := clusterByTargetRank(out, positions, rankTolerance)
		for _, cluster := range clusters {
			if len(cluster) < 2 {
				continue
			}
			src := positions[sourceID]
			startY := src.Y + src.Node.Height()
			jogY := startY + halfGap(startY, meanTargetY(cluster, positions))
			for _, e := range cluster {
				if jogs[sourceID] == nil {
					jogs[sourceID] = make(map[string]int)
				}
				jogs[sourceID][e.Target] = jogY
			}
		}
	}
	return jogs
}

// indegree counts, for every target appearing in edges, how many edges
// reach it. An edge's target is a merge target when its count exceeds 1.
func indegree(edges []graph.Edge) map[string]int {
	deg := make(map[string]int, len(edges))
	for _, e := range edges {
		deg[e.Target]++
	}
	return deg
}

// classifyBySourceFanIn splits one source's outgoing edges into those whose
// target has indegree 1 (independent) and those whose target has indegree
// greater than 1 (merge), preserving relative order within each group.
func classifyBySourceFanIn(out []graph.Edge, indeg map[string]int) (independent, merge []graph.Edge) {
	for _, e := range out {
		if indeg[e.Target] > 1 {
			merge = append(merge, e)
		} else {
			independent = append(independent, e)
		}
	}
	return independent, merge
}

func groupBySource(edges []graph.Edge) map[string][]graph.Edge {
	grouped := make(map[string][]graph.Edge)
	for _, e := range edges {
		grouped[e.Source] = append(grouped[e.Source], e)
	}
	return grouped
}

func groupByTarget(edges []graph.Edge) map[string][]graph.Edge {
	grouped := make(map[string][]graph.Edge)
	for _, e := range edges {
		grouped[e.Target] = append(grouped[e.Target], e)
	}
	return grouped
}

// orderedKeys returns the distinct values of key(e) in first-seen order, so
// allocation loops stay deterministic without sorting map keys arbitrarily.
func orderedKeys(edges []graph.Edge, key func(graph.Edge) string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, e := range edges {
		k := key(e)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// clusterByTargetRank groups a source's outgoing edges into trunk clusters:
// adjacent (by target y) edges whose targets fall within rankTolerance rows
// of the cluster's first member share one cluster.
func clusterByTargetRank(out []graph.Edge, positions map[string]graph.NodePosition, rankTolerance int) [][]graph.Edge {
	if len(out) == 0 {
		return nil
	}

	sorted := make([]graph.Edge, len(out))
	copy(sorted, out)
	sort.SliceStable(sorted, func(i, j int) bool {
		return positions[sorted[i].Target].Y < positions[sorted[j].Target].Y
	})

	var clusters [][]graph.Edge
	cur := []graph.Edge{sorted[0]}
	anchorY := positions[sorted[0].Target].Y
	for _, e := range sorted[1:] {
		if positions[e.Target].Y-anchorY <= rankTolerance {
			cur = append(cur, e)
			continue
		}
		clusters = append(clusters, cur)
		cur = []graph.Edge{e}
		anchorY = positions[e.Target].Y
	}
	clusters = append(clusters, cur)
	return clusters
}

func meanTargetY(cluster []graph.Edge, positions map[string]graph.NodePosition) int {
	sum := 0
	for _, e := range cluster {
		sum += positions[e.Target].Y
	}
	return sum / len(cluster)
}

// spreadColumns returns n columns spread evenly across a box's interior (its
// bottom border without the two corner columns), falling back to the box's
// center for every column when n <= 1 or when the interior has fewer than
// 2(n-1) columns.
func spreadColumns(boxX, boxWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	center := boxX + boxWidth/2
	if n == 1 {
		return []int{center}
	}

	left := boxX + 1
	usable := boxWidth - 2
	if usable < 2*(n-1) {
		cols := make([]int, n)
		for i := range cols {
			cols[i] = center
		}
		return cols
	}

	cols := make([]int, n)
	for i := 0; i < n; i++ {
		cols[i] = left + usable*(i+1)/(n+1)
	}
	return cols
}

func halfGap(start, end int) int {
	gap := end - start
	if gap < 2 {
		return 0
	}
	return gap / 2
}

func clamp(v, low, high int) int {
	if low > high {
		low, high = high, low
	}
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// orderPaths sorts paths by source-group order (the order sources first
// appear in the input edges) and then by the target's x coordinate
// ascending, so the same graph always renders the same way.
func orderPaths(paths []graph.EdgePath, edges []graph.Edge, positions map[string]graph.NodePosition) {
	sourceOrder := make(map[string]int)
	for i, src := range orderedKeys(edges, func(e graph.Edge) string { return e.Source }) {
		sourceOrder[src] = i
	}

	sort.SliceStable(paths, func(i, j int) bool {
		oi, oj := sourceOrder[paths[i].SourceID], sourceOrder[paths[j].SourceID]
		if oi != oj {
			return oi < oj
		}
		return positions[paths[i].TargetID].X < positions[paths[j].TargetID].X
	})
}
