// Package partition splits a DAG into its connected subgraphs plus a
// standalone group, so the positioner and router can lay out and draw each
// piece independently.
package partition

import (
	"sort"

	"github.com/teleivo/dagascii/graph"
)

// Partition splits dag into connected components, sorted by descending node
// count, and a standalone DAG of nodes with neither incoming nor outgoing
// edges. Ties in component size are broken by the order components were
// first discovered during the breadth-first traversal, which follows the
// insertion order of dag's nodes, so the result is deterministic.
//
// A DAG with no edges yields zero components and one standalone group
// containing every node.
func Partition(dag graph.DAG) (components []graph.DAG, standalone graph.DAG) {
	nodes := dag.Nodes()
	edges := dag.Edges()

	if len(nodes) == 0 {
		b, _ := graph.New().Build()
		return nil, b
	}

	if len(edges) == 0 {
		sb := graph.New()
		for _, n := range nodes {
			sb.AddNode(n.ID, n.Content)
		}
		b, _ := sb.Build()
		return nil, b
	}

	adjacency := make(map[string][]string)
	inEdges := make(map[string]bool)
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
		inEdges[e.Source] = true
		inEdges[e.Target] = true
	}

	visited := make(map[string]bool)
	var groups [][]string

	for _, n := range nodes {
		if !inEdges[n.ID] || visited[n.ID] {
			continue
		}

		var group []string
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group = append(group, cur)
			for _, neighbor := range adjacency[cur] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})

	components = make([]graph.DAG, 0, len(groups))
	for _, group := range groups {
		members := make(map[string]bool, len(group))
		for _, id := range group {
			members[id] = true
		}

		cb := graph.New()
		for _, n := range nodes {
			if members[n.ID] {
				cb.AddNode(n.ID, n.Content)
			}
		}
		for _, e := range edges {
			if members[e.Source] && members[e.Target] {
				cb.AddEdge(e.Source, e.Target)
			}
		}
		c, _ := cb.Build()
		components = append(components, c)
	}

	sb := graph.New()
	for _, n := range nodes {
		if !inEdges[n.ID] {
			sb.AddNode(n.ID, n.Content)
		}
	}
	standalone, _ = sb.Build()

	return components, standalone
}
