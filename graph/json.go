package graph

import (
	"encoding/json"
	"fmt"
)

// jsonDAG is the on-disk shape DecodeJSON expects: a flat node list and a
// flat edge list, mirroring Builder's AddNode/AddEdge calls one for one.
type jsonDAG struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type jsonEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DecodeJSON builds a DAG from the JSON graph description format shared by
// the CLI's render command and the preview server: a flat "nodes" array and
// a flat "edges" array.
func DecodeJSON(data []byte) (DAG, error) {
	var parsed jsonDAG
	if err := json.Unmarshal(data, &parsed); err != nil {
		return DAG{}, fmt.Errorf("invalid graph JSON: %v", err)
	}

	b := New()
	for _, n := range parsed.Nodes {
		b.AddNode(n.ID, n.Content)
	}
	for _, e := range parsed.Edges {
		b.AddEdge(e.Source, e.Target)
	}
	return b.Build()
}
