// Package graph holds the knowledge-graph data model: the raw payload
// shape supplied by upstream ingestion, the normalizer that cleans it,
// and the derived render set the simulation and painter share.
package graph

import (
	"encoding/json"
	"fmt"
)

// Node is a raw entity record as supplied by the caller.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	Type  string  `json:"type,omitempty"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Edge is a raw typed relationship between two node ids.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

// Payload is the graph input shape: what a parent view hands the engine.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ParsePayload decodes a JSON graph payload.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("payload parse: %w", err)
	}
	return p, nil
}

// Normalize returns a cleaned copy of the payload plus the set of valid
// node ids. Records are never rejected loudly: nodes with empty ids and
// later duplicates are dropped (first occurrence wins), then edges are
// filtered against the surviving node set. Upstream ingestion is noisy and
// the engine is expected to tolerate partial data.
func Normalize(p Payload) (Payload, map[string]struct{}) {
	valid := make(map[string]struct{}, len(p.Nodes))
	nodes := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.ID == "" {
			continue
		}
		if _, seen := valid[n.ID]; seen {
			continue
		}
		valid[n.ID] = struct{}{}
		nodes = append(nodes, n)
	}

	// Node validity is established before any edge is considered.
	seenEdges := make(map[string]struct{}, len(p.Edges))
	edges := make([]Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		if e.ID == "" {
			continue
		}
		if _, seen := seenEdges[e.ID]; seen {
			continue
		}
		if _, ok := valid[e.Source]; !ok {
			continue
		}
		if _, ok := valid[e.Target]; !ok {
			continue
		}
		seenEdges[e.ID] = struct{}{}
		edges = append(edges, e)
	}

	return Payload{Nodes: nodes, Edges: edges}, valid
}

// Degrees maps each node id to its connection count. An edge contributes
// +1 to both endpoints, so a self-loop counts twice for its one node.
// Ids absent from the map have degree 0.
func Degrees(edges []Edge) map[string]int {
	deg := make(map[string]int)
	for _, e := range edges {
		deg[e.Source]++
		deg[e.Target]++
	}
	return deg
}

// MaxDegree returns the highest degree in the map, or 0 when empty.
func MaxDegree(deg map[string]int) int {
	max := 0
	for _, d := range deg {
		if d > max {
			max = d
		}
	}
	return max
}
