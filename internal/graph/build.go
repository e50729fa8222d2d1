package graph

import (
	"math"
)

// Sizing controls how degree maps to visual radius.
type Sizing struct {
	MinSize float64
	MaxSize float64
}

// DefaultSizing matches the engine's stock tuning.
var DefaultSizing = Sizing{MinSize: 6, MaxSize: 18}

// RenderNode is a node enriched for simulation and painting. X/Y are owned
// by the layout engine and start as NaN until it seeds them; FX/FY pin the
// node once a user finishes dragging it.
type RenderNode struct {
	Node
	Degree       int
	DisplaySize  float64
	DisplayColor string

	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether the node holds a user-fixed position.
func (n *RenderNode) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at its current position.
func (n *RenderNode) Pin() {
	x, y := n.X, n.Y
	n.FX, n.FY = &x, &y
}

// Unpin releases the node back to the simulation.
func (n *RenderNode) Unpin() {
	n.FX, n.FY = nil, nil
}

// Positioned reports whether the layout engine has seeded this node yet.
// Paint routines skip unpositioned nodes for the frame instead of failing.
func (n *RenderNode) Positioned() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y)
}

// DisplayLabel is the node's label, falling back to a truncated id.
func (n *RenderNode) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return TruncateLabel(n.ID, 12)
}

// RenderEdge is an edge with endpoints resolved to live node records.
type RenderEdge struct {
	Edge
	Source *RenderNode
	Target *RenderNode

	DisplayColor string
	DisplayWidth float64
}

// RenderSet is the derived graph the simulation and painter share. It is
// rebuilt, never mutated in place, whenever the source payload changes.
type RenderSet struct {
	Nodes []*RenderNode
	Edges []*RenderEdge
	byID  map[string]*RenderNode
}

// NodeByID returns the live node record for an id, or nil.
func (s *RenderSet) NodeByID(id string) *RenderNode {
	if s == nil {
		return nil
	}
	return s.byID[id]
}

// Build normalizes a payload into a fresh render set. Degrees are
// recomputed from scratch so they are never partially stale. When prev is
// non-nil, positions (and pins) carry over for nodes whose identity is
// unchanged, so a rebuild does not scramble a settled layout.
func Build(p Payload, prev *RenderSet, sizing Sizing) *RenderSet {
	clean, _ := Normalize(p)
	deg := Degrees(clean.Edges)
	maxDeg := MaxDegree(deg)

	set := &RenderSet{
		Nodes: make([]*RenderNode, 0, len(clean.Nodes)),
		Edges: make([]*RenderEdge, 0, len(clean.Edges)),
		byID:  make(map[string]*RenderNode, len(clean.Nodes)),
	}

	for _, n := range clean.Nodes {
		rn := &RenderNode{
			Node:         n,
			Degree:       deg[n.ID],
			DisplaySize:  displaySize(deg[n.ID], maxDeg, sizing),
			DisplayColor: NodeColor(n),
			X:            math.NaN(),
			Y:            math.NaN(),
		}
		if prev != nil {
			if old := prev.NodeByID(n.ID); old != nil {
				rn.X, rn.Y = old.X, old.Y
				rn.VX, rn.VY = old.VX, old.VY
				rn.FX, rn.FY = old.FX, old.FY
			}
		}
		set.Nodes = append(set.Nodes, rn)
		set.byID[n.ID] = rn
	}

	for _, e := range clean.Edges {
		set.Edges = append(set.Edges, &RenderEdge{
			Edge:         e,
			Source:       set.byID[e.Source],
			Target:       set.byID[e.Target],
			DisplayColor: EdgeColor(e),
			DisplayWidth: displayWidth(e.Weight),
		})
	}

	return set
}

// displaySize maps degree to radius. The square root compresses the
// dynamic range so hub nodes stay readable without dwarfing the rest.
func displaySize(degree, maxDegree int, sizing Sizing) float64 {
	norm := float64(degree) / math.Max(1, float64(maxDegree))
	return sizing.MinSize + math.Sqrt(norm)*(sizing.MaxSize-sizing.MinSize)
}

// displayWidth maps edge weight to stroke width. Weight defaults to 1.
func displayWidth(weight float64) float64 {
	if weight <= 0 {
		weight = 1
	}
	return math.Min(4, math.Max(0.5, weight*1.5))
}

// TruncateLabel cuts a label to at most budget runes, appending an
// ellipsis marker when anything was removed.
func TruncateLabel(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	if budget <= 1 {
		return "…"
	}
	return string(runes[:budget-1]) + "…"
}
