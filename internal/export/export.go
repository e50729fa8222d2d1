// Package export serializes a laid-out graph to the supported output
// formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/msalah0e/canopy/internal/graph"
	"github.com/msalah0e/canopy/internal/render"
	"github.com/msalah0e/canopy/internal/scene"
)

// Formats lists the supported output formats.
func Formats() []string { return []string{"svg", "ascii", "dot", "json"} }

// Options carries shared export parameters.
type Options struct {
	Width    float64
	Height   float64
	Colorize bool // ANSI colors in ascii output
}

// Generate renders a settled scene in the requested format. The scene
// must already be loaded; callers settle it first so exports capture
// the final layout.
func Generate(sc *scene.Scene, format string, opt Options) ([]byte, error) {
	switch strings.ToLower(format) {
	case "svg":
		cv := render.NewSVGCanvas(opt.Width, opt.Height)
		sc.Frame(cv, 0)
		return cv.Bytes(), nil
	case "ascii":
		cols := int(opt.Width / 10)
		rows := int(opt.Height / 20)
		cv := render.NewASCIICanvas(opt.Width, opt.Height, cols, rows)
		cv.Colorize = opt.Colorize
		sc.Frame(cv, 0)
		return []byte(cv.String()), nil
	case "dot":
		return DOT(sc.Set()), nil
	case "json":
		return JSON(sc.Set(), opt)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DOT serializes the graph in Graphviz format with positions pinned to
// the settled layout.
func DOT(set *graph.RenderSet) []byte {
	var buf bytes.Buffer
	buf.WriteString("digraph canopy {\n")
	buf.WriteString("  node [shape=circle, fontname=\"Arial\"];\n")

	for _, n := range set.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, color=%q, width=%.2f",
			n.ID, n.DisplayLabel(), n.DisplayColor, n.DisplaySize/20)
		if n.Positioned() {
			fmt.Fprintf(&buf, ", pos=\"%.1f,%.1f!\"", n.X/100, n.Y/100)
		}
		buf.WriteString("];\n")
	}
	for _, e := range set.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [color=%q", e.Source.ID, e.Target.ID, e.DisplayColor)
		if e.Type != "" {
			fmt.Fprintf(&buf, ", label=%q", e.Type)
		}
		buf.WriteString("];\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

type jsonNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Type   string  `json:"type,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	Degree int     `json:"degree"`
	Pinned bool    `json:"pinned,omitempty"`
}

type jsonEdge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type,omitempty"`
	Weight float64 `json:"weight,omitempty"`
	Color  string  `json:"color"`
}

type jsonDoc struct {
	Nodes    []jsonNode     `json:"nodes"`
	Edges    []jsonEdge     `json:"edges"`
	Metadata map[string]any `json:"metadata"`
}

// JSON serializes the laid-out graph with final coordinates for
// machine consumption.
func JSON(set *graph.RenderSet, opt Options) ([]byte, error) {
	doc := jsonDoc{
		Nodes: make([]jsonNode, 0, len(set.Nodes)),
		Edges: make([]jsonEdge, 0, len(set.Edges)),
		Metadata: map[string]any{
			"width":     opt.Width,
			"height":    opt.Height,
			"nodeCount": len(set.Nodes),
			"edgeCount": len(set.Edges),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	for _, n := range set.Nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:     n.ID,
			Label:  n.DisplayLabel(),
			Type:   n.Type,
			X:      n.X,
			Y:      n.Y,
			Size:   n.DisplaySize,
			Color:  n.DisplayColor,
			Degree: n.Degree,
			Pinned: n.Pinned(),
		})
	}
	for _, e := range set.Edges {
		doc.Edges = append(doc.Edges, jsonEdge{
			ID:     e.ID,
			Source: e.Source.ID,
			Target: e.Target.ID,
			Type:   e.Type,
			Weight: e.Weight,
			Color:  e.DisplayColor,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
