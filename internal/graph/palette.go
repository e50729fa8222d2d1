package graph

// DefaultKey is the palette entry guaranteed present in every color map.
// Color lookup is a total function: unknown categories never fall through
// to an error color.
const DefaultKey = "DEFAULT"

// NodeColors keys entity types to fill colors.
var NodeColors = map[string]string{
	"person":   "#2DB682",
	"project":  "#0171E3",
	"task":     "#E07C3A",
	"epic":     "#9B59B6",
	"agent":    "#E74C3C",
	"source":   "#1ABC9C",
	"document": "#F1C40F",
	"concept":  "#3498DB",
	"tool":     "#E91E63",
	DefaultKey: "#9CA3AF",
}

// EdgeColors keys relationship types to stroke colors.
var EdgeColors = map[string]string{
	"relates_to": "#6B7280",
	"depends_on": "#E07C3A",
	"references": "#3498DB",
	"part_of":    "#9B59B6",
	"created_by": "#2DB682",
	"blocks":     "#E74C3C",
	DefaultKey:   "#4B5563",
}

// Highlight colors, distinct so the two states read apart at a glance.
const (
	SelectedGlow   = "#F59E0B" // amber, selected node
	SearchGlow     = "#2DB682" // brand green, search match
	SelectedAccent = "#F8F8F2" // selected node border and its touching edges
	DefaultBorder  = "#1F2937"
)

// NodeColor resolves a node's fill: explicit override, then type palette,
// then the default entry.
func NodeColor(n Node) string {
	if n.Color != "" {
		return n.Color
	}
	if c, ok := NodeColors[n.Type]; ok {
		return c
	}
	return NodeColors[DefaultKey]
}

// EdgeColor resolves an edge's stroke from the relationship palette.
func EdgeColor(e Edge) string {
	if c, ok := EdgeColors[e.Type]; ok {
		return c
	}
	return EdgeColors[DefaultKey]
}
