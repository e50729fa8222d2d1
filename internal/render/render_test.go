package render

import (
	"math"
	"strings"
	"testing"

	"github.com/msalah0e/canopy/internal/camera"
	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/graph"
)

func testSet(t *testing.T) *graph.RenderSet {
	t.Helper()
	set := graph.Build(graph.Payload{
		Nodes: []graph.Node{
			{ID: "a", Label: "Alpha"},
			{ID: "b", Label: "Beta"},
			{ID: "c", Label: "Gamma"},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "a", Target: "b"},
		},
	}, nil, graph.DefaultSizing)
	coords := map[string][2]float64{"a": {-50, 0}, "b": {50, 0}, "c": {0, 60}}
	for _, n := range set.Nodes {
		n.X, n.Y = coords[n.ID][0], coords[n.ID][1]
	}
	return set
}

func newPainter() (*Painter, *camera.Controller) {
	cam := camera.New(camera.DefaultConfig(), 800, 600)
	return New(config.Default().Render, cam), cam
}

func TestPaintSVGHasNodesEdgesAndArrowhead(t *testing.T) {
	p, _ := newPainter()
	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, testSet(t), Frame{})
	out := string(cv.Bytes())

	if !strings.Contains(out, "<circle") {
		t.Fatal("no node circles in SVG output")
	}
	if !strings.Contains(out, "<line") {
		t.Fatal("no edge line in SVG output")
	}
	if !strings.Contains(out, "<polygon") {
		t.Fatal("no arrowhead polygon in SVG output")
	}
	if !strings.Contains(out, "Alpha") {
		t.Fatal("node label missing from SVG output")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("SVG document not closed")
	}
}

func TestPaintSkipsUnpositionedNodes(t *testing.T) {
	p, _ := newPainter()
	set := testSet(t)
	set.Nodes[2].X = math.NaN()
	set.Nodes[2].Y = math.NaN()

	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, set, Frame{})
	if strings.Contains(string(cv.Bytes()), "Gamma") {
		t.Fatal("unpositioned node was painted")
	}
	if p.Hits().Len() != 2 {
		t.Fatalf("hit map has %d regions, want 2", p.Hits().Len())
	}
}

func TestSelectedNodeGetsGlowAndBiggerRadius(t *testing.T) {
	p, _ := newPainter()
	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, testSet(t), Frame{SelectedID: "a"})
	out := string(cv.Bytes())
	if !strings.Contains(out, graph.SelectedGlow) {
		t.Fatal("selected glow color missing")
	}
	if strings.Contains(out, graph.SearchGlow) {
		t.Fatal("search glow painted without a search term")
	}
}

func TestSelectedNodeBorderDiffersFromUnselected(t *testing.T) {
	p, _ := newPainter()

	plain := NewSVGCanvas(800, 600)
	p.Paint(plain, testSet(t), Frame{})
	if strings.Contains(string(plain.Bytes()), graph.SelectedAccent) {
		t.Fatal("accent color painted without a selection")
	}

	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, testSet(t), Frame{SelectedID: "a"})
	out := string(cv.Bytes())
	if !strings.Contains(out, `stroke="`+graph.SelectedAccent+`" stroke-width="2.00"/>`) {
		t.Fatal("selected node missing the wide accent border")
	}
	if strings.Count(out, `stroke="`+graph.DefaultBorder+`" stroke-width="1.00"/>`) != 2 {
		t.Fatal("unselected nodes lost the default border")
	}
}

func TestSearchMatchGlow(t *testing.T) {
	p, _ := newPainter()
	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, testSet(t), Frame{SearchTerm: "alp"})
	if !strings.Contains(string(cv.Bytes()), graph.SearchGlow) {
		t.Fatal("search glow missing for matching node")
	}
}

func TestSelectionOverridesSearchGlow(t *testing.T) {
	p, _ := newPainter()
	cv := NewSVGCanvas(800, 600)
	p.Paint(cv, testSet(t), Frame{SelectedID: "a", SearchTerm: "alp"})
	out := string(cv.Bytes())
	if !strings.Contains(out, graph.SelectedGlow) {
		t.Fatal("selected glow missing")
	}
}

func TestHitMapTopmostWins(t *testing.T) {
	var m HitMap
	m.Add("under", 100, 100, 20)
	m.Add("over", 105, 100, 20)
	id, ok := m.Lookup(102, 100)
	if !ok || id != "over" {
		t.Fatalf("Lookup = %q, %v; want over, true", id, ok)
	}
	if _, ok := m.Lookup(400, 400); ok {
		t.Fatal("lookup far from any region reported a hit")
	}
}

func TestHitRegionsIncludePointerPadding(t *testing.T) {
	p, _ := newPainter()
	cv := NewSVGCanvas(800, 600)
	set := testSet(t)
	p.Paint(cv, set, Frame{})

	n := set.NodeByID("a")
	cam := camera.New(camera.DefaultConfig(), 800, 600)
	sx, sy := cam.ToScreen(n.X, n.Y)
	// Just outside the painted radius but inside the padded region.
	id, ok := p.Hits().Lookup(sx+n.DisplaySize+2, sy)
	if !ok || id != "a" {
		t.Fatalf("padded hit lookup = %q, %v; want a, true", id, ok)
	}
}

func TestASCIICanvasDrawsGridWithNodesAndEdges(t *testing.T) {
	p, _ := newPainter()
	cv := NewASCIICanvas(800, 600, 80, 24)
	p.Paint(cv, testSet(t), Frame{})
	out := cv.String()

	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 24 {
		t.Fatalf("grid has wrong row count:\n%s", out)
	}
	if !strings.ContainsAny(out, "oO@") {
		t.Fatalf("no node glyphs in output:\n%s", out)
	}
	if !strings.Contains(out, ".") {
		t.Fatalf("no edge rasterization in output:\n%s", out)
	}
	if !strings.Contains(out, "Alpha") {
		t.Fatalf("label missing from output:\n%s", out)
	}
}

func TestEscapeXML(t *testing.T) {
	got := escapeXML(`a<b & "c"`)
	want := "a&lt;b &amp; &quot;c&quot;"
	if got != want {
		t.Fatalf("escapeXML = %q, want %q", got, want)
	}
}
