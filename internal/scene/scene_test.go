package scene

import (
	"fmt"
	"testing"
	"time"

	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/graph"
	"github.com/msalah0e/canopy/internal/render"
)

func payload(n int) graph.Payload {
	var p graph.Payload
	for i := 0; i < n; i++ {
		p.Nodes = append(p.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 1; i < n; i++ {
		p.Edges = append(p.Edges, graph.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: "n0",
			Target: fmt.Sprintf("n%d", i),
		})
	}
	return p
}

func newScene() *Scene {
	return New(*config.Default(), 800, 600)
}

func frames(s *Scene, n int) {
	cv := render.NewASCIICanvas(800, 600, 40, 12)
	for i := 0; i < n; i++ {
		s.Frame(cv, 16*time.Millisecond)
	}
}

func TestLoadSeedsAndWarmsUp(t *testing.T) {
	s := newScene()
	s.Load(payload(6))
	for _, n := range s.Set().Nodes {
		if !n.Positioned() {
			t.Fatalf("node %s not positioned after load", n.ID)
		}
	}
	if !s.FitArmed() {
		t.Fatal("auto fit not armed after first load")
	}
}

func TestAutoFitFiresExactlyOnce(t *testing.T) {
	s := newScene()
	s.Load(payload(6))
	frames(s, 400)
	if s.FitArmed() {
		t.Fatal("auto fit still pending after the layout settled")
	}

	// Once consumed, further settles do not refit.
	s.Camera().ZoomIn()
	s.Settle()
	zoomed := sceneZoom(s)
	frames(s, 50)
	if sceneZoom(s) != zoomed {
		t.Fatal("camera moved again without a dataset swap")
	}
}

func TestGenerousWarmupStillConsumesAutoFit(t *testing.T) {
	cfg := *config.Default()
	// Enough ticks that alpha hits its floor and the engine stops inside
	// the warm-up itself.
	cfg.Physics.WarmupTicks = 400
	s := New(cfg, 800, 600)
	s.Load(payload(6))
	s.Settle()
	frames(s, 10)

	if s.FitArmed() {
		t.Fatal("auto fit never consumed when the engine stopped during warm-up")
	}
	if sceneZoom(s) == 1 {
		t.Fatal("camera still at the initial zoom, fit never applied")
	}
}

func TestMinorUpdateKeepsPositionsAndLatch(t *testing.T) {
	s := newScene()
	s.Load(payload(10))
	s.Settle()
	frames(s, 1)
	if s.FitArmed() {
		t.Fatal("latch not consumed after settle")
	}

	before := map[string][2]float64{}
	for _, n := range s.Set().Nodes {
		before[n.ID] = [2]float64{n.X, n.Y}
	}

	// Two more nodes is within the incremental-update threshold.
	s.Load(payload(12))
	if s.FitArmed() {
		t.Fatal("incremental update re-armed the auto fit")
	}
	for id, pos := range before {
		n := s.Set().NodeByID(id)
		if n == nil {
			t.Fatalf("node %s dropped by incremental update", id)
		}
		if n.X != pos[0] || n.Y != pos[1] {
			t.Fatalf("node %s moved from %v to (%v, %v) on load", id, pos, n.X, n.Y)
		}
	}
}

func TestLargeDeltaSwapsDataset(t *testing.T) {
	s := newScene()
	s.Load(payload(5))
	s.Settle()
	frames(s, 1)

	s.Load(payload(50))
	if !s.FitArmed() {
		t.Fatal("dataset swap did not re-arm the auto fit")
	}
	if len(s.Set().Nodes) != 50 {
		t.Fatalf("set has %d nodes, want 50", len(s.Set().Nodes))
	}
}

func TestSwapClearsStaleSelection(t *testing.T) {
	s := newScene()
	s.Load(payload(8))
	s.SelectNode("n7")

	var q graph.Payload
	for i := 0; i < 30; i++ {
		q.Nodes = append(q.Nodes, graph.Node{ID: fmt.Sprintf("m%d", i)})
	}
	s.Load(q)
	if got := s.SelectedNode(); got != "" {
		t.Fatalf("selection %q survived a dataset swap that dropped the node", got)
	}
}

func TestClickSelectsAndBackgroundClears(t *testing.T) {
	s := newScene()
	s.Load(payload(3))
	s.Settle()
	frames(s, 1)

	var clicked string
	s.OnNodeClick = func(id string) { clicked = id }

	// Find a node's screen position through the painted hit map.
	n := s.Set().Nodes[0]
	sx, sy := s.screenOf(n)
	s.Pointer().PointerDown(sx, sy)
	s.Pointer().PointerUp(sx, sy)

	if clicked != n.ID {
		t.Fatalf("clicked %q, want %q", clicked, n.ID)
	}
	if s.SelectedNode() != n.ID {
		t.Fatalf("selection %q, want %q", s.SelectedNode(), n.ID)
	}

	s.Pointer().PointerDown(-50, -50)
	s.Pointer().PointerUp(-50, -50)
	if s.SelectedNode() != "" {
		t.Fatal("background click did not clear the selection")
	}
}

func sceneZoom(s *Scene) float64 { return s.cam.Zoom() }

func (s *Scene) screenOf(n *graph.RenderNode) (float64, float64) {
	return s.cam.ToScreen(n.X, n.Y)
}
