package sim

import (
	"fmt"
	"math"
	"testing"

	"github.com/msalah0e/canopy/internal/graph"
)

func chain(n int) *graph.RenderSet {
	var p graph.Payload
	for i := 0; i < n; i++ {
		p.Nodes = append(p.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 1; i < n; i++ {
		p.Edges = append(p.Edges, graph.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: fmt.Sprintf("n%d", i-1),
			Target: fmt.Sprintf("n%d", i),
		})
	}
	return graph.Build(p, nil, graph.DefaultSizing)
}

func TestNewSeedsAllNodes(t *testing.T) {
	set := chain(12)
	New(set, DefaultConfig())
	seen := map[[2]float64]bool{}
	for _, n := range set.Nodes {
		if !n.Positioned() {
			t.Fatalf("node %s not seeded", n.ID)
		}
		key := [2]float64{n.X, n.Y}
		if seen[key] {
			t.Fatalf("two nodes seeded at the same point %v", key)
		}
		seen[key] = true
	}
}

func TestNewKeepsExistingPositions(t *testing.T) {
	set := chain(3)
	n := set.Nodes[0]
	n.X, n.Y = 123, -45
	New(set, DefaultConfig())
	if n.X != 123 || n.Y != -45 {
		t.Fatalf("pre-positioned node moved to (%v, %v)", n.X, n.Y)
	}
}

func TestSettleStopsAndStaysFinite(t *testing.T) {
	set := chain(10)
	e := New(set, DefaultConfig())
	e.Settle()
	if !e.Stopped() {
		t.Fatal("engine did not stop")
	}
	if e.Alpha() >= 0.001 && e.Alpha() != 0 {
		// Forced stop by tick budget is also fine; energy must not grow.
		t.Logf("stopped on tick budget at alpha %v", e.Alpha())
	}
	for _, n := range set.Nodes {
		if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
			t.Fatalf("node %s diverged to (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

func TestSettleEmptySetTerminates(t *testing.T) {
	e := New(graph.Build(graph.Payload{}, nil, graph.DefaultSizing), DefaultConfig())
	e.Settle()
	if !e.Stopped() {
		t.Fatal("empty engine never stopped")
	}
}

func TestLinkedNodesEndNearRestLength(t *testing.T) {
	set := chain(2)
	e := New(set, DefaultConfig())
	e.Settle()
	a, b := set.Nodes[0], set.Nodes[1]
	d := math.Hypot(b.X-a.X, b.Y-a.Y)
	// The spring pulls toward the rest length while repulsion pushes out;
	// the pair should land in the same order of magnitude.
	if d < 20 || d > 600 {
		t.Fatalf("settled link distance %v far from rest length", d)
	}
}

func TestRepulsionSeparatesUnlinkedNodes(t *testing.T) {
	set := chain(6)
	e := New(set, DefaultConfig())
	e.Settle()
	for i, a := range set.Nodes {
		for _, b := range set.Nodes[i+1:] {
			d := math.Hypot(b.X-a.X, b.Y-a.Y)
			min := a.DisplaySize + b.DisplaySize
			if d < min-1e-6 {
				t.Fatalf("%s and %s overlap: distance %v < %v", a.ID, b.ID, d, min)
			}
		}
	}
}

func TestPinnedNodeHoldsPositionAndExertsForce(t *testing.T) {
	set := chain(2)
	e := New(set, DefaultConfig())
	pinned := set.Nodes[0]
	pinned.X, pinned.Y = 0, 0
	pinned.Pin()
	other := set.Nodes[1]
	other.X, other.Y = 1, 0
	startOther := other.X

	for i := 0; i < 50; i++ {
		e.Tick()
	}
	if pinned.X != 0 || pinned.Y != 0 {
		t.Fatalf("pinned node moved to (%v, %v)", pinned.X, pinned.Y)
	}
	if other.X == startOther && other.Y == 0 {
		t.Fatal("free node felt no force from the pinned one")
	}
}

func TestReheatRestartsASettledEngine(t *testing.T) {
	set := chain(4)
	e := New(set, DefaultConfig())
	e.Settle()
	if !e.Stopped() {
		t.Fatal("engine not settled")
	}

	e.Reheat(0.3)
	if e.Stopped() {
		t.Fatal("reheat left the engine stopped")
	}
	if e.Alpha() != 0.3 {
		t.Fatalf("alpha = %v, want 0.3", e.Alpha())
	}

	// Reheat never lowers the energy of a hot engine.
	e.Reheat(0.01)
	if e.Alpha() < 0.29 {
		t.Fatalf("reheat lowered alpha to %v", e.Alpha())
	}
}

func TestOnStopFiresOnce(t *testing.T) {
	set := chain(3)
	e := New(set, DefaultConfig())
	fired := 0
	e.OnStop(func() { fired++ })
	e.Settle()
	e.Tick()
	e.Tick()
	if fired != 1 {
		t.Fatalf("stop callback fired %d times, want 1", fired)
	}
}

func TestFreezeStopsWithoutMoving(t *testing.T) {
	set := chain(3)
	e := New(set, DefaultConfig())
	before := map[string][2]float64{}
	for _, n := range set.Nodes {
		before[n.ID] = [2]float64{n.X, n.Y}
	}
	e.Freeze()
	if !e.Stopped() {
		t.Fatal("freeze did not stop the engine")
	}
	for _, n := range set.Nodes {
		if p := before[n.ID]; n.X != p[0] || n.Y != p[1] {
			t.Fatalf("freeze moved node %s", n.ID)
		}
	}
	e.Tick()
	for _, n := range set.Nodes {
		if p := before[n.ID]; n.X != p[0] || n.Y != p[1] {
			t.Fatalf("tick after freeze moved node %s", n.ID)
		}
	}
}

func TestBounds(t *testing.T) {
	set := chain(2)
	e := New(set, DefaultConfig())
	a, b := set.Nodes[0], set.Nodes[1]
	a.X, a.Y = -10, 0
	b.X, b.Y = 10, 5

	minX, minY, maxX, maxY, ok := e.Bounds()
	if !ok {
		t.Fatal("bounds not ok for positioned nodes")
	}
	if minX > -10-a.DisplaySize+1e-9 || maxX < 10+b.DisplaySize-1e-9 {
		t.Fatalf("x bounds [%v, %v] exclude node extents", minX, maxX)
	}
	if minY > -a.DisplaySize+1e-9 || maxY < 5+b.DisplaySize-1e-9 {
		t.Fatalf("y bounds [%v, %v] exclude node extents", minY, maxY)
	}
}

func TestBoundsEmpty(t *testing.T) {
	e := New(graph.Build(graph.Payload{}, nil, graph.DefaultSizing), DefaultConfig())
	if _, _, _, _, ok := e.Bounds(); ok {
		t.Fatal("bounds ok for an empty set")
	}
}
