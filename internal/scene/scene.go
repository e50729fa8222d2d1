// Package scene wires the layout engine, camera, painter, and pointer
// handling into one stateful viewport.
package scene

import (
	"time"

	"github.com/msalah0e/canopy/internal/camera"
	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/graph"
	"github.com/msalah0e/canopy/internal/interact"
	"github.com/msalah0e/canopy/internal/render"
	"github.com/msalah0e/canopy/internal/sim"
)

// swapThreshold is the node-count delta past which an incoming payload
// counts as a new dataset rather than an incremental update.
const swapThreshold = 5

// fitState is the one-shot auto-fit latch. A dataset swap re-arms it;
// the engine-stop callback consumes it at most once per dataset.
type fitState int

const (
	fitIdle    fitState = iota // nothing loaded yet
	fitPending                 // fit owed once the layout settles
	fitDone                    // consumed for the current dataset
)

// Scene owns one viewport over a knowledge graph. Frames advance the
// simulation one tick, step camera animations, and repaint.
type Scene struct {
	cfg     config.Config
	cam     *camera.Controller
	painter *render.Painter
	pointer *interact.Handler

	engine *sim.Engine
	set    *graph.RenderSet

	frame render.Frame
	fit   fitState

	// OnNodeClick fires when a pointer gesture resolves to a node click.
	OnNodeClick func(id string)
}

// New returns an empty scene over a viewport of the given pixel size.
func New(cfg config.Config, width, height float64) *Scene {
	s := &Scene{cfg: cfg}
	s.cam = camera.New(camera.Config{
		MinZoom:      cfg.Camera.MinZoom,
		MaxZoom:      cfg.Camera.MaxZoom,
		ZoomStep:     cfg.Camera.ZoomStep,
		FitPadding:   cfg.Camera.FitPadding,
		FocusZoom:    cfg.Camera.FocusZoom,
		AnimDuration: time.Duration(cfg.Camera.AnimMillis) * time.Millisecond,
	}, width, height)
	s.painter = render.New(cfg.Render, s.cam)
	s.pointer = &interact.Handler{
		Hits:    s.painter.Hits(),
		ToWorld: s.cam.ToWorld,
		Resolve: s.resolve,
		Reheat:  s.reheat,
		OnNodeClick: func(id string) {
			s.frame.SelectedID = id
			if s.OnNodeClick != nil {
				s.OnNodeClick(id)
			}
		},
		OnBackgroundClick: func() { s.frame.SelectedID = "" },
	}
	return s
}

// Load replaces or updates the scene's dataset. A payload whose node
// count moved by more than a few nodes, or that fills a previously
// empty scene, is a dataset swap: the old simulation is discarded, a
// fresh layout is warmed up off-screen, and the one-shot auto fit is
// re-armed. Smaller deltas keep existing positions and the camera
// where they are.
func (s *Scene) Load(p graph.Payload) {
	prevCount := 0
	if s.set != nil {
		prevCount = len(s.set.Nodes)
	}

	sizing := graph.Sizing{MinSize: s.cfg.Render.MinNodeSize, MaxSize: s.cfg.Render.MaxNodeSize}
	next := graph.Build(p, s.set, sizing)

	delta := len(next.Nodes) - prevCount
	if delta < 0 {
		delta = -delta
	}
	swap := s.set == nil || delta > swapThreshold || (prevCount == 0 && len(next.Nodes) > 0)

	if swap {
		// Rebuild without carried positions so stale coordinates from
		// the outgoing dataset cannot leak into the new layout.
		next = graph.Build(p, nil, sizing)
		s.set = next
		s.engine = sim.New(next, s.physics())
		s.engine.OnStop(s.autoFit)
		// Arm before warm-up: a generous tick budget can run the engine
		// to a stop inside Warmup, firing the callback immediately.
		s.fit = fitPending
		s.engine.Warmup()
	} else {
		s.set = next
		s.engine = sim.New(next, s.physics())
		s.engine.OnStop(s.autoFit)
	}

	s.cam.Attach(s.engine.Bounds, s.resolve)
	if s.frame.SelectedID != "" && s.set.NodeByID(s.frame.SelectedID) == nil {
		s.frame.SelectedID = ""
	}
}

// Frame advances the scene by dt and paints it. One simulation tick per
// frame while the layout is still hot.
func (s *Scene) Frame(cv render.Canvas, dt time.Duration) {
	if s.engine != nil && !s.engine.Stopped() {
		s.engine.Tick()
	}
	s.cam.Step(dt)
	s.painter.Paint(cv, s.set, s.frame)
}

// Settle runs the simulation to rest and completes camera animations.
// One-shot hosts use it instead of frame stepping.
func (s *Scene) Settle() {
	if s.engine != nil {
		s.engine.Settle()
	}
	s.cam.Finish()
}

// Freeze adopts the current node positions as the settled layout, fires
// the pending auto fit, and completes camera animations.
func (s *Scene) Freeze() {
	if s.engine != nil {
		s.engine.Freeze()
	}
	s.cam.Finish()
}

// Camera exposes the imperative camera controls.
func (s *Scene) Camera() camera.Commander { return s.cam }

// Pointer exposes the pointer event surface.
func (s *Scene) Pointer() *interact.Handler { return s.pointer }

// Set returns the live render set, nil before the first Load.
func (s *Scene) Set() *graph.RenderSet { return s.set }

// SelectNode sets the highlighted node. An empty id clears it.
func (s *Scene) SelectNode(id string) { s.frame.SelectedID = id }

// SelectedNode returns the currently highlighted node id.
func (s *Scene) SelectedNode() string { return s.frame.SelectedID }

// SetSearch sets the term whose matches are highlighted.
func (s *Scene) SetSearch(term string) { s.frame.SearchTerm = term }

// FitArmed reports whether the one-shot auto fit is still pending.
func (s *Scene) FitArmed() bool { return s.fit == fitPending }

func (s *Scene) autoFit() {
	if s.fit != fitPending {
		return
	}
	s.fit = fitDone
	s.cam.FitView()
}

func (s *Scene) resolve(id string) *graph.RenderNode {
	if s.set == nil {
		return nil
	}
	return s.set.NodeByID(id)
}

func (s *Scene) reheat(alpha float64) {
	if s.engine != nil {
		s.engine.Reheat(alpha)
	}
}

func (s *Scene) physics() sim.Config {
	return sim.Config{
		Repulsion:     s.cfg.Physics.Repulsion,
		LinkDistance:  s.cfg.Physics.LinkDistance,
		LinkStiffness: s.cfg.Physics.LinkStiffness,
		Centering:     s.cfg.Physics.Centering,
		Damping:       s.cfg.Physics.Damping,
		CollidePad:    s.cfg.Physics.CollidePad,
		WarmupTicks:   s.cfg.Physics.WarmupTicks,
		CooldownTicks: s.cfg.Physics.CooldownTicks,
	}
}
