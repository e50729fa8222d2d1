// Package sim is the force-directed layout engine. It advances one tick
// per host frame over the shared render set, applying charge repulsion,
// elastic link attraction, weak centering, and a pairwise collision floor
// until its energy decays below the stop threshold.
package sim

import (
	"math"

	"github.com/msalah0e/canopy/internal/graph"
)

// Config holds the named force coefficients.
type Config struct {
	Repulsion     float64 // charge strength pushing every pair apart
	LinkDistance  float64 // spring rest length
	LinkStiffness float64 // fraction of displacement applied per tick, keeps links elastic
	Centering     float64 // weak pull toward the origin
	Damping       float64 // velocity retained per tick
	CollidePad    float64 // extra clearance enforced between node rims
	WarmupTicks   int     // ticks run before the first paint
	CooldownTicks int     // tick budget after warm-up before forced settle
}

// DefaultConfig matches the stock tuning. Constants favor visual stability
// over physical accuracy.
func DefaultConfig() Config {
	return Config{
		Repulsion:     2000,
		LinkDistance:  120,
		LinkStiffness: 0.005,
		Centering:     0.001,
		Damping:       0.85,
		CollidePad:    2,
		WarmupTicks:   100,
		CooldownTicks: 300,
	}
}

const (
	alphaDecay = 0.0228
	alphaMin   = 0.001

	// Seed spiral spacing; new nodes land on a phyllotaxis ring so the
	// first ticks start from a spread-out, deterministic arrangement.
	seedRadius = 18
	seedAngle  = 2.399963229728653
)

// Engine drives the simulation for one render set. It is not safe for
// concurrent use; the host frame loop owns it.
type Engine struct {
	cfg    Config
	set    *graph.RenderSet
	alpha  float64
	ticks  int
	done   bool
	onStop func()
}

// New seeds any unpositioned node and returns a hot engine.
func New(set *graph.RenderSet, cfg Config) *Engine {
	e := &Engine{cfg: cfg, set: set, alpha: 1}
	for i, n := range set.Nodes {
		if !n.Positioned() {
			r := seedRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * seedAngle
			n.X = r * math.Cos(a)
			n.Y = r * math.Sin(a)
			n.VX, n.VY = 0, 0
		}
	}
	return e
}

// Set returns the render set the engine is laying out.
func (e *Engine) Set() *graph.RenderSet { return e.set }

// Alpha returns the current simulation energy in [0, 1].
func (e *Engine) Alpha() float64 { return e.alpha }

// Stopped reports whether the engine has settled.
func (e *Engine) Stopped() bool { return e.done }

// OnStop registers the engine-stop callback, fired once per settle.
func (e *Engine) OnStop(fn func()) { e.onStop = fn }

// Reheat raises the energy back up (drag interactions call this so the
// layout adjusts around a moved node) and clears the settled flag.
func (e *Engine) Reheat(alpha float64) {
	if alpha > e.alpha {
		e.alpha = alpha
	}
	e.done = false
	e.ticks = 0
}

// Tick advances the simulation one step. Settled engines no-op.
func (e *Engine) Tick() {
	if e.done {
		return
	}
	if len(e.set.Nodes) == 0 {
		e.stop()
		return
	}

	e.applyCentering()
	e.applyRepulsion()
	e.applyLinks()
	e.integrate()
	e.applyCollision()

	e.alpha *= 1 - alphaDecay
	e.ticks++
	if e.alpha < alphaMin || e.ticks > e.cfg.WarmupTicks+e.cfg.CooldownTicks {
		e.stop()
	}
}

// Warmup runs the pre-paint tick budget so the first frame never shows an
// unconverged layout.
func (e *Engine) Warmup() {
	for i := 0; i < e.cfg.WarmupTicks && !e.done; i++ {
		e.Tick()
	}
}

// Settle ticks until the engine stops. Bounded by the cooldown budget, so
// a single graph load cannot monopolize the host.
func (e *Engine) Settle() {
	for !e.done {
		e.Tick()
	}
}

// Freeze marks the layout settled without further ticks. Hosts restoring
// cached positions use it so those positions are kept as-is.
func (e *Engine) Freeze() {
	if e.done {
		return
	}
	e.alpha = 0
	e.stop()
}

// Bounds returns the bounding box of all positioned nodes. ok is false
// when nothing has a position yet.
func (e *Engine) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range e.set.Nodes {
		if !n.Positioned() {
			continue
		}
		ok = true
		minX = math.Min(minX, n.X-n.DisplaySize)
		minY = math.Min(minY, n.Y-n.DisplaySize)
		maxX = math.Max(maxX, n.X+n.DisplaySize)
		maxY = math.Max(maxY, n.Y+n.DisplaySize)
	}
	return minX, minY, maxX, maxY, ok
}

func (e *Engine) stop() {
	e.done = true
	if e.onStop != nil {
		e.onStop()
	}
}

func (e *Engine) applyCentering() {
	k := e.cfg.Centering * e.alpha
	for _, n := range e.set.Nodes {
		n.VX -= n.X * k
		n.VY -= n.Y * k
	}
}

func (e *Engine) applyRepulsion() {
	nodes := e.set.Nodes
	k := e.cfg.Repulsion * e.alpha
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
			}
			f := k / d2
			a.VX -= dx * f
			a.VY -= dy * f
			b.VX += dx * f
			b.VY += dy * f
		}
	}
}

func (e *Engine) applyLinks() {
	for _, edge := range e.set.Edges {
		a, b := edge.Source, edge.Target
		dx, dy := b.X-a.X, b.Y-a.Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			d = 1
		}
		f := (d - e.cfg.LinkDistance) * e.cfg.LinkStiffness * e.alpha
		fx, fy := dx/d*f, dy/d*f
		a.VX += fx
		a.VY += fy
		b.VX -= fx
		b.VY -= fy
	}
}

// integrate applies damped velocities. Pinned nodes absorb none of the
// accumulated force: they snap to their fixed position and shed velocity,
// while the forces they exerted on neighbors stand.
func (e *Engine) integrate() {
	for _, n := range e.set.Nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= e.cfg.Damping
		n.VY *= e.cfg.Damping
		n.X += n.VX
		n.Y += n.VY
	}
}

// applyCollision enforces a minimum separation between node rims so no
// combination of the other forces can fully overlap two nodes.
func (e *Engine) applyCollision() {
	nodes := e.set.Nodes
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			minDist := a.DisplaySize + b.DisplaySize + e.cfg.CollidePad
			dx, dy := b.X-a.X, b.Y-a.Y
			d := math.Hypot(dx, dy)
			if d >= minDist {
				continue
			}
			if d == 0 {
				// Coincident pair: nudge apart along x.
				dx, d = 1, 1
			}
			overlap := (minDist - d) / 2
			ux, uy := dx/d, dy/d
			if !a.Pinned() {
				a.X -= ux * overlap
				a.Y -= uy * overlap
			}
			if !b.Pinned() {
				b.X += ux * overlap
				b.Y += uy * overlap
			}
		}
	}
}
