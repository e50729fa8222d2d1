// Package camera owns the viewport: a zoom scalar and a world-space
// center, plus the imperative operations toolbar controls drive.
package camera

import (
	"math"
	"time"

	"github.com/msalah0e/canopy/internal/graph"
)

// Commander is the imperative handle handed to the surrounding UI. The
// parent holds this interface rather than the concrete controller.
type Commander interface {
	ZoomIn()
	ZoomOut()
	FitView()
	ResetView()
	CenterOnNode(id string)
}

// Config holds camera tuning.
type Config struct {
	MinZoom      float64
	MaxZoom      float64
	ZoomStep     float64 // multiplier applied by ZoomIn/ZoomOut
	FitPadding   float64 // pixels kept clear around a fitted graph
	FocusZoom    float64 // zoom applied by CenterOnNode
	AnimDuration time.Duration
}

// DefaultConfig matches the stock tuning.
func DefaultConfig() Config {
	return Config{
		MinZoom:      0.1,
		MaxZoom:      5,
		ZoomStep:     1.25,
		FitPadding:   40,
		FocusZoom:    2.5,
		AnimDuration: 400 * time.Millisecond,
	}
}

// BoundsFunc reports the current world bounding box of the layout.
type BoundsFunc func() (minX, minY, maxX, maxY float64, ok bool)

// ResolveFunc finds a live simulation node by id, nil if absent.
type ResolveFunc func(id string) *graph.RenderNode

// pose is a camera state an animation interpolates between.
type pose struct {
	zoom, cx, cy float64
}

// anim interpolates from a captured start pose to a target over a fixed
// duration. A second camera call starts its own animation rather than
// canceling the first; the later one wins each frame it runs.
type anim struct {
	from, to pose
	elapsed  time.Duration
	duration time.Duration
}

// Controller implements Commander over live layout state.
type Controller struct {
	cfg     Config
	width   float64
	height  float64
	cur     pose
	bounds  BoundsFunc
	resolve ResolveFunc
	anims   []*anim
}

// New returns a controller over a viewport of the given pixel size.
func New(cfg Config, width, height float64) *Controller {
	return &Controller{
		cfg:    cfg,
		width:  width,
		height: height,
		cur:    pose{zoom: 1},
	}
}

// Attach wires the controller to the live simulation. Both funcs may be
// swapped when a new dataset supersedes the old one.
func (c *Controller) Attach(bounds BoundsFunc, resolve ResolveFunc) {
	c.bounds = bounds
	c.resolve = resolve
}

// Resize updates the viewport dimensions.
func (c *Controller) Resize(width, height float64) {
	c.width = width
	c.height = height
}

// Zoom returns the current zoom scalar.
func (c *Controller) Zoom() float64 { return c.cur.zoom }

// Center returns the current world-space viewport center.
func (c *Controller) Center() (x, y float64) { return c.cur.cx, c.cur.cy }

// ToScreen converts world coordinates to screen pixels.
func (c *Controller) ToScreen(wx, wy float64) (sx, sy float64) {
	return (wx-c.cur.cx)*c.cur.zoom + c.width/2, (wy-c.cur.cy)*c.cur.zoom + c.height/2
}

// ToWorld converts screen pixels to world coordinates.
func (c *Controller) ToWorld(sx, sy float64) (wx, wy float64) {
	return (sx-c.width/2)/c.cur.zoom + c.cur.cx, (sy-c.height/2)/c.cur.zoom + c.cur.cy
}

// ZoomIn multiplies zoom by the fixed step, animated.
func (c *Controller) ZoomIn() {
	c.animateTo(pose{zoom: c.clampZoom(c.cur.zoom * c.cfg.ZoomStep), cx: c.cur.cx, cy: c.cur.cy})
}

// ZoomOut divides zoom by the fixed step, animated.
func (c *Controller) ZoomOut() {
	c.animateTo(pose{zoom: c.clampZoom(c.cur.zoom / c.cfg.ZoomStep), cx: c.cur.cx, cy: c.cur.cy})
}

// FitView animates zoom and pan so the whole layout is visible inside the
// configured padding. No-op when no node has a position yet.
func (c *Controller) FitView() {
	target, ok := c.fitPose()
	if !ok {
		return
	}
	c.animateTo(target)
}

// ResetView is FitView followed by re-centering on the origin.
func (c *Controller) ResetView() {
	target, ok := c.fitPose()
	if !ok {
		return
	}
	target.cx, target.cy = 0, 0
	c.animateTo(target)
}

// CenterOnNode animates the viewport onto a live node at the fixed focus
// zoom. Silently a no-op when the node cannot be found — a caller-side
// condition, not a fault.
func (c *Controller) CenterOnNode(id string) {
	if c.resolve == nil {
		return
	}
	n := c.resolve(id)
	if n == nil || !n.Positioned() {
		return
	}
	c.animateTo(pose{zoom: c.clampZoom(c.cfg.FocusZoom), cx: n.X, cy: n.Y})
}

// Step advances all in-flight animations by dt. Called once per host
// frame; finished animations are dropped.
func (c *Controller) Step(dt time.Duration) {
	if len(c.anims) == 0 {
		return
	}
	live := c.anims[:0]
	for _, a := range c.anims {
		a.elapsed += dt
		t := 1.0
		if a.duration > 0 && a.elapsed < a.duration {
			t = float64(a.elapsed) / float64(a.duration)
			live = append(live, a)
		}
		t = easeInOut(t)
		c.cur = pose{
			zoom: a.from.zoom + (a.to.zoom-a.from.zoom)*t,
			cx:   a.from.cx + (a.to.cx-a.from.cx)*t,
			cy:   a.from.cy + (a.to.cy-a.from.cy)*t,
		}
	}
	c.anims = live
}

// Finish completes every in-flight animation immediately. Non-interactive
// hosts (one-shot renders, tests) use this instead of frame stepping.
func (c *Controller) Finish() {
	for _, a := range c.anims {
		c.cur = a.to
	}
	c.anims = c.anims[:0]
}

func (c *Controller) animateTo(target pose) {
	c.anims = append(c.anims, &anim{from: c.cur, to: target, duration: c.cfg.AnimDuration})
}

func (c *Controller) fitPose() (pose, bool) {
	if c.bounds == nil {
		return pose{}, false
	}
	minX, minY, maxX, maxY, ok := c.bounds()
	if !ok {
		return pose{}, false
	}
	w := maxX - minX
	h := maxY - minY
	zoom := c.cfg.MaxZoom
	if w > 0 || h > 0 {
		zx := (c.width - 2*c.cfg.FitPadding) / math.Max(w, 1e-9)
		zy := (c.height - 2*c.cfg.FitPadding) / math.Max(h, 1e-9)
		zoom = math.Min(zx, zy)
	}
	return pose{
		zoom: c.clampZoom(zoom),
		cx:   (minX + maxX) / 2,
		cy:   (minY + maxY) / 2,
	}, true
}

func (c *Controller) clampZoom(z float64) float64 {
	return math.Max(c.cfg.MinZoom, math.Min(c.cfg.MaxZoom, z))
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
