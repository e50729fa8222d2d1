// Package interact turns raw pointer events into node clicks and drags.
package interact

import (
	"math"

	"github.com/msalah0e/canopy/internal/graph"
)

// clickSlop is the pointer travel, in screen pixels, under which a
// press-release pair still counts as a click.
const clickSlop = 4

// dragAlpha is the energy injected when a drag grabs a node.
const dragAlpha = 0.3

// HitTester resolves a screen point to the topmost node under it.
type HitTester interface {
	Lookup(x, y float64) (string, bool)
}

// Handler consumes pointer events for one viewport. All callbacks are
// optional; a nil field disables that behavior.
type Handler struct {
	Hits    HitTester
	ToWorld func(sx, sy float64) (wx, wy float64)
	Resolve func(id string) *graph.RenderNode
	Reheat  func(alpha float64)

	OnNodeClick       func(id string)
	OnBackgroundClick func()

	drag *dragState
}

type dragState struct {
	node           *graph.RenderNode
	startX, startY float64
	wasPinned      bool
	moved          bool
}

// Dragging reports whether a node is currently grabbed.
func (h *Handler) Dragging() bool { return h.drag != nil }

// PointerDown begins a drag when a node is under the pointer. Grabbing
// pins the node so the simulation stops pushing it, and reheats the
// layout so neighbors react while it moves.
func (h *Handler) PointerDown(sx, sy float64) {
	if h.Hits == nil {
		return
	}
	id, ok := h.Hits.Lookup(sx, sy)
	if !ok {
		return
	}
	n := h.Resolve(id)
	if n == nil {
		return
	}
	h.drag = &dragState{node: n, startX: sx, startY: sy, wasPinned: n.Pinned()}
	n.Pin()
	if h.Reheat != nil {
		h.Reheat(dragAlpha)
	}
}

// PointerMove carries a grabbed node to the pointer's world position.
func (h *Handler) PointerMove(sx, sy float64) {
	if h.drag == nil {
		return
	}
	if math.Abs(sx-h.drag.startX) > clickSlop || math.Abs(sy-h.drag.startY) > clickSlop {
		h.drag.moved = true
	}
	wx, wy := h.ToWorld(sx, sy)
	h.drag.node.X, h.drag.node.Y = wx, wy
	h.drag.node.Pin()
}

// PointerUp ends the gesture. A release without meaningful movement is a
// click; a real drag leaves the node pinned where it was dropped.
func (h *Handler) PointerUp(sx, sy float64) {
	d := h.drag
	h.drag = nil
	if d == nil {
		if h.Hits == nil {
			return
		}
		if _, ok := h.Hits.Lookup(sx, sy); !ok && h.OnBackgroundClick != nil {
			h.OnBackgroundClick()
		}
		return
	}
	if !d.moved {
		if !d.wasPinned {
			d.node.Unpin()
		}
		if h.OnNodeClick != nil {
			h.OnNodeClick(d.node.ID)
		}
	}
}
