package render

import (
	"math"
	"strings"

	"github.com/msalah0e/canopy/internal/camera"
	"github.com/msalah0e/canopy/internal/config"
	"github.com/msalah0e/canopy/internal/graph"
)

const (
	labelColor     = "#E5E7EB"
	edgeAlpha      = 0.6
	arrowAlpha     = 0.85
	glowAlpha      = 0.35
	glowPad        = 6
	pointerPad     = 4
	selectedBudget = 24
	defaultBudget  = 12

	selectedBorderWidth = 2.0
)

// Frame carries the per-frame highlight inputs.
type Frame struct {
	SelectedID string
	SearchTerm string
}

// Painter draws one frame of a laid-out graph through a camera and
// rebuilds the pointer hit map as it goes.
type Painter struct {
	cfg  config.RenderConfig
	cam  *camera.Controller
	hits HitMap
}

// New returns a painter bound to a camera.
func New(cfg config.RenderConfig, cam *camera.Controller) *Painter {
	return &Painter{cfg: cfg, cam: cam}
}

// Hits exposes the pointer regions of the most recent frame.
func (p *Painter) Hits() *HitMap { return &p.hits }

// Paint draws edges then nodes then labels onto the canvas. Records
// without a seeded position are skipped for this frame only.
func (p *Painter) Paint(cv Canvas, set *graph.RenderSet, f Frame) {
	cv.Clear(p.cfg.Background)
	p.hits.Reset()
	if set == nil {
		return
	}

	zoom := p.cam.Zoom()
	for _, e := range set.Edges {
		p.paintEdge(cv, e, f, zoom)
	}
	for _, n := range set.Nodes {
		p.paintNode(cv, n, f, zoom)
	}
}

func (p *Painter) paintEdge(cv Canvas, e *graph.RenderEdge, f Frame, zoom float64) {
	if !e.Source.Positioned() || !e.Target.Positioned() {
		return
	}
	sx, sy := p.cam.ToScreen(e.Source.X, e.Source.Y)
	tx, ty := p.cam.ToScreen(e.Target.X, e.Target.Y)
	dx, dy := tx-sx, ty-sy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	ux, uy := dx/dist, dy/dist

	color := e.DisplayColor
	if f.SelectedID != "" && (e.Source.ID == f.SelectedID || e.Target.ID == f.SelectedID) {
		color = graph.SelectedAccent
	}

	// Pull the line back so the arrowhead tip rests on the target rim.
	tr := p.paintSize(e.Target, f) * zoom
	tipX, tipY := tx-ux*tr, ty-uy*tr
	cv.Line(sx, sy, tipX, tipY, e.DisplayWidth, color, edgeAlpha)

	arrowLen := 4 + 2*e.DisplayWidth
	baseX, baseY := tipX-ux*arrowLen, tipY-uy*arrowLen
	half := arrowLen / 2
	px, py := -uy, ux
	cv.FillTriangle(
		tipX, tipY,
		baseX+px*half, baseY+py*half,
		baseX-px*half, baseY-py*half,
		color, arrowAlpha,
	)
}

func (p *Painter) paintNode(cv Canvas, n *graph.RenderNode, f Frame, zoom float64) {
	if !n.Positioned() {
		return
	}
	sx, sy := p.cam.ToScreen(n.X, n.Y)
	r := p.paintSize(n, f) * zoom

	selected := n.ID == f.SelectedID
	hit := matchesSearch(n, f.SearchTerm)
	if selected {
		cv.FillCircle(sx, sy, r+glowPad, graph.SelectedGlow, glowAlpha)
	} else if hit {
		cv.FillCircle(sx, sy, r+glowPad, graph.SearchGlow, glowAlpha)
	}

	cv.FillCircle(sx, sy, r, n.DisplayColor, 1)
	border, borderWidth := graph.DefaultBorder, 1.0
	if selected {
		border, borderWidth = graph.SelectedAccent, selectedBorderWidth
	}
	cv.StrokeCircle(sx, sy, r, borderWidth, border, 1)

	if p.cfg.ShowLabels {
		font := math.Max(p.cfg.MinFontSize, math.Min(p.cfg.MaxFontSize, 0.9*r))
		budget := defaultBudget
		if selected {
			budget = selectedBudget
		}
		label := graph.TruncateLabel(n.DisplayLabel(), budget)
		if label != "" {
			cv.Text(label, sx, sy+r+font, font, labelColor, 1)
		}
	}

	p.hits.Add(n.ID, sx, sy, r+pointerPad)
}

// paintSize is the on-screen world radius of a node once highlight
// overrides apply.
func (p *Painter) paintSize(n *graph.RenderNode, f Frame) float64 {
	switch {
	case n.ID == f.SelectedID:
		return p.cfg.SelectedSize
	case matchesSearch(n, f.SearchTerm):
		return p.cfg.SearchHitSize
	default:
		return n.DisplaySize
	}
}

func matchesSearch(n *graph.RenderNode, term string) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(n.Label), term) ||
		strings.Contains(strings.ToLower(n.ID), term)
}
