// Package render paints a laid-out graph onto a drawing surface and
// records the pointer-sensitive regions the painter produced.
package render

// Canvas is the drawing surface the painter targets. Coordinates are
// screen pixels; alpha is 0..1 with 1 fully opaque.
type Canvas interface {
	Size() (width, height float64)
	Clear(color string)
	FillCircle(x, y, r float64, color string, alpha float64)
	StrokeCircle(x, y, r, width float64, color string, alpha float64)
	Line(x1, y1, x2, y2, width float64, color string, alpha float64)
	FillTriangle(x1, y1, x2, y2, x3, y3 float64, color string, alpha float64)
	// Text draws a horizontally centered string at the given baseline.
	Text(s string, x, y, size float64, color string, alpha float64)
}

type hitRegion struct {
	id      string
	x, y, r float64
}

// HitMap collects the circular pointer regions of one painted frame.
// Regions are recorded in paint order, so a lookup prefers the topmost
// (last painted) node when regions overlap.
type HitMap struct {
	regions []hitRegion
}

// Reset clears the map for a new frame.
func (m *HitMap) Reset() {
	m.regions = m.regions[:0]
}

// Add records a pointer region for a node.
func (m *HitMap) Add(id string, x, y, r float64) {
	m.regions = append(m.regions, hitRegion{id: id, x: x, y: y, r: r})
}

// Lookup returns the topmost node under a screen point.
func (m *HitMap) Lookup(x, y float64) (string, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		h := m.regions[i]
		dx, dy := x-h.x, y-h.y
		if dx*dx+dy*dy <= h.r*h.r {
			return h.id, true
		}
	}
	return "", false
}

// Len reports the number of recorded regions.
func (m *HitMap) Len() int { return len(m.regions) }
