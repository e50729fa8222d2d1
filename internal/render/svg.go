package render

import (
	"bytes"
	"fmt"
	"strings"
)

// SVGCanvas accumulates drawing operations as an SVG document.
type SVGCanvas struct {
	width  float64
	height float64
	buf    bytes.Buffer
}

// NewSVGCanvas returns an empty canvas of the given pixel size.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	c := &SVGCanvas{width: width, height: height}
	fmt.Fprintf(&c.buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
`, width, height, width, height)
	return c
}

func (c *SVGCanvas) Size() (float64, float64) { return c.width, c.height }

func (c *SVGCanvas) Clear(color string) {
	fmt.Fprintf(&c.buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", color)
}

func (c *SVGCanvas) FillCircle(x, y, r float64, color string, alpha float64) {
	fmt.Fprintf(&c.buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		x, y, r, color, opacityAttr("fill-opacity", alpha))
}

func (c *SVGCanvas) StrokeCircle(x, y, r, width float64, color string, alpha float64) {
	fmt.Fprintf(&c.buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		x, y, r, color, width, opacityAttr("stroke-opacity", alpha))
}

func (c *SVGCanvas) Line(x1, y1, x2, y2, width float64, color string, alpha float64) {
	fmt.Fprintf(&c.buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		x1, y1, x2, y2, color, width, opacityAttr("stroke-opacity", alpha))
}

func (c *SVGCanvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, color string, alpha float64) {
	fmt.Fprintf(&c.buf, `<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"%s/>`+"\n",
		x1, y1, x2, y2, x3, y3, color, opacityAttr("fill-opacity", alpha))
}

func (c *SVGCanvas) Text(s string, x, y, size float64, color string, alpha float64) {
	fmt.Fprintf(&c.buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s"%s text-anchor="middle">%s</text>`+"\n",
		x, y, size, color, opacityAttr("fill-opacity", alpha), escapeXML(s))
}

// Bytes closes the document and returns the full SVG.
func (c *SVGCanvas) Bytes() []byte {
	out := make([]byte, 0, c.buf.Len()+8)
	out = append(out, c.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

func opacityAttr(name string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, name, alpha)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
