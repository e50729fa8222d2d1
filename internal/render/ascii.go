package render

import (
	"strings"

	"github.com/fatih/color"
)

// ASCIICanvas approximates the drawing surface as a character grid for
// terminal output. Pixel coordinates are scaled down to cells; circles
// collapse to a single glyph sized by radius.
type ASCIICanvas struct {
	width  float64
	height float64
	cols   int
	rows   int
	cells  [][]rune
	tints  [][]*color.Color
	// Colorize enables ANSI colors in String output.
	Colorize bool
}

// NewASCIICanvas returns a grid canvas mapping a width x height pixel
// space onto cols x rows characters.
func NewASCIICanvas(width, height float64, cols, rows int) *ASCIICanvas {
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	c := &ASCIICanvas{width: width, height: height, cols: cols, rows: rows}
	c.cells = make([][]rune, rows)
	c.tints = make([][]*color.Color, rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
		c.tints[i] = make([]*color.Color, cols)
	}
	c.Clear("")
	return c
}

func (c *ASCIICanvas) Size() (float64, float64) { return c.width, c.height }

func (c *ASCIICanvas) Clear(string) {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = ' '
			c.tints[i][j] = nil
		}
	}
}

func (c *ASCIICanvas) FillCircle(x, y, r float64, col string, alpha float64) {
	glyph := 'o'
	switch {
	case r >= 14:
		glyph = '@'
	case r >= 8:
		glyph = 'O'
	}
	c.plot(c.cellX(x), c.cellY(y), glyph, col)
}

func (c *ASCIICanvas) StrokeCircle(x, y, r, width float64, col string, alpha float64) {
	// Outlines collapse into the fill glyph at this resolution.
}

func (c *ASCIICanvas) Line(x1, y1, x2, y2, width float64, col string, alpha float64) {
	c.drawLine(c.cellX(x1), c.cellY(y1), c.cellX(x2), c.cellY(y2), col)
}

func (c *ASCIICanvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col string, alpha float64) {
	c.plot(c.cellX(x1), c.cellY(y1), '>', col)
}

func (c *ASCIICanvas) Text(s string, x, y, size float64, col string, alpha float64) {
	runes := []rune(s)
	start := c.cellX(x) - len(runes)/2
	row := c.cellY(y)
	for i, r := range runes {
		c.plot(start+i, row, r, col)
	}
}

// String renders the grid, one row per line.
func (c *ASCIICanvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		for j, r := range row {
			if c.Colorize && c.tints[i][j] != nil && r != ' ' {
				b.WriteString(c.tints[i][j].Sprint(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (c *ASCIICanvas) cellX(x float64) int { return int(x / c.width * float64(c.cols)) }
func (c *ASCIICanvas) cellY(y float64) int { return int(y / c.height * float64(c.rows)) }

func (c *ASCIICanvas) plot(x, y int, r rune, col string) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.cells[y][x] = r
	c.tints[y][x] = tintFor(col)
}

// drawLine rasterizes with Bresenham, never overwriting node glyphs.
func (c *ASCIICanvas) drawLine(x1, y1, x2, y2 int, col string) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy
	for {
		if x1 >= 0 && x1 < c.cols && y1 >= 0 && y1 < c.rows && c.cells[y1][x1] == ' ' {
			c.plot(x1, y1, '.', col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x1 == x2 {
				return
			}
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			if y1 == y2 {
				return
			}
			err += dx
			y1 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// tintFor picks the nearest ANSI color for a hex tint by its dominant
// channel. Unknown strings come out white.
func tintFor(hex string) *color.Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return color.New(color.FgWhite)
	}
	switch {
	case r > 200 && g > 130 && b < 100:
		return color.New(color.FgYellow)
	case r >= g && r >= b:
		return color.New(color.FgRed)
	case g >= r && g >= b:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgBlue)
	}
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v := func(s string) (uint8, bool) {
		var n uint8
		for i := 0; i < len(s); i++ {
			c := s[i]
			switch {
			case c >= '0' && c <= '9':
				n = n*16 + c - '0'
			case c >= 'a' && c <= 'f':
				n = n*16 + c - 'a' + 10
			case c >= 'A' && c <= 'F':
				n = n*16 + c - 'A' + 10
			default:
				return 0, false
			}
		}
		return n, true
	}
	var okR, okG, okB bool
	r, okR = v(hex[0:2])
	g, okG = v(hex[2:4])
	b, okB = v(hex[4:6])
	return r, g, b, okR && okG && okB
}
