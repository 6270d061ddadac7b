package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a grid of glyphs with a foreground colour per cell.
type canvas struct {
	width  int
	height int
	cells  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.cells = make([][]rune, height)
	c.colors = make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		c.cells[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			c.cells[y][x] = ' '
			c.colors[y][x] = colorBackground
		}
	}
	return c
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *canvas) set(x, y int, r rune, color lipgloss.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y][x] = r
	c.colors[y][x] = color
}

func (c *canvas) get(x, y int) rune {
	if !c.inBounds(x, y) {
		return 0
	}
	return c.cells[y][x]
}

// text writes s left to right from (x, y), clipped to the canvas.
func (c *canvas) text(x, y int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, color)
	}
}

// line draws a straight segment with Bresenham's algorithm. Endpoints may
// lie off the canvas; only the visible cells are written.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	// Segments far off screen would still be walked cell by cell; skip
	// those that cannot touch the canvas.
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= c.width && x1 >= c.width) || (y0 >= c.height && y1 >= c.height) {
		return
	}

	err := dx + dy
	for {
		c.set(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Render returns the canvas with colours, grouping runs of one colour into
// a single styled span.
func (c *canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.colors[y][x] == c.colors[y][start] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.colors[y][start])
			b.WriteString(style.Render(string(c.cells[y][start:x])))
			start = x
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Plain returns the canvas without colour, with trailing spaces trimmed.
func (c *canvas) Plain() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		lines[y] = strings.TrimRight(string(c.cells[y]), " ")
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
