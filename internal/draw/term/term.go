// Package term rasterizes draw operations onto a grid of terminal cells.
// Each cell stands for a CellWidth x CellHeight block of surface pixels and
// is colored with lipgloss when the grid is printed.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/gradient"
)

const (
	glyphDisc  = '█'
	glyphDot   = '●'
	glyphHoriz = '━'
	glyphVert  = '┃'
	glyphDiag  = '•'
)

// Options configures the pixel size of one cell.
type Options struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultOptions matches a typical 8x16 monospace font.
func DefaultOptions() Options {
	return Options{CellWidth: 8, CellHeight: 16}
}

type cell struct {
	r      rune
	color  colorful.Color
	italic bool
	set    bool
	// wide marks the cell covered by the right half of a double-width rune.
	wide bool
}

// Canvas is a draw.Surface backed by a cell grid.
type Canvas struct {
	opts Options
	grid [][]cell
	cols int
}

var _ draw.Surface = (*Canvas)(nil)

// New returns an empty canvas.
func New(opts Options) *Canvas {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		opts = DefaultOptions()
	}
	return &Canvas{opts: opts}
}

// PixelWidth converts a column count to surface pixels.
func (c *Canvas) PixelWidth(columns int) int {
	return int(float64(columns) * c.opts.CellWidth)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, len(c.grid)
}

func (c *Canvas) SetSize(width, height int) {
	c.cols = int(math.Ceil(float64(width) / c.opts.CellWidth))
	rows := int(math.Ceil(float64(height) / c.opts.CellHeight))
	c.grid = make([][]cell, rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.cols)
	}
}

func (c *Canvas) DrawText(x, y float64, text string, style draw.TextStyle) {
	col, row := c.cellOf(x, y-1)
	if row < 0 || row >= len(c.grid) {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			return
		}
		if col >= 0 {
			c.clearWide(row, col+w-1)
			c.grid[row][col] = cell{r: r, color: style.Color, italic: style.Italic, set: true}
			if w == 2 {
				c.grid[row][col+1] = cell{set: true, wide: true}
			}
		}
		col += w
	}
}

func (c *Canvas) FillCircle(x, y, radius float64, col colorful.Color) {
	c.disc(x, y, radius, func(gradient.Point) colorful.Color { return col })
}

func (c *Canvas) FillGradientCircle(x, y, radius float64, g gradient.Gradient) {
	c.disc(x, y, radius, g.ColorAt)
}

func (c *Canvas) StrokeGradientLine(x0, y0, x1, y1, _ float64, g gradient.Gradient) {
	dx, dy := x1-x0, y1-y0
	glyph := glyphDiag
	switch {
	case dy == 0:
		glyph = glyphHoriz
	case dx == 0:
		glyph = glyphVert
	}
	steps := int(math.Ceil(math.Max(math.Abs(dx)/c.opts.CellWidth, math.Abs(dy)/c.opts.CellHeight)))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		p := gradient.Point{X: x0 + t*dx, Y: y0 + t*dy}
		col, row := c.cellOf(p.X, p.Y)
		c.put(col, row, glyph, g.ColorAt(p))
	}
}

// String renders the grid with ANSI colors.
func (c *Canvas) String() string {
	return c.render(true)
}

// Plain renders the grid without colors.
func (c *Canvas) Plain() string {
	return c.render(false)
}

func (c *Canvas) render(colored bool) string {
	lines := make([]string, len(c.grid))
	for i, row := range c.grid {
		var sb strings.Builder
		last := len(row) - 1
		for last >= 0 && !row[last].set {
			last--
		}
		for j := 0; j <= last; {
			start := row[j]
			var run strings.Builder
			k := j
			for ; k <= last && sameStyle(start, row[k]); k++ {
				switch {
				case row[k].wide:
				case row[k].set:
					run.WriteRune(row[k].r)
				default:
					run.WriteByte(' ')
				}
			}
			if colored && start.set {
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(start.color.Hex())).Italic(start.italic)
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			j = k
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	if b.wide {
		return true
	}
	if !a.set || !b.set {
		return a.set == b.set
	}
	return a.color == b.color && a.italic == b.italic
}

func (c *Canvas) disc(x, y, radius float64, colorAt func(gradient.Point) colorful.Color) {
	hit := false
	c0, r0 := c.cellOf(x-radius, y-radius)
	c1, r1 := c.cellOf(x+radius, y+radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			p := c.center(col, row)
			if math.Hypot(p.X-x, p.Y-y) > radius {
				continue
			}
			hit = true
			c.put(col, row, glyphDisc, colorAt(p))
		}
	}
	if !hit {
		col, row := c.cellOf(x, y)
		c.put(col, row, glyphDot, colorAt(gradient.Point{X: x, Y: y}))
	}
}

func (c *Canvas) put(col, row int, r rune, color colorful.Color) {
	if row < 0 || row >= len(c.grid) || col < 0 || col >= c.cols {
		return
	}
	c.clearWide(row, col)
	c.grid[row][col] = cell{r: r, color: color, set: true}
}

// clearWide drops the right half of a double-width rune that follows col,
// since its left half is about to be overwritten.
func (c *Canvas) clearWide(row, col int) {
	if next := col + 1; next < c.cols && c.grid[row][next].wide {
		c.grid[row][next] = cell{}
	}
}

func (c *Canvas) cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / c.opts.CellWidth)), int(math.Floor(y / c.opts.CellHeight))
}

func (c *Canvas) center(col, row int) gradient.Point {
	return gradient.Point{
		X: (float64(col) + 0.5) * c.opts.CellWidth,
		Y: (float64(row) + 0.5) * c.opts.CellHeight,
	}
}
