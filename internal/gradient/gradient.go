// Package gradient builds piecewise linear color gradients along an axis.
package gradient

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Axis is the segment a gradient runs along.
type Axis struct {
	From, To Point
}

// Horizontal returns the axis from (x0, y) to (x1, y).
func Horizontal(x0, x1, y float64) Axis {
	return Axis{From: Point{x0, y}, To: Point{x1, y}}
}

// Vertical returns the axis from (x, y0) to (x, y1).
func Vertical(x, y0, y1 float64) Axis {
	return Axis{From: Point{x, y0}, To: Point{x, y1}}
}

// Degenerate reports whether the axis has zero length.
func (a Axis) Degenerate() bool {
	return a.From == a.To
}

// Stop is a color at a fraction of the axis.
type Stop struct {
	Offset float64
	Color  colorful.Color
}

// Gradient is an ordered list of stops along an axis, or a flat fill.
// Stops offsets are within [0,1], strictly increasing.
type Gradient struct {
	Axis  Axis
	Stops []Stop
	flat  bool
}

// Flat returns a gradient filling everything with c.
func Flat(c colorful.Color) Gradient {
	return Gradient{Stops: []Stop{{Offset: 1, Color: c}}, flat: true}
}

// Build normalizes stops into a gradient along axis.
//
// Offsets are clamped into [0,1] and raised to their predecessor when they go
// backwards. Adjacent stops landing on the same offset collapse into one, the
// later color winning. A zero-length axis yields a flat fill using the final
// stop's color.
func Build(axis Axis, stops []Stop) Gradient {
	if len(stops) == 0 {
		return Flat(colorful.Color{})
	}
	if axis.Degenerate() {
		return Flat(stops[len(stops)-1].Color)
	}

	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		off := clamp(s.Offset)
		if n := len(out); n > 0 {
			if off < out[n-1].Offset {
				off = out[n-1].Offset
			}
			if off == out[n-1].Offset {
				out[n-1].Color = s.Color
				continue
			}
		}
		out = append(out, Stop{Offset: off, Color: s.Color})
	}
	if len(out) == 1 {
		return Gradient{Axis: axis, Stops: out, flat: true}
	}
	return Gradient{Axis: axis, Stops: out}
}

// Fraction converts a position on a 1D axis running from start to end into an
// offset in [0,1]. A zero-length axis maps everything to 1.
func Fraction(pos, start, end float64) float64 {
	if end == start {
		return 1
	}
	return clamp((pos - start) / (end - start))
}

// IsFlat reports whether the gradient has a single effective color, and
// returns that color.
func (g Gradient) IsFlat() (colorful.Color, bool) {
	if g.flat {
		return g.Stops[len(g.Stops)-1].Color, true
	}
	return colorful.Color{}, false
}

// At samples the gradient at offset t.
func (g Gradient) At(t float64) colorful.Color {
	if c, ok := g.IsFlat(); ok {
		return c
	}
	t = clamp(t)
	first := g.Stops[0]
	if t <= first.Offset {
		return first.Color
	}
	for k := 1; k < len(g.Stops); k++ {
		b := g.Stops[k]
		if t > b.Offset {
			continue
		}
		a := g.Stops[k-1]
		return a.Color.BlendRgb(b.Color, (t-a.Offset)/(b.Offset-a.Offset)).Clamped()
	}
	return g.Stops[len(g.Stops)-1].Color
}

// ColorAt samples the gradient at the projection of p onto its axis.
func (g Gradient) ColorAt(p Point) colorful.Color {
	if c, ok := g.IsFlat(); ok {
		return c
	}
	dx := g.Axis.To.X - g.Axis.From.X
	dy := g.Axis.To.Y - g.Axis.From.Y
	t := ((p.X-g.Axis.From.X)*dx + (p.Y-g.Axis.From.Y)*dy) / (dx*dx + dy*dy)
	return g.At(t)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
