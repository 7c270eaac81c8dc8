// Package record implements a draw.Surface that keeps every operation, for
// tests and for the ops debug dump.
package record

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/gradient"
)

// Kind names a drawing operation.
type Kind string

const (
	KindText           Kind = "text"
	KindCircle         Kind = "circle"
	KindGradientLine   Kind = "gradient_line"
	KindGradientCircle Kind = "gradient_circle"
)

// Stop is a serializable gradient stop.
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Op is one recorded call.
type Op struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Text   string  `json:"text,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"`
	Flat   bool    `json:"flat,omitempty"`
	Stops  []Stop  `json:"stops,omitempty"`
}

// Recorder is a draw.Surface that records operations.
type Recorder struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Ops    []Op `json:"ops"`
	// Resizes counts SetSize calls.
	Resizes int `json:"-"`
}

var _ draw.Surface = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

// SetSize drops every recorded operation, like a canvas resize clears pixels.
func (r *Recorder) SetSize(width, height int) {
	r.Width, r.Height = width, height
	r.Ops = nil
	r.Resizes++
}

func (r *Recorder) DrawText(x, y float64, text string, style draw.TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: KindText, X: x, Y: y, Text: text, Italic: style.Italic, Color: style.Color.Hex()})
}

func (r *Recorder) FillCircle(x, y, radius float64, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindCircle, X: x, Y: y, Radius: radius, Color: c.Hex(), Flat: true})
}

func (r *Recorder) StrokeGradientLine(x0, y0, x1, y1, width float64, g gradient.Gradient) {
	op := Op{Kind: KindGradientLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width}
	r.Ops = append(r.Ops, withGradient(op, g))
}

func (r *Recorder) FillGradientCircle(x, y, radius float64, g gradient.Gradient) {
	op := Op{Kind: KindGradientCircle, X: x, Y: y, Radius: radius}
	r.Ops = append(r.Ops, withGradient(op, g))
}

// Filter returns the operations of the given kind, in call order.
func (r *Recorder) Filter(kind Kind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func withGradient(op Op, g gradient.Gradient) Op {
	if c, ok := g.IsFlat(); ok {
		op.Flat = true
		op.Color = c.Hex()
		return op
	}
	op.Stops = make([]Stop, len(g.Stops))
	for i, s := range g.Stops {
		op.Stops[i] = Stop{Offset: s.Offset, Color: s.Color.Hex()}
	}
	return op
}
