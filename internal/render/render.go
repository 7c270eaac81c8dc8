// Package render draws a pipeline diagram onto a draw.Surface.
//
// Stages become nodes along a horizontal bar, left to right in execution
// order. A stage with statuses grows a vertical stem with one bubble per
// status, positioned from the measured status table.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/gradient"
	"github.com/waabox/stageview/internal/palette"
	"github.com/waabox/stageview/internal/table"
)

var (
	// ErrNoStages is returned when asked to render a pipeline without stages.
	// Callers must not do that; nothing is drawn and the surface is untouched.
	ErrNoStages = errors.New("render: pipeline has no stages")
	// ErrLayoutMismatch is returned when the layout lacks a cell for a status.
	ErrLayoutMismatch = errors.New("render: layout does not cover every status")
)

// Renderer paints pipelines. It holds no per-render state, so one Renderer
// can serve any number of surfaces.
type Renderer struct {
	palette palette.Palette
	params  Params
}

// New creates a Renderer.
func New(p palette.Palette, params Params) *Renderer {
	return &Renderer{palette: p, params: params}
}

// Params returns the geometry in use.
func (r *Renderer) Params() Params {
	return r.params
}

// NodeX returns the x of stage i's node center out of n stages on a surface
// width pixels wide.
func (r *Renderer) NodeX(i, n, width int) float64 {
	return float64(i)*float64(width)/float64(n) + r.params.Radius
}

// Render resizes s to width x (diagram height) and paints p on it. Every call
// is a full repaint. layout must have been measured for this width and for
// this snapshot's status table.
func (r *Renderer) Render(s draw.Surface, width int, p domain.Pipeline, layout table.Layout) error {
	n := len(p.Stages)
	if n == 0 {
		return ErrNoStages
	}
	for i, stage := range p.Stages {
		for j := range stage.Statuses {
			if _, ok := layout.Cell(j, i); !ok {
				return errors.Wrapf(ErrLayoutMismatch, "stage %q row %d", stage.Name, j)
			}
		}
	}

	prm := r.params
	height := math.Max(prm.NodeY+prm.Radius, layout.Bottom()) + prm.Margin
	s.SetSize(width, int(math.Ceil(height)))

	colWidth := float64(width) / float64(n)
	y := prm.NodeY
	var prev colorful.Color
	for i, stage := range p.Stages {
		x := r.NodeX(i, n, width)
		color := r.palette.ColorOf(stage.State)

		s.DrawText(x-prm.Radius/2, y-prm.HeaderOffset, stage.Name, prm.StageLabel)
		if i > 0 {
			x0 := x - colWidth
			s.StrokeGradientLine(x0, y, x, y, prm.BarWidth, r.connector(x0, x, y, colWidth, prev, color))
			if stage.Time != "" {
				s.DrawText(x-colWidth/2-prm.Radius, y+1.5*prm.Radius, stage.Time, prm.TimeLabel)
			}
		}
		s.FillCircle(x, y, prm.Radius, color)
		prev = color

		if len(stage.Statuses) > 0 {
			r.drawStatuses(s, i, x, color, stage.Statuses, layout)
		}
	}
	return nil
}

// connector builds the bar gradient between two consecutive nodes.
func (r *Renderer) connector(x0, x1, y, colWidth float64, from, to colorful.Color) gradient.Gradient {
	end := math.Min(r.params.TransitionEnd, 1-r.params.Radius/colWidth)
	return gradient.Build(gradient.Horizontal(x0, x1, y), []gradient.Stop{
		{Offset: 0, Color: from},
		{Offset: r.params.TransitionHold, Color: from},
		{Offset: end, Color: to},
		{Offset: 1, Color: to},
	})
}

// drawStatuses paints the stem, bubbles and labels under stage col.
func (r *Renderer) drawStatuses(s draw.Surface, col int, x float64, stageColor colorful.Color, statuses []domain.Status, layout table.Layout) {
	prm := r.params
	y := prm.NodeY
	last, _ := layout.Cell(len(statuses)-1, col)
	bottom := last.Bottom()

	centers := make([]float64, len(statuses))
	stops := []gradient.Stop{{Offset: 0, Color: stageColor}}
	for j, st := range statuses {
		cell, _ := layout.Cell(j, col)
		cy := cell.Top + cell.Height/2
		pad := math.Min(prm.JobRadius, cell.Height/2)
		c := r.palette.ColorOf(st.State)
		stops = append(stops,
			gradient.Stop{Offset: gradient.Fraction(cy-pad, y, bottom), Color: c},
			gradient.Stop{Offset: gradient.Fraction(cy+pad, y, bottom), Color: c},
		)
		centers[j] = cy
	}
	// A table that ends above the node, as an unmeasured one does, has no
	// usable axis: the column gets the final stop's color.
	axis := gradient.Vertical(x, y, bottom)
	if bottom <= y {
		axis = gradient.Vertical(x, y, y)
	}
	g := gradient.Build(axis, stops)

	if end := centers[len(centers)-1]; end > y+prm.Radius {
		s.StrokeGradientLine(x, y+prm.Radius, x, end, prm.StemWidth, g)
	}
	for j, st := range statuses {
		s.FillGradientCircle(x, centers[j], prm.JobRadius, g)
		s.DrawText(x+prm.Radius, centers[j]+prm.JobRadius/2, st.Name, prm.StatusLabel)
	}
}
