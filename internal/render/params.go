package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/table"
)

// Default connector transition. These are visual tuning values: the bar keeps
// the previous stage's color through TransitionHold and reaches the current
// stage's color by TransitionEnd.
const (
	DefaultTransitionHold = 0.6
	DefaultTransitionEnd  = 0.8
)

// Params holds the geometry of a diagram, in surface pixels.
type Params struct {
	// Radius of a stage node.
	Radius float64
	// JobRadius of a status bubble, smaller than Radius.
	JobRadius float64
	// NodeY is the vertical center of every stage node.
	NodeY float64
	// HeaderOffset is how far above NodeY the stage name baseline sits.
	HeaderOffset float64
	BarWidth     float64
	StemWidth    float64
	// TableTop and RowHeight position the status table under the nodes.
	TableTop  float64
	RowHeight float64
	// Margin is added below the lowest drawn element.
	Margin float64

	TransitionHold float64
	TransitionEnd  float64

	StageLabel  draw.TextStyle
	StatusLabel draw.TextStyle
	TimeLabel   draw.TextStyle
}

// DefaultParams derives every length from one em.
func DefaultParams(em float64) Params {
	black := colorful.Color{}
	return Params{
		Radius:         em,
		JobRadius:      0.65 * em,
		NodeY:          2.8 * em,
		HeaderOffset:   1.5 * em,
		BarWidth:       0.75 * em,
		StemWidth:      0.5 * em,
		TableTop:       4 * em,
		RowHeight:      2 * em,
		Margin:         0.5 * em,
		TransitionHold: DefaultTransitionHold,
		TransitionEnd:  DefaultTransitionEnd,
		StageLabel:     draw.TextStyle{Color: black, Size: 1.2 * em},
		StatusLabel:    draw.TextStyle{Color: black, Size: em},
		TimeLabel:      draw.TextStyle{Color: black, Size: 0.8 * em, Italic: true},
	}
}

// WithLabelColor returns p with every label drawn in c.
func (p Params) WithLabelColor(c colorful.Color) Params {
	p.StageLabel.Color = c
	p.StatusLabel.Color = c
	p.TimeLabel.Color = c
	return p
}

// TableMetrics returns where the status table goes for these params.
func (p Params) TableMetrics() table.Metrics {
	return table.Metrics{Top: p.TableTop, RowHeight: p.RowHeight}
}
