package resize

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/render"
	"github.com/waabox/stageview/internal/table"
)

// State of a Coordinator.
type State int

const (
	Idle State = iota
	Rendering
)

func (s State) String() string {
	if s == Rendering {
		return "rendering"
	}
	return "idle"
}

// MeasureFunc lays out the status table of p for a surface width pixels wide.
type MeasureFunc func(p domain.Pipeline, width int) table.Layout

// TableMeasure measures the status table with fixed metrics.
func TableMeasure(m table.Metrics) MeasureFunc {
	return func(p domain.Pipeline, width int) table.Layout {
		return table.Build(p).Measure(float64(width), m)
	}
}

// Coordinator keeps one pipeline view painted on a surface at the current
// width. Each view owns exactly one listener on its Source: Show cancels the
// previous one before subscribing again. It is not safe for concurrent use.
type Coordinator struct {
	renderer *render.Renderer
	surface  draw.Surface
	measure  MeasureFunc
	log      zerolog.Logger

	state    State
	pipeline domain.Pipeline
	width    int
	pending  int
	handle   *Handle
	renders  int
	onRender func()
}

// NewCoordinator wires a renderer to a surface.
func NewCoordinator(r *render.Renderer, s draw.Surface, measure MeasureFunc, log zerolog.Logger) *Coordinator {
	return &Coordinator{renderer: r, surface: s, measure: measure, log: log, pending: -1}
}

// OnRender registers a callback run after every successful pass.
func (c *Coordinator) OnRender(fn func()) {
	c.onRender = fn
}

// Show switches the view to p, paints it at width and moves the subscription
// to src. If p cannot be painted the previous snapshot and subscription stay
// in place.
func (c *Coordinator) Show(src Source, p domain.Pipeline, width int) error {
	prev, prevWidth := c.pipeline, c.width
	c.pipeline = p
	if err := c.Resize(width); err != nil {
		c.pipeline, c.width = prev, prevWidth
		return err
	}
	c.handle.Cancel()
	c.handle = src.Subscribe(func(w int) {
		if err := c.Resize(w); err != nil {
			c.log.Error().Err(err).Int("width", w).Msg("resize render failed")
		}
	})
	return nil
}

// Resize measures the table again for width and repaints. A call made while
// a pass is running is deferred until it ends; only the latest width is kept.
func (c *Coordinator) Resize(width int) error {
	if c.state == Rendering {
		c.pending = width
		return nil
	}
	c.state = Rendering
	defer func() { c.state = Idle }()

	for {
		c.width = width
		layout := c.measure(c.pipeline, width)
		if err := c.renderer.Render(c.surface, width, c.pipeline, layout); err != nil {
			c.pending = -1
			return errors.Wrapf(err, "rendering %s at width %d", c.pipeline.Label(), width)
		}
		c.renders++
		c.log.Debug().Int("width", width).Int("stages", len(c.pipeline.Stages)).Msg("pipeline rendered")
		if c.onRender != nil {
			c.onRender()
		}
		if c.pending < 0 {
			return nil
		}
		width, c.pending = c.pending, -1
	}
}

// Close cancels the active subscription.
func (c *Coordinator) Close() {
	c.handle.Cancel()
	c.handle = nil
}

// State returns Idle or Rendering.
func (c *Coordinator) State() State {
	return c.state
}

// Width returns the width of the last pass.
func (c *Coordinator) Width() int {
	return c.width
}

// Renders returns the number of completed passes.
func (c *Coordinator) Renders() int {
	return c.renders
}

// Pipeline returns the snapshot currently shown.
func (c *Coordinator) Pipeline() domain.Pipeline {
	return c.pipeline
}
