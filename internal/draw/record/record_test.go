package record_test

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/draw/record"
	"github.com/waabox/stageview/internal/gradient"
)

var (
	red   = colorful.Color{R: 1}
	green = colorful.Color{G: 1}
)

func TestRecorder_SetSizeClearsOps(t *testing.T) {
	r := record.New()
	r.SetSize(100, 50)
	r.FillCircle(10, 10, 5, red)
	r.SetSize(200, 50)

	assert.Empty(t, r.Ops)
	assert.Equal(t, 200, r.Width)
	assert.Equal(t, 2, r.Resizes)
}

func TestRecorder_GradientStops(t *testing.T) {
	r := record.New()
	g := gradient.Build(gradient.Horizontal(0, 100, 0), []gradient.Stop{
		{Offset: 0, Color: red},
		{Offset: 1, Color: green},
	})
	r.StrokeGradientLine(0, 0, 100, 0, 4, g)
	r.FillGradientCircle(5, 5, 3, gradient.Flat(green))

	lines := r.Filter(record.KindGradientLine)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Flat)
	assert.Equal(t, []record.Stop{{Offset: 0, Color: "#ff0000"}, {Offset: 1, Color: "#00ff00"}}, lines[0].Stops)

	circles := r.Filter(record.KindGradientCircle)
	require.Len(t, circles, 1)
	assert.True(t, circles[0].Flat)
	assert.Equal(t, "#00ff00", circles[0].Color)
}

func TestRecorder_Text(t *testing.T) {
	r := record.New()
	r.DrawText(1, 2, "build", draw.TextStyle{Color: red, Italic: true})

	ops := r.Filter(record.KindText)
	require.Len(t, ops, 1)
	assert.Equal(t, "build", ops[0].Text)
	assert.True(t, ops[0].Italic)
	assert.Equal(t, "#ff0000", ops[0].Color)
	assert.Empty(t, r.Filter(record.KindCircle))
}
