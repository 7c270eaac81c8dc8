// Package draw defines the minimal 2D drawing capability the pipeline
// renderer paints onto. Backends live in the subpackages.
package draw

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/waabox/stageview/internal/gradient"
)

// TextStyle describes how a label is drawn.
type TextStyle struct {
	Color  colorful.Color
	Size   float64
	Italic bool
}

// Surface is a 2D canvas. Coordinates are in pixels, y grows downwards.
// Text is positioned by its baseline origin.
type Surface interface {
	// SetSize resizes the surface and clears every pixel.
	SetSize(width, height int)
	DrawText(x, y float64, text string, style TextStyle)
	FillCircle(x, y, radius float64, c colorful.Color)
	StrokeGradientLine(x0, y0, x1, y1, width float64, g gradient.Gradient)
	FillGradientCircle(x, y, radius float64, g gradient.Gradient)
}
