// Package raster implements draw.Surface on an in-memory RGBA image using
// fogleman/gg, for PNG output.
package raster

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/gradient"
)

// Options configures a Canvas.
type Options struct {
	// Background fills the canvas on every SetSize.
	Background colorful.Color
	// FontPath is a TrueType font file. Empty uses gg's built-in bitmap face,
	// which ignores TextStyle.Size.
	FontPath string
	// ItalicFontPath is used for italic text. Without it italic text is drawn
	// with the regular face.
	ItalicFontPath string
}

type faceKey struct {
	path   string
	points float64
}

// Canvas is a raster draw.Surface.
type Canvas struct {
	opts  Options
	dc    *gg.Context
	faces map[faceKey]font.Face
}

var _ draw.Surface = (*Canvas)(nil)

// New returns a 1x1 canvas. Font files, if any, are loaded once here so a
// bad path fails early.
func New(opts Options) (*Canvas, error) {
	c := &Canvas{opts: opts, faces: map[faceKey]font.Face{}}
	for _, path := range []string{opts.FontPath, opts.ItalicFontPath} {
		if path == "" {
			continue
		}
		if _, err := c.face(path, 12); err != nil {
			return nil, err
		}
	}
	c.SetSize(1, 1)
	return c, nil
}

func (c *Canvas) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.dc = gg.NewContext(width, height)
	c.dc.SetColor(c.opts.Background)
	c.dc.Clear()
}

func (c *Canvas) DrawText(x, y float64, text string, style draw.TextStyle) {
	path := c.opts.FontPath
	if style.Italic && c.opts.ItalicFontPath != "" {
		path = c.opts.ItalicFontPath
	}
	var f font.Face = basicfont.Face7x13
	if path != "" && style.Size > 0 {
		if loaded, err := c.face(path, style.Size); err == nil {
			f = loaded
		}
	}
	c.dc.SetFontFace(f)
	c.dc.SetColor(style.Color)
	c.dc.DrawString(text, x, y)
}

func (c *Canvas) FillCircle(x, y, radius float64, col colorful.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, radius)
	c.dc.Fill()
}

func (c *Canvas) StrokeGradientLine(x0, y0, x1, y1, width float64, g gradient.Gradient) {
	c.dc.SetStrokeStyle(pattern(g))
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

func (c *Canvas) FillGradientCircle(x, y, radius float64, g gradient.Gradient) {
	c.dc.SetFillStyle(pattern(g))
	c.dc.DrawCircle(x, y, radius)
	c.dc.Fill()
}

// Image returns the current pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return errors.Wrap(c.dc.EncodePNG(w), "encoding png")
}

func (c *Canvas) face(path string, points float64) (font.Face, error) {
	key := faceKey{path: path, points: points}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := gg.LoadFontFace(path, points)
	if err != nil {
		return nil, errors.Wrapf(err, "loading font %s", path)
	}
	c.faces[key] = f
	return f, nil
}

func pattern(g gradient.Gradient) gg.Pattern {
	if col, ok := g.IsFlat(); ok {
		return gg.NewSolidPattern(col)
	}
	lg := gg.NewLinearGradient(g.Axis.From.X, g.Axis.From.Y, g.Axis.To.X, g.Axis.To.Y)
	for _, s := range g.Stops {
		lg.AddColorStop(s.Offset, s.Color)
	}
	return lg
}
