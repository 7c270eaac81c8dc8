package cmds

import (
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waabox/stageview/internal/draw/raster"
)

func newRenderCmd() *cobra.Command {
	var output string
	var width int

	cmd := &cobra.Command{
		Use:   "render PAYLOAD",
		Short: "Render a pipeline payload to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = e.cfg.Raster.Width
			}
			if width <= 0 {
				return errors.Errorf("width must be > 0, got %d", width)
			}

			p, err := e.decoder.Load(args[0])
			if err != nil {
				return err
			}

			bg, err := colorful.Hex(e.cfg.Raster.Background)
			if err != nil {
				return errors.Wrap(err, "raster.background")
			}
			canvas, err := raster.New(raster.Options{
				Background:     bg,
				FontPath:       e.cfg.Raster.FontPath,
				ItalicFontPath: e.cfg.Raster.ItalicFontPath,
			})
			if err != nil {
				return err
			}
			if err := paint(canvas, e.cfg.Params(e.cfg.Raster.TextColor), e.palette, p, width); err != nil {
				return err
			}

			if err := writePNG(canvas, output, cmd.OutOrStdout()); err != nil {
				return err
			}
			log.Info().Str("pipeline", p.Label()).Str("output", output).Int("width", width).Msg("diagram rendered")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pipeline.png", "Output PNG path, - for stdout")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels (defaults to raster.width)")
	return cmd
}

// writePNG encodes canvas to output, or to stdout when output is "-".
func writePNG(canvas *raster.Canvas, output string, stdout io.Writer) error {
	if output == "-" {
		return canvas.EncodePNG(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	if encErr := canvas.EncodePNG(f); encErr != nil {
		f.Close()
		return encErr
	}
	return errors.Wrap(f.Close(), "closing output file")
}
