package cmds

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	termcanvas "github.com/waabox/stageview/internal/draw/term"
)

const defaultColumns = 120

func newShowCmd() *cobra.Command {
	var columns int
	var plain bool

	cmd := &cobra.Command{
		Use:   "show PAYLOAD",
		Short: "Print a pipeline diagram in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if columns == 0 {
				columns = terminalColumns()
			}
			if columns <= 0 {
				return errors.Errorf("columns must be > 0, got %d", columns)
			}

			p, err := e.decoder.Load(args[0])
			if err != nil {
				return err
			}

			canvas := termcanvas.New(termcanvas.Options{
				CellWidth:  e.cfg.Terminal.CellWidth,
				CellHeight: e.cfg.Terminal.CellHeight,
			})
			if err := paint(canvas, e.cfg.Params(e.cfg.Terminal.TextColor), e.palette, p, canvas.PixelWidth(columns)); err != nil {
				return err
			}
			out := canvas.String()
			if plain {
				out = canvas.Plain()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 0, "Width in terminal columns (defaults to the terminal width)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without colors")
	return cmd
}

func terminalColumns() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultColumns
}
