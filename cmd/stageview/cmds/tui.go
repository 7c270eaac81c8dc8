package cmds

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw/term"
	"github.com/waabox/stageview/internal/render"
	"github.com/waabox/stageview/internal/tui"
)

func newTuiCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui PAYLOAD",
		Short: "Interactive pipeline viewer that follows terminal resizes and payload changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			path := args[0]
			if path == "-" {
				return errors.New("tui reads its payload from a file, not stdin")
			}

			opts := tui.Options{
				Load: func() (domain.Pipeline, error) {
					return e.decoder.Load(path)
				},
				Renderer:       render.New(e.palette, e.cfg.Params(e.cfg.Terminal.TextColor)),
				Cell:           term.Options{CellWidth: e.cfg.Terminal.CellWidth, CellHeight: e.cfg.Terminal.CellHeight},
				ReloadInterval: time.Duration(e.cfg.ReloadIntervalSeconds) * time.Second,
				Log:            log.Logger,
			}
			if !noWatch {
				w, err := tui.WatchFile(path, log.Logger)
				if err != nil {
					return err
				}
				defer w.Close()
				opts.Changes = w.Changes()
			}
			return tui.Run(opts)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the payload file changes")
	return cmd
}
