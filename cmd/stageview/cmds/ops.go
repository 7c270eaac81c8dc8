package cmds

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/waabox/stageview/internal/draw/record"
)

func newOpsCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "ops PAYLOAD",
		Short: "Dump the drawing operations of a pipeline diagram as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = e.cfg.Raster.Width
			}
			p, err := e.decoder.Load(args[0])
			if err != nil {
				return err
			}

			rec := record.New()
			if err := paint(rec, e.cfg.Params(e.cfg.Raster.TextColor), e.palette, p, width); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(rec), "encoding ops")
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Surface width in pixels (defaults to raster.width)")
	return cmd
}
