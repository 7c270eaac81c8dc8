package cmds

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the stageview command tree.
func NewRootCmd(version string) *cobra.Command {
	var closer io.Closer
	root := &cobra.Command{
		Use:           "stageview",
		Short:         "stageview draws CI pipeline diagrams",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			c, err := initLogger(opts, cmd.ErrOrStderr(), cmd.Name() == "tui")
			if err != nil {
				return err
			}
			closer = c
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closer != nil {
				return closer.Close()
			}
			return nil
		},
	}
	addRootFlags(root)

	root.AddCommand(newRenderCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newOpsCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newConfigCmd())
	return root
}
