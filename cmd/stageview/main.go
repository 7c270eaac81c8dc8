package main

import (
	"github.com/spf13/cobra"

	"github.com/waabox/stageview/cmd/stageview/cmds"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	root := cmds.NewRootCmd(version)
	cobra.CheckErr(root.Execute())
}
