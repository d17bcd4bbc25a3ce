package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overwritten at build time with the output of git-describe.
var Version = "v0.0.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display chainrecon's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chainrecon version", Version)
	},
}
