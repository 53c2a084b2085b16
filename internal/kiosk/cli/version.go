package cli

import (
	"github.com/spf13/cobra"

	"github.com/clarityplus/kiosk/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		buildinfo.PrintBuildData(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
