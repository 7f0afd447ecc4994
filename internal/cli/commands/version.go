package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the build; the default matches the version reported
// in the initialize handshake.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "recruitee-mcp %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
