package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the build version used to render, serve, or analyze a
// schema snapshot.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Long:  `Prints the version of the dbgraph CLI that rendered, served, or analyzed the current schema snapshot.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dbgraph %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
