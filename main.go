package main

import (
	"os"

	"github.com/arrfunc/unicheck/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "unicheck [subcommand]",
	Short:        "unicheck\n a type, shape, and uniqueness checker for an array-oriented IR",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
}
