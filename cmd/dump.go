package cmd

import (
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print the parsed statements of a clock file",
	Long:  `Print every statement of a clock file with its line and column. Defaults to the main clock file.`,
	Args:  userArgs(cobra.MaximumNArgs(1)),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	path := current.cfg.File
	if len(args) == 1 {
		path = args[0]
	}
	return dump(cmd.OutOrStdout(), path)
}
