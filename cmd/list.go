package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/filter"
	"github.com/Tiliavir/clocklog/internal/report"
)

var listOpts filter.Options

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clocks grouped by date",
	Args:  userArgs(cobra.NoArgs),
	RunE:  runList,
}

func init() {
	addFilterFlags(listCmd, &listOpts)
}

func runList(cmd *cobra.Command, args []string) error {
	return current.list(cmd.OutOrStdout(), listOpts, report.FormatMD, report.StylesFor(os.Stdout))
}
