package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/filter"
	"github.com/Tiliavir/clocklog/internal/report"
)

var (
	reportOpts    filter.Options
	reportFormat  string
	reportVerbose bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show total time per job",
	Args:  userArgs(cobra.NoArgs),
	RunE:  runReport,
}

func init() {
	addFilterFlags(reportCmd, &reportOpts)
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print every clock with running totals (md only)")
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return userError{err}
	}
	return current.report(cmd.OutOrStdout(), reportOpts, format, reportVerbose, report.StylesFor(os.Stdout))
}
