package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/filter"
	"github.com/Tiliavir/clocklog/internal/report"
)

var (
	exportOpts   filter.Options
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export clocks to stdout",
	Args:  userArgs(cobra.NoArgs),
	RunE:  runExport,
}

func init() {
	addFilterFlags(exportCmd, &exportOpts)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(exportFormat)
	if err != nil {
		return userError{err}
	}
	return current.list(cmd.OutOrStdout(), exportOpts, format, report.Plain())
}
