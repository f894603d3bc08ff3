package cmd

import (
	"github.com/spf13/cobra"
)

var (
	startTags []string
	startAt   string
)

var startCmd = &cobra.Command{
	Use:     "start <job>",
	Aliases: []string{"in"},
	Short:   "Clock in on a job",
	Long: `Clock in on a job by appending to the clock file. A clock-in that is still
open is closed by the new one. --tag replaces the active tags.`,
	Args: userArgs(cobra.ExactArgs(1)),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringSliceVar(&startTags, "tag", nil, "Tags for this and following clocks (replaces the active tags)")
	startCmd.Flags().StringVar(&startAt, "at", "", "Clock in at HH:MM today instead of now")
}

func runStart(cmd *cobra.Command, args []string) error {
	now, err := current.moment(startAt)
	if err != nil {
		return err
	}
	tags := startTags
	if !cmd.Flags().Changed("tag") {
		tags = nil
	} else if tags == nil {
		tags = []string{}
	}
	return current.start(cmd.OutOrStdout(), args[0], tags, now)
}
