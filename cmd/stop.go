package cmd

import (
	"github.com/spf13/cobra"
)

var stopAt string

var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"out"},
	Short:   "Clock out of the running job",
	Args:    userArgs(cobra.NoArgs),
	RunE:    runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopAt, "at", "", "Clock out at HH:MM today instead of now")
}

func runStop(cmd *cobra.Command, args []string) error {
	now, err := current.moment(stopAt)
	if err != nil {
		return err
	}
	return current.stop(cmd.OutOrStdout(), now)
}
