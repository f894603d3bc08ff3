package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/filter"
)

// addFilterFlags binds the clock selection flags to opts.
func addFilterFlags(cmd *cobra.Command, opts *filter.Options) {
	f := cmd.Flags()
	f.StringSliceVar(&opts.Jobs, "job", nil, "Only these jobs")
	f.StringSliceVar(&opts.Tags, "tag", nil, "Only clocks with any of these tags")
	f.StringSliceVar(&opts.Groups, "group", nil, "Only jobs of these groups")
	f.StringVar(&opts.Week, "week", "", "ISO week WW[/YYYY]")
	f.BoolVar(&opts.ThisWeek, "this-week", false, "The current week")
	f.StringVar(&opts.Month, "month", "", "Month MM[/YYYY]")
	f.BoolVar(&opts.ThisMonth, "this-month", false, "The current month")
	f.StringVar(&opts.Day, "day", "", "Day DD/MM[/YYYY]")
	f.BoolVar(&opts.Today, "today", false, "Today")
	f.BoolVar(&opts.Last, "last", false, "With --this-week, --this-month or --today: the one before")
	f.StringVar(&opts.Since, "since", "", "From DD/MM[/YYYY] on")
	f.StringVar(&opts.Before, "before", "", "Before DD/MM[/YYYY]")
}
