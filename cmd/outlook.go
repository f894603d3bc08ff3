package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/msgraph"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

var (
	outlookSyncFrom   string
	outlookSyncTo     string
	outlookSyncDate   string
	outlookSyncDryRun bool
	outlookSyncJob    string
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Append Outlook calendar events to the clock file",
	Args:  userArgs(cobra.NoArgs),
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "First day DD/MM[/YYYY]; required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "Last day DD/MM[/YYYY]; defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a single day DD/MM[/YYYY]")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print the lines that would be appended without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncJob, "job", "", "Job for imported events (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange returns the half-open range of days to sync. Without flags it
// is today.
func syncRange(date, from, to string, today time.Time) (time.Time, time.Time, error) {
	year := today.Year()
	parse := func(flag, v string) (time.Time, error) {
		d, err := timecalc.ParseDate(v, year)
		if err != nil {
			return time.Time{}, userErrorf("invalid --%s value %q: %w", flag, v, err)
		}
		return d, nil
	}

	switch {
	case date != "":
		d, err := parse("date", date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return d, d.AddDate(0, 0, 1), nil
	case from != "" || to != "":
		if from == "" {
			return time.Time{}, time.Time{}, userErrorf("--from is required when --to is specified")
		}
		start, err := parse("from", from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end := today
		if to != "" {
			if end, err = parse("to", to); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, userErrorf("--to is before --from")
		}
		return start, end.AddDate(0, 0, 1), nil
	}
	return today, today.AddDate(0, 0, 1), nil
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from, to, err := syncRange(outlookSyncDate, outlookSyncFrom, outlookSyncTo, current.today())
	if err != nil {
		return err
	}
	oc := current.cfg.Outlook
	job, tz := oc.DefaultJob, oc.Timezone
	if outlookSyncJob != "" {
		job = outlookSyncJob
	}
	if outlookSyncTZ != "" {
		tz = outlookSyncTZ
	}

	w := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(w, "Syncing Outlook events (%s → %s)%s...\n\n",
		timecalc.FormatDate(from), timecalc.FormatDate(to.AddDate(0, 0, -1)), dryTag)

	log := current.log.With(logging.F("tenant", oc.TenantID))
	ctx := cmd.Context()
	tok, cfg, err := msgraph.Authenticate(ctx, oc.TenantID, oc.ClientID, w, log)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, tok, cfg, log)
	events, err := client.GetCalendarView(ctx, from, to, tz)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	log.Info("fetched calendar events", logging.F("count", len(events)))

	return current.syncEvents(w, events, msgraph.SyncOptions{Job: job, Timezone: tz, Out: w}, outlookSyncDryRun)
}

// syncEvents appends the events not yet in the clock files to the main file.
func (a *app) syncEvents(w io.Writer, events []msgraph.CalendarEvent, opts msgraph.SyncOptions, dryRun bool) error {
	store, rs, err := a.load()
	if err != nil {
		return err
	}
	result, err := msgraph.SyncEvents(events, store.Clocks, rs, opts)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(w)
		for _, l := range result.Lines {
			fmt.Fprintln(w, l)
		}
	} else if err := storage.AppendLines(a.cfg.File, result.Lines); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d imported\n", result.Imported)
	fmt.Fprintf(w, "  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Fprintf(w, "  %d errors\n", result.Errors)
		return fmt.Errorf("%d events could not be imported", result.Errors)
	}
	return nil
}
