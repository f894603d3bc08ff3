package msgraph

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/parser"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// OutlookTag marks clocks imported from the calendar.
const OutlookTag = "outlook"

var (
	// ErrClockedIn is returned when the clock file ends with an open clock-in;
	// appended clock-ins would close it at the wrong time.
	ErrClockedIn = errors.New("clock file has an open clock-in, stop it before syncing")
	// ErrInvalidJob is returned when the job is not a clock file identifier.
	ErrInvalidJob = errors.New("job is not a valid identifier")
)

// SyncResult holds counters and the lines to append for a sync.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
	Lines    []string
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	Job      string
	Timezone string
	// Out receives one progress line per event. May be nil.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	return event.IsCancelled ||
		event.IsAllDay ||
		event.Sensitivity == "private" ||
		event.ShowAs == "free" ||
		event.Start.DateTime == "" || event.End.DateTime == ""
}

// MapEventToClock converts a Graph CalendarEvent into a clock on job, tagged
// outlook. An event ending on a later day keeps its start date and gets a
// long-day out time.
func MapEventToClock(event CalendarEvent, timezone, job string) (model.Clock, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.Clock{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.Clock{}, fmt.Errorf("parsing end time: %w", err)
	}
	if end.Before(start) {
		return model.Clock{}, errors.New("event ends before it starts")
	}

	in := timecalc.MomentAt(start)
	return model.Clock{
		In:   in,
		Out:  timecalc.STimeOf(end).LongDay(timecalc.DaysBetween(in.Date, timecalc.DateOf(end))),
		Job:  job,
		Tags: []string{OutlookTag},
	}, nil
}

type clockKey struct {
	date    time.Time
	job     string
	in, out timecalc.STime
}

func keyOf(c model.Clock) clockKey {
	return clockKey{date: c.In.Date, job: c.Job, in: c.In.Time, out: c.Out}
}

// SyncEvents maps events to clocks and returns the clock file lines that
// record the new ones. Events already present in existing (same date, job,
// in and out) are skipped. rs is the state at the end of the clock file; the
// lines restore its date, job and tags after the imported clocks so that the
// file reads on as before.
func SyncEvents(events []CalendarEvent, existing []model.Clock, rs reader.ReadState, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	if rs.CurrIn != nil {
		return result, ErrClockedIn
	}
	if !parser.IsIdent(opts.Job) {
		return result, fmt.Errorf("%w: %q", ErrInvalidJob, opts.Job)
	}
	progress := func(format string, args ...interface{}) {
		if opts.Out != nil {
			fmt.Fprintf(opts.Out, format, args...)
		}
	}

	seen := make(map[clockKey]bool, len(existing))
	for _, c := range existing {
		seen[keyOf(c)] = true
	}

	var fresh []model.Clock
	for _, event := range events {
		if shouldSkip(event) {
			continue
		}
		c, err := MapEventToClock(event, opts.Timezone, opts.Job)
		if err != nil {
			progress("  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		if seen[keyOf(c)] {
			progress("  – Skipped:  %s (already exists)\n", event.Subject)
			result.Skipped++
			continue
		}
		seen[keyOf(c)] = true
		progress("  ✓ Imported: %s (%s)\n", event.Subject, timecalc.FormatDuration(c.Duration()))
		result.Imported++
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return result, nil
	}

	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].In.Before(fresh[j].In) })

	lines := []string{storage.ClearTagsLine(), storage.TagLine(OutlookTag)}
	date := rs.Date
	for _, c := range fresh {
		if !c.In.Date.Equal(date) {
			date = c.In.Date
			lines = append(lines, storage.DateLine(date))
		}
		lines = append(lines, storage.ClockinLine(c.Job, c.In.Time), storage.ClockoutLine(c.Out))
	}

	lines = append(lines, storage.ClearTagsLine())
	for _, t := range rs.Tags {
		lines = append(lines, storage.TagLine(t))
	}
	if rs.DateSet && !rs.Date.Equal(date) {
		lines = append(lines, storage.DateLine(rs.Date))
	}
	if rs.Job != "" && rs.Job != opts.Job {
		lines = append(lines, "\t"+rs.Job)
	}
	result.Lines = lines
	return result, nil
}
