package storage

import (
	"errors"
	"time"

	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// ErrNotClockedIn is returned by StopLines when no clock-in is open.
var ErrNotClockedIn = errors.New("not clocked in")

// DateLine renders a full date statement.
func DateLine(d time.Time) string {
	return timecalc.FormatDate(d)
}

// ClockinLine renders "job,HH:MM".
func ClockinLine(job string, t timecalc.STime) string {
	return "\t" + job + "," + t.String()
}

// ClockoutLine renders "-HH:MM".
func ClockoutLine(t timecalc.STime) string {
	return "\t-" + t.String()
}

func TagLine(name string) string      { return "\t_" + name }
func ClearTagLine(name string) string { return "\t__" + name }
func ClearTagsLine() string           { return "\t__" }

// StopLines returns the lines that close the open clock-in of rs at now.
// A stop on a later day than the clock-in uses the long-day encoding so the
// clock keeps its date.
func StopLines(rs reader.ReadState, now timecalc.Moment) ([]string, error) {
	if rs.CurrIn == nil {
		return nil, ErrNotClockedIn
	}
	return []string{clockoutSince(rs.CurrIn.In, now)}, nil
}

// clockoutSince is the clock-out line at now for a clock-in at in.
func clockoutSince(in, now timecalc.Moment) string {
	days := timecalc.DaysBetween(in.Date, now.Date)
	if days < 0 {
		days = 0
	}
	return ClockoutLine(now.Time.LongDay(days))
}

// StartLines returns the lines that clock in on job at now. An open clock-in
// from an earlier day is closed first; one from today is closed by the new
// clock-in itself. When tags is not nil the active tags are replaced by it.
func StartLines(rs reader.ReadState, now timecalc.Moment, job string, tags []string) []string {
	var lines []string
	if rs.CurrIn != nil && !rs.CurrIn.In.Date.Equal(now.Date) {
		lines = append(lines, clockoutSince(rs.CurrIn.In, now))
	}
	if !rs.DateSet || !rs.Date.Equal(now.Date) {
		lines = append(lines, DateLine(now.Date))
	}
	if tags != nil {
		if len(rs.Tags) > 0 {
			lines = append(lines, ClearTagsLine())
		}
		for _, t := range tags {
			lines = append(lines, TagLine(t))
		}
	}
	return append(lines, ClockinLine(job, now.Time))
}
