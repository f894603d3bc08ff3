package model

import (
	"fmt"

	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// Clock is a finished work interval. Out is on the same long-day scale as
// In.Time, so Out may exceed 24:00 for work past midnight.
type Clock struct {
	In   timecalc.Moment `json:"in"`
	Out  timecalc.STime  `json:"out"`
	Job  string          `json:"job"`
	Tags []string        `json:"tags"`
}

// Duration returns Out-In, or 00:00 for an inverted clock.
func (c Clock) Duration() timecalc.STime {
	return c.Out.Earlier(c.In.Time)
}

func (c Clock) String() string {
	return fmt.Sprintf("%s %s %s-%s %v", timecalc.FormatDate(c.In.Date), c.Job, c.In.Time, c.Out, c.Tags)
}

// Clockin is a clock that has not been closed yet.
type Clockin struct {
	In   timecalc.Moment
	Job  string
	Tags []string
}

// AsClock closes the clock-in at out.
func (c Clockin) AsClock(out timecalc.STime) Clock {
	return Clock{In: c.In, Out: out, Job: c.Job, Tags: c.Tags}
}

// Describe reports how long the clock-in has been open, seen from now.
func (c Clockin) Describe(now timecalc.Moment) string {
	return fmt.Sprintf("You have been clocked in for %s, since %s for %s Hours",
		c.Job, c.In.PrintRelative(now), now.TimeSince(c.In))
}

// Group is a named list of jobs. Members are kept as written, duplicates included.
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}
