// Package filter selects finished clocks by job, tag, group and date range.
package filter

import (
	"fmt"
	"time"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// ClockFilter reports whether a clock is kept.
type ClockFilter func(model.Clock) bool

func set(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, i := range items {
		m[i] = struct{}{}
	}
	return m
}

// ByJob keeps clocks of any of the given jobs.
func ByJob(jobs ...string) ClockFilter {
	want := set(jobs)
	return func(c model.Clock) bool {
		_, ok := want[c.Job]
		return ok
	}
}

// ByTag keeps clocks carrying at least one of the given tags.
func ByTag(tags ...string) ClockFilter {
	want := set(tags)
	return func(c model.Clock) bool {
		for _, t := range c.Tags {
			if _, ok := want[t]; ok {
				return true
			}
		}
		return false
	}
}

// ByGroup keeps clocks whose job is a member of any named group.
func ByGroup(names []string, groups []model.Group) ClockFilter {
	wanted := set(names)
	var jobs []string
	for _, g := range groups {
		if _, ok := wanted[g.Name]; ok {
			jobs = append(jobs, g.Members...)
		}
	}
	return ByJob(jobs...)
}

// Before keeps clocks started on a date before d.
func Before(d time.Time) ClockFilter {
	d = timecalc.DateOf(d)
	return func(c model.Clock) bool { return c.In.Date.Before(d) }
}

// Since keeps clocks started on d or later.
func Since(d time.Time) ClockFilter {
	d = timecalc.DateOf(d)
	return func(c model.Clock) bool { return !c.In.Date.Before(d) }
}

// Between keeps clocks started in [from, to).
func Between(from, to time.Time) ClockFilter {
	since, before := Since(from), Before(to)
	return func(c model.Clock) bool { return since(c) && before(c) }
}

// All keeps clocks accepted by every filter. It returns nil when given none.
func All(filters ...ClockFilter) ClockFilter {
	if len(filters) == 0 {
		return nil
	}
	return func(c model.Clock) bool {
		for _, f := range filters {
			if !f(c) {
				return false
			}
		}
		return true
	}
}

// Options are the filter selections of the command line.
type Options struct {
	Jobs   []string
	Tags   []string
	Groups []string

	Week      string // WW[/YYYY]
	ThisWeek  bool
	Month     string // MM[/YYYY]
	ThisMonth bool
	Day       string // DD/MM[/YYYY]
	Today     bool
	// Last shifts ThisWeek, ThisMonth and Today one period back.
	Last bool

	Since  string // DD/MM[/YYYY]
	Before string // DD/MM[/YYYY]
}

// FromOptions builds the combined filter for opts. Dates without a year use
// the year of today. It returns nil when nothing is selected.
func FromOptions(opts Options, groups []model.Group, today time.Time) (ClockFilter, error) {
	today = timecalc.DateOf(today)
	year := today.Year()
	var filters []ClockFilter

	if len(opts.Jobs) > 0 {
		filters = append(filters, ByJob(opts.Jobs...))
	}
	if len(opts.Tags) > 0 {
		filters = append(filters, ByTag(opts.Tags...))
	}
	if len(opts.Groups) > 0 {
		filters = append(filters, ByGroup(opts.Groups, groups))
	}

	if opts.Week != "" {
		start, err := timecalc.ParseWeek(opts.Week, year)
		if err != nil {
			return nil, fmt.Errorf("invalid --week value %q: %w", opts.Week, err)
		}
		filters = append(filters, Between(start, start.AddDate(0, 0, 7)))
	}
	if opts.ThisWeek {
		start, end := timecalc.WeekRange(today)
		if opts.Last {
			start, end = start.AddDate(0, 0, -7), start
		}
		filters = append(filters, Between(start, end))
	}

	if opts.Month != "" {
		start, err := timecalc.ParseMonth(opts.Month, year)
		if err != nil {
			return nil, fmt.Errorf("invalid --month value %q: %w", opts.Month, err)
		}
		filters = append(filters, Between(start, timecalc.NextMonthStart(start)))
	}
	if opts.ThisMonth {
		base := timecalc.MonthStart(today)
		if opts.Last {
			filters = append(filters, Between(timecalc.PrevMonthStart(base), base))
		} else {
			filters = append(filters, Between(base, timecalc.NextMonthStart(base)))
		}
	}

	if opts.Day != "" {
		start, err := timecalc.ParseDate(opts.Day, year)
		if err != nil {
			return nil, fmt.Errorf("invalid --day value %q: %w", opts.Day, err)
		}
		filters = append(filters, Between(start, start.AddDate(0, 0, 1)))
	}
	if opts.Today {
		if opts.Last {
			filters = append(filters, Between(today.AddDate(0, 0, -1), today))
		} else {
			filters = append(filters, Between(today, today.AddDate(0, 0, 1)))
		}
	}

	if opts.Since != "" {
		d, err := timecalc.ParseDate(opts.Since, year)
		if err != nil {
			return nil, fmt.Errorf("invalid --since value %q: %w", opts.Since, err)
		}
		filters = append(filters, Since(d))
	}
	if opts.Before != "" {
		d, err := timecalc.ParseDate(opts.Before, year)
		if err != nil {
			return nil, fmt.Errorf("invalid --before value %q: %w", opts.Before, err)
		}
		filters = append(filters, Before(d))
	}

	return All(filters...), nil
}
