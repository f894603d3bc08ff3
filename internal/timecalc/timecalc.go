package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// DateOf returns the calendar date of t as midnight UTC. Dates are compared
// and stepped in UTC so that DST never shifts a day boundary.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate returns year-month-day, or ErrDateNotValid when it is not a
// calendar date (31/2, month 13, day 0).
func NewDate(year, month, day int) (time.Time, error) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d/%d/%d", ErrDateNotValid, day, month, year)
	}
	return d, nil
}

// DaysBetween returns the number of days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// FormatDate renders d as DD/MM/YYYY.
func FormatDate(d time.Time) string {
	return d.Format("02/01/2006")
}

// ParseDate parses "DD/MM[/YYYY]". When the year is missing defaultYear is
// used; a defaultYear of 0 means a year is required.
func ParseDate(s string, defaultYear int) (time.Time, error) {
	parts := strings.Split(s, "/")
	dd, err := numPart(parts, 0)
	if err != nil {
		return time.Time{}, err
	}
	mm, err := numPart(parts, 1)
	if err != nil {
		return time.Time{}, err
	}
	yy, err := yearPart(parts, 2, defaultYear)
	if err != nil {
		return time.Time{}, err
	}
	return NewDate(yy, mm, dd)
}

// ParseWeek parses "WW[/YYYY]" and returns the Monday of that ISO week.
func ParseWeek(s string, defaultYear int) (time.Time, error) {
	parts := strings.Split(s, "/")
	wk, err := numPart(parts, 0)
	if err != nil {
		return time.Time{}, err
	}
	yy, err := yearPart(parts, 1, defaultYear)
	if err != nil {
		return time.Time{}, err
	}
	return ISOWeekStart(yy, wk)
}

// ParseMonth parses "MM[/YYYY]" and returns the first day of that month.
func ParseMonth(s string, defaultYear int) (time.Time, error) {
	parts := strings.Split(s, "/")
	mm, err := numPart(parts, 0)
	if err != nil {
		return time.Time{}, err
	}
	yy, err := yearPart(parts, 1, defaultYear)
	if err != nil {
		return time.Time{}, err
	}
	return NewDate(yy, mm, 1)
}

func yearPart(parts []string, i, defaultYear int) (int, error) {
	yy, err := numPart(parts, i)
	if err == nil {
		return yy, nil
	}
	if defaultYear == 0 {
		return 0, err
	}
	return defaultYear, nil
}

// ISOWeekStart returns the Monday of ISO week wk of year.
func ISOWeekStart(year, wk int) (time.Time, error) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	// Go's weekday: Sunday=0, Monday=1, ..., Saturday=6
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset+7*(wk-1))
	if y, w := monday.ISOWeek(); wk < 1 || y != year || w != wk {
		return time.Time{}, fmt.Errorf("%w: week %d of %d", ErrDateNotValid, wk, year)
	}
	return monday, nil
}

// WeekRange returns the Monday of the ISO week containing d and the Monday
// after it, as a half-open range.
func WeekRange(d time.Time) (time.Time, time.Time) {
	d = DateOf(d)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := d.AddDate(0, 0, -(wd - 1))
	return monday, monday.AddDate(0, 0, 7)
}

// MonthStart returns the first day of d's month.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PrevMonthStart returns the first day of the month before d's month.
func PrevMonthStart(d time.Time) time.Time {
	return MonthStart(d).AddDate(0, -1, 0)
}

// NextMonthStart returns the first day of the month after d's month.
func NextMonthStart(d time.Time) time.Time {
	return MonthStart(d).AddDate(0, 1, 0)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// FormatDuration formats an STime span like "1h 40m" or "45m".
func FormatDuration(t STime) string {
	if t.Hours() > 0 {
		return fmt.Sprintf("%dh %dm", t.Hours(), t.Minutes())
	}
	return fmt.Sprintf("%dm", t.Minutes())
}
