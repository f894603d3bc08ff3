package timecalc

import (
	"fmt"
	"time"
)

// Moment is a calendar date plus a time of day.
type Moment struct {
	Date time.Time `json:"date"`
	Time STime     `json:"time"`
}

// NewMoment builds a Moment from a date (time of day ignored) and an STime.
func NewMoment(d time.Time, t STime) Moment {
	return Moment{Date: DateOf(d), Time: t}
}

// MomentAt returns the Moment of wall clock t.
func MomentAt(t time.Time) Moment {
	return Moment{Date: DateOf(t), Time: STimeOf(t)}
}

// Compare orders by date, then by time. It returns -1, 0 or +1.
func (m Moment) Compare(b Moment) int {
	if c := m.Date.Compare(b.Date); c != 0 {
		return c
	}
	switch {
	case m.Time < b.Time:
		return -1
	case m.Time > b.Time:
		return 1
	}
	return 0
}

func (m Moment) Before(b Moment) bool { return m.Compare(b) < 0 }

// TimeSince returns the time elapsed from prev until m, across days.
func (m Moment) TimeSince(prev Moment) STime {
	return m.Time.Since(m.Date, prev.Time, prev.Date)
}

// PrintRelative labels m as "today", "yesterday" or its date, seen from now.
func (m Moment) PrintRelative(now Moment) string {
	switch {
	case m.Date.Equal(now.Date):
		return fmt.Sprintf("today : %s", m.Time)
	case m.Date.AddDate(0, 0, 1).Equal(now.Date):
		return fmt.Sprintf("yesterday : %s", m.Time)
	}
	return fmt.Sprintf("%s : %s", FormatDate(m.Date), m.Time)
}

func (m Moment) String() string {
	return fmt.Sprintf("%s %s", FormatDate(m.Date), m.Time)
}
