package timecalc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingItem is returned when a HH:MM or DD/MM string lacks a part.
	ErrMissingItem = errors.New("missing item")
	// ErrNotANumber is returned when a part of a time or date is not a number.
	ErrNotANumber = errors.New("not a number")
	// ErrMinutesOver60 is returned for a minute part of 60 or more.
	ErrMinutesOver60 = errors.New("minutes over 60")
	// ErrDateNotValid is returned for a day/month/year outside the calendar.
	ErrDateNotValid = errors.New("date not valid")
)

// MinutesPerDay is the STime length of one day.
const MinutesPerDay = 24 * 60

// STime is a time of day in minutes since 00:00. Values past 24:00 mean the
// same clock on a later day (25:30 is 01:30 the next day).
type STime uint32

// MaxHours is the largest hour an STime can hold with any minute part.
const MaxHours = (math.MaxUint32 - 59) / 60

// NewSTime returns hr:min as an STime. Neither part is range checked.
func NewSTime(hr, min uint32) STime {
	return STime(hr*60 + min)
}

// STimeOf returns the wall clock of t truncated to the minute.
func STimeOf(t time.Time) STime {
	return NewSTime(uint32(t.Hour()), uint32(t.Minute()))
}

// ParseSTime parses "HH:MM". Hours are unbounded, minutes must be below 60.
func ParseSTime(s string) (STime, error) {
	parts := strings.Split(s, ":")
	hr, err := numPart(parts, 0)
	if err != nil {
		return 0, err
	}
	min, err := numPart(parts, 1)
	if err != nil {
		return 0, err
	}
	if hr > MaxHours {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if min >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrMinutesOver60, s)
	}
	return NewSTime(uint32(hr), uint32(min)), nil
}

// Hours returns the whole hours of t.
func (t STime) Hours() uint32 { return uint32(t) / 60 }

// Minutes returns the minute part of t.
func (t STime) Minutes() uint32 { return uint32(t) % 60 }

func (t STime) Add(b STime) STime { return t + b }

// Sub returns t-b. The caller guarantees b <= t; use Earlier otherwise.
func (t STime) Sub(b STime) STime { return t - b }

// Earlier returns t-b, or 00:00 when b is after t.
func (t STime) Earlier(b STime) STime {
	if b > t {
		return 0
	}
	return t - b
}

// Since returns the minutes elapsed from then (thenTime on thenDate) until t
// on nowDate. It is 00:00 when then is not before now.
func (t STime) Since(nowDate time.Time, thenTime STime, thenDate time.Time) STime {
	elapsed := int64(DaysBetween(thenDate, nowDate))*MinutesPerDay + int64(t) - int64(thenTime)
	if elapsed < 0 {
		return 0
	}
	return STime(elapsed)
}

// LongDay returns t encoded days later, e.g. 01:30 one day later is 25:30.
func (t STime) LongDay(days int) STime {
	if days <= 0 {
		return t
	}
	return t + STime(days*MinutesPerDay)
}

func (t STime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours(), t.Minutes())
}

func numPart(parts []string, i int) (int, error) {
	if i >= len(parts) {
		return 0, ErrMissingItem
	}
	n, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, parts[i])
	}
	return int(n), nil
}
