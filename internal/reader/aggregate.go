package reader

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// ClockErrKind classifies a ClockError.
type ClockErrKind int

const (
	OutBeforeIn ClockErrKind = iota
)

func (k ClockErrKind) String() string {
	switch k {
	case OutBeforeIn:
		return "OutBeforeIn"
	default:
		return "unknown"
	}
}

// ClockError reports a finished clock that cannot be aggregated.
type ClockError struct {
	Clock model.Clock
	Kind  ClockErrKind
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Clock)
}

// Totals maps job names to their summed time.
type Totals map[string]timecalc.STime

// Jobs returns the job names in sorted order.
func (t Totals) Jobs() []string {
	jobs := make([]string, 0, len(t))
	for j := range t {
		jobs = append(jobs, j)
	}
	sort.Strings(jobs)
	return jobs
}

// Sum returns the time of all jobs together.
func (t Totals) Sum() timecalc.STime {
	var sum timecalc.STime
	for _, v := range t {
		sum += v
	}
	return sum
}

// jobWidth is the column the job name is padded to in verbose output.
const jobWidth = 15

// AsTimeMap sums the clocks per job in their original order. The first
// clock whose out time lies before its in time fails the whole aggregation
// with OutBeforeIn. When verbose, each date and each clock with its running
// totals is written to w.
func (s ClockStore) AsTimeMap(w io.Writer, verbose bool) (Totals, error) {
	totals := Totals{}
	var running timecalc.STime
	var lastDate time.Time
	for _, c := range s.Clocks {
		if !c.In.Date.Equal(lastDate) {
			lastDate = c.In.Date
			if verbose {
				fmt.Fprintln(w, timecalc.FormatDate(lastDate))
			}
		}
		if c.In.Time > c.Out {
			return nil, &ClockError{Clock: c, Kind: OutBeforeIn}
		}
		inc := c.Out.Sub(c.In.Time)
		running += inc
		totals[c.Job] += inc
		if verbose {
			fmt.Fprintf(w, "  %s: %s-%s = %s => %s   %s\n",
				runewidth.FillRight(c.Job, jobWidth), c.In.Time, c.Out, inc, totals[c.Job], running)
		}
	}
	return totals, nil
}
