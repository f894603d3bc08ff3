package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Tiliavir/clocklog/internal/config"
	"github.com/Tiliavir/clocklog/internal/filter"
	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/parser"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/report"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

type app struct {
	cfg config.Config
	log *logging.Logger
	now func() time.Time
}

// paths lists the clock files in read order.
func (a *app) paths() []string {
	return append(append([]string{}, a.cfg.History...), a.cfg.File)
}

func (a *app) load() (*reader.ClockStore, reader.ReadState, error) {
	store := reader.NewClockStore()
	rs, err := storage.ReadFiles(store, a.paths()...)
	if err != nil {
		return nil, reader.ReadState{}, err
	}
	a.log.Debug("read clock files",
		logging.F("files", len(a.paths())),
		logging.F("clocks", len(store.Clocks)),
		logging.F("groups", len(store.Groups)))
	return store, rs, nil
}

// moment returns the current moment, or today at HH:MM when at is set.
func (a *app) moment(at string) (timecalc.Moment, error) {
	now := timecalc.MomentAt(a.now())
	if at == "" {
		return now, nil
	}
	t, err := timecalc.ParseSTime(at)
	if err != nil {
		return timecalc.Moment{}, userErrorf("invalid --at value %q: %w", at, err)
	}
	return timecalc.NewMoment(now.Date, t), nil
}

func (a *app) today() time.Time {
	return timecalc.DateOf(a.now())
}

func (a *app) start(w io.Writer, job string, tags []string, now timecalc.Moment) error {
	if !parser.IsIdent(job) {
		return userErrorf("invalid job name %q: use letters, digits and _", job)
	}
	for _, t := range tags {
		if !parser.IsIdent(t) {
			return userErrorf("invalid tag %q: use letters, digits and _", t)
		}
	}
	_, rs, err := a.load()
	if err != nil {
		return err
	}
	if in := rs.CurrIn; in != nil {
		if now.Before(in.In) {
			return userErrorf("cannot clock in at %s, %s is clocked in since %s", now, in.Job, in.In)
		}
		fmt.Fprintf(w, "Clocked out of %s after %s\n", in.Job, timecalc.FormatDuration(now.TimeSince(in.In)))
	}

	if err := storage.AppendLines(a.cfg.File, storage.StartLines(rs, now, job, tags)); err != nil {
		return err
	}
	a.log.Info("clocked in", logging.F("job", job), logging.F("file", a.cfg.File))
	fmt.Fprintf(w, "Clocked in for %s at %s\n", job, now.Time)
	return nil
}

func (a *app) stop(w io.Writer, now timecalc.Moment) error {
	_, rs, err := a.load()
	if err != nil {
		return err
	}
	lines, err := storage.StopLines(rs, now)
	if err != nil {
		return err
	}
	if now.Before(rs.CurrIn.In) {
		return userErrorf("cannot clock out at %s before the clock-in at %s", now, rs.CurrIn.In)
	}
	if err := storage.AppendLines(a.cfg.File, lines); err != nil {
		return err
	}
	a.log.Info("clocked out", logging.F("job", rs.CurrIn.Job), logging.F("file", a.cfg.File))
	fmt.Fprintf(w, "Clocked out of %s after %s\n", rs.CurrIn.Job, timecalc.FormatDuration(now.TimeSince(rs.CurrIn.In)))
	return nil
}

func (a *app) status(w io.Writer, now timecalc.Moment) error {
	store, rs, err := a.load()
	if err != nil {
		return err
	}
	if rs.CurrIn != nil {
		fmt.Fprintln(w, rs.CurrIn.Describe(now))
	} else {
		fmt.Fprintln(w, "Not clocked in.")
	}

	today := store.Filter(filter.Between(now.Date, now.Date.AddDate(0, 0, 1)))
	totals, err := today.AsTimeMap(nil, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Today: %s logged.\n", timecalc.FormatDuration(totals.Sum()))
	return nil
}

// selected returns the store restricted to the clocks opts selects.
func (a *app) selected(opts filter.Options) (reader.ClockStore, error) {
	store, _, err := a.load()
	if err != nil {
		return reader.ClockStore{}, err
	}
	f, err := filter.FromOptions(opts, store.Groups, a.today())
	if err != nil {
		return reader.ClockStore{}, userError{err}
	}
	return store.Filter(f), nil
}

func (a *app) report(w io.Writer, opts filter.Options, format report.Format, verbose bool, styles report.Styles) error {
	sel, err := a.selected(opts)
	if err != nil {
		return err
	}
	verbose = verbose && format == report.FormatMD
	totals, err := sel.AsTimeMap(w, verbose)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintln(w)
	}
	return report.WriteTotals(w, totals, reportLabel(opts, a.today()), format, styles)
}

func (a *app) list(w io.Writer, opts filter.Options, format report.Format, styles report.Styles) error {
	sel, err := a.selected(opts)
	if err != nil {
		return err
	}
	return report.WriteClocks(w, sel.Clocks, format, styles)
}

// dump prints every action of the clock file at path with its position.
// Actions before a syntax error are printed before the error is returned.
func dump(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("storage error reading %s: %w", path, err)
	}
	actions, err := parser.Actions(string(data))
	for _, a := range actions {
		fmt.Fprintln(w, a)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// reportLabel names the range opts select.
func reportLabel(o filter.Options, today time.Time) string {
	switch {
	case o.ThisWeek:
		if o.Last {
			today = today.AddDate(0, 0, -7)
		}
		return "Week " + timecalc.ISOWeekLabel(today)
	case o.Week != "":
		return "Week " + o.Week
	case o.ThisMonth:
		m := timecalc.MonthStart(today)
		if o.Last {
			m = timecalc.PrevMonthStart(m)
		}
		return "Month " + m.Format("2006-01")
	case o.Month != "":
		return "Month " + o.Month
	case o.Today:
		if o.Last {
			today = today.AddDate(0, 0, -1)
		}
		return "Day " + timecalc.FormatDate(today)
	case o.Day != "":
		return "Day " + o.Day
	}
	return "All clocks"
}
