package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/clocklog/internal/config"
	"github.com/Tiliavir/clocklog/internal/filter"
	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/msgraph"
	"github.com/Tiliavir/clocklog/internal/parser"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/report"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// 2024-03-13 is a Wednesday.
var wednesday = time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

func newApp(t *testing.T, content string) *app {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.clk")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return &app{
		cfg: config.Config{File: path},
		log: logging.Discard(),
		now: func() time.Time { return wednesday.Add(15 * time.Hour) },
	}
}

func at(d time.Time, h, m uint32) timecalc.Moment {
	return timecalc.NewMoment(d, timecalc.NewSTime(h, m))
}

func fileContent(t *testing.T, a *app) string {
	t.Helper()
	data, err := os.ReadFile(a.cfg.File)
	require.NoError(t, err)
	return string(data)
}

func TestStartStopReport(t *testing.T) {
	a := newApp(t, "")
	var out bytes.Buffer

	require.NoError(t, a.start(&out, "jobA", []string{"x"}, at(wednesday, 9, 0)))
	require.NoError(t, a.start(&out, "jobB", nil, at(wednesday, 12, 30)))
	require.NoError(t, a.stop(&out, at(wednesday, 17, 0)))

	assert.Equal(t, "Clocked in for jobA at 09:00\n"+
		"Clocked out of jobA after 3h 30m\n"+
		"Clocked in for jobB at 12:30\n"+
		"Clocked out of jobB after 4h 30m\n", out.String())
	assert.Equal(t, "13/03/2024\n\t_x\n\tjobA,09:00\n\tjobB,12:30\n\t-17:00\n", fileContent(t, a))

	out.Reset()
	require.NoError(t, a.report(&out, filter.Options{ThisWeek: true}, report.FormatCSV, false, report.Plain()))
	assert.Equal(t, "job,duration_minutes\njobA,210\njobB,270\n", out.String())
}

func TestStopAcrossMidnight(t *testing.T) {
	a := newApp(t, "")
	var out bytes.Buffer
	require.NoError(t, a.start(&out, "night", nil, at(wednesday, 22, 0)))
	require.NoError(t, a.stop(&out, at(wednesday.AddDate(0, 0, 1), 1, 15)))
	assert.Contains(t, fileContent(t, a), "\t-25:15\n")
	assert.Contains(t, out.String(), "Clocked out of night after 3h 15m")
}

func TestStopNotClockedIn(t *testing.T) {
	a := newApp(t, "13/03/2024\njobA,9:00,-10:00\n")
	err := a.stop(&bytes.Buffer{}, at(wednesday, 11, 0))
	assert.ErrorIs(t, err, storage.ErrNotClockedIn)
	assert.Equal(t, 1, exitCode(err))
}

func TestStopBeforeClockin(t *testing.T) {
	a := newApp(t, "13/03/2024\njobA,9:00\n")
	err := a.stop(&bytes.Buffer{}, at(wednesday, 8, 0))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, "13/03/2024\njobA,9:00\n", fileContent(t, a))
}

func TestStartRejectsBadNames(t *testing.T) {
	a := newApp(t, "")
	for _, job := range []string{"two words", "9lives", "a,b"} {
		err := a.start(&bytes.Buffer{}, job, nil, at(wednesday, 9, 0))
		assert.Error(t, err, job)
		assert.Equal(t, 1, exitCode(err), job)
	}
	err := a.start(&bytes.Buffer{}, "jobA", []string{"bad tag"}, at(wednesday, 9, 0))
	assert.Error(t, err)
	_, statErr := os.Stat(a.cfg.File)
	assert.True(t, os.IsNotExist(statErr), "nothing must be written")
}

func TestStatus(t *testing.T) {
	a := newApp(t, "12/3/2024\njobA,9:00,-17:00\n13/3/2024\njobA,8:00,-9:00\njobB,10:00\n")
	var out bytes.Buffer
	require.NoError(t, a.status(&out, at(wednesday, 12, 30)))
	assert.Equal(t, "You have been clocked in for jobB, since today : 10:00 for 02:30 Hours\n"+
		"Today: 1h 0m logged.\n", out.String())

	idle := newApp(t, "")
	out.Reset()
	require.NoError(t, idle.status(&out, at(wednesday, 12, 30)))
	assert.Equal(t, "Not clocked in.\nToday: 0m logged.\n", out.String())
}

func TestReportVerboseAndFilters(t *testing.T) {
	doc := "$team[jobA]\nyear=2024\n" +
		"4/3\njobA,9:00,-10:00\n" +
		"12/3\njobA,9:00,-11:00\njobB,11:00,-12:00\n"
	a := newApp(t, doc)
	var out bytes.Buffer

	require.NoError(t, a.report(&out, filter.Options{Groups: []string{"team"}, ThisWeek: true}, report.FormatMD, true, report.Plain()))
	got := out.String()
	assert.True(t, strings.HasPrefix(got, "12/03/2024\n  jobA           : 09:00-11:00 = 02:00 => 02:00   02:00\n\nWeek 2024-W11\n"), got)
	assert.Contains(t, got, "Total               2h 0m\n")

	out.Reset()
	require.NoError(t, a.report(&out, filter.Options{}, report.FormatCSV, true, report.Plain()))
	assert.Equal(t, "job,duration_minutes\njobA,180\njobB,60\n", out.String())
}

func TestReportOutBeforeIn(t *testing.T) {
	a := newApp(t, "13/3/2024\njobA,9:00\n-8:00\n")
	err := a.report(&bytes.Buffer{}, filter.Options{}, report.FormatMD, false, report.Plain())
	var ce *reader.ClockError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, exitCode(err))
}

func TestReportBadFilter(t *testing.T) {
	a := newApp(t, "")
	err := a.report(&bytes.Buffer{}, filter.Options{Day: "31/2"}, report.FormatMD, false, report.Plain())
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestListAndHistory(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "2024-02.clk")
	require.NoError(t, os.WriteFile(hist, []byte("year=2024\n29/2\njobA\n_h\n9:00,-9:30\n"), 0o600))
	a := newApp(t, "1/3\n10:00,-10:45\n")
	a.cfg.History = []string{hist}

	var out bytes.Buffer
	require.NoError(t, a.list(&out, filter.Options{}, report.FormatMD, report.Plain()))
	assert.Equal(t, "29/02/2024\n  09:00–09:30  jobA [h] (30m)\n01/03/2024\n  10:00–10:45  jobA [h] (45m)\n", out.String())
}

func TestDump(t *testing.T) {
	a := newApp(t, "1/3/2024\n  jobA,9:00\n  9x\n")
	var out bytes.Buffer
	err := dump(&out, a.cfg.File)
	assert.Equal(t, "1:1 LongDate(1/3/2024)\n2:3 SetJob(jobA)\n2:8 Clockin(09:00)\n", out.String())
	var pe *parser.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parser.ErrNotSlashOrColon, pe.Kind)
	assert.Equal(t, 1, exitCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), a.cfg.File+": line 3, col 3"), err.Error())
}

func TestSyncEventsAppends(t *testing.T) {
	a := newApp(t, "13/3/2024\ndev,8:00,-9:00\n")
	event := msgraph.CalendarEvent{
		Subject: "Standup",
		ShowAs:  "busy",
		Start:   msgraph.DateTimeZone{DateTime: "2024-03-13T09:00:00"},
		End:     msgraph.DateTimeZone{DateTime: "2024-03-13T09:15:00"},
	}
	var out bytes.Buffer
	opts := msgraph.SyncOptions{Job: "meetings"}

	require.NoError(t, a.syncEvents(&out, []msgraph.CalendarEvent{event}, opts, true))
	assert.Contains(t, out.String(), "\tmeetings,09:00\n")
	assert.Equal(t, "13/3/2024\ndev,8:00,-9:00\n", fileContent(t, a), "dry run must not write")

	require.NoError(t, a.syncEvents(&out, []msgraph.CalendarEvent{event}, opts, false))
	out.Reset()
	require.NoError(t, a.syncEvents(&out, []msgraph.CalendarEvent{event}, opts, false))
	assert.Contains(t, out.String(), "0 imported\n  1 skipped\n")

	out.Reset()
	require.NoError(t, a.report(&out, filter.Options{Tags: []string{msgraph.OutlookTag}}, report.FormatCSV, false, report.Plain()))
	assert.Equal(t, "job,duration_minutes\nmeetings,15\n", out.String())
}

func TestSyncRange(t *testing.T) {
	from, to, err := syncRange("", "", "", wednesday)
	require.NoError(t, err)
	assert.Equal(t, wednesday, from)
	assert.Equal(t, wednesday.AddDate(0, 0, 1), to)

	from, to, err = syncRange("", "11/3", "12/3", wednesday)
	require.NoError(t, err)
	assert.Equal(t, wednesday.AddDate(0, 0, -2), from)
	assert.Equal(t, wednesday, to)

	for _, tc := range [][3]string{{"", "", "12/3"}, {"", "13/3", "12/3"}, {"31/2", "", ""}} {
		_, _, err := syncRange(tc[0], tc[1], tc[2], wednesday)
		assert.Error(t, err, fmt.Sprint(tc))
		assert.Equal(t, 1, exitCode(err), fmt.Sprint(tc))
	}
}

func TestMomentAt(t *testing.T) {
	a := newApp(t, "")
	m, err := a.moment("")
	require.NoError(t, err)
	assert.Equal(t, at(wednesday, 15, 0), m)

	m, err = a.moment("8:05")
	require.NoError(t, err)
	assert.Equal(t, at(wednesday, 8, 5), m)

	_, err = a.moment("8:75")
	assert.ErrorIs(t, err, timecalc.ErrMinutesOver60)
	assert.Equal(t, 1, exitCode(err))
}

func TestReportLabel(t *testing.T) {
	tests := []struct {
		opts filter.Options
		want string
	}{
		{filter.Options{}, "All clocks"},
		{filter.Options{ThisWeek: true}, "Week 2024-W11"},
		{filter.Options{ThisWeek: true, Last: true}, "Week 2024-W10"},
		{filter.Options{Week: "9"}, "Week 9"},
		{filter.Options{ThisMonth: true, Last: true}, "Month 2024-02"},
		{filter.Options{Today: true}, "Day 13/03/2024"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reportLabel(tt.opts, wednesday))
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(errors.New("disk on fire")))
	assert.Equal(t, 2, exitCode(fmt.Errorf("storage error reading x: %w", os.ErrPermission)))
	assert.Equal(t, 1, exitCode(fmt.Errorf("x: %w", storage.ErrOpenClockin)))
	assert.Equal(t, 1, exitCode(userErrorf("bad")))
	assert.Equal(t, 1, exitCode(fmt.Errorf("f: %w", &parser.ParseError{Kind: parser.ErrNoToken})))
}
