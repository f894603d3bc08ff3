package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvEscape(tt.input), tt.input)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

var totals = reader.Totals{
	"jobB": timecalc.NewSTime(1, 30),
	"jobA": timecalc.NewSTime(4, 0),
}

func TestWriteTotalsMD(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, totals, "Week 2024-W10", FormatMD, Plain()))
	div := "--------------------------------\n"
	want := "Week 2024-W10\n" + div +
		"jobA                4h 0m\n" +
		"jobB                1h 30m\n" +
		div +
		"Total               5h 30m\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTotalsWideJob(t *testing.T) {
	var buf bytes.Buffer
	wide := reader.Totals{"日本語の仕事の名前はとても長い": 60}
	require.NoError(t, WriteTotals(&buf, wide, "x", FormatMD, Plain()))
	// 15 wide runes take 30 columns, plus two of padding.
	assert.Contains(t, buf.String(), "日本語の仕事の名前はとても長い  1h 0m\n")
}

func TestWriteTotalsCSVAndJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, totals, "x", FormatCSV, Plain()))
	assert.Equal(t, "job,duration_minutes\njobA,240\njobB,90\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTotals(&buf, totals, "2024-W10", FormatJSON, Plain()))
	var doc totalsDoc
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, totalsDoc{
		Label:        "2024-W10",
		Jobs:         []jobTotal{{"jobA", 240}, {"jobB", 90}},
		TotalMinutes: 330,
	}, doc)
}

func clocks() []model.Clock {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	return []model.Clock{
		{In: timecalc.NewMoment(d1, timecalc.NewSTime(9, 0)), Out: timecalc.NewSTime(13, 0), Job: "jobA", Tags: []string{"x", "y"}},
		{In: timecalc.NewMoment(d1, timecalc.NewSTime(13, 0)), Out: timecalc.NewSTime(13, 45), Job: "jobB"},
		{In: timecalc.NewMoment(d2, timecalc.NewSTime(22, 0)), Out: timecalc.NewSTime(25, 0), Job: "night"},
	}
}

func TestWriteClocksMD(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClocks(&buf, clocks(), FormatMD, Plain()))
	want := "01/03/2024\n" +
		"  09:00–13:00  jobA [x, y] (4h 0m)\n" +
		"  13:00–13:45  jobB (45m)\n" +
		"02/03/2024\n" +
		"  22:00–25:00  night (3h 0m)\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, WriteClocks(&buf, nil, FormatMD, Plain()))
	assert.Equal(t, "No clocks found.\n", buf.String())
}

func TestWriteClocksCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClocks(&buf, clocks()[:2], FormatCSV, Plain()))
	want := "date,job,tags,in,out,duration_minutes\n" +
		"2024-03-01,jobA,\"x,y\",09:00,13:00,240\n" +
		"2024-03-01,jobB,,13:00,13:45,45\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteClocksJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClocks(&buf, clocks(), FormatJSON, Plain()))
	var got []clockRecord
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, clockRecord{Date: "2024-03-02", Job: "night", Tags: []string{}, In: "22:00", Out: "25:00", Minutes: 180}, got[2])

	buf.Reset()
	require.NoError(t, WriteClocks(&buf, nil, FormatJSON, Plain()))
	assert.Equal(t, "[]\n", buf.String())
}

func TestColoredStylesRender(t *testing.T) {
	s := Colored()
	assert.Contains(t, s.header("01/03/2024"), "01/03/2024")
	assert.Equal(t, "01/03/2024", Plain().header("01/03/2024"))
}
