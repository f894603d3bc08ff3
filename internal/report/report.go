// Package report renders totals and clock listings as markdown-like text,
// CSV or JSON.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// Format is an output format.
type Format string

const (
	FormatMD   Format = "md"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatMD, FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want md, csv or json)", s)
}

// Styles decorates headers and totals of md output.
type Styles struct {
	Header  lipgloss.Style
	Total   lipgloss.Style
	Muted   lipgloss.Style
	enabled bool
}

// Plain returns styles that leave text untouched.
func Plain() Styles {
	return Styles{}
}

// Colored returns the terminal styles.
func Colored() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Total:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		enabled: true,
	}
}

// StylesFor returns Colored when f is a terminal and Plain otherwise.
func StylesFor(f *os.File) Styles {
	if term.IsTerminal(int(f.Fd())) {
		return Colored()
	}
	return Plain()
}

func (s Styles) header(str string) string { return s.render(s.Header, str) }
func (s Styles) total(str string) string  { return s.render(s.Total, str) }
func (s Styles) muted(str string) string  { return s.render(s.Muted, str) }

func (s Styles) render(st lipgloss.Style, str string) string {
	if !s.enabled {
		return str
	}
	return st.Render(str)
}

const minJobWidth = 20

// jobWidth is the display width job names are padded to.
func jobWidth(jobs []string) int {
	w := minJobWidth
	for _, j := range jobs {
		if jw := runewidth.StringWidth(j) + 2; jw > w {
			w = jw
		}
	}
	return w
}

type jobTotal struct {
	Job     string `json:"job"`
	Minutes uint32 `json:"duration_minutes"`
}

type totalsDoc struct {
	Label        string     `json:"label"`
	Jobs         []jobTotal `json:"jobs"`
	TotalMinutes uint32     `json:"total_minutes"`
}

// WriteTotals writes the per-job totals under label.
func WriteTotals(w io.Writer, totals reader.Totals, label string, format Format, styles Styles) error {
	jobs := totals.Jobs()
	switch format {
	case FormatCSV:
		fmt.Fprintln(w, "job,duration_minutes")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s,%d\n", csvEscape(j), uint32(totals[j]))
		}
		return nil
	case FormatJSON:
		doc := totalsDoc{Label: label, Jobs: []jobTotal{}, TotalMinutes: uint32(totals.Sum())}
		for _, j := range jobs {
			doc.Jobs = append(doc.Jobs, jobTotal{Job: j, Minutes: uint32(totals[j])})
		}
		return writeJSON(w, doc)
	default:
		width := jobWidth(jobs)
		divider := strings.Repeat("-", width+12)
		fmt.Fprintln(w, styles.header(label))
		fmt.Fprintln(w, divider)
		for _, j := range jobs {
			fmt.Fprintf(w, "%s%s\n", runewidth.FillRight(j, width), timecalc.FormatDuration(totals[j]))
		}
		fmt.Fprintln(w, divider)
		fmt.Fprintln(w, styles.total(runewidth.FillRight("Total", width)+timecalc.FormatDuration(totals.Sum())))
		return nil
	}
}

type clockRecord struct {
	Date    string   `json:"date"`
	Job     string   `json:"job"`
	Tags    []string `json:"tags"`
	In      string   `json:"in"`
	Out     string   `json:"out"`
	Minutes uint32   `json:"duration_minutes"`
}

func record(c model.Clock) clockRecord {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return clockRecord{
		Date:    c.In.Date.Format("2006-01-02"),
		Job:     c.Job,
		Tags:    tags,
		In:      c.In.Time.String(),
		Out:     c.Out.String(),
		Minutes: uint32(c.Duration()),
	}
}

// WriteClocks writes every clock. In md format clocks are grouped under a
// header per date.
func WriteClocks(w io.Writer, clocks []model.Clock, format Format, styles Styles) error {
	switch format {
	case FormatCSV:
		fmt.Fprintln(w, "date,job,tags,in,out,duration_minutes")
		for _, c := range clocks {
			r := record(c)
			fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d\n",
				r.Date, csvEscape(r.Job), csvEscape(strings.Join(r.Tags, ",")), r.In, r.Out, r.Minutes)
		}
		return nil
	case FormatJSON:
		records := make([]clockRecord, 0, len(clocks))
		for _, c := range clocks {
			records = append(records, record(c))
		}
		return writeJSON(w, records)
	default:
		if len(clocks) == 0 {
			fmt.Fprintln(w, "No clocks found.")
			return nil
		}
		var current string
		for _, c := range clocks {
			day := timecalc.FormatDate(c.In.Date)
			if day != current {
				fmt.Fprintln(w, styles.header(day))
				current = day
			}
			tags := ""
			if len(c.Tags) > 0 {
				tags = " " + styles.muted("["+strings.Join(c.Tags, ", ")+"]")
			}
			fmt.Fprintf(w, "  %s–%s  %s%s (%s)\n",
				c.In.Time, c.Out, c.Job, tags, timecalc.FormatDuration(c.Duration()))
		}
		return nil
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
