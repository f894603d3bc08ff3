package storage_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/reader"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

func at(d, h, m int) timecalc.Moment {
	return timecalc.NewMoment(day(2024, 3, d), timecalc.NewSTime(uint32(h), uint32(m)))
}

func TestStartLines(t *testing.T) {
	open := &model.Clockin{In: at(1, 22, 0), Job: "night"}
	tests := []struct {
		name string
		rs   reader.ReadState
		now  timecalc.Moment
		tags []string
		want []string
	}{
		{
			name: "empty file",
			now:  at(1, 9, 0),
			want: []string{"01/03/2024", "\tjobA,09:00"},
		},
		{
			name: "same day",
			rs:   reader.ReadState{DateSet: true, Date: day(2024, 3, 1)},
			now:  at(1, 9, 5),
			want: []string{"\tjobA,09:05"},
		},
		{
			name: "replace tags",
			rs:   reader.ReadState{DateSet: true, Date: day(2024, 3, 1), Tags: model.TagSet{"old"}},
			now:  at(1, 9, 0),
			tags: []string{"a", "b"},
			want: []string{"\t__", "\t_a", "\t_b", "\tjobA,09:00"},
		},
		{
			name: "close clock-in of earlier day",
			rs:   reader.ReadState{DateSet: true, Date: day(2024, 3, 1), CurrIn: open},
			now:  at(2, 1, 30),
			want: []string{"\t-25:30", "02/03/2024", "\tjobA,01:30"},
		},
		{
			name: "clock-in of today closes itself",
			rs:   reader.ReadState{DateSet: true, Date: day(2024, 3, 1), CurrIn: open},
			now:  at(1, 23, 0),
			want: []string{"\tjobA,23:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.StartLines(tt.rs, tt.now, "jobA", tt.tags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StartLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStopLines(t *testing.T) {
	if _, err := storage.StopLines(reader.ReadState{}, at(1, 9, 0)); !errors.Is(err, storage.ErrNotClockedIn) {
		t.Errorf("error = %v, want ErrNotClockedIn", err)
	}
	rs := reader.ReadState{CurrIn: &model.Clockin{In: at(1, 22, 0), Job: "night"}}
	got, err := storage.StopLines(rs, at(3, 0, 15))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"\t-48:15"}) {
		t.Errorf("StopLines = %q", got)
	}
}

func TestStartStopRoundTrip(t *testing.T) {
	var doc []string
	read := func() reader.ReadState {
		t.Helper()
		rs, err := reader.NewClockStore().Read(strings.Join(doc, "\n"))
		if err != nil {
			t.Fatalf("reading %q: %v", doc, err)
		}
		return rs
	}

	doc = append(doc, storage.StartLines(read(), at(1, 22, 0), "night", []string{"ops"})...)
	doc = append(doc, storage.StartLines(read(), at(2, 1, 0), "day", nil)...)
	stop, err := storage.StopLines(read(), at(2, 9, 0))
	if err != nil {
		t.Fatal(err)
	}
	doc = append(doc, stop...)

	store := reader.NewClockStore()
	if _, err := store.Read(strings.Join(doc, "\n")); err != nil {
		t.Fatal(err)
	}
	totals, err := store.AsTimeMap(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if totals["night"] != timecalc.NewSTime(3, 0) || totals["day"] != timecalc.NewSTime(8, 0) {
		t.Errorf("totals = %v", totals)
	}
	if got := store.Clocks[1].Tags; len(got) != 1 || got[0] != "ops" {
		t.Errorf("tags of second clock = %v, want [ops]", got)
	}
}

func TestTagLinesReadBack(t *testing.T) {
	doc := strings.Join([]string{
		storage.TagLine("a"),
		storage.TagLine("b"),
		storage.ClearTagLine("a"),
		storage.TagLine("c"),
	}, "\n")
	rs, err := reader.NewClockStore().Read(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rs.Tags, model.TagSet{"b", "c"}) {
		t.Errorf("tags = %v, want [b c]", rs.Tags)
	}

	rs, err = reader.NewClockStore().Read(doc + "\n" + storage.ClearTagsLine())
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.Tags) != 0 {
		t.Errorf("tags after clear = %v, want none", rs.Tags)
	}
}
