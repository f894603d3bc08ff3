package reader

import (
	"github.com/Tiliavir/clocklog/internal/model"
	"github.com/Tiliavir/clocklog/internal/parser"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// ClockStore collects the finished clocks and group definitions of one or
// more documents. It is only appended to while reading.
type ClockStore struct {
	Groups []model.Group
	Clocks []model.Clock
}

// NewClockStore returns an empty store.
func NewClockStore() *ClockStore {
	return &ClockStore{}
}

// Read reads doc with an empty context. See ReadFrom.
func (s *ClockStore) Read(doc string) (ReadState, error) {
	return s.ReadFrom(doc, NewReadState())
}

// ReadFrom folds the actions of doc into the store, starting from seed.
// It stops at the first error. On success the final context is returned;
// a clock-in still open at the end of doc is left in its CurrIn.
//
// Clock ordering is not checked here: a clock-in that closes the previous
// one may produce an inverted clock, which AsTimeMap rejects.
func (s *ClockStore) ReadFrom(doc string, seed ReadState) (ReadState, error) {
	p := parser.NewParser(doc)
	rs := seed.clone()

	for {
		a, err := p.Next()
		if err != nil {
			return ReadState{}, err
		}
		switch d := a.Data.(type) {
		case parser.Group:
			s.Groups = append(s.Groups, model.Group{Name: d.Name, Members: d.Members})
		case parser.ShortDate:
			if !rs.YearSet {
				return ReadState{}, a.Err(parser.ErrYearNotSet, nil)
			}
			date, err := timecalc.NewDate(rs.Year, d.Month, d.Day)
			if err != nil {
				return ReadState{}, a.Err(parser.ErrDateNotValid, err)
			}
			rs.Date, rs.DateSet = date, true
		case parser.LongDate:
			date, err := timecalc.NewDate(d.Year, d.Month, d.Day)
			if err != nil {
				return ReadState{}, a.Err(parser.ErrDateNotValid, err)
			}
			rs.Date, rs.DateSet = date, true
		case parser.SetJob:
			rs.Job = d.Name
		case parser.SetYear:
			rs.Year, rs.YearSet = d.Year, true
		case parser.ClearTags:
			rs.Tags = nil
		case parser.ClearTag:
			rs.Tags = rs.Tags.Remove(d.Name)
		case parser.Tag:
			rs.Tags = rs.Tags.Add(d.Name)
		case parser.Clockin:
			if !rs.DateSet {
				return ReadState{}, a.Err(parser.ErrDateNotSet, nil)
			}
			if rs.Job == "" {
				return ReadState{}, a.Err(parser.ErrJobNotSet, nil)
			}
			if rs.CurrIn != nil {
				s.Clocks = append(s.Clocks, rs.CurrIn.AsClock(d.Time))
			}
			rs.CurrIn = &model.Clockin{
				In:   timecalc.NewMoment(rs.Date, d.Time),
				Job:  rs.Job,
				Tags: rs.Tags.Clone(),
			}
		case parser.Clockout:
			if rs.CurrIn == nil {
				return ReadState{}, a.Err(parser.ErrClockinNotSet, nil)
			}
			s.Clocks = append(s.Clocks, rs.CurrIn.AsClock(d.Time))
			rs.CurrIn = nil
		case parser.End:
			return rs, nil
		}
	}
}

// Filter returns a store holding the clocks that keep accepts. Groups are
// kept as they are.
func (s ClockStore) Filter(keep func(model.Clock) bool) ClockStore {
	out := ClockStore{Groups: s.Groups}
	for _, c := range s.Clocks {
		if keep == nil || keep(c) {
			out.Clocks = append(out.Clocks, c)
		}
	}
	return out
}
