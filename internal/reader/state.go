package reader

import (
	"time"

	"github.com/Tiliavir/clocklog/internal/model"
)

// ReadState is the context threaded through the actions of a document.
// Read returns it at End so a caller can inspect an open clock-in or seed
// the next document with it.
type ReadState struct {
	Year    int
	YearSet bool
	DateSet bool
	Date    time.Time
	Job     string    // empty until a job is set
	Tags    model.TagSet
	CurrIn  *model.Clockin
}

// NewReadState returns an empty context.
func NewReadState() ReadState {
	return ReadState{}
}

// Carry returns the context a following document starts from: year, date,
// job and tags are kept, the open clock-in is not.
func (rs ReadState) Carry() ReadState {
	return ReadState{
		Year:    rs.Year,
		YearSet: rs.YearSet,
		DateSet: rs.DateSet,
		Date:    rs.Date,
		Job:     rs.Job,
		Tags:    model.TagSet(rs.Tags.Clone()),
	}
}

func (rs ReadState) clone() ReadState {
	out := rs.Carry()
	if rs.CurrIn != nil {
		in := *rs.CurrIn
		in.Tags = append([]string{}, in.Tags...)
		out.CurrIn = &in
	}
	return out
}
