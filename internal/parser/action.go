package parser

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/clocklog/internal/timecalc"
)

// Action is one parsed statement of a document, positioned at the token
// that started it.
type Action struct {
	Line int
	Col  int
	Data ActionData
}

// Err returns a ParseError of the given kind at the action's position.
func (a Action) Err(kind ErrKind, cause error) *ParseError {
	return &ParseError{Line: a.Line, Col: a.Col, Kind: kind, Cause: cause}
}

func (a Action) String() string {
	return fmt.Sprintf("%d:%d %s", a.Line, a.Col, a.Data)
}

// ActionData is implemented by the closed set of statement kinds below.
type ActionData interface {
	fmt.Stringer
	action()
}

// Group defines a named list of jobs. Members keep their order and duplicates.
type Group struct {
	Name    string
	Members []string
}

// ShortDate sets the date using the year declared earlier with year=YYYY.
type ShortDate struct {
	Day, Month int
}

type LongDate struct {
	Day, Month, Year int
}

type SetJob struct {
	Name string
}

type SetYear struct {
	Year int
}

// ClearTags empties the active tag set.
type ClearTags struct{}

// ClearTag removes one tag from the active set.
type ClearTag struct {
	Name string
}

// Tag adds a tag to the active set.
type Tag struct {
	Name string
}

type Clockin struct {
	Time timecalc.STime
}

type Clockout struct {
	Time timecalc.STime
}

// End marks the end of the document.
type End struct{}

func (Group) action()     {}
func (ShortDate) action() {}
func (LongDate) action()  {}
func (SetJob) action()    {}
func (SetYear) action()   {}
func (ClearTags) action() {}
func (ClearTag) action()  {}
func (Tag) action()       {}
func (Clockin) action()   {}
func (Clockout) action()  {}
func (End) action()       {}

func (g Group) String() string {
	return fmt.Sprintf("Group(%s [%s])", g.Name, strings.Join(g.Members, ", "))
}
func (d ShortDate) String() string { return fmt.Sprintf("ShortDate(%d/%d)", d.Day, d.Month) }
func (d LongDate) String() string {
	return fmt.Sprintf("LongDate(%d/%d/%d)", d.Day, d.Month, d.Year)
}
func (j SetJob) String() string   { return fmt.Sprintf("SetJob(%s)", j.Name) }
func (y SetYear) String() string  { return fmt.Sprintf("SetYear(%d)", y.Year) }
func (ClearTags) String() string  { return "ClearTags" }
func (c ClearTag) String() string { return fmt.Sprintf("ClearTag(%s)", c.Name) }
func (t Tag) String() string      { return fmt.Sprintf("Tag(%s)", t.Name) }
func (c Clockin) String() string  { return fmt.Sprintf("Clockin(%s)", c.Time) }
func (c Clockout) String() string { return fmt.Sprintf("Clockout(%s)", c.Time) }
func (End) String() string        { return "End" }
