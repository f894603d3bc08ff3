package parser

import "fmt"

// ErrKind classifies a ParseError.
type ErrKind int

const (
	// lexical
	ErrNoToken ErrKind = iota

	// syntactic
	ErrNotANumber
	ErrNotAnItem
	ErrNotSlashOrColon
	ErrNotATime
	ErrNotYear
	ErrUnexpectedEOF
	ErrExpected

	// contextual, raised while reading
	ErrYearNotSet
	ErrDateNotSet
	ErrJobNotSet
	ErrClockinNotSet
	ErrDateNotValid
	ErrMissingItem
	ErrMinutesOver60
)

var errKindNames = map[ErrKind]string{
	ErrNoToken:         "NoToken",
	ErrNotANumber:      "NotANumber",
	ErrNotAnItem:       "NotAnItem",
	ErrNotSlashOrColon: "NotSlashOrColon",
	ErrNotATime:        "NotATime",
	ErrNotYear:         "NotYear",
	ErrUnexpectedEOF:   "UnexpectedEOF",
	ErrExpected:        "Expected",
	ErrYearNotSet:      "YearNotSet",
	ErrDateNotSet:      "DateNotSet",
	ErrJobNotSet:       "JobNotSet",
	ErrClockinNotSet:   "ClockinNotSet",
	ErrDateNotValid:    "DateNotValid",
	ErrMissingItem:     "MissingItem",
	ErrMinutesOver60:   "MinutesOver60",
}

func (k ErrKind) String() string {
	if name, ok := errKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseError is returned for every failure while tokenizing, parsing or
// reading a document. Line and Col point at the offending token.
type ParseError struct {
	Line     int
	Col      int
	Kind     ErrKind
	Expected TokenType // set for ErrExpected and ErrUnexpectedEOF
	Cause    error
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Kind == ErrExpected || e.Kind == ErrUnexpectedEOF {
		msg = fmt.Sprintf("%s: expected %s", msg, e.Expected)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, msg)
}

func (e *ParseError) Unwrap() error { return e.Cause }
