// Package appointment parses and formats the textual appointment
// entries attached to customers: "<DD.MM.YYYY> um <HH:MM> - <note>".
package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"

	dateTimeSep = " um "
	noteSep     = " - "
)

// Appointment is one parsed entry. When combines the date and time of
// day; Note is free text and may itself contain " - ".
type Appointment struct {
	When time.Time
	Note string
}

// ParseError reports an entry that does not match the grammar.
// Callers building date-based views skip such entries silently.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed appointment %q: %s", e.Input, e.Reason)
}

// Format renders an entry in the canonical grammar. The note is
// inserted verbatim even when it contains delimiter-like substrings.
func Format(when time.Time, note string) string {
	return when.Format(dateLayout) + dateTimeSep + when.Format(timeLayout) + noteSep + note
}

// Parse splits an entry once on " um " and once on the first " - ".
// Anything after a second " - " stays part of the note.
func Parse(s string) (Appointment, error) {
	parts := strings.SplitN(s, dateTimeSep, 2)
	if len(parts) < 2 {
		return Appointment{}, &ParseError{Input: s, Reason: "missing \" um \" separator"}
	}

	day, err := time.Parse(dateLayout, parts[0])
	if err != nil {
		return Appointment{}, &ParseError{Input: s, Reason: "date is not DD.MM.YYYY"}
	}

	rest := strings.SplitN(parts[1], noteSep, 2)
	if len(rest) < 2 {
		return Appointment{}, &ParseError{Input: s, Reason: "missing \" - \" separator"}
	}

	clock, err := time.Parse(timeLayout, rest[0])
	if err != nil {
		return Appointment{}, &ParseError{Input: s, Reason: "time is not HH:MM"}
	}

	when := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	return Appointment{When: when, Note: rest[1]}, nil
}

// Date returns the date part in display form.
func (a Appointment) Date() string {
	return a.When.Format(dateLayout)
}

// Time returns the time-of-day part in display form.
func (a Appointment) Time() string {
	return a.When.Format(timeLayout)
}
