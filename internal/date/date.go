// Package date models GEDCOM date values: single dates, qualified dates,
// ranges, spans and free-text dates, in any of the GEDCOM calendars.
package date

import (
	"fmt"
	"strings"
)

// Calendar identifies the calendar a date value was written in.
type Calendar int

const (
	Gregorian Calendar = iota
	Julian
	Hebrew
	French
)

func (c Calendar) String() string {
	switch c {
	case Julian:
		return "julian"
	case Hebrew:
		return "hebrew"
	case French:
		return "french"
	default:
		return "gregorian"
	}
}

// Modifier describes how the date values relate to the event.
type Modifier int

const (
	ModNone Modifier = iota
	ModAbout
	ModBefore
	ModAfter
	ModRange // BET x AND y
	ModSpan  // FROM x TO y
	ModFrom  // FROM x
	ModTo    // TO y
	ModTextOnly
)

func (m Modifier) String() string {
	switch m {
	case ModAbout:
		return "about"
	case ModBefore:
		return "before"
	case ModAfter:
		return "after"
	case ModRange:
		return "range"
	case ModSpan:
		return "span"
	case ModFrom:
		return "from"
	case ModTo:
		return "to"
	case ModTextOnly:
		return "text"
	default:
		return "none"
	}
}

// Quality records whether a date was estimated or calculated.
type Quality int

const (
	QualRegular Quality = iota
	QualEstimated
	QualCalculated
)

// Value is one calendar date; zero Day or Month means "not given".
type Value struct {
	Day      int  `json:"day,omitempty"`
	Month    int  `json:"month,omitempty"`
	Year     int  `json:"year,omitempty"`
	DualYear bool `json:"dual_year,omitempty"` // old-style/new-style year written as 1749/50
	BC       bool `json:"bc,omitempty"`
}

// IsZero reports whether no part of the value is set.
func (v Value) IsZero() bool {
	return v == Value{}
}

// Date is a parsed GEDCOM date. Dates are comparable with ==.
//
// For ModTextOnly, Text holds the original text. For any other modifier a
// non-empty Text is the phrase of an interpreted (INT) date.
type Date struct {
	Calendar Calendar `json:"calendar,omitempty"`
	Modifier Modifier `json:"modifier,omitempty"`
	Quality  Quality  `json:"quality,omitempty"`
	Start    Value    `json:"start,omitempty"`
	Stop     Value    `json:"stop,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// IsEmpty reports whether the date carries no information at all.
func (d Date) IsEmpty() bool {
	return d == Date{}
}

// IsTextOnly reports whether the date could not be parsed into values.
func (d Date) IsTextOnly() bool {
	return d.Modifier == ModTextOnly
}

// IsApproximate reports whether the date is about, estimated or calculated.
func (d Date) IsApproximate() bool {
	return d.Modifier == ModAbout || d.Quality != QualRegular
}

// IsCompound reports whether the date has both a start and a stop value.
func (d Date) IsCompound() bool {
	return d.Modifier == ModRange || d.Modifier == ModSpan
}

// Year returns the start year, or 0 for text-only and empty dates.
func (d Date) Year() int {
	if d.Modifier == ModTextOnly {
		return 0
	}
	return d.Start.Year
}

// String renders the date in GEDCOM form. Parse(d.String()) == d holds for
// every date produced by Parse.
func (d Date) String() string {
	if d.Modifier == ModTextOnly {
		if d.Text == "" {
			return ""
		}
		return "(" + d.Text + ")"
	}
	if d.IsEmpty() {
		return ""
	}

	var b strings.Builder
	switch d.Quality {
	case QualEstimated:
		b.WriteString("EST ")
	case QualCalculated:
		b.WriteString("CAL ")
	}

	start := formatValue(d.Calendar, d.Start)
	switch d.Modifier {
	case ModAbout:
		b.WriteString("ABT " + start)
	case ModBefore:
		b.WriteString("BEF " + start)
	case ModAfter:
		b.WriteString("AFT " + start)
	case ModRange:
		b.WriteString("BET " + start + " AND " + formatValue(d.Calendar, d.Stop))
	case ModSpan:
		b.WriteString("FROM " + start + " TO " + formatValue(d.Calendar, d.Stop))
	case ModFrom:
		b.WriteString("FROM " + start)
	case ModTo:
		b.WriteString("TO " + start)
	default:
		b.WriteString(start)
	}

	if d.Text != "" {
		return "INT " + b.String() + " (" + d.Text + ")"
	}
	return b.String()
}

func formatValue(cal Calendar, v Value) string {
	var parts []string
	if escape := calendarEscape(cal); escape != "" {
		parts = append(parts, escape)
	}
	if v.Day > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Day))
	}
	if v.Month > 0 {
		parts = append(parts, monthName(cal, v.Month))
	}
	year := fmt.Sprintf("%d", v.Year)
	if v.DualYear {
		year = fmt.Sprintf("%d/%02d", v.Year, (v.Year+1)%100)
	}
	parts = append(parts, year)
	if v.BC {
		parts = append(parts, "B.C.")
	}
	return strings.Join(parts, " ")
}
