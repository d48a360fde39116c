package date

import (
	"strconv"
	"strings"
)

// Parse converts GEDCOM date text into a Date. It never fails: text that
// cannot be interpreted is kept verbatim as a text-only date.
func Parse(text string) Date {
	s := strings.TrimSpace(text)
	if s == "" {
		return Date{}
	}
	if d, ok := parse(s); ok {
		return d
	}
	return Date{Modifier: ModTextOnly, Text: s}
}

func parse(s string) (Date, bool) {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return Date{}, true
		}
		return Date{Modifier: ModTextOnly, Text: inner}, true
	}

	tokens := tokenize(s)
	if len(tokens) == 0 {
		return Date{}, false
	}
	if tokens[0] != "INT" {
		return parseCore(tokens)
	}

	open := strings.Index(s, "(")
	if open < 0 {
		return parseCore(tokens[1:])
	}
	end := strings.LastIndex(s, ")")
	if end < open {
		end = len(s)
	}
	d, ok := parseCore(tokenize(s[len("INT"):open]))
	if !ok {
		return Date{}, false
	}
	d.Text = strings.TrimSpace(s[open+1 : end])
	return d, true
}

// tokenize upper-cases the text, treats commas as blanks and keeps the
// two-word French calendar escape together.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ReplaceAll(strings.ToUpper(s), ",", " "))
	tokens := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "@#D") && !strings.HasSuffix(f, "@") && i+1 < len(fields) {
			f = f + " " + fields[i+1]
			i++
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func word(token string) string {
	return strings.TrimSuffix(token, ".")
}

func parseCore(tokens []string) (Date, bool) {
	var d Date

leading:
	for len(tokens) > 0 {
		switch word(tokens[0]) {
		case "EST", "ESTIMATED":
			if d.Quality != QualRegular {
				return Date{}, false
			}
			d.Quality = QualEstimated
		case "CAL", "CALCULATED":
			if d.Quality != QualRegular {
				return Date{}, false
			}
			d.Quality = QualCalculated
		case "ABT", "ABOUT", "C", "CA", "CIRCA", "APPROX":
			if d.Modifier != ModNone {
				return Date{}, false
			}
			d.Modifier = ModAbout
		case "BEF", "BEFORE":
			if d.Modifier != ModNone {
				return Date{}, false
			}
			d.Modifier = ModBefore
		case "AFT", "AFTER":
			if d.Modifier != ModNone {
				return Date{}, false
			}
			d.Modifier = ModAfter
		default:
			break leading
		}
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return Date{}, false
	}

	var ok bool
	switch word(tokens[0]) {
	case "BET", "BETWEEN":
		and := indexOf(tokens, "AND")
		if d.Modifier != ModNone || and < 0 {
			return Date{}, false
		}
		d.Modifier = ModRange
		d.Calendar, d.Start, d.Stop, ok = parsePair(tokens[1:and], tokens[and+1:])
	case "FROM":
		if d.Modifier != ModNone {
			return Date{}, false
		}
		if to := indexOf(tokens, "TO"); to >= 0 {
			d.Modifier = ModSpan
			d.Calendar, d.Start, d.Stop, ok = parsePair(tokens[1:to], tokens[to+1:])
		} else {
			d.Modifier = ModFrom
			d.Calendar, d.Start, ok = parseSingle(tokens[1:])
		}
	case "TO":
		if d.Modifier != ModNone {
			return Date{}, false
		}
		d.Modifier = ModTo
		d.Calendar, d.Start, ok = parseSingle(tokens[1:])
	default:
		d.Calendar, d.Start, ok = parseSingle(tokens)
	}
	if !ok {
		return Date{}, false
	}
	return d, true
}

func indexOf(tokens []string, want string) int {
	for i, t := range tokens {
		if t == want {
			return i
		}
	}
	return -1
}

// leadingCalendar strips a calendar escape from the front of tokens. ok is
// false for escapes of calendars this package cannot represent.
func leadingCalendar(tokens []string) (cal Calendar, explicit bool, rest []string, ok bool) {
	if len(tokens) == 0 || !strings.HasPrefix(tokens[0], "@#D") {
		return Gregorian, false, tokens, true
	}
	cal, known := calendarEscapes[tokens[0]]
	if !known {
		return Gregorian, true, nil, false
	}
	return cal, true, tokens[1:], true
}

func parseSingle(tokens []string) (Calendar, Value, bool) {
	cal, _, rest, ok := leadingCalendar(tokens)
	if !ok {
		return Gregorian, Value{}, false
	}
	v, ok := parseValue(rest, cal)
	return cal, v, ok
}

// parsePair parses both ends of a range or span. An end without a calendar
// escape inherits the other end's calendar; two different explicit
// calendars are rejected.
func parsePair(left, right []string) (Calendar, Value, Value, bool) {
	lcal, lexplicit, lrest, lok := leadingCalendar(left)
	rcal, rexplicit, rrest, rok := leadingCalendar(right)
	if !lok || !rok {
		return Gregorian, Value{}, Value{}, false
	}
	if lexplicit && rexplicit && lcal != rcal {
		return Gregorian, Value{}, Value{}, false
	}
	cal := lcal
	if !lexplicit {
		cal = rcal
	}
	start, ok := parseValue(lrest, cal)
	if !ok {
		return Gregorian, Value{}, Value{}, false
	}
	stop, ok := parseValue(rrest, cal)
	if !ok {
		return Gregorian, Value{}, Value{}, false
	}
	return cal, start, stop, true
}

func parseValue(tokens []string, cal Calendar) (Value, bool) {
	var v Value
	if n := len(tokens); n > 0 {
		switch tokens[n-1] {
		case "B.C.", "B.C", "BC", "BCE":
			v.BC = true
			tokens = tokens[:n-1]
		}
	}

	var yearToken string
	switch len(tokens) {
	case 1:
		yearToken = tokens[0]
	case 2:
		v.Month = lookupMonth(cal, tokens[0])
		if v.Month == 0 {
			return Value{}, false
		}
		yearToken = tokens[1]
	case 3:
		day, err := strconv.Atoi(tokens[0])
		if err != nil || day <= 0 {
			return Value{}, false
		}
		v.Day = day
		v.Month = lookupMonth(cal, tokens[1])
		if v.Month == 0 {
			return Value{}, false
		}
		yearToken = tokens[2]
	default:
		return Value{}, false
	}

	year, dual, ok := parseYear(yearToken)
	if !ok {
		return Value{}, false
	}
	if dual && cal != Gregorian && cal != Julian {
		return Value{}, false
	}
	v.Year, v.DualYear = year, dual
	if !valid(cal, v) {
		return Value{}, false
	}
	return v, true
}

// parseYear reads "1850" or a dual year such as "1731/32", whose suffix
// must be the trailing digits of the following year.
func parseYear(token string) (int, bool, bool) {
	main, suffix, dual := strings.Cut(token, "/")
	year, err := strconv.Atoi(main)
	if err != nil || year <= 0 {
		return 0, false, false
	}
	if dual {
		if len(suffix) == 0 || len(suffix) > 4 {
			return 0, false, false
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n != (year+1)%pow10(len(suffix)) {
			return 0, false, false
		}
	}
	return year, dual, true
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
