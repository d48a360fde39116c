package date

import "strings"

var gregorianMonths = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var hebrewMonths = []string{"TSH", "CSH", "KSL", "TVT", "SHV", "ADR", "ADS", "NSN", "IYR", "SVN", "TMZ", "AAV", "ELL"}

var frenchMonths = []string{"VEND", "BRUM", "FRIM", "NIVO", "PLUV", "VENT", "GERM", "FLOR", "PRAI", "MESS", "THER", "FRUC", "COMP"}

// Long English month names seen in hand-edited files.
var longMonths = map[string]int{
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "JUNE": 6, "JULY": 7,
	"AUGUST": 8, "SEPTEMBER": 9, "SEPT": 9, "OCTOBER": 10, "NOVEMBER": 11, "DECEMBER": 12,
}

var calendarEscapes = map[string]Calendar{
	"@#DGREGORIAN@": Gregorian,
	"@#DJULIAN@":    Julian,
	"@#DHEBREW@":    Hebrew,
	"@#DFRENCH R@":  French,
}

func calendarEscape(cal Calendar) string {
	switch cal {
	case Julian:
		return "@#DJULIAN@"
	case Hebrew:
		return "@#DHEBREW@"
	case French:
		return "@#DFRENCH R@"
	default:
		return ""
	}
}

func monthTable(cal Calendar) []string {
	switch cal {
	case Hebrew:
		return hebrewMonths
	case French:
		return frenchMonths
	default:
		return gregorianMonths
	}
}

func monthName(cal Calendar, month int) string {
	months := monthTable(cal)
	if month < 1 || month > len(months) {
		return ""
	}
	return months[month-1]
}

// lookupMonth returns the 1-based month for a token, or 0.
func lookupMonth(cal Calendar, token string) int {
	token = strings.TrimSuffix(strings.ToUpper(token), ".")
	for i, name := range monthTable(cal) {
		if token == name {
			return i + 1
		}
	}
	if cal == Gregorian || cal == Julian {
		if m, ok := longMonths[token]; ok {
			return m
		}
	}
	return 0
}

func isLeap(cal Calendar, year int) bool {
	if cal == Julian {
		return year%4 == 0
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(cal Calendar, month, year int) int {
	switch cal {
	case Hebrew:
		return 30
	case French:
		if month == 13 {
			return 6
		}
		return 30
	}
	switch month {
	case 2:
		if isLeap(cal, year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func valid(cal Calendar, v Value) bool {
	if v.Year <= 0 {
		return false
	}
	if v.Month == 0 {
		return v.Day == 0
	}
	if v.Month < 1 || v.Month > len(monthTable(cal)) {
		return false
	}
	if v.Day == 0 {
		return true
	}
	return v.Day >= 1 && v.Day <= daysIn(cal, v.Month, v.Year)
}
