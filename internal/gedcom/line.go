package gedcom

import (
	"strconv"
	"strings"

	"github.com/mvp-joe/kinship/internal/date"
	"github.com/mvp-joe/kinship/internal/model"
)

// Line is one logical GEDCOM line: a physical line with its CONC/CONT
// continuations merged and its value coerced according to the tag.
type Line struct {
	Level     int
	Token     Token
	TokenText string // tag as written, upper-cased
	XRef      string // record id of a level-0 line, without the @ signs
	Data      string // value with @@ un-doubled
	Raw       string // value as read
	LineNo    int    // physical line the logical line starts on

	// Set by coercion.
	Date  *date.Date       // DATE
	Sex   model.Gender     // SEX
	Event *model.Event     // TokGEvent
	Attr  *model.Attribute // TokAttr
}

// Pointer returns the id of a cross-reference value such as "@I1@".
func (l *Line) Pointer() (string, bool) {
	v := strings.TrimSpace(l.Data)
	if !IsPointer(v) {
		return "", false
	}
	return v[1 : len(v)-1], true
}

// Text returns the value with surrounding blanks removed.
func (l *Line) Text() string {
	return strings.TrimSpace(l.Data)
}

// IsPointer reports whether v is a cross-reference. Calendar escapes such
// as "@#DJULIAN@" are not pointers.
func IsPointer(v string) bool {
	return len(v) > 2 && v[0] == '@' && v[len(v)-1] == '@' && v[1] != '#' &&
		!strings.ContainsAny(v[1:len(v)-1], " @")
}

// StripPointer removes the @ signs of a cross-reference.
func StripPointer(v string) string {
	v = strings.TrimSpace(v)
	if IsPointer(v) {
		return v[1 : len(v)-1]
	}
	return v
}

type splitResult int

const (
	splitOK splitResult = iota
	splitBlank
	splitMalformed
)

// rawLine is a physical line split into its fields.
type rawLine struct {
	level  int
	xref   string
	tag    string
	value  string
	lineNo int
}

func (r rawLine) isContinuation() bool {
	tag := strings.ToUpper(r.tag)
	return tag == "CONC" || tag == "CONT" || tag == "CONCATENATION" || tag == "CONTINUED"
}

func (r rawLine) continuation() string {
	if r.isCont() {
		return "\n" + r.value
	}
	return r.value
}

// isCont reports whether r is a CONT (newline) rather than a CONC
// continuation.
func (r rawLine) isCont() bool {
	switch strings.ToUpper(r.tag) {
	case "CONT", "CONTINUED":
		return true
	default:
		return false
	}
}

// splitLine splits "LEVEL [@XREF@] TAG [VALUE]". The value keeps every
// character after the single delimiter following the tag.
func splitLine(s string, lineNo int) (rawLine, splitResult) {
	s = strings.TrimLeft(s, " \t")
	if strings.TrimSpace(s) == "" {
		return rawLine{}, splitBlank
	}

	levelText, rest := cutField(s)
	level, err := strconv.Atoi(levelText)
	if err != nil || level < 0 {
		return rawLine{}, splitMalformed
	}

	r := rawLine{level: level, lineNo: lineNo}
	r.tag, r.value = cutField(strings.TrimLeft(rest, " \t"))
	if IsPointer(r.tag) {
		r.xref = r.tag[1 : len(r.tag)-1]
		r.tag, r.value = cutField(strings.TrimLeft(r.value, " \t"))
	}
	if r.tag == "" {
		return rawLine{}, splitMalformed
	}
	return r, splitOK
}

func cutField(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// coerce sets the typed payload of a line. Level-0 lines are records and
// are left alone.
func coerce(l *Line) {
	if l.Level == 0 {
		return
	}
	switch l.Token {
	case TokDATE:
		d := date.Parse(l.Data)
		l.Date = &d
	case TokSEX:
		l.Sex = parseSex(l.Data)
	case TokNOTE:
		if _, ok := l.Pointer(); ok {
			l.Token = TokRNote
		}
	case TokUnknown:
		if et, ok := eventTags[l.TokenText]; ok {
			l.Token = TokGEvent
			l.Event = &model.Event{Type: et}
			if desc := l.Text(); desc != "" && desc != "Y" && !IsPointer(desc) {
				l.Event.Description = desc
			}
			return
		}
		if at, ok := attributeTags[l.TokenText]; ok {
			l.Token = TokAttr
			l.Attr = &model.Attribute{Type: at, Value: l.Text()}
		}
	}
}

func parseSex(v string) model.Gender {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "M", "MALE":
		return model.GenderMale
	case "F", "FEMALE":
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}
