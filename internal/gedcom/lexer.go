package gedcom

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mvp-joe/kinship/internal/charset"
)

// DefaultLookahead is the number of physical lines read ahead so that
// continuation lines are merged before a line is handed out.
const DefaultLookahead = 5

// Lexer turns decoded physical lines into logical Lines.
type Lexer struct {
	src       charset.LineReader
	queue     []rawLine
	lookahead int
	eof       bool

	pushback *Line
	lineNo   int // start line of the last line handed out
	physical int
	errors   int

	ignore Matcher
	onLine func(*Line)
	log    *slog.Logger
}

// LexerOption configures a Lexer.
type LexerOption func(*Lexer)

// WithLookahead sets the read-ahead depth. Values below 1 are ignored.
func WithLookahead(n int) LexerOption {
	return func(lx *Lexer) {
		if n > 0 {
			lx.lookahead = n
		}
	}
}

// WithIgnore marks lines whose tag matches m as TokIgnore.
func WithIgnore(m Matcher) LexerOption {
	return func(lx *Lexer) { lx.ignore = m }
}

// WithOnLine registers a callback invoked once for every fresh logical
// line. Lines returned again after Unread do not trigger it.
func WithOnLine(fn func(*Line)) LexerOption {
	return func(lx *Lexer) { lx.onLine = fn }
}

// WithLogger sets the logger used for malformed-line warnings.
func WithLogger(l *slog.Logger) LexerOption {
	return func(lx *Lexer) { lx.log = l }
}

// NewLexer creates a lexer reading from src.
func NewLexer(src charset.LineReader, opts ...LexerOption) *Lexer {
	lx := &Lexer{
		src:       src,
		lookahead: DefaultLookahead,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(lx)
	}
	lx.queue = make([]rawLine, 0, lx.lookahead)
	return lx
}

// ReadLine returns the next logical line, or io.EOF.
func (lx *Lexer) ReadLine() (*Line, error) {
	if lx.pushback != nil {
		line := lx.pushback
		lx.pushback = nil
		lx.lineNo = line.LineNo
		return line, nil
	}

	var cur rawLine
	for {
		if err := lx.fill(); err != nil {
			return nil, err
		}
		if len(lx.queue) == 0 {
			return nil, io.EOF
		}
		cur = lx.queue[0]
		lx.queue = lx.queue[1:]
		if !cur.isContinuation() {
			break
		}
		lx.errors++
		lx.log.Warn("Continuation line without a preceding line skipped", "line", cur.lineNo, "tag", cur.tag)
	}

	for {
		if err := lx.fill(); err != nil {
			return nil, err
		}
		if len(lx.queue) == 0 || !lx.queue[0].isContinuation() {
			break
		}
		next := lx.queue[0]
		lx.queue = lx.queue[1:]
		if cur.value == "" && !next.isCont() {
			// A CONC directly under a bare tag keeps its first character
			// separate from the tag.
			cur.value = " "
		}
		cur.value += next.continuation()
	}

	line := lx.tokenize(cur)
	lx.lineNo = line.LineNo
	if lx.onLine != nil {
		lx.onLine(line)
	}
	return line, nil
}

// Unread pushes line back so the next ReadLine returns it. Only one line
// can be pushed back at a time.
func (lx *Lexer) Unread(line *Line) {
	if lx.pushback != nil {
		panic("gedcom: Unread called twice without ReadLine")
	}
	lx.pushback = line
}

// Peek returns the next logical line without consuming it.
func (lx *Lexer) Peek() (*Line, error) {
	line, err := lx.ReadLine()
	if err != nil {
		return nil, err
	}
	lx.Unread(line)
	return line, nil
}

// Errors returns the number of malformed lines skipped so far.
func (lx *Lexer) Errors() int { return lx.errors }

// LineNo returns the physical line number of the last line returned.
func (lx *Lexer) LineNo() int { return lx.lineNo }

func (lx *Lexer) fill() error {
	for !lx.eof && len(lx.queue) < lx.lookahead {
		s, err := lx.src.ReadLine()
		if errors.Is(err, io.EOF) {
			lx.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line %d: %w", lx.physical+1, err)
		}
		lx.physical++

		raw, res := splitLine(s, lx.physical)
		switch res {
		case splitBlank:
			continue
		case splitMalformed:
			lx.errors++
			lx.log.Warn("Malformed line skipped", "line", lx.physical, "text", s)
			continue
		}
		lx.queue = append(lx.queue, raw)
	}
	return nil
}

func (lx *Lexer) tokenize(r rawLine) *Line {
	line := &Line{
		Level:     r.level,
		TokenText: strings.ToUpper(r.tag),
		XRef:      r.xref,
		Raw:       r.value,
		Data:      strings.ReplaceAll(r.value, "@@", "@"),
		LineNo:    r.lineNo,
	}
	if lx.ignore.Match(line.TokenText) {
		line.Token = TokIgnore
		return line
	}
	line.Token = LookupToken(line.TokenText)
	coerce(line)
	return line
}
