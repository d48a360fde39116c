package gedcom

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/date"
	"github.com/mvp-joe/kinship/internal/logging"
	"github.com/mvp-joe/kinship/internal/model"
)

// Test Plan for Lexer:
// - CONC appends without a separator, CONT with a newline
// - A bare tag followed by CONC gets one separating space; CONT does not
// - Level-0 records populate XRef and use the record tag as token
// - Long-form aliases resolve to canonical tokens; unknown tags are TokUnknown
// - DATE, SEX, NOTE pointer, event and attribute coercion
// - @@ is un-doubled in Data but kept in Raw
// - Malformed lines are counted and skipped, blank lines ignored
// - Unread returns the same line once; a second Unread panics
// - The line callback fires once per fresh line
// - Ignore patterns mark lines TokIgnore

func newTestLexer(t *testing.T, src string, opts ...LexerOption) *Lexer {
	t.Helper()
	opts = append([]LexerOption{WithLogger(logging.Discard())}, opts...)
	return NewLexer(charset.NewReader(strings.NewReader(src), charset.UTF8), opts...)
}

func readLines(t *testing.T, lx *Lexer) []*Line {
	t.Helper()
	var out []*Line
	for {
		l, err := lx.ReadLine()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, l)
	}
}

func TestLexer_Continuations(t *testing.T) {
	t.Parallel()

	lines := readLines(t, newTestLexer(t, "1 NOTE Hello\n2 CONC , world\n1 NOTE Hello\n2 CONT world\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "Hello, world", lines[0].Data)
	assert.Equal(t, "Hello\nworld", lines[1].Data)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, 3, lines[1].LineNo)
}

func TestLexer_BareRecordTagThenConc(t *testing.T) {
	t.Parallel()

	lines := readLines(t, newTestLexer(t, "0 @N1@ NOTE\n1 CONC text that\n1 CONC  continues\n1 CONT next\n"))
	require.Len(t, lines, 1)
	assert.Equal(t, TokNOTE, lines[0].Token)
	assert.Equal(t, "N1", lines[0].XRef)
	assert.Equal(t, " text that continues\nnext", lines[0].Data)
}

func TestLexer_BareTagThenCont(t *testing.T) {
	t.Parallel()

	lines := readLines(t, newTestLexer(t, "0 @N1@ NOTE\n1 CONT first\n1 CONC  line\n"))
	require.Len(t, lines, 1)
	assert.Equal(t, "\nfirst line", lines[0].Data)
}

func TestLexer_LongContinuationBeyondLookahead(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("1 NOTE a\n")
	for i := 0; i < 12; i++ {
		b.WriteString("2 CONC b\n")
	}
	b.WriteString("1 SEX M\n")

	lines := readLines(t, newTestLexer(t, b.String(), WithLookahead(2)))
	require.Len(t, lines, 2)
	assert.Equal(t, "a"+strings.Repeat("b", 12), lines[0].Data)
	assert.Equal(t, TokSEX, lines[1].Token)
}

func TestLexer_Tokens(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"0 HEAD",
		"0 @I1@ INDI",
		"1 name John /Smith/",
		"1 BIRTH",
		"2 DATE ABT 1850",
		"1 SEX f",
		"1 NOTE @N1@",
		"1 OCCU Farmer",
		"1 NATI Welsh",
		"1 _MILT",
		"1 _WHATEVER x",
		"1 EMAIL a@@b.org",
		"1 ADDRESS 1 Main St",
		"0 TRLR",
	}, "\r\n")
	lines := readLines(t, newTestLexer(t, src))
	require.Len(t, lines, 14)

	assert.Equal(t, TokHEAD, lines[0].Token)

	assert.Equal(t, TokINDI, lines[1].Token)
	assert.Equal(t, "I1", lines[1].XRef)

	assert.Equal(t, TokNAME, lines[2].Token)
	assert.Equal(t, "NAME", lines[2].TokenText)
	assert.Equal(t, "John /Smith/", lines[2].Data)

	assert.Equal(t, TokGEvent, lines[3].Token)
	require.NotNil(t, lines[3].Event)
	assert.Equal(t, model.EventBirth, lines[3].Event.Type)

	require.NotNil(t, lines[4].Date)
	assert.Equal(t, date.ModAbout, lines[4].Date.Modifier)
	assert.Equal(t, 1850, lines[4].Date.Year())

	assert.Equal(t, model.GenderFemale, lines[5].Sex)

	assert.Equal(t, TokRNote, lines[6].Token)
	id, ok := lines[6].Pointer()
	assert.True(t, ok)
	assert.Equal(t, "N1", id)

	assert.Equal(t, TokGEvent, lines[7].Token)
	assert.Equal(t, "Farmer", lines[7].Event.Description)

	assert.Equal(t, TokAttr, lines[8].Token)
	assert.Equal(t, model.AttrNationality, lines[8].Attr.Type)
	assert.Equal(t, "Welsh", lines[8].Attr.Value)

	assert.Equal(t, model.EventMilitaryService, lines[9].Event.Type)

	assert.Equal(t, TokUnknown, lines[10].Token)
	assert.Equal(t, "_WHATEVER", lines[10].TokenText)

	assert.Equal(t, "a@b.org", lines[11].Data)
	assert.Equal(t, "a@@b.org", lines[11].Raw)

	assert.Equal(t, TokADDR, lines[12].Token)
	assert.Equal(t, TokTRLR, lines[13].Token)
}

func TestLexer_MalformedLines(t *testing.T) {
	t.Parallel()

	lx := newTestLexer(t, "0 HEAD\nX CHAR\n\n   \n-1 FOO\n2\n1 CONC orphan?\n0 TRLR\n")
	lines := readLines(t, lx)
	require.Len(t, lines, 2)
	assert.Equal(t, TokHEAD, lines[0].Token)
	assert.Equal(t, TokTRLR, lines[1].Token)
	// "X CHAR", "-1 FOO", "2" are malformed; the CONC merges into HEAD.
	assert.Equal(t, 3, lx.Errors())
	assert.Equal(t, "orphan?", lines[0].Data)
}

func TestLexer_OrphanContinuation(t *testing.T) {
	t.Parallel()

	lx := newTestLexer(t, "1 CONT stray\n0 HEAD\n")
	lines := readLines(t, lx)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lx.Errors())
}

func TestLexer_Unread(t *testing.T) {
	t.Parallel()

	var fresh int
	lx := newTestLexer(t, "0 HEAD\n1 CHAR UTF-8\n", WithOnLine(func(*Line) { fresh++ }))

	first, err := lx.ReadLine()
	require.NoError(t, err)
	lx.Unread(first)
	assert.Panics(t, func() { lx.Unread(first) })

	again, err := lx.ReadLine()
	require.NoError(t, err)
	assert.Same(t, first, again)

	peeked, err := lx.Peek()
	require.NoError(t, err)
	assert.Equal(t, TokCHAR, peeked.Token)
	next, err := lx.ReadLine()
	require.NoError(t, err)
	assert.Same(t, peeked, next)
	assert.Equal(t, 2, lx.LineNo())

	_, err = lx.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, fresh)
}

func TestLexer_Ignore(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("_TODO", "_PLAC*")
	require.NoError(t, err)

	lines := readLines(t, newTestLexer(t, "1 _todo x\n1 _PLACE y\n1 _MILT\n", WithIgnore(m)))
	require.Len(t, lines, 3)
	assert.Equal(t, TokIgnore, lines[0].Token)
	assert.Equal(t, TokIgnore, lines[1].Token)
	assert.Equal(t, TokGEvent, lines[2].Token)
}

func TestLookupToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TokINDI, LookupToken("individual"))
	assert.Equal(t, TokWWW, LookupToken("_URL"))
	assert.Equal(t, TokUnknown, LookupToken("BIRT"))
	assert.Equal(t, "FAMC", TokFAMC.String())
	assert.Equal(t, "GEVENT", TokGEvent.String())
}

func TestIsPointer(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPointer("@I1@"))
	assert.False(t, IsPointer("@#DJULIAN@"))
	assert.False(t, IsPointer("@@"))
	assert.False(t, IsPointer("@I 1@"))
	assert.Equal(t, "S1", StripPointer(" @S1@ "))
	assert.Equal(t, "plain", StripPointer("plain"))
}
