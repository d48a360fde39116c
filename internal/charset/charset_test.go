package charset

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for charset:
// - Detect recognises BOMs and BOM-less UTF-16, else Unknown
// - FromDeclared maps HEAD.CHAR names; Resolve prefers detection
// - Line terminators CR, LF, CRLF, LFCR all split lines
// - UTF-8 BOM stripped, invalid bytes replaced
// - UTF-16 LE/BE decode with and without BOM
// - Windows-1252 high bytes decode
// - ANSEL single bytes, combining marks reordered after the base, unknown bytes

func readAll(t *testing.T, r LineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix []byte
		want   Charset
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, '0'}, UTF8},
		{"utf16le bom", []byte{0xFF, 0xFE, '0', 0}, UTF16LE},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, '0'}, UTF16BE},
		{"utf16le bare", []byte{'0', 0, ' ', 0}, UTF16LE},
		{"utf16be bare", []byte{0, '0', 0, ' '}, UTF16BE},
		{"ascii", []byte("0 HEAD"), Unknown},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.prefix))
		})
	}
}

func TestFromDeclaredAndResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ANSEL, FromDeclared("ansel"))
	assert.Equal(t, UTF8, FromDeclared(" UTF-8 "))
	assert.Equal(t, UTF16LE, FromDeclared("UNICODE"))
	assert.Equal(t, ASCII, FromDeclared("ASCII"))
	assert.Equal(t, ANSI, FromDeclared("IBMPC"))
	assert.Equal(t, ANSI, FromDeclared("MACINTOSH"))
	assert.Equal(t, Unknown, FromDeclared(""))

	assert.Equal(t, UTF8, Resolve(UTF8, ANSEL, ANSI))
	assert.Equal(t, ANSI, Resolve(Unknown, ANSI, UTF8))
	assert.Equal(t, UTF8, Resolve(Unknown, Unknown, UTF8))
	assert.Equal(t, ANSEL, Resolve(Unknown, Unknown, Unknown))
}

func TestReadLine_Terminators(t *testing.T) {
	t.Parallel()

	in := "a\rb\nc\r\nd\n\re"
	lines := readAll(t, NewReader(bytes.NewBufferString(in), UTF8))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, lines)
}

func TestReadLine_BlankLinesKept(t *testing.T) {
	t.Parallel()

	lines := readAll(t, NewReader(bytes.NewBufferString("a\n\nb\n"), UTF8))
	assert.Equal(t, []string{"a", "", "b"}, lines)
}

func TestUTF8(t *testing.T) {
	t.Parallel()

	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("1 NAME Zoë\n1 NOTE bad\xffbyte")...)
	lines := readAll(t, NewReader(bytes.NewReader(in), UTF8))
	assert.Equal(t, []string{"1 NAME Zoë", "1 NOTE bad\uFFFDbyte"}, lines)
}

func utf16(s string, bigEndian, bom bool) []byte {
	var out []byte
	if bom {
		if bigEndian {
			out = append(out, 0xFE, 0xFF)
		} else {
			out = append(out, 0xFF, 0xFE)
		}
	}
	for _, r := range s {
		hi, lo := byte(r>>8), byte(r)
		if bigEndian {
			out = append(out, hi, lo)
		} else {
			out = append(out, lo, hi)
		}
	}
	return out
}

func TestUTF16(t *testing.T) {
	t.Parallel()

	text := "0 HEAD\r\n1 NAME Łukasz\r\n"
	for _, tc := range []struct {
		name      string
		bigEndian bool
		bom       bool
	}{
		{"le bom", false, true},
		{"be bom", true, true},
		{"le bare", false, false},
		{"be bare", true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := utf16(text, tc.bigEndian, tc.bom)
			cs := Detect(data)
			require.True(t, cs.IsUTF16())
			lines := readAll(t, NewReader(bytes.NewReader(data), cs))
			assert.Equal(t, []string{"0 HEAD", "1 NAME Łukasz"}, lines)
		})
	}
}

func TestWindows1252(t *testing.T) {
	t.Parallel()

	lines := readAll(t, NewReader(bytes.NewReader([]byte("1 NAME Ren\xe9 \x80\n")), ANSI))
	assert.Equal(t, []string{"1 NAME René €"}, lines)
}

func TestDecodeANSEL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("John /Smith/"), "John /Smith/"},
		{"single byte", []byte{0xA1, 'o', 'd', 'z'}, "Łodz"},
		{"acute precomposed", []byte{'R', 'e', 'n', 0xE2, 'e'}, "René"},
		{"umlaut", []byte{'M', 0xE8, 'u', 'l', 'l', 'e', 'r'}, "Müller"},
		{"two marks", []byte{0xF2, 0xE3, 'a'}, "\u1EAD"},
		{"mark without pair", []byte{0xE2, '1'}, "1\u0301"},
		{"unknown byte", []byte{'a', 0x85, 'b'}, "a\uFFFDb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeANSEL(tt.in))
		})
	}
}

func TestANSELReader(t *testing.T) {
	t.Parallel()

	in := []byte("0 HEAD\n1 NAME Fran\xF0cois\n")
	lines := readAll(t, NewReader(bytes.NewReader(in), ANSEL))
	assert.Equal(t, []string{"0 HEAD", "1 NAME François"}, lines)
}
