package charset

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LineReader returns decoded lines without their terminators.
type LineReader interface {
	// ReadLine returns the next line, or io.EOF when the input is exhausted.
	ReadLine() (string, error)
}

// NewReader returns a LineReader decoding r as cs. Unknown is read as ANSEL.
func NewReader(r io.Reader, cs Charset) LineReader {
	switch cs {
	case UTF8:
		return &lineReader{br: bufio.NewReader(r), decode: decodeUTF8, stripBOM: true}
	case UTF16LE, UTF16BE:
		endian := unicode.LittleEndian
		if cs == UTF16BE {
			endian = unicode.BigEndian
		}
		dec := unicode.BOMOverride(unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder())
		return &lineReader{br: bufio.NewReader(transform.NewReader(r, dec)), decode: decodeUTF8, stripBOM: true}
	case ANSI, ASCII:
		return &lineReader{br: bufio.NewReader(r), decode: decodeWindows1252}
	default:
		return &lineReader{br: bufio.NewReader(r), decode: DecodeANSEL}
	}
}

type lineReader struct {
	br       *bufio.Reader
	decode   func([]byte) string
	stripBOM bool
	started  bool
}

// ReadLine accepts CR, LF, CRLF and LFCR terminators.
func (l *lineReader) ReadLine() (string, error) {
	var buf bytes.Buffer
	for {
		b, err := l.br.ReadByte()
		if err == io.EOF {
			if buf.Len() == 0 {
				return "", io.EOF
			}
			return l.finish(buf.Bytes()), nil
		}
		if err != nil {
			return "", err
		}
		if b != '\r' && b != '\n' {
			buf.WriteByte(b)
			continue
		}
		pair := byte('\n')
		if b == '\n' {
			pair = '\r'
		}
		if next, err := l.br.Peek(1); err == nil && next[0] == pair {
			_, _ = l.br.ReadByte()
		}
		return l.finish(buf.Bytes()), nil
	}
}

func (l *lineReader) finish(raw []byte) string {
	line := l.decode(raw)
	if !l.started {
		l.started = true
		if l.stripBOM {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
	}
	return line
}

func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

func decodeWindows1252(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
