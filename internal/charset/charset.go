// Package charset decodes GEDCOM byte streams into lines of UTF-8 text.
package charset

import (
	"bytes"
	"strings"
)

// Charset is a character encoding a GEDCOM file can be written in.
type Charset int

const (
	Unknown Charset = iota
	ANSEL
	UTF8
	UTF16LE
	UTF16BE
	ASCII
	ANSI // Windows-1252
)

func (c Charset) String() string {
	switch c {
	case ANSEL:
		return "ANSEL"
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case ASCII:
		return "ASCII"
	case ANSI:
		return "ANSI"
	default:
		return "unknown"
	}
}

// IsUTF16 reports whether c is one of the UTF-16 variants.
func (c Charset) IsUTF16() bool {
	return c == UTF16LE || c == UTF16BE
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect inspects the first bytes of a file. It recognises byte order marks
// and UTF-16 text without one; anything else is Unknown and has to be
// settled by the CHAR header.
func Detect(prefix []byte) Charset {
	switch {
	case bytes.HasPrefix(prefix, utf8BOM):
		return UTF8
	case bytes.HasPrefix(prefix, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(prefix, []byte{0xFE, 0xFF}):
		return UTF16BE
	case len(prefix) >= 2 && prefix[0] == 0 && prefix[1] != 0:
		return UTF16BE
	case len(prefix) >= 2 && prefix[0] != 0 && prefix[1] == 0:
		return UTF16LE
	default:
		return Unknown
	}
}

// FromDeclared maps the value of a HEAD.CHAR line to a Charset. An empty
// value is Unknown; unrecognised names fall back to ANSI.
func FromDeclared(name string) Charset {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "":
		return Unknown
	case "ANSEL":
		return ANSEL
	case "UTF-8", "UTF8":
		return UTF8
	case "UNICODE", "UTF-16", "UTF16", "UTF-16LE":
		return UTF16LE
	case "UTF-16BE":
		return UTF16BE
	case "ASCII", "US-ASCII":
		return ASCII
	default:
		// ANSI, IBMPC, IBM WINDOWS, CP1252, WINDOWS-1252, LATIN1 and anything
		// vendors invent.
		return ANSI
	}
}

// Resolve picks the charset for decoding: a detected encoding wins over the
// declared one, which wins over the fallback. GEDCOM 5.5 defaults to ANSEL.
func Resolve(detected, declared, fallback Charset) Charset {
	for _, c := range []Charset{detected, declared, fallback} {
		if c != Unknown {
			return c
		}
	}
	return ANSEL
}
