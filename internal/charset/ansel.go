package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// anselSingle maps the ANSEL spacing characters, including the GEDCOM
// additions at 0xBE, 0xBF and 0xCD-0xCF.
var anselSingle = map[byte]rune{
	0xA1: 'Ł', 0xA2: 'Ø', 0xA3: 'Đ', 0xA4: 'Þ', 0xA5: 'Æ', 0xA6: 'Œ',
	0xA7: 'ʹ', 0xA8: '·', 0xA9: '♭', 0xAA: '®', 0xAB: '±', 0xAC: 'Ơ',
	0xAD: 'Ư', 0xAE: 'ʼ', 0xB0: 'ʻ', 0xB1: 'ł', 0xB2: 'ø', 0xB3: 'đ',
	0xB4: 'þ', 0xB5: 'æ', 0xB6: 'œ', 0xB7: 'ʺ', 0xB8: 'ı', 0xB9: '£',
	0xBA: 'ð', 0xBC: 'ơ', 0xBD: 'ư', 0xBE: '□', 0xBF: '■', 0xC0: '°',
	0xC1: 'ℓ', 0xC2: '℗', 0xC3: '©', 0xC4: '♯', 0xC5: '¿', 0xC6: '¡',
	0xC7: 'ß', 0xC8: '€', 0xCD: 'e', 0xCE: 'o', 0xCF: 'ß',
}

// anselCombining maps the non-spacing marks. In ANSEL they precede the
// character they modify.
var anselCombining = map[byte]rune{
	0xE0: '\u0309', 0xE1: '\u0300', 0xE2: '\u0301', 0xE3: '\u0302',
	0xE4: '\u0303', 0xE5: '\u0304', 0xE6: '\u0306', 0xE7: '\u0307',
	0xE8: '\u0308', 0xE9: '\u030C', 0xEA: '\u030A', 0xEB: '\uFE20',
	0xEC: '\uFE21', 0xED: '\u0315', 0xEE: '\u030B', 0xEF: '\u0310',
	0xF0: '\u0327', 0xF1: '\u0328', 0xF2: '\u0323', 0xF3: '\u0324',
	0xF4: '\u0325', 0xF5: '\u0333', 0xF6: '\u0332', 0xF7: '\u0326',
	0xF8: '\u031C', 0xF9: '\u032E', 0xFA: '\uFE22', 0xFB: '\uFE23',
	0xFE: '\u0313',
}

// anselPair maps a combining byte followed by an ASCII letter to the
// precomposed character, e.g. 0xE2 'e' -> 'é'.
var anselPair = map[[2]byte]rune{}

const asciiLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func init() {
	for mark, r := range anselCombining {
		for i := 0; i < len(asciiLetters); i++ {
			base := asciiLetters[i]
			composed := norm.NFC.String(string(rune(base)) + string(r))
			if utf8.RuneCountInString(composed) == 1 {
				c, _ := utf8.DecodeRuneInString(composed)
				anselPair[[2]byte{mark, base}] = c
			}
		}
	}
}

// DecodeANSEL converts one line of ANSEL bytes to NFC-composed UTF-8.
// Bytes with no ANSEL meaning become U+FFFD.
func DecodeANSEL(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	var pending []rune
	emit := func(base rune) {
		sb.WriteRune(base)
		for _, m := range pending {
			sb.WriteRune(m)
		}
		pending = pending[:0]
	}

	for i := 0; i < len(b); i++ {
		c := b[i]
		if mark, ok := anselCombining[c]; ok {
			if len(pending) == 0 && i+1 < len(b) {
				if r, ok := anselPair[[2]byte{c, b[i+1]}]; ok {
					sb.WriteRune(r)
					i++
					continue
				}
			}
			pending = append(pending, mark)
			continue
		}

		var base rune
		switch {
		case c < 0x80:
			base = rune(c)
		default:
			r, ok := anselSingle[c]
			if !ok {
				r = utf8.RuneError
			}
			base = r
		}
		emit(base)
	}
	// Trailing marks with nothing to modify are kept as-is.
	for _, m := range pending {
		sb.WriteRune(m)
	}

	return norm.NFC.String(sb.String())
}
