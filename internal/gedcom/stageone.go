package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mvp-joe/kinship/internal/charset"
)

// ErrEmptyFile is returned by ScanStageOne when the input holds no GEDCOM
// lines at all.
var ErrEmptyFile = errors.New("gedcom: file contains no lines")

// StageOne is the result of the fast pre-pass over a file.
type StageOne struct {
	Detected    charset.Charset // from the byte order mark, Unknown if ambiguous
	Declared    string          // HEAD.CHAR value as written
	Lines       int             // logical lines, the step count of the main pass
	Individuals int
	Families    int
	Famc        map[string][]string // person id -> families listing it as CHIL
	Fams        map[string][]string // person id -> families listing it as HUSB/WIFE
	Invalid     int
}

// Charset returns the encoding to decode the file with.
func (s *StageOne) Charset(fallback charset.Charset) charset.Charset {
	return charset.Resolve(s.Detected, charset.FromDeclared(s.Declared), fallback)
}

// ScanOption configures ScanStageOne.
type ScanOption func(*scanner)

// WithScanProgress registers a callback invoked for every physical line.
func WithScanProgress(fn func()) ScanOption {
	return func(s *scanner) { s.progress = fn }
}

// WithScanLogger sets the logger used for warnings.
func WithScanLogger(l *slog.Logger) ScanOption {
	return func(s *scanner) { s.log = l }
}

type scanner struct {
	progress func()
	log      *slog.Logger
}

// ScanStageOne makes one forward pass over r. It detects the encoding,
// counts records and logical lines, and indexes family membership by
// person so that records missing their FAMC/FAMS back-references can be
// completed later. Lines that cannot be split are counted and skipped.
func ScanStageOne(r io.Reader, opts ...ScanOption) (*StageOne, error) {
	sc := &scanner{log: slog.Default()}
	for _, opt := range opts {
		opt(sc)
	}

	br := bufio.NewReader(r)
	prefix, _ := br.Peek(4)
	result := &StageOne{
		Detected: charset.Detect(prefix),
		Famc:     make(map[string][]string),
		Fams:     make(map[string][]string),
	}

	// Tags and ids are ASCII, so an undetected file is scanned as cp1252.
	decode := result.Detected
	if decode == charset.Unknown {
		decode = charset.ANSI
	}
	lr := charset.NewReader(br, decode)

	var (
		physical int
		family   string
		inHead   bool
	)
	for {
		s, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan line %d: %w", physical+1, err)
		}
		physical++
		if sc.progress != nil {
			sc.progress()
		}

		raw, res := splitLine(s, physical)
		switch res {
		case splitBlank:
			continue
		case splitMalformed:
			result.Invalid++
			sc.log.Warn("Malformed line skipped", "line", physical, "text", s)
			continue
		}
		if raw.isContinuation() {
			continue
		}
		result.Lines++

		tag := strings.ToUpper(raw.tag)
		if raw.level == 0 {
			family = ""
			inHead = tag == "HEAD" || tag == "HEADER"
			switch tag {
			case "INDI", "INDIVIDUAL":
				result.Individuals++
			case "FAM", "FAMILY":
				result.Families++
				family = raw.xref
			}
			continue
		}

		if raw.level != 1 {
			continue
		}
		if inHead && (tag == "CHAR" || tag == "CHARACTER") {
			result.Declared = strings.TrimSpace(raw.value)
			continue
		}
		if family == "" {
			continue
		}
		person := strings.TrimSpace(raw.value)
		if !IsPointer(person) {
			continue
		}
		person = person[1 : len(person)-1]
		switch tag {
		case "HUSB", "HUSBAND", "WIFE":
			result.Fams[person] = appendUnique(result.Fams[person], family)
		case "CHIL", "CHILD":
			result.Famc[person] = appendUnique(result.Famc[person], family)
		}
	}

	if result.Lines == 0 {
		return result, ErrEmptyFile
	}
	return result, nil
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
