package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotGedcom is returned when the first line of the file is not a
	// level-0 HEAD record.
	ErrNotGedcom = errors.New("importer: not a GEDCOM file, first record is not HEAD")
	// ErrTruncated is returned when the file ends before the TRLR record.
	ErrTruncated = errors.New("importer: unexpected end of file, TRLR record missing")
)

// FatalError aborts an import. It carries the physical line the parser had
// reached and unwraps to the underlying sentinel.
type FatalError struct {
	Line int
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func fatal(line int, err error) error {
	return &FatalError{Line: line, Err: err}
}
