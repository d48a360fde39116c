// Package model holds the genealogy aggregates produced by an import.
//
// Aggregates reference each other only through handles. They never embed
// or point into another aggregate, so every aggregate can be serialized on
// its own and committed to a store independently.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a primary object.
type Kind string

const (
	KindPerson     Kind = "person"
	KindFamily     Kind = "family"
	KindEvent      Kind = "event"
	KindPlace      Kind = "place"
	KindSource     Kind = "source"
	KindRepository Kind = "repository"
	KindNote       Kind = "note"
	KindMedia      Kind = "media"
)

// Kinds lists every primary object kind in commit order.
var Kinds = []Kind{
	KindPerson, KindFamily, KindEvent, KindPlace,
	KindSource, KindRepository, KindNote, KindMedia,
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IDFormat returns the printf format for local ids of this kind.
func (k Kind) IDFormat() string {
	switch k {
	case KindPerson:
		return "I%04d"
	case KindFamily:
		return "F%04d"
	case KindEvent:
		return "E%04d"
	case KindPlace:
		return "P%04d"
	case KindSource:
		return "S%04d"
	case KindRepository:
		return "R%04d"
	case KindNote:
		return "N%04d"
	case KindMedia:
		return "O%04d"
	default:
		return "X%04d"
	}
}

// IDPrefix returns the letter prefix of the local id format.
func (k Kind) IDPrefix() string {
	return strings.TrimSuffix(k.IDFormat(), "%04d")
}

// FormatID renders the n-th local id of this kind.
func (k Kind) FormatID(n int) string {
	return fmt.Sprintf(k.IDFormat(), n)
}

// ParseID extracts the sequence number from a local id of this kind.
func (k Kind) ParseID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, k.IDPrefix())
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Tag returns the GEDCOM record tag for the kind.
func (k Kind) Tag() string {
	switch k {
	case KindPerson:
		return "INDI"
	case KindFamily:
		return "FAM"
	case KindEvent:
		return "EVEN"
	case KindPlace:
		return "PLAC"
	case KindSource:
		return "SOUR"
	case KindRepository:
		return "REPO"
	case KindNote:
		return "NOTE"
	case KindMedia:
		return "OBJE"
	default:
		return ""
	}
}
