// Package idmap translates the cross-reference ids of an input file into
// local ids that do not collide with records already in the store.
package idmap

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mvp-joe/kinship/internal/model"
)

// TakenFunc reports whether a local id is already used in the store.
type TakenFunc func(id string) (bool, error)

// NextFunc returns a fresh local id from the store's generator. Successive
// calls never return the same id.
type NextFunc func() (string, error)

// Entry is one external -> local mapping.
type Entry struct {
	External string
	Local    string
}

var numbered = regexp.MustCompile(`^[A-Za-z_]*0*([0-9]+)$`)

// Map is the id translation table for one object kind. It is not safe for
// concurrent use.
type Map struct {
	kind   model.Kind
	format string
	taken  TakenFunc
	next   NextFunc

	toLocal map[string]string
	toExt   map[string]string
	handed  map[string]bool
}

// New creates a map. An empty format uses the kind's id format.
func New(kind model.Kind, taken TakenFunc, next NextFunc, format string) *Map {
	if format == "" {
		format = kind.IDFormat()
	}
	return &Map{
		kind:    kind,
		format:  format,
		taken:   taken,
		next:    next,
		toLocal: make(map[string]string),
		toExt:   make(map[string]string),
		handed:  make(map[string]bool),
	}
}

// Kind returns the object kind the map translates ids for.
func (m *Map) Kind() model.Kind { return m.kind }

// Map returns the local id for an external id, allocating one on first
// use. The same external id always yields the same local id. An id such as
// "I12" is normalised to the local format and kept when it is free;
// otherwise the next id from the store is used. Empty ids always get a
// fresh id.
func (m *Map) Map(ext string) (string, error) {
	ext = strings.Trim(strings.TrimSpace(ext), "@")
	if ext != "" {
		if local, ok := m.toLocal[ext]; ok {
			return local, nil
		}
	}

	local, err := m.allocate(ext)
	if err != nil {
		return "", fmt.Errorf("failed to map %s id %q: %w", m.kind, ext, err)
	}
	m.handed[local] = true
	if ext != "" {
		m.toLocal[ext] = local
		m.toExt[local] = ext
	}
	return local, nil
}

func (m *Map) allocate(ext string) (string, error) {
	if match := numbered.FindStringSubmatch(ext); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			candidate := fmt.Sprintf(m.format, n)
			if !m.handed[candidate] {
				taken, err := m.taken(candidate)
				if err != nil {
					return "", err
				}
				if !taken {
					return candidate, nil
				}
			}
		}
	}

	for {
		id, err := m.next()
		if err != nil {
			return "", err
		}
		if !m.handed[id] {
			return id, nil
		}
	}
}

// External returns the external id a local id was mapped from.
func (m *Map) External(local string) (string, bool) {
	ext, ok := m.toExt[local]
	return ext, ok
}

// Entries returns the mapping table ordered by local id.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.toLocal))
	for ext, local := range m.toLocal {
		out = append(out, Entry{External: ext, Local: local})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Local < out[j].Local })
	return out
}

// Len returns the number of mapped external ids.
func (m *Map) Len() int { return len(m.toLocal) }
