package idmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/model"
)

// Test Plan for Map:
// - The same external id maps to the same local id (with or without @)
// - Numbered ids are normalised to the local format and reused when free
// - Ids taken in the store or already handed out are never returned
// - Non-numeric and empty ids draw from the generator
// - Entries/External expose the table for diagnostics
// - Store errors propagate

// fakeStore mimics a store holding a set of ids with a counting generator.
type fakeStore struct {
	ids     map[string]bool
	counter int
}

func (s *fakeStore) taken(id string) (bool, error) { return s.ids[id], nil }

func (s *fakeStore) next() (string, error) {
	for {
		s.counter++
		id := fmt.Sprintf("I%04d", s.counter)
		if !s.ids[id] {
			return id, nil
		}
	}
}

func newMap(existing ...string) *Map {
	s := &fakeStore{ids: map[string]bool{}}
	for _, id := range existing {
		s.ids[id] = true
	}
	return New(model.KindPerson, s.taken, s.next, "")
}

func TestMap_Idempotent(t *testing.T) {
	t.Parallel()

	m := newMap()
	a, err := m.Map("@I9@")
	require.NoError(t, err)
	b, err := m.Map("I9")
	require.NoError(t, err)

	assert.Equal(t, "I0009", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, m.Len())
}

func TestMap_AvoidsCollisions(t *testing.T) {
	t.Parallel()

	m := newMap("I0001", "I0002")

	first, err := m.Map("I1")
	require.NoError(t, err)
	assert.Equal(t, "I0003", first, "I0001 is taken in the store")

	third, err := m.Map("I3")
	require.NoError(t, err)
	assert.Equal(t, "I0004", third, "I0003 was already handed out")

	named, err := m.Map("SMITH")
	require.NoError(t, err)
	assert.Equal(t, "I0005", named)

	empty1, err := m.Map("")
	require.NoError(t, err)
	empty2, err := m.Map("")
	require.NoError(t, err)
	assert.NotEqual(t, empty1, empty2)

	seen := map[string]bool{}
	for _, e := range m.Entries() {
		assert.False(t, seen[e.Local])
		seen[e.Local] = true
	}
}

func TestMap_Table(t *testing.T) {
	t.Parallel()

	m := newMap()
	_, _ = m.Map("I20")
	_, _ = m.Map("P7")

	assert.Equal(t, []Entry{{External: "P7", Local: "I0007"}, {External: "I20", Local: "I0020"}}, m.Entries())

	ext, ok := m.External("I0020")
	assert.True(t, ok)
	assert.Equal(t, "I20", ext)

	_, ok = m.External("I0001")
	assert.False(t, ok)
}

func TestMap_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := New(model.KindFamily,
		func(string) (bool, error) { return false, boom },
		func() (string, error) { return "", boom }, "")

	_, err := m.Map("F1")
	assert.ErrorIs(t, err, boom)
	_, err = m.Map("odd")
	assert.ErrorIs(t, err, boom)
}
