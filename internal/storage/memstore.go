package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mvp-joe/kinship/internal/model"
)

type memRecord struct {
	kind model.Kind
	id   string
	data []byte
	refs []model.Handle
}

type memState struct {
	objects  map[model.Handle]memRecord
	ids      map[model.Kind]map[string]model.Handle
	counters map[model.Kind]int
	meta     map[string]string
}

func newMemState() memState {
	return memState{
		objects:  map[model.Handle]memRecord{},
		ids:      map[model.Kind]map[string]model.Handle{},
		counters: map[model.Kind]int{},
		meta:     map[string]string{},
	}
}

// clone copies the maps. Records are never mutated in place, so they are
// shared between the copies.
func (s memState) clone() memState {
	c := newMemState()
	for h, r := range s.objects {
		c.objects[h] = r
	}
	for kind, ids := range s.ids {
		m := make(map[string]model.Handle, len(ids))
		for id, h := range ids {
			m[id] = h
		}
		c.ids[kind] = m
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	for k, v := range s.meta {
		c.meta[k] = v
	}
	return c
}

// MemStore is an in-memory Store. Transactions work on a copy of the state
// which replaces the committed state on Commit.
type MemStore struct {
	writer sync.Mutex // held for the lifetime of a transaction
	mu     sync.RWMutex
	state  memState
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{state: newMemState()}
}

// Begin starts a transaction, waiting for any active one to finish.
func (s *MemStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.writer.Lock()
	s.mu.RLock()
	state := s.state.clone()
	s.mu.RUnlock()
	return &memTx{store: s, state: state}, nil
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }

type memTx struct {
	store *MemStore
	state memState
	done  bool
}

func (tx *memTx) check() error {
	if tx.done {
		return ErrTxDone
	}
	return nil
}

func (tx *memTx) record(kind model.Kind, h model.Handle) (memRecord, error) {
	if err := tx.check(); err != nil {
		return memRecord{}, err
	}
	r, ok := tx.state.objects[h]
	if !ok || r.kind != kind {
		return memRecord{}, fmt.Errorf("%s %s: %w", kind, h, ErrNotFound)
	}
	return r, nil
}

func (tx *memTx) Get(kind model.Kind, h model.Handle) (model.Object, error) {
	r, err := tx.record(kind, h)
	if err != nil {
		return nil, err
	}
	return model.Decode(kind, r.data)
}

func (tx *memTx) GetRaw(kind model.Kind, h model.Handle) ([]byte, error) {
	r, err := tx.record(kind, h)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.data...), nil
}

func (tx *memTx) Has(kind model.Kind, h model.Handle) (bool, error) {
	if err := tx.check(); err != nil {
		return false, err
	}
	r, ok := tx.state.objects[h]
	return ok && r.kind == kind, nil
}

func (tx *memTx) HasID(kind model.Kind, id string) (bool, error) {
	if err := tx.check(); err != nil {
		return false, err
	}
	_, ok := tx.state.ids[kind][id]
	return ok, nil
}

func (tx *memTx) FindByID(kind model.Kind, id string) (model.Object, error) {
	if err := tx.check(); err != nil {
		return nil, err
	}
	h, ok := tx.state.ids[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return tx.Get(kind, h)
}

func (tx *memTx) NextID(kind model.Kind) (string, error) {
	if err := tx.check(); err != nil {
		return "", err
	}
	for {
		tx.state.counters[kind]++
		id := kind.FormatID(tx.state.counters[kind])
		if _, used := tx.state.ids[kind][id]; !used {
			return id, nil
		}
	}
}

func (tx *memTx) Put(obj model.Object) error {
	if err := tx.check(); err != nil {
		return err
	}
	kind, h, id := obj.Kind(), obj.GetHandle(), obj.GetID()
	if h.IsZero() {
		return fmt.Errorf("cannot store %s %s without a handle", kind, id)
	}
	if owner, ok := tx.state.ids[kind][id]; ok && owner != h {
		return fmt.Errorf("%s %s: %w", kind, id, ErrDuplicateID)
	}
	data, err := model.Encode(obj)
	if err != nil {
		return err
	}

	if old, ok := tx.state.objects[h]; ok && old.id != id {
		delete(tx.state.ids[old.kind], old.id)
	}
	tx.state.objects[h] = memRecord{kind: kind, id: id, data: data, refs: obj.References()}
	if tx.state.ids[kind] == nil {
		tx.state.ids[kind] = map[string]model.Handle{}
	}
	tx.state.ids[kind][id] = h
	return nil
}

func (tx *memTx) Backlinks(h model.Handle) ([]model.Handle, error) {
	if err := tx.check(); err != nil {
		return nil, err
	}
	var out []model.Handle
	for src, r := range tx.state.objects {
		for _, dst := range r.refs {
			if dst == h {
				out = append(out, src)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (tx *memTx) Handles(kind model.Kind) ([]model.Handle, error) {
	if err := tx.check(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tx.state.ids[kind]))
	for id := range tx.state.ids[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Handle, len(ids))
	for i, id := range ids {
		out[i] = tx.state.ids[kind][id]
	}
	return out, nil
}

func (tx *memTx) Count(kind model.Kind) (int, error) {
	if err := tx.check(); err != nil {
		return 0, err
	}
	return len(tx.state.ids[kind]), nil
}

func (tx *memTx) SetMetadata(key, value string) error {
	if err := tx.check(); err != nil {
		return err
	}
	tx.state.meta[key] = value
	return nil
}

func (tx *memTx) Metadata(key string) (string, error) {
	if err := tx.check(); err != nil {
		return "", err
	}
	v, ok := tx.state.meta[key]
	if !ok {
		return "", fmt.Errorf("metadata %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (tx *memTx) Commit() error {
	if err := tx.check(); err != nil {
		return err
	}
	tx.done = true
	tx.store.mu.Lock()
	tx.store.state = tx.state
	tx.store.mu.Unlock()
	tx.store.writer.Unlock()
	return nil
}

// Rollback discards the transaction. Calling it after Commit is a no-op.
func (tx *memTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.store.writer.Unlock()
	return nil
}
