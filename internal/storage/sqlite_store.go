package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"

	"github.com/mvp-joe/kinship/internal/model"
)

// DefaultCacheSize is the number of serialized objects kept in memory.
const DefaultCacheSize = 10_000

type cachedObject struct {
	kind model.Kind
	data []byte
}

// SQLiteStore keeps objects as JSON rows in a SQLite database. A lock file
// next to the database keeps other processes from writing concurrently.
type SQLiteStore struct {
	db     *sql.DB
	lock   *flock.Flock
	cache  otter.Cache[model.Handle, cachedObject]
	writer sync.Mutex
}

// SQLiteOption configures OpenSQLite.
type SQLiteOption func(*sqliteConfig)

type sqliteConfig struct {
	cacheSize int
}

// WithCacheSize sets the object cache capacity.
func WithCacheSize(n int) SQLiteOption {
	return func(c *sqliteConfig) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// OpenSQLite opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	cfg := sqliteConfig{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &SQLiteStore{}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		s.lock = flock.New(path + ".lock")
		locked, err := s.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		s.unlock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and
	// SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := CreateSchema(db); err != nil {
		db.Close()
		s.unlock()
		return nil, err
	}

	cache, err := otter.MustBuilder[model.Handle, cachedObject](cfg.cacheSize).Build()
	if err != nil {
		db.Close()
		s.unlock()
		return nil, fmt.Errorf("failed to build object cache: %w", err)
	}
	s.cache = cache

	return s, nil
}

// Begin starts a transaction, waiting for any active one to finish.
func (s *SQLiteStore) Begin(ctx context.Context) (Tx, error) {
	s.writer.Lock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.writer.Unlock()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqliteTx{store: s, tx: tx, counters: map[model.Kind]int{}}, nil
}

// Close releases the cache, the database and the lock.
func (s *SQLiteStore) Close() error {
	s.cache.Close()
	err := s.db.Close()
	s.unlock()
	return err
}

func (s *SQLiteStore) unlock() {
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
}

type sqliteTx struct {
	store    *SQLiteStore
	tx       *sql.Tx
	counters map[model.Kind]int
	done     bool
}

func (t *sqliteTx) check() error {
	if t.done {
		return ErrTxDone
	}
	return nil
}

func (t *sqliteTx) GetRaw(kind model.Kind, h model.Handle) ([]byte, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if c, ok := t.store.cache.Get(h); ok {
		if c.kind != kind {
			return nil, fmt.Errorf("%s %s: %w", kind, h, ErrNotFound)
		}
		return append([]byte(nil), c.data...), nil
	}

	var data string
	err := sq.Select("data").
		From("objects").
		Where(sq.Eq{"handle": string(h), "kind": string(kind)}).
		RunWith(t.tx).
		QueryRow().
		Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, h, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, h, err)
	}
	t.store.cache.Set(h, cachedObject{kind: kind, data: []byte(data)})
	return []byte(data), nil
}

func (t *sqliteTx) Get(kind model.Kind, h model.Handle) (model.Object, error) {
	data, err := t.GetRaw(kind, h)
	if err != nil {
		return nil, err
	}
	return model.Decode(kind, data)
}

func (t *sqliteTx) Has(kind model.Kind, h model.Handle) (bool, error) {
	if err := t.check(); err != nil {
		return false, err
	}
	if c, ok := t.store.cache.Get(h); ok {
		return c.kind == kind, nil
	}
	return t.exists(sq.Eq{"handle": string(h), "kind": string(kind)})
}

func (t *sqliteTx) HasID(kind model.Kind, id string) (bool, error) {
	if err := t.check(); err != nil {
		return false, err
	}
	return t.exists(sq.Eq{"kind": string(kind), "local_id": id})
}

func (t *sqliteTx) exists(where sq.Eq) (bool, error) {
	var n int
	err := sq.Select("COUNT(*)").
		From("objects").
		Where(where).
		RunWith(t.tx).
		QueryRow().
		Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query objects: %w", err)
	}
	return n > 0, nil
}

func (t *sqliteTx) FindByID(kind model.Kind, id string) (model.Object, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	var handle string
	err := sq.Select("handle").
		From("objects").
		Where(sq.Eq{"kind": string(kind), "local_id": id}).
		RunWith(t.tx).
		QueryRow().
		Scan(&handle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %s: %w", kind, id, err)
	}
	return t.Get(kind, model.Handle(handle))
}

func (t *sqliteTx) NextID(kind model.Kind) (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}
	for {
		t.counters[kind]++
		id := kind.FormatID(t.counters[kind])
		used, err := t.HasID(kind, id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
}

func (t *sqliteTx) Put(obj model.Object) error {
	if err := t.check(); err != nil {
		return err
	}
	kind, h, id := obj.Kind(), obj.GetHandle(), obj.GetID()
	if h.IsZero() {
		return fmt.Errorf("cannot store %s %s without a handle", kind, id)
	}

	var owner string
	err := sq.Select("handle").
		From("objects").
		Where(sq.Eq{"kind": string(kind), "local_id": id}).
		RunWith(t.tx).
		QueryRow().
		Scan(&owner)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check %s %s: %w", kind, id, err)
	}
	if err == nil && owner != string(h) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrDuplicateID)
	}

	data, err := model.Encode(obj)
	if err != nil {
		return err
	}
	var changed int64
	if b, ok := obj.(interface{ ChangedAt() int64 }); ok {
		changed = b.ChangedAt()
	}

	_, err = sq.Insert("objects").
		Columns("handle", "kind", "local_id", "data", "changed").
		Values(string(h), string(kind), id, string(data), changed).
		Suffix("ON CONFLICT(handle) DO UPDATE SET kind = excluded.kind, local_id = excluded.local_id, data = excluded.data, changed = excluded.changed").
		RunWith(t.tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to write %s %s: %w", kind, id, err)
	}

	if _, err := sq.Delete("object_refs").
		Where(sq.Eq{"src_handle": string(h)}).
		RunWith(t.tx).
		Exec(); err != nil {
		return fmt.Errorf("failed to clear references of %s %s: %w", kind, id, err)
	}
	if refs := obj.References(); len(refs) > 0 {
		insert := sq.Insert("object_refs").
			Columns("src_handle", "dst_handle").
			Options("OR IGNORE")
		for _, dst := range refs {
			insert = insert.Values(string(h), string(dst))
		}
		if _, err := insert.RunWith(t.tx).Exec(); err != nil {
			return fmt.Errorf("failed to write references of %s %s: %w", kind, id, err)
		}
	}

	t.store.cache.Set(h, cachedObject{kind: kind, data: data})
	return nil
}

func (t *sqliteTx) Backlinks(h model.Handle) ([]model.Handle, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.handles(sq.Select("src_handle").
		From("object_refs").
		Where(sq.Eq{"dst_handle": string(h)}).
		OrderBy("src_handle"))
}

func (t *sqliteTx) Handles(kind model.Kind) ([]model.Handle, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.handles(sq.Select("handle").
		From("objects").
		Where(sq.Eq{"kind": string(kind)}).
		OrderBy("local_id"))
}

func (t *sqliteTx) handles(q sq.SelectBuilder) ([]model.Handle, error) {
	rows, err := q.RunWith(t.tx).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query handles: %w", err)
	}
	defer rows.Close()

	var out []model.Handle
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan handle: %w", err)
		}
		out = append(out, model.Handle(h))
	}
	return out, rows.Err()
}

func (t *sqliteTx) Count(kind model.Kind) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	var n int
	err := sq.Select("COUNT(*)").
		From("objects").
		Where(sq.Eq{"kind": string(kind)}).
		RunWith(t.tx).
		QueryRow().
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s objects: %w", kind, err)
	}
	return n, nil
}

func (t *sqliteTx) SetMetadata(key, value string) error {
	if err := t.check(); err != nil {
		return err
	}
	_, err := sq.Insert("store_metadata").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339)).
		Options("OR REPLACE").
		RunWith(t.tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to set metadata %q: %w", key, err)
	}
	return nil
}

func (t *sqliteTx) Metadata(key string) (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}
	var v string
	err := sq.Select("value").
		From("store_metadata").
		Where(sq.Eq{"key": key}).
		RunWith(t.tx).
		QueryRow().
		Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("metadata %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %q: %w", key, err)
	}
	return v, nil
}

func (t *sqliteTx) Commit() error {
	if err := t.check(); err != nil {
		return err
	}
	t.done = true
	defer t.store.writer.Unlock()
	if err := t.tx.Commit(); err != nil {
		t.store.cache.Clear()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction and drops cached objects it may have
// written. Calling it after Commit is a no-op.
func (t *sqliteTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.store.writer.Unlock()
	t.store.cache.Clear()
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
