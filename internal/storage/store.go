// Package storage is the destination store of an import: a transactional
// repository of genealogy objects addressed by handle, with a per-kind
// local id index and a reference index used for backlinks.
package storage

import (
	"context"
	"errors"

	"github.com/mvp-joe/kinship/internal/model"
)

var (
	// ErrNotFound is returned when no object of the requested kind has the
	// handle or id.
	ErrNotFound = errors.New("storage: object not found")
	// ErrLocked is returned when another process holds the database lock.
	ErrLocked = errors.New("storage: database is locked by another process")
	// ErrTxDone is returned by operations on a committed or rolled back
	// transaction.
	ErrTxDone = errors.New("storage: transaction already finished")
	// ErrDuplicateID is returned when two objects of one kind share a local id.
	ErrDuplicateID = errors.New("storage: duplicate local id")
)

// Store opens transactions. Only one write transaction is active at a time;
// Begin blocks until the previous one finished.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is a unit of work against a Store. Nothing written through a Tx is
// visible to later transactions unless Commit succeeds.
type Tx interface {
	// Get loads the object of the given kind with handle h.
	Get(kind model.Kind, h model.Handle) (model.Object, error)
	// GetRaw returns the serialized form of an object.
	GetRaw(kind model.Kind, h model.Handle) ([]byte, error)
	Has(kind model.Kind, h model.Handle) (bool, error)
	// HasID reports whether a local id is in use for the kind.
	HasID(kind model.Kind, id string) (bool, error)
	FindByID(kind model.Kind, id string) (model.Object, error)
	// NextID returns a local id not in use. Successive calls within one
	// transaction never return the same id.
	NextID(kind model.Kind) (string, error)
	// Put inserts or replaces an object.
	Put(obj model.Object) error
	// Backlinks returns the handles of objects referencing h.
	Backlinks(h model.Handle) ([]model.Handle, error)
	// Handles lists the objects of a kind ordered by local id.
	Handles(kind model.Kind) ([]model.Handle, error)
	Count(kind model.Kind) (int, error)
	SetMetadata(key, value string) error
	Metadata(key string) (string, error)
	Commit() error
	Rollback() error
}
