package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is written to store_metadata when the schema is created.
const SchemaVersion = "1"

// CreateSchema creates the tables and indexes of the object store.
// Uses a transaction so schema creation succeeds or fails as a whole.
// Safe to call on an existing database.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"objects", createObjectsTable},
		{"object_refs", createObjectRefsTable},
		{"store_metadata", createStoreMetadataTable},
	}
	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	bootstrapSQL := `
		INSERT OR IGNORE INTO store_metadata (key, value, updated_at) VALUES
			('schema_version', ?, ?),
			('created_at', ?, ?)
	`
	if _, err := tx.Exec(bootstrapSQL, SchemaVersion, now, now, now); err != nil {
		return fmt.Errorf("failed to bootstrap store_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the schema version, or "0" for a database that
// has no schema yet.
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='store_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check store_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM store_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in store_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// Table DDL constants

const createObjectsTable = `
CREATE TABLE IF NOT EXISTS objects (
    handle TEXT PRIMARY KEY,           -- Opaque handle, assigned once
    kind TEXT NOT NULL,                -- person, family, event, ...
    local_id TEXT NOT NULL,            -- I0001, F0001, ...
    data TEXT NOT NULL,                -- JSON-encoded object
    changed INTEGER NOT NULL DEFAULT 0, -- Unix seconds of last change
    UNIQUE (kind, local_id)
)`

const createObjectRefsTable = `
CREATE TABLE IF NOT EXISTS object_refs (
    src_handle TEXT NOT NULL,          -- Referencing object
    dst_handle TEXT NOT NULL,          -- Referenced object (may not exist yet)
    PRIMARY KEY (src_handle, dst_handle)
)`

const createStoreMetadataTable = `
CREATE TABLE IF NOT EXISTS store_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects(kind, local_id)",
	"CREATE INDEX IF NOT EXISTS idx_object_refs_dst ON object_refs(dst_handle)",
}
