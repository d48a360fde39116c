package storage

// Test Plan for SQLite Schema:
// - CreateSchema creates the objects, object_refs and store_metadata tables
// - CreateSchema creates the idx_ indexes
// - CreateSchema is idempotent
// - (kind, local_id) is unique
// - GetSchemaVersion returns "0" before and SchemaVersion after CreateSchema

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestCreateSchema(t *testing.T) {
	db := openRawDB(t)

	require.NoError(t, CreateSchema(db))
	for _, table := range []string{"objects", "object_refs", "store_metadata"} {
		assert.True(t, tableExists(t, db, table), "Table %s should exist", table)
	}

	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name LIKE 'idx_%'").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, len(indexes), n)
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := openRawDB(t)

	require.NoError(t, CreateSchema(db))
	require.NoError(t, CreateSchema(db))
}

func TestCreateSchema_UniqueLocalID(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec("INSERT INTO objects (handle, kind, local_id, data, changed) VALUES ('a', 'person', 'I0001', '{}', 0)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO objects (handle, kind, local_id, data, changed) VALUES ('b', 'person', 'I0001', '{}', 0)")
	assert.Error(t, err)
	_, err = db.Exec("INSERT INTO objects (handle, kind, local_id, data, changed) VALUES ('c', 'family', 'I0001', '{}', 0)")
	assert.NoError(t, err)
}

func TestGetSchemaVersion(t *testing.T) {
	db := openRawDB(t)

	v, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	require.NoError(t, CreateSchema(db))
	v, err = GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}
