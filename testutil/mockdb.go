package testutil

import (
	"database/sql"
	"testing"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the conversation
// schema for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Each pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := internal.Migrate(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// CreateTestStore creates a store over a fresh in-memory database
func CreateTestStore(t *testing.T) *internal.SQLiteStore {
	t.Helper()
	return internal.NewSQLiteStore(CreateInMemoryDB(t))
}

// CreateTempDatabase creates a database file under a temp directory and
// returns its path
func CreateTempDatabase(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/cloudwhisper.db"
	db, err := internal.OpenDatabase(path)
	if err != nil {
		t.Fatalf("Failed to create temp database: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close temp database: %v", err)
	}
	return path
}
