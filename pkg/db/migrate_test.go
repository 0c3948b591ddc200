package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?;", tableName).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
	if name != tableName {
		t.Errorf("Table check query returned '%s' but expected '%s'", name, tableName)
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDBConnection(":memory:", false, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed for in-memory DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenDBConnection_InvalidSyncPragma(t *testing.T) {
	_, err := OpenDBConnection(":memory:", false, "SOMETIMES")
	if err == nil {
		t.Fatal("Expected an error for an invalid sync pragma, got nil")
	}
	if !errors.Is(err, ErrInvalidSyncMode) {
		t.Errorf("Expected ErrInvalidSyncMode, got %v", err)
	}
}

func TestParseSyncMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"normal", "NORMAL", false},
		{" Full ", "FULL", false},
		{"EXTRA", "EXTRA", false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSyncMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStoreDSN(t *testing.T) {
	dsn := storeDSN("/tmp/moodlog.db", true, "NORMAL")
	for _, want := range []string{"/tmp/moodlog.db?", "_busy_timeout=5000", "_journal_mode=WAL", "_synchronous=NORMAL"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("Expected DSN to contain %q, got %s", want, dsn)
		}
	}

	dsn = storeDSN("file:test.db?cache=shared", false, "")
	if !strings.HasPrefix(dsn, "file:test.db?cache=shared&") {
		t.Errorf("Expected params appended with &, got %s", dsn)
	}
	if strings.Contains(dsn, "_journal_mode") || strings.Contains(dsn, "_synchronous") {
		t.Errorf("Expected no WAL or sync params, got %s", dsn)
	}
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	db := openMemoryDB(t)

	if err := UpgradeDB(db, ":memory:", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed on a new in-memory database: %v", err)
	}

	for _, tableName := range []string{"moodlog_versions", "kv_items"} {
		checkTableExists(t, db, tableName)
	}

	version, err := GetComponentSchemaVersion(db, KVStoreComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed after UpgradeDB: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", KVStoreComponent, TargetSchemaVersion, version)
	}
}

func TestGetComponentSchemaVersion_NoTable(t *testing.T) {
	db := openMemoryDB(t)

	version, err := GetComponentSchemaVersion(db, KVStoreComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed on an empty database: %v", err)
	}
	if version != 0 {
		t.Errorf("Expected version 0 for an uninitialized database, got %d", version)
	}
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	db := openMemoryDB(t)

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv_items (key, value) VALUES ('mood-entries', '[]')`); err != nil {
		t.Fatalf("Failed to seed kv_items: %v", err)
	}

	if err := UpgradeDB(db, ":memory:", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed on an up-to-date database: %v", err)
	}

	var value string
	if err := db.QueryRow(`SELECT value FROM kv_items WHERE key = 'mood-entries'`).Scan(&value); err != nil {
		t.Fatalf("Seeded row disappeared after UpgradeDB: %v", err)
	}
	if value != "[]" {
		t.Errorf("Expected seeded value '[]', got %q", value)
	}
}

func TestUpgradeDB_VersionMismatch(t *testing.T) {
	tests := []struct {
		name      string
		dbVersion int64
		appTarget int64
		wantMsg   string
	}{
		{
			name:      "OlderDatabase",
			dbVersion: 1,
			appTarget: 2,
			wantMsg:   fmt.Sprintf("component %s in database ':memory:' has schema version 1, older than the supported version 2", KVStoreComponent),
		},
		{
			name:      "NewerDatabase",
			dbVersion: 2,
			appTarget: 1,
			wantMsg:   fmt.Sprintf("component %s in database ':memory:' has schema version 2, newer than the supported version 1", KVStoreComponent),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := openMemoryDB(t)
			if err := InitializeSchema(db, tc.dbVersion); err != nil {
				t.Fatalf("InitializeSchema to version %d failed: %v", tc.dbVersion, err)
			}

			err := UpgradeDB(db, ":memory:", tc.appTarget)
			if err == nil {
				t.Fatalf("UpgradeDB should have failed, but it did not")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("UpgradeDB error message mismatch.\nExpected to contain: %s\nGot: %s", tc.wantMsg, err.Error())
			}

			current, err := GetComponentSchemaVersion(db, KVStoreComponent)
			if err != nil {
				t.Fatalf("GetComponentSchemaVersion failed: %v", err)
			}
			if current != tc.dbVersion {
				t.Errorf("Database schema version changed from %d to %d after a failed upgrade", tc.dbVersion, current)
			}
		})
	}
}
