package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	diskStore, err := NewDiskvStore(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatalf("NewDiskvStore failed: %v", err)
	}
	sqliteStore, err := OpenSQLiteStore(filepath.Join(dir, "moodlog.db"), false, "NORMAL")
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		BackendDiskv:  diskStore,
		BackendSQLite: sqliteStore,
		BackendMemory: NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get(ctx, "mood-entries")
			if err != nil {
				t.Fatalf("Get on empty store failed: %v", err)
			}
			if found {
				t.Errorf("Expected missing key on empty store")
			}

			if err := store.Set(ctx, "mood-entries", []byte(`[{"id":"1"}]`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			val, found, err := store.Get(ctx, "mood-entries")
			if err != nil || !found {
				t.Fatalf("Get after Set: found=%v err=%v", found, err)
			}
			if string(val) != `[{"id":"1"}]` {
				t.Errorf("Expected stored value back, got %s", val)
			}

			if err := store.Set(ctx, "mood-entries", []byte(`[]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			val, _, _ = store.Get(ctx, "mood-entries")
			if string(val) != `[]` {
				t.Errorf("Expected overwritten value [], got %s", val)
			}

			if err := store.Delete(ctx, "mood-entries"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, found, _ := store.Get(ctx, "mood-entries"); found {
				t.Errorf("Expected key to be gone after Delete")
			}
			if err := store.Delete(ctx, "mood-entries"); err != nil {
				t.Errorf("Expected deleting a missing key to succeed, got %v", err)
			}
		})
	}
}

func TestDiskvStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "store")

	first, err := NewDiskvStore(base)
	if err != nil {
		t.Fatalf("NewDiskvStore failed: %v", err)
	}
	if err := first.Set(ctx, "preferences", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	second, err := NewDiskvStore(base)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	val, found, err := second.Get(ctx, "preferences")
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if string(val) != `{"theme":"dark"}` {
		t.Errorf("Expected persisted preferences, got %s", val)
	}
}

// openSharedStores opens two independent handles on the same location for each
// durable backend.
func openSharedStores(t *testing.T) map[string][2]Store {
	t.Helper()
	dir := t.TempDir()

	base := filepath.Join(dir, "store")
	diskA, err := NewDiskvStore(base)
	if err != nil {
		t.Fatalf("NewDiskvStore failed: %v", err)
	}
	diskB, err := NewDiskvStore(base)
	if err != nil {
		t.Fatalf("NewDiskvStore failed: %v", err)
	}

	path := filepath.Join(dir, "moodlog.db")
	sqlA, err := OpenSQLiteStore(path, true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	sqlB, err := OpenSQLiteStore(path, true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		sqlA.Close()
		sqlB.Close()
	})

	return map[string][2]Store{
		BackendDiskv:  {diskA, diskB},
		BackendSQLite: {sqlA, sqlB},
	}
}

func TestStore_SeesWritesFromAnotherHandle(t *testing.T) {
	ctx := context.Background()
	for name, pair := range openSharedStores(t) {
		t.Run(name, func(t *testing.T) {
			a, b := pair[0], pair[1]

			if err := a.Set(ctx, "mood-entries", []byte(`[1]`)); err != nil {
				t.Fatalf("Set through first handle failed: %v", err)
			}
			// Read twice so any read cache would be populated.
			for i := 0; i < 2; i++ {
				if val, _, err := a.Get(ctx, "mood-entries"); err != nil || string(val) != `[1]` {
					t.Fatalf("Expected [1] from first handle, got %s (err=%v)", val, err)
				}
			}

			if err := b.Set(ctx, "mood-entries", []byte(`[1,2]`)); err != nil {
				t.Fatalf("Set through second handle failed: %v", err)
			}
			val, found, err := a.Get(ctx, "mood-entries")
			if err != nil || !found {
				t.Fatalf("Get failed: found=%v err=%v", found, err)
			}
			if string(val) != `[1,2]` {
				t.Errorf("Expected first handle to see [1,2], got %s", val)
			}

			if err := b.Delete(ctx, "mood-entries"); err != nil {
				t.Fatalf("Delete through second handle failed: %v", err)
			}
			if _, found, _ := a.Get(ctx, "mood-entries"); found {
				t.Errorf("Expected first handle to see the key deleted")
			}
		})
	}
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moodlog.db")

	first, err := OpenSQLiteStore(path, true, "FULL")
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	if err := first.Set(ctx, "mood-entries", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	first.Close()

	second, err := OpenSQLiteStore(path, true, "FULL")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()
	if _, found, _ := second.Get(ctx, "mood-entries"); !found {
		t.Errorf("Expected key to survive reopening the database")
	}
}

func TestMemoryStore_FailWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	store.FailWrites(nil)
	err := store.Set(ctx, "k", []byte("v2"))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("Expected ErrQuotaExceeded, got %v", err)
	}
	val, _, _ := store.Get(ctx, "k")
	if string(val) != "v1" {
		t.Errorf("Expected failed write to leave v1 in place, got %s", val)
	}

	store.Reset()
	if err := store.Set(ctx, "k", []byte("v3")); err != nil {
		t.Errorf("Expected Set to succeed after Reset, got %v", err)
	}
	if store.Writes() != 3 {
		t.Errorf("Expected 3 recorded writes, got %d", store.Writes())
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	buf := []byte("abc")
	store.Set(ctx, "k", buf)
	buf[0] = 'X'

	val, _, _ := store.Get(ctx, "k")
	if string(val) != "abc" {
		t.Errorf("Expected store to hold its own copy, got %s", val)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default is diskv", Options{Path: filepath.Join(dir, "a")}, false},
		{"diskv", Options{Backend: BackendDiskv, Path: filepath.Join(dir, "b")}, false},
		{"sqlite", Options{Backend: BackendSQLite, Path: filepath.Join(dir, "c.db"), Sync: "NORMAL"}, false},
		{"memory", Options{Backend: BackendMemory}, false},
		{"unknown backend", Options{Backend: "redis"}, true},
		{"diskv without path", Options{Backend: BackendDiskv}, true},
		{"sqlite without path", Options{Backend: BackendSQLite}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := Open(tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %+v", tc.opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			store.Close()
		})
	}
}
