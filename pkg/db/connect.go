package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// BusyTimeoutMillis is how long a connection waits on a file locked by another
// moodlog process before failing.
const BusyTimeoutMillis = 5000

var ErrInvalidSyncMode = errors.New("invalid sync mode")

var syncModes = []string{"OFF", "NORMAL", "FULL", "EXTRA"}

// ParseSyncMode normalises a synchronous pragma value. Empty stays empty.
func ParseSyncMode(mode string) (string, error) {
	if mode == "" {
		return "", nil
	}
	uc := strings.ToUpper(strings.TrimSpace(mode))
	if !slices.Contains(syncModes, uc) {
		return "", fmt.Errorf("%w: %s (one of %s)", ErrInvalidSyncMode, mode, strings.Join(syncModes, ", "))
	}
	return uc, nil
}

// storeDSN appends the driver pragmas to path.
func storeDSN(path string, wal bool, syncMode string) string {
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprint(BusyTimeoutMillis))
	if wal {
		params.Set("_journal_mode", "WAL")
	}
	if syncMode != "" {
		params.Set("_synchronous", syncMode)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// OpenDBConnection opens the SQLite file behind the sqlite key-value store.
func OpenDBConnection(path string, wal bool, syncMode string) (*sql.DB, error) {
	mode, err := ParseSyncMode(syncMode)
	if err != nil {
		return nil, err
	}
	dsn := storeDSN(path, wal, mode)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open kvstore database '%s': %w", path, err)
	}
	// ':memory:' databases exist per connection, so everything shares one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping kvstore database '%s': %w", path, err)
	}
	return db, nil
}
