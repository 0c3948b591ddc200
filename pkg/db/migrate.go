package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// TargetSchemaVersion is the highest schema version this build supports for the kvstore component.
	TargetSchemaVersion int64 = 1
	// KVStoreComponent names the key-value store in the versions table.
	KVStoreComponent = "kvstore"
)

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not recorded or the versions table does not exist yet.
func GetComponentSchemaVersion(db *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM moodlog_versions WHERE component = ?;`
	row := db.QueryRow(query, componentName)

	var version int64
	err := row.Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "moodlog_versions") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates the kvstore tables and records schemaVersionToSet.
func InitializeSchema(db *sql.DB, schemaVersionToSet int64) error {
	if _, err := db.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO moodlog_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := db.Exec(insertVersionSQL, KVStoreComponent, schemaVersionToSet); err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", KVStoreComponent, schemaVersionToSet, err)
	}

	return nil
}

// UpgradeDB brings the kvstore component of db to appTargetSchemaVersion.
// dbIdentifierForLog only appears in status and error messages.
func UpgradeDB(db *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(db, KVStoreComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		fmt.Fprintf(os.Stderr, "Initializing %s in '%s' at schema version %d\n", KVStoreComponent, dbIdentifierForLog, appTargetSchemaVersion)
		if err := InitializeSchema(db, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", KVStoreComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, older than the supported version %d; automatic migration is not available", KVStoreComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, newer than the supported version %d. Please upgrade moodlog", KVStoreComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
