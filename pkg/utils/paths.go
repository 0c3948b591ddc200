package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

const (
	appDirName   = "moodlog"
	diskvDirName = "store"
	sqliteDBName = "moodlog.db"
)

// GetDefaultDataPathOnly returns a system-appropriate directory for moodlog data.
func GetDefaultDataPathOnly() string {
	homeDir, err := homedir.Dir()
	if err != nil {
		return appDirName
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appDirName)
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", appDirName)
	}
}

// DefaultDiskvPath is where the diskv backend keeps its files.
func DefaultDiskvPath() string {
	return filepath.Join(GetDefaultDataPathOnly(), diskvDirName)
}

// DefaultSQLitePath is where the sqlite backend keeps its database.
func DefaultSQLitePath() string {
	return filepath.Join(GetDefaultDataPathOnly(), sqliteDBName)
}

// ResolvePath expands ~ and makes providedPath absolute. An empty path resolves
// to fallback.
func ResolvePath(providedPath, fallback string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = fallback
	}

	expanded, err := homedir.Expand(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to expand path '%s': %w", targetPath, err)
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", expanded, err)
	}
	return absPath, nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to stat directory '%s': %w", dir, err)
	}
	return nil
}
