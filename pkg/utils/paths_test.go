package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestResolvePath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ResolvePath("~/journal", "")
	if err != nil {
		t.Fatalf("ResolvePath failed: %v", err)
	}
	if got != filepath.Join(home, "journal") {
		t.Errorf("Expected ~ to expand to %s, got %s", filepath.Join(home, "journal"), got)
	}

	got, err = ResolvePath("", "relative/dir")
	if err != nil {
		t.Fatalf("ResolvePath with fallback failed: %v", err)
	}
	if !filepath.IsAbs(got) || !strings.HasSuffix(got, filepath.Join("relative", "dir")) {
		t.Errorf("Expected absolute fallback path, got %s", got)
	}
}

func TestDefaultPaths(t *testing.T) {
	if filepath.Base(DefaultSQLitePath()) != "moodlog.db" {
		t.Errorf("Unexpected sqlite path %s", DefaultSQLitePath())
	}
	if filepath.Dir(DefaultDiskvPath()) != GetDefaultDataPathOnly() {
		t.Errorf("Expected diskv path inside the data dir, got %s", DefaultDiskvPath())
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Expected %s to be a directory", dir)
	}
	if err := EnsureDir(dir); err != nil {
		t.Errorf("Expected EnsureDir on an existing dir to succeed, got %v", err)
	}
}
