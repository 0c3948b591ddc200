package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per key under a base directory.
type DiskvStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvStore opens (creating if needed) a diskv store rooted at basePath.
func NewDiskvStore(basePath string) (*DiskvStore, error) {
	if basePath == "" {
		return nil, errors.New("kv: diskv base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("kv: ensure base path: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath: basePath,
		// Flat layout: keys are a handful of fixed names.
		Transform: func(string) []string { return []string{} },
		// No read cache: other processes write the same files.
		CacheSizeMax: 0,
		// Writes land in TempDir first and are renamed into place.
		TempDir: filepath.Join(basePath, ".tmp"),
	})
	return &DiskvStore{d: d, basePath: basePath}, nil
}

// BasePath returns the directory holding the store's files.
func (s *DiskvStore) BasePath() string {
	return s.basePath
}

func (s *DiskvStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return val, true, nil
}

func (s *DiskvStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("kv: write %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("kv: erase %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}
