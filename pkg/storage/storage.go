// Package storage maps the journal and the theme preference onto a kv.Store.
// Entries live as one JSON array under EntriesKey; the preference as
// {"theme": "..."} under PreferencesKey.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/kv"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

const (
	EntriesKey     = "mood-entries"
	PreferencesKey = "preferences"
)

var (
	ErrCorruptData  = errors.New("stored data is corrupt")
	ErrStorageWrite = errors.New("storage write failed")
)

type preferences struct {
	Theme theme.Preference `json:"theme"`
}

// Adapter serializes journal state into a kv.Store. It satisfies
// journal.Persistence.
type Adapter struct {
	kv kv.Store
}

var _ journal.Persistence = (*Adapter)(nil)

func NewAdapter(store kv.Store) *Adapter {
	return &Adapter{kv: store}
}

// KV returns the underlying store.
func (a *Adapter) KV() kv.Store {
	return a.kv
}

// SaveEntries replaces the stored collection. A nil collection is written as [].
func (a *Adapter) SaveEntries(ctx context.Context, entries journal.Collection) error {
	if entries == nil {
		entries = journal.Collection{}
	}
	data, err := encode(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := a.kv.Set(ctx, EntriesKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// LoadEntries returns the stored collection, or an empty one if nothing was
// ever saved.
func (a *Adapter) LoadEntries(ctx context.Context) (journal.Collection, error) {
	data, found, err := a.kv.Get(ctx, EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", EntriesKey, err)
	}
	if !found {
		return journal.Collection{}, nil
	}

	var entries journal.Collection
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, EntriesKey, err)
	}
	if entries == nil {
		entries = journal.Collection{}
	}
	return entries, nil
}

func (a *Adapter) SavePreference(ctx context.Context, p theme.Preference) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", theme.ErrInvalidPreference, string(p))
	}
	data, err := encode(preferences{Theme: p})
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := a.kv.Set(ctx, PreferencesKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// LoadPreference returns the stored theme, theme.Default when none is stored.
func (a *Adapter) LoadPreference(ctx context.Context) (theme.Preference, error) {
	data, found, err := a.kv.Get(ctx, PreferencesKey)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", PreferencesKey, err)
	}
	if !found {
		return theme.Default, nil
	}

	var prefs preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCorruptData, PreferencesKey, err)
	}
	if prefs.Theme == "" {
		return theme.Default, nil
	}
	if !prefs.Theme.Valid() {
		return "", fmt.Errorf("%w: %s: unknown theme %q", ErrCorruptData, PreferencesKey, string(prefs.Theme))
	}
	return prefs.Theme, nil
}

// encode is json.Marshal without HTML escaping, so titles containing <, > or &
// are stored as typed.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
