// Package journal is the mood journal core: entry types, the read-through
// entry store, search and statistics.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Persistence loads and saves the whole entry collection.
type Persistence interface {
	LoadEntries(ctx context.Context) (Collection, error)
	SaveEntries(ctx context.Context, entries Collection) error
}

// Store is the only writer of the persisted collection. It keeps no copy of
// the entries: every operation loads, mutates and saves.
type Store struct {
	persistence Persistence
	now         func() time.Time
	newID       func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv4 generator used for new entries.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(p Persistence, opts ...Option) *Store {
	s := &Store{
		persistence: p,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) load(ctx context.Context) (Collection, error) {
	entries, err := s.persistence.LoadEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if entries == nil {
		entries = Collection{}
	}
	return entries, nil
}

func (s *Store) save(ctx context.Context, entries Collection) error {
	if err := s.persistence.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

// Add appends a new entry built from p. Missing fields get defaults: a fresh
// id, DefaultTitle, DefaultContent, DefaultMood and the current time.
func (s *Store) Add(ctx context.Context, p Partial) (Entry, error) {
	mood := DefaultMood
	if p.Mood != nil {
		if !p.Mood.Valid() {
			return Entry{}, fmt.Errorf("%w: %q", ErrInvalidMood, string(*p.Mood))
		}
		mood = *p.Mood
	}

	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        textOr(p.ID, ""),
		Title:     textOr(p.Title, DefaultTitle),
		Content:   textOr(p.Content, DefaultContent),
		Mood:      mood,
		Timestamp: s.now().UnixMilli(),
	}
	if entry.ID == "" {
		entry.ID = s.newID()
	}
	if p.Timestamp != nil && *p.Timestamp > 0 {
		entry.Timestamp = *p.Timestamp
	}

	entries = append(entries, entry)
	if err := s.save(ctx, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every entry in insertion order.
func (s *Store) List(ctx context.Context) (Collection, error) {
	return s.load(ctx)
}

// Get looks up one entry by id.
func (s *Store) Get(ctx context.Context, id string) (Entry, bool, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	entry, found := FindByProperty(entries, ByID, id)
	return entry, found, nil
}

// Update overwrites the supplied title, content and mood of entry id and
// refreshes its timestamp, even when nothing else changed. Ids are immutable
// so p.ID is ignored. An unknown id returns found=false and writes nothing.
func (s *Store) Update(ctx context.Context, id string, p Partial) (Entry, bool, error) {
	if p.Mood != nil && !p.Mood.Valid() {
		return Entry{}, false, fmt.Errorf("%w: %q", ErrInvalidMood, string(*p.Mood))
	}

	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, false, err
	}

	i := IndexByProperty(entries, ByID, id)
	if i < 0 {
		return Entry{}, false, nil
	}

	entry := entries[i]
	entry.Title = textOr(p.Title, entry.Title)
	entry.Content = textOr(p.Content, entry.Content)
	if p.Mood != nil {
		entry.Mood = *p.Mood
	}
	// Never move backwards, even if the clock did.
	entry.Timestamp = max(s.now().UnixMilli(), entry.Timestamp)
	entries[i] = entry

	if err := s.save(ctx, entries); err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Delete removes entry id. An unknown id returns false and writes nothing.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	i := IndexByProperty(entries, ByID, id)
	if i < 0 {
		return false, nil
	}
	entries = append(entries[:i], entries[i+1:]...)

	if err := s.save(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// FilterByMood returns the entries tagged mood, in their stored order.
func (s *Store) FilterByMood(ctx context.Context, mood Mood) (Collection, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterMood(entries, mood), nil
}

func filterMood(entries Collection, mood Mood) Collection {
	filtered := Collection{}
	for _, e := range entries {
		if e.Mood == mood {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
