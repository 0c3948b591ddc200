package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded is what a MemoryStore returns from Set once FailWrites is armed
// without a more specific error.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// MemoryStore is a process-local Store. Nothing survives Close.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string][]byte
	writeErr error
	setCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// FailWrites makes every later Set return err (ErrQuotaExceeded when err is nil)
// until Reset is called.
func (m *MemoryStore) FailWrites(err error) {
	if err == nil {
		err = ErrQuotaExceeded
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Reset clears any armed write failure.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = nil
}

// Writes reports how many Set calls reached the store, failed ones included.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setCalls
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
