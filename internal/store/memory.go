package store

import (
	"context"
	"sync"
)

type memoryRecord struct {
	translation string
	display     DisplayPrefs
	hasDisplay  bool
}

// MemoryStore keeps preferences in-process, for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

// Translation returns the stored code or "".
func (m *MemoryStore) Translation(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[userID].translation, nil
}

// SetTranslation upserts the preferred translation.
func (m *MemoryStore) SetTranslation(_ context.Context, userID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[userID]
	rec.translation = code
	m.records[userID] = rec
	return nil
}

// DisplayPrefs returns stored display preferences with defaults filled in.
func (m *MemoryStore) DisplayPrefs(_ context.Context, userID string) (DisplayPrefs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[userID]
	if !ok || !rec.hasDisplay {
		return DefaultDisplayPrefs(), nil
	}
	return normalize(rec.display), nil
}

// SetDisplayPrefs merges a partial update over the stored sub-record.
func (m *MemoryStore) SetDisplayPrefs(_ context.Context, userID string, upd DisplayPrefsUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	base := rec.display
	if !ok || !rec.hasDisplay {
		base = DefaultDisplayPrefs()
	}
	rec.display = upd.Apply(base)
	rec.hasDisplay = true
	m.records[userID] = rec
	return nil
}

// ResetDisplayPrefs drops the display sub-record, keeping the translation.
func (m *MemoryStore) ResetDisplayPrefs(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return nil
	}
	rec.display = DisplayPrefs{}
	rec.hasDisplay = false
	m.records[userID] = rec
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
