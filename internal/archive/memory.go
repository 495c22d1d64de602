package archive

import (
	"context"
	"slices"
	"sync"
)

// Memory is an Archive that lives as long as the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory returns an empty in-process archive.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

// Save stores rec, replacing any record with the same id.
func (m *Memory) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	m.records[rec.ID] = rec
	m.mu.Unlock()
	return nil
}

// Load returns the record with id or ErrGameNotFound.
func (m *Memory) Load(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrGameNotFound
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit of 0 or less
// returns them all.
func (m *Memory) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	recs := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, rec)
	}
	m.mu.RUnlock()

	slices.SortFunc(recs, newestFirst)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Close is a no-op.
func (m *Memory) Close(context.Context) error {
	return nil
}

func newestFirst(a, b Record) int {
	if c := b.EndedAt.Compare(a.EndedAt); c != 0 {
		return c
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}
