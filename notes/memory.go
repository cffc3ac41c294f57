package notes

import (
	"context"
	"sort"
	"sync"
)

// MemoryBackend is a Persistence kept in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	videos map[string][]Note
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{videos: make(map[string][]Note)}
}

func (m *MemoryBackend) Get(_ context.Context, videoID string) ([]Note, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.videos[videoID]
	if !ok {
		return nil, false, nil
	}
	out := make([]Note, len(stored))
	copy(out, stored)
	return out, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, videoID string, notes []Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]Note, len(notes))
	copy(stored, notes)
	m.videos[videoID] = stored
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.videos, videoID)
	return nil
}

func (m *MemoryBackend) Videos(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.videos))
	for id, stored := range m.videos {
		if len(stored) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
