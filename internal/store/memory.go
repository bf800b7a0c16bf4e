package store

import (
	"context"
	"sync"
)

type memoryEntry struct {
	name  string
	value string
}

// MemoryStore keeps variables in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[lookupKey(name)]
	return e.value, ok, nil
}

// Set stores value. An existing entry keeps its original spelling.
func (s *MemoryStore) Set(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := lookupKey(name)
	if e, ok := s.entries[key]; ok {
		name = e.name
	}
	s.entries[key] = memoryEntry{name: name, value: value}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, lookupKey(name))
	return nil
}

func (s *MemoryStore) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.name)
	}
	sortNames(names)
	return names, nil
}
