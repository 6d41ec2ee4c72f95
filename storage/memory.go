package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mutex   sync.RWMutex
	values  map[string]int
	history []Record
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]int),
		history: make([]Record, 0),
	}
}

func (m *MemoryStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return 0, false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) SetInt(ctx context.Context, key string, value int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) AppendRecord(ctx context.Context, rec Record) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.history = append(m.history, rec)
	return nil
}

func (m *MemoryStore) Records(ctx context.Context) ([]Record, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Record, len(m.history))
	copy(out, m.history)
	return out, nil
}

func (m *MemoryStore) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.closed = true
	return nil
}
