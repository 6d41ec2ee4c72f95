package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// fileData is the on-disk layout of a JSONFileStore.
type fileData struct {
	Values  map[string]int `json:"values"`
	History []Record       `json:"history"`
}

// JSONFileStore keeps values and history in a single JSON document that is
// rewritten on every change.
type JSONFileStore struct {
	path   string
	mutex  sync.RWMutex
	data   fileData
	closed bool
	logger *log.Logger
}

func NewJSONFileStore(ctx context.Context, path string, logger *log.Logger) (*JSONFileStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s := &JSONFileStore{
		path: path,
		data: fileData{
			Values:  make(map[string]int),
			History: make([]Record, 0),
		},
		logger: logger,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	logger.Debug("opened json store", "path", path, "records", len(s.data.History))
	return s, nil
}

func (s *JSONFileStore) loadFromFile() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // fresh store
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var loaded fileData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to decode store file %s: %w", s.path, err)
	}
	if loaded.Values != nil {
		s.data.Values = loaded.Values
	}
	if loaded.History != nil {
		s.data.History = loaded.History
	}
	return nil
}

// saveToFile writes through a temporary file so a crash never leaves a
// truncated document behind. Callers hold the write lock.
func (s *JSONFileStore) saveToFile() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func (s *JSONFileStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return 0, false, ErrClosed
	}
	v, ok := s.data.Values[key]
	return v, ok, nil
}

func (s *JSONFileStore) SetInt(ctx context.Context, key string, value int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}
	prev, had := s.data.Values[key]
	s.data.Values[key] = value
	if err := s.saveToFile(); err != nil {
		if had {
			s.data.Values[key] = prev
		} else {
			delete(s.data.Values, key)
		}
		return err
	}
	return nil
}

func (s *JSONFileStore) AppendRecord(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.data.History = append(s.data.History, rec)
	if err := s.saveToFile(); err != nil {
		s.data.History = s.data.History[:len(s.data.History)-1]
		return err
	}
	return nil
}

func (s *JSONFileStore) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	out := make([]Record, len(s.data.History))
	copy(out, s.data.History)
	return out, nil
}

func (s *JSONFileStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	return nil
}
