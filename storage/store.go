package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store persists named integers and the history of finished games.
type Store interface {
	GetInt(ctx context.Context, key string) (int, bool, error)
	SetInt(ctx context.Context, key string, value int) error
	AppendRecord(ctx context.Context, rec Record) error
	Records(ctx context.Context) ([]Record, error)
	Close() error
}

// Record describes one finished game.
type Record struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Won       bool      `json:"won"`
}

// Duration returns how long the game lasted.
func (r Record) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Store kinds accepted by Open.
const (
	KindMemory = "memory"
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open creates the store of the given kind at path.
func Open(ctx context.Context, kind, path string, logger *log.Logger) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindJSON:
		return NewJSONFileStore(ctx, path, logger)
	case KindSQLite:
		return NewSQLiteStore(ctx, path, logger)
	default:
		return nil, fmt.Errorf("unknown store kind: %q", kind)
	}
}
