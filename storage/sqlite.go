package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	start_time INTEGER NOT NULL,
	end_time   INTEGER NOT NULL,
	score      INTEGER NOT NULL,
	won        INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps values and history in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteStore(ctx context.Context, path string, logger *log.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug("opened sqlite store", "path", path)
	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

func (r *SQLiteStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	q := `SELECT value FROM kv WHERE key = ?;`
	var v int
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, true, nil
}

func (r *SQLiteStore) SetInt(ctx context.Context, key string, value int) error {
	q := `
	INSERT OR REPLACE INTO kv (key, value)
	VALUES (?, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) AppendRecord(ctx context.Context, rec Record) error {
	q := `
	INSERT INTO games (id, start_time, end_time, score, won)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, rec.ID, rec.StartTime.UnixNano(), rec.EndTime.UnixNano(), rec.Score, rec.Won)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	q := `SELECT id, start_time, end_time, score, won FROM games ORDER BY start_time, rowid;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec        Record
			start, end int64
		)
		if err := rows.Scan(&rec.ID, &start, &end, &rec.Score, &rec.Won); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		rec.StartTime = time.Unix(0, start)
		rec.EndTime = time.Unix(0, end)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return records, nil
}

func (r *SQLiteStore) Close() error {
	return r.db.Close()
}
