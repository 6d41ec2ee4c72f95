package manager

import (
	"context"
	"time"

	"grid-snake/storage"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// HighScoreKey names the persisted high score.
const HighScoreKey = "highScore"

const storeTimeout = 2 * time.Second

// StateManager tracks the high score and the history of finished games on
// top of a Store. Store failures are logged and never surface to the game.
type StateManager struct {
	store     storage.Store
	logger    *log.Logger
	highScore int
	current   *storage.Record
	now       func() time.Time
}

func NewStateManager(store storage.Store, logger *log.Logger) *StateManager {
	sm := &StateManager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	highScore, ok, err := store.GetInt(ctx, HighScoreKey)
	switch {
	case err != nil:
		logger.Warn("could not load high score, starting from 0", "err", err)
	case ok && highScore > 0:
		sm.highScore = highScore
	}
	return sm
}

// BeginGame opens a new history record.
func (sm *StateManager) BeginGame() {
	sm.current = &storage.Record{
		ID:        uuid.New().String(),
		StartTime: sm.now(),
	}
}

// EndGame closes the open record with the final score and stores it.
func (sm *StateManager) EndGame(score int, won bool) {
	if sm.current == nil {
		return
	}
	rec := *sm.current
	sm.current = nil
	rec.EndTime = sm.now()
	rec.Score = score
	rec.Won = won

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := sm.store.AppendRecord(ctx, rec); err != nil {
		sm.logger.Warn("could not save game record", "id", rec.ID, "err", err)
	}
}

// UpdateScore persists score when it beats the high score and reports
// whether it did.
func (sm *StateManager) UpdateScore(score int) bool {
	if score <= sm.highScore {
		return false
	}
	sm.highScore = score

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := sm.store.SetInt(ctx, HighScoreKey, score); err != nil {
		sm.logger.Warn("could not save high score", "score", score, "err", err)
	} else {
		sm.logger.Info("new record set", "score", score)
	}
	return true
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}
