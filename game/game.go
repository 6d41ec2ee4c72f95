package game

import (
	"io"
	"time"

	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"
	"grid-snake/storage"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

// SoundSink plays feedback sounds.
type SoundSink interface {
	PlayEat()
}

type silentSound struct{}

func (silentSound) PlayEat() {}

// Game is a single snake on a wrapping square board. It is not safe for
// concurrent use: every call is expected on the frame goroutine.
type Game struct {
	Grid     types.Grid
	settings types.Settings

	snake     *entity.Snake
	direction types.Direction // applied by the last Advance
	requested types.Direction // applied by the next Advance
	food      int
	score     int
	speed     int
	phase     types.Phase
	won       bool

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager

	sound  SoundSink
	rng    *rand.Rand
	logger *log.Logger
}

// Option customises a Game at construction.
type Option func(*Game)

// WithSound sets the sink that plays the eat sound.
func WithSound(s SoundSink) Option {
	return func(g *Game) {
		if s != nil {
			g.sound = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRand sets the random source used for food placement.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// NewGame creates a game in the NotStarted phase. settings must be valid.
// The high score is read from store; a failing store yields 0.
func NewGame(settings types.Settings, store storage.Store, opts ...Option) *Game {
	grid := types.Grid{Size: settings.GridSize}
	g := &Game{
		Grid:     grid,
		settings: settings,
		sound:    silentSound{},
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.collisionMgr = manager.NewCollisionManager(grid)
	g.foodMgr = manager.NewFoodManager(grid, g.rng, g.collisionMgr, g.logger)
	g.stateMgr = manager.NewStateManager(store, g.logger)

	g.initState()
	g.phase = types.NotStarted

	g.logger.Debug("grid details",
		"width", grid.Size*settings.SquareSize,
		"height", grid.Size*settings.SquareSize,
		"gridSize", grid.Size,
		"squareSize", settings.SquareSize)
	return g
}

func (g *Game) initState() {
	g.snake = entity.NewSnake(g.settings.StartIndex)
	g.direction = types.DefaultDirection
	g.requested = types.DefaultDirection
	g.score = 0
	g.speed = g.settings.BaseSpeed
	g.won = false
	g.food, _ = g.foodMgr.GenerateFood(g.snake)
}

// Start moves a fresh game from NotStarted to Running.
func (g *Game) Start() {
	if g.phase != types.NotStarted {
		return
	}
	g.phase = types.Running
	g.stateMgr.BeginGame()
	g.logger.Info("game started", "highScore", g.stateMgr.GetHighScore())
}

// Reset starts a new run after a game over. The high score is kept.
func (g *Game) Reset() {
	if g.phase != types.GameOver {
		return
	}
	g.initState()
	g.phase = types.Running
	g.stateMgr.BeginGame()
	g.logger.Info("game was reset", "highScore", g.stateMgr.GetHighScore())
}

// SetDirection buffers a direction change for the next Advance. Invalid
// directions and reversals of either the applied or the buffered heading
// are ignored.
func (g *Game) SetDirection(dir types.Direction) {
	if !dir.Valid() || dir == g.direction.Opposite() || dir == g.requested.Opposite() {
		return
	}
	g.requested = dir
}

// ComputeNextHead returns the cell one step from head in dir, wrapping
// around the board edges.
func ComputeNextHead(grid types.Grid, head int, dir types.Direction) int {
	n := grid.Size
	switch dir {
	case types.RIGHT:
		if (head+1)%n == 0 {
			return head - (n - 1)
		}
		return head + 1
	case types.LEFT:
		if head%n == 0 {
			return head + (n - 1)
		}
		return head - 1
	case types.DOWN:
		if head+n >= n*n {
			return head % n
		}
		return head + n
	case types.UP:
		if head-n < 0 {
			return n*n - n + head%n
		}
		return head - n
	default:
		return head
	}
}

func (g *Game) calculateNewPosition() int {
	return ComputeNextHead(g.Grid, g.snake.GetHead(), g.direction)
}

// Advance performs one update tick. It does nothing unless the game is
// running.
func (g *Game) Advance() {
	if g.phase != types.Running {
		return
	}

	g.direction = g.requested
	newHead := g.calculateNewPosition()

	// Collision is checked against the body before it moves.
	if g.collisionMgr.IsSelfCollision(newHead, g.snake) {
		g.phase = types.GameOver
		g.stateMgr.EndGame(g.score, false)
		g.logger.Info("game over, snake collided with its own body", "cell", newHead, "score", g.score)
		return
	}

	g.snake.Move(newHead)

	if !g.collisionMgr.IsFoodCollision(newHead, g.food) {
		g.snake.RemoveTail()
		return
	}

	g.logger.Debug("snake ate food", "cell", g.food)
	g.sound.PlayEat()

	food, ok := g.foodMgr.GenerateFood(g.snake)
	g.score++
	g.stateMgr.UpdateScore(g.score)
	g.speed = max(0, g.speed-g.settings.SpeedDecrement)

	if !ok {
		g.food = types.NoFood
		g.won = true
		g.phase = types.GameOver
		g.stateMgr.EndGame(g.score, true)
		g.logger.Info("board is full, game won", "score", g.score)
		return
	}
	g.food = food
}

func (g *Game) Snake() []int {
	return g.snake.Cells()
}

func (g *Game) Head() int {
	return g.snake.GetHead()
}

func (g *Game) Food() int {
	return g.food
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) HighScore() int {
	return g.stateMgr.GetHighScore()
}

// Speed is the number of milliseconds between update ticks.
func (g *Game) Speed() int {
	return g.speed
}

func (g *Game) Phase() types.Phase {
	return g.phase
}

// Direction is the heading the next Advance will use.
func (g *Game) Direction() types.Direction {
	return g.requested
}

// Won reports whether the last run ended with a full board.
func (g *Game) Won() bool {
	return g.won
}

func (g *Game) Settings() types.Settings {
	return g.settings
}
