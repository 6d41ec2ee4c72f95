package game

import (
	"context"
	"io"
	"testing"

	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"
	"grid-snake/storage"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type countingSound struct {
	eats int
}

func (c *countingSound) PlayEat() { c.eats++ }

type point struct{ X, Y int }

type recordingSurface struct {
	begins, ends int
	board        []point
	segments     []point
	food         []point
	score, high  int
	gameOvers    int
}

func (r *recordingSurface) BeginFrame() {
	r.begins++
	r.board = r.board[:0]
	r.segments = r.segments[:0]
	r.food = r.food[:0]
}
func (r *recordingSurface) DrawBoard(x, y, size int)        { r.board = append(r.board, point{x, y}) }
func (r *recordingSurface) DrawSnakeSegment(x, y, size int) { r.segments = append(r.segments, point{x, y}) }
func (r *recordingSurface) DrawFood(x, y, size int)         { r.food = append(r.food, point{x, y}) }
func (r *recordingSurface) DrawScore(score, high int)       { r.score, r.high = score, high }
func (r *recordingSurface) EndFrame()                       { r.ends++ }
func (r *recordingSurface) ShowGameOver(score, high int)    { r.gameOvers++ }

func newTestGame(t *testing.T, settings types.Settings, store storage.Store) (*Game, *countingSound) {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	sound := &countingSound{}
	g := NewGame(settings, store,
		WithSound(sound),
		WithRand(rand.New(rand.NewSource(1))),
		WithLogger(log.New(io.Discard)),
	)
	return g, sound
}

// place puts the game into Running with the given body and food.
func place(g *Game, food int, body ...int) {
	g.snake = entity.NewSnake(body...)
	g.food = food
	if g.phase == types.NotStarted {
		g.Start()
	}
}

func TestComputeNextHead_Wraparound(t *testing.T) {
	grid := types.Grid{Size: 10}
	tests := []struct {
		name string
		head int
		dir  types.Direction
		want int
	}{
		{"right edge", 9, types.RIGHT, 0},
		{"left edge", 0, types.LEFT, 9},
		{"bottom edge", 90, types.DOWN, 0},
		{"top edge", 0, types.UP, 90},
		{"bottom right corner down", 99, types.DOWN, 9},
		{"bottom right corner right", 99, types.RIGHT, 90},
		{"top right corner up", 9, types.UP, 99},
		{"bottom left corner left", 90, types.LEFT, 99},
		{"interior right", 1, types.RIGHT, 2},
		{"interior left", 55, types.LEFT, 54},
		{"interior down", 55, types.DOWN, 65},
		{"interior up", 55, types.UP, 45},
		{"no direction", 55, types.NONE, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeNextHead(grid, tt.head, tt.dir))
		})
	}
}

func TestComputeNextHead_InteriorMovesOneCell(t *testing.T) {
	grid := types.Grid{Size: 10}
	for head := 0; head < grid.Cells(); head++ {
		x, y := grid.Coords(head)
		if x > 0 {
			assert.Equal(t, grid.Index(x-1, y), ComputeNextHead(grid, head, types.LEFT))
		}
		if x < grid.Size-1 {
			assert.Equal(t, grid.Index(x+1, y), ComputeNextHead(grid, head, types.RIGHT))
		}
		if y > 0 {
			assert.Equal(t, grid.Index(x, y-1), ComputeNextHead(grid, head, types.UP))
		}
		if y < grid.Size-1 {
			assert.Equal(t, grid.Index(x, y+1), ComputeNextHead(grid, head, types.DOWN))
		}
	}
}

func TestNewGame_InitialState(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)

	assert.Equal(t, types.NotStarted, g.Phase())
	assert.Equal(t, []int{1}, g.Snake())
	assert.Equal(t, types.RIGHT, g.Direction())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, types.DefaultBaseSpeed, g.Speed())
	assert.True(t, g.Grid.Contains(g.Food()))
	assert.NotEqual(t, 1, g.Food())
}

func TestGame_AdvanceRequiresRunning(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)

	g.Advance()
	assert.Equal(t, []int{1}, g.Snake())

	g.Start()
	assert.Equal(t, types.Running, g.Phase())
	g.Start()
	assert.Equal(t, types.Running, g.Phase())
}

func TestGame_EatFood(t *testing.T) {
	store := storage.NewMemoryStore()
	g, sound := newTestGame(t, types.DefaultSettings(), store)
	place(g, 2, 1)

	g.Advance()

	assert.Equal(t, 2, g.Head())
	assert.Equal(t, []int{1, 2}, g.Snake())
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, 1, sound.eats)
	assert.Equal(t, types.DefaultBaseSpeed-types.DefaultSpeedDecrement, g.Speed())
	assert.NotContains(t, []int{1, 2}, g.Food())
	assert.Equal(t, 1, g.HighScore())

	v, ok, err := store.GetInt(context.Background(), manager.HighScoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestGame_MoveWithoutEating(t *testing.T) {
	g, sound := newTestGame(t, types.DefaultSettings(), nil)
	place(g, 50, 1, 2, 3)

	g.Advance()

	assert.Equal(t, []int{2, 3, 4}, g.Snake())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, sound.eats)
	assert.Equal(t, 50, g.Food())
}

func TestGame_SelfCollision(t *testing.T) {
	tests := []struct {
		name string
		body []int
		dir  types.Direction
	}{
		{"into the tail cell", []int{0, 1, 11, 10}, types.UP},
		{"across the wrap boundary", []int{1, 9, 0}, types.RIGHT},
		{"into the middle", []int{22, 23, 24, 14, 13, 12}, types.DOWN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, types.DefaultSettings(), nil)
			place(g, 99, tt.body...)
			g.direction = tt.dir
			g.requested = tt.dir

			g.Advance()

			assert.Equal(t, types.GameOver, g.Phase())
			assert.Equal(t, tt.body, g.Snake())
			assert.False(t, g.Won())

			g.Advance()
			assert.Equal(t, tt.body, g.Snake())
		})
	}
}

func TestGame_WrapBoundaryWithoutCollision(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)
	place(g, 50, 9, 0)

	g.Advance()

	assert.Equal(t, types.Running, g.Phase())
	assert.Equal(t, []int{0, 1}, g.Snake())
}

func TestGame_SetDirection(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)
	place(g, 99, 44, 45)

	g.SetDirection(types.LEFT)
	assert.Equal(t, types.RIGHT, g.Direction())

	g.SetDirection(types.NONE)
	g.SetDirection(types.Direction(42))
	assert.Equal(t, types.RIGHT, g.Direction())

	g.SetDirection(types.UP)
	assert.Equal(t, types.UP, g.Direction())
	assert.Equal(t, []int{44, 45}, g.Snake())

	// the buffered turn cannot be chained into a reversal before it is applied
	g.SetDirection(types.LEFT)
	assert.Equal(t, types.UP, g.Direction())
	g.SetDirection(types.DOWN)
	assert.Equal(t, types.UP, g.Direction())

	g.Advance()
	assert.Equal(t, 35, g.Head())

	g.SetDirection(types.LEFT)
	g.Advance()
	assert.Equal(t, 34, g.Head())
}

func TestGame_DirectionLastWriteWins(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)
	place(g, 99, 44)

	g.SetDirection(types.UP)
	g.SetDirection(types.RIGHT)
	g.SetDirection(types.DOWN)
	g.Advance()

	assert.Equal(t, 54, g.Head())
}

func TestGame_SpeedFloor(t *testing.T) {
	settings := types.DefaultSettings()
	settings.BaseSpeed = 7
	g, _ := newTestGame(t, settings, nil)

	place(g, 2, 1)
	g.Advance()
	assert.Equal(t, 2, g.Speed())

	g.food = 3
	g.Advance()
	assert.Equal(t, 0, g.Speed())

	g.food = 4
	g.Advance()
	assert.Equal(t, 0, g.Speed())
	assert.Equal(t, 3, g.Score())
}

func TestGame_FullBoardWins(t *testing.T) {
	settings := types.DefaultSettings()
	settings.GridSize = 2
	settings.StartIndex = 0
	g, sound := newTestGame(t, settings, nil)
	place(g, 2, 0, 1, 3)
	g.direction = types.LEFT
	g.requested = types.LEFT

	g.Advance()

	assert.Equal(t, types.GameOver, g.Phase())
	assert.True(t, g.Won())
	assert.Equal(t, types.NoFood, g.Food())
	assert.Equal(t, []int{0, 1, 3, 2}, g.Snake())
	assert.Equal(t, 1, sound.eats)
}

func TestGame_Reset(t *testing.T) {
	store := storage.NewMemoryStore()
	g, _ := newTestGame(t, types.DefaultSettings(), store)

	g.Reset()
	assert.Equal(t, types.NotStarted, g.Phase())

	place(g, 2, 1)
	g.Advance()
	g.food = 3
	g.Advance()
	require.Equal(t, 2, g.Score())

	g.Reset()
	assert.Equal(t, types.Running, g.Phase(), "reset is ignored while running")
	assert.Equal(t, 2, g.Score())

	g.snake = entity.NewSnake(4, 3, 2)
	g.Advance() // 2 -> 3 hits the body
	require.Equal(t, types.GameOver, g.Phase())

	g.SetDirection(types.DOWN)
	g.Reset()

	assert.Equal(t, types.Running, g.Phase())
	assert.Equal(t, []int{1}, g.Snake())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, types.DefaultBaseSpeed, g.Speed())
	assert.Equal(t, types.RIGHT, g.Direction())
	assert.NotEqual(t, 1, g.Food())
	assert.Equal(t, 2, g.HighScore())

	recs, err := store.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Score)
}

func TestGame_HighScoreFromStore(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(context.Background(), manager.HighScoreKey, 3))
	g, _ := newTestGame(t, types.DefaultSettings(), store)
	assert.Equal(t, 3, g.HighScore())

	place(g, 2, 1)
	for food := 2; food <= 5; food++ {
		g.food = food
		g.Advance()
	}
	assert.Equal(t, 4, g.Score())
	assert.Equal(t, 4, g.HighScore())
}

func TestGame_Invariants(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)
	g.Start()
	r := rand.New(rand.NewSource(2024))
	dirs := []types.Direction{types.UP, types.RIGHT, types.DOWN, types.LEFT}

	prevScore, prevSpeed := g.Score(), g.Speed()
	for tick := 0; tick < 5000; tick++ {
		if g.Phase() == types.GameOver {
			g.Reset()
			prevScore, prevSpeed = g.Score(), g.Speed()
		}
		if r.Intn(3) == 0 {
			g.SetDirection(dirs[r.Intn(len(dirs))])
		}

		before := len(g.Snake())
		scoreBefore := g.Score()
		g.Advance()

		snake := g.Snake()
		assert.NotContains(t, snake, g.Food())
		seen := make(map[int]bool, len(snake))
		for _, c := range snake {
			require.False(t, seen[c], "duplicate cell %d", c)
			seen[c] = true
		}

		switch {
		case g.Phase() == types.GameOver:
			assert.Len(t, snake, before)
		case g.Score() > scoreBefore:
			assert.Len(t, snake, before+1)
		default:
			assert.Len(t, snake, before)
		}

		assert.GreaterOrEqual(t, g.Score(), prevScore)
		assert.LessOrEqual(t, g.Speed(), prevSpeed)
		assert.GreaterOrEqual(t, g.Speed(), 0)
		prevScore, prevSpeed = g.Score(), g.Speed()
	}
}

func TestGame_Render(t *testing.T) {
	g, _ := newTestGame(t, types.DefaultSettings(), nil)
	place(g, 23, 10, 11)
	surface := &recordingSurface{}

	g.Render(surface)

	assert.Equal(t, 1, surface.begins)
	assert.Equal(t, 1, surface.ends)
	assert.Len(t, surface.board, 100)
	assert.Equal(t, point{0, 0}, surface.board[0])
	assert.Equal(t, point{450, 450}, surface.board[99])
	assert.Equal(t, []point{{0, 50}, {50, 50}}, surface.segments)
	assert.Equal(t, []point{{150, 100}}, surface.food)
	assert.Equal(t, 0, surface.score)
}

func TestCellPixel(t *testing.T) {
	grid := types.Grid{Size: 10}
	x, y := CellPixel(grid, 57, 50)
	assert.Equal(t, 350, x)
	assert.Equal(t, 250, y)
}
