package types

import "fmt"

// Grid is a square board of Size x Size cells indexed in row-major order.
type Grid struct {
	Size int
}

// NoFood marks the absence of food once the board is full.
const NoFood = -1

// Cells returns the number of cells on the board.
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Index converts a column/row pair into a cell index.
func (g Grid) Index(x, y int) int {
	return y*g.Size + x
}

// Coords converts a cell index into its column and row.
func (g Grid) Coords(i int) (x, y int) {
	return i % g.Size, i / g.Size
}

// Contains reports whether i addresses a cell on the board.
func (g Grid) Contains(i int) bool {
	return i >= 0 && i < g.Cells()
}

// Direction represents a cardinal direction
type Direction int

const (
	NONE  Direction = iota // 0
	UP                     // 1
	RIGHT                  // 2
	DOWN                   // 3
	LEFT                   // 4
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= UP && d <= LEFT
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case RIGHT:
		return LEFT
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	default:
		return NONE
	}
}

func (d Direction) String() string {
	switch d {
	case UP:
		return "up"
	case RIGHT:
		return "right"
	case DOWN:
		return "down"
	case LEFT:
		return "left"
	default:
		return "none"
	}
}

// Phase is the lifecycle state of a game.
type Phase int

const (
	NotStarted Phase = iota
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Settings are the tunable parameters of a game.
type Settings struct {
	GridSize       int `yaml:"grid_size"`
	SquareSize     int `yaml:"square_size"`
	BaseSpeed      int `yaml:"base_speed"`      // milliseconds between moves
	SpeedDecrement int `yaml:"speed_decrement"` // applied per food eaten
	StartIndex     int `yaml:"start_index"`
}

// Game defaults
const (
	DefaultGridSize       = 10
	DefaultSquareSize     = 50
	DefaultBaseSpeed      = 400
	DefaultSpeedDecrement = 5
	DefaultStartIndex     = 1
	DefaultDirection      = RIGHT
)

// DefaultSettings returns the classic 10x10 configuration.
func DefaultSettings() Settings {
	return Settings{
		GridSize:       DefaultGridSize,
		SquareSize:     DefaultSquareSize,
		BaseSpeed:      DefaultBaseSpeed,
		SpeedDecrement: DefaultSpeedDecrement,
		StartIndex:     DefaultStartIndex,
	}
}

// Validate checks that the settings describe a playable board.
func (s Settings) Validate() error {
	if s.GridSize < 2 {
		return fmt.Errorf("grid size must be at least 2, got %d", s.GridSize)
	}
	if s.SquareSize < 1 {
		return fmt.Errorf("square size must be positive, got %d", s.SquareSize)
	}
	if s.BaseSpeed < 0 {
		return fmt.Errorf("base speed must not be negative, got %d", s.BaseSpeed)
	}
	if s.SpeedDecrement < 0 {
		return fmt.Errorf("speed decrement must not be negative, got %d", s.SpeedDecrement)
	}
	if !(Grid{Size: s.GridSize}).Contains(s.StartIndex) {
		return fmt.Errorf("start index %d is outside a %dx%d grid", s.StartIndex, s.GridSize, s.GridSize)
	}
	return nil
}
