package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

// attemptsPerCell bounds rejection sampling before free cells are enumerated.
const attemptsPerCell = 4

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	logger       *log.Logger
}

func NewFoodManager(grid types.Grid, rng *rand.Rand, collisionMgr *CollisionManager, logger *log.Logger) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
		logger:       logger,
	}
}

// GenerateFood picks a uniformly random free cell. It returns false when the
// snake covers the whole board.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (int, bool) {
	cells := fm.grid.Cells()
	if snake.Len() >= cells {
		return types.NoFood, false
	}

	for i := 0; i < attemptsPerCell*cells; i++ {
		food := fm.rng.Intn(cells)
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			fm.logger.Debug("generated new food", "cell", food, "attempts", i+1)
			return food, true
		}
	}

	// Nearly full board: pick among the remaining cells directly.
	free := make([]int, 0, cells-snake.Len())
	for c := 0; c < cells; c++ {
		if fm.collisionMgr.ValidateSpawnPosition(c, snake) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return types.NoFood, false
	}
	food := free[fm.rng.Intn(len(free))]
	fm.logger.Debug("generated new food from free cells", "cell", food, "free", len(free))
	return food, true
}
