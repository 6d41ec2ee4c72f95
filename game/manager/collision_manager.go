package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// IsSelfCollision reports whether moving the head onto pos hits the body.
// It must run before the body is mutated: the current tail counts as occupied.
func (cm *CollisionManager) IsSelfCollision(pos int, snake *entity.Snake) bool {
	return snake.Contains(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos int, food int) bool {
	return food != types.NoFood && pos == food
}

// ValidateSpawnPosition checks if a cell is on the board and free of the snake
func (cm *CollisionManager) ValidateSpawnPosition(pos int, snake *entity.Snake) bool {
	return cm.grid.Contains(pos) && !snake.Contains(pos)
}
