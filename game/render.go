package game

import "grid-snake/game/types"

// Surface is a square drawing area of GridSize*SquareSize pixels per side.
// Coordinates passed to the Draw methods are the top-left pixel of a cell.
type Surface interface {
	BeginFrame()
	DrawBoard(x, y, size int)
	DrawSnakeSegment(x, y, size int)
	DrawFood(x, y, size int)
	DrawScore(score, highScore int)
	EndFrame()
	ShowGameOver(score, highScore int)
}

// CellPixel maps a cell index to the top-left pixel of its square.
func CellPixel(grid types.Grid, cell, squareSize int) (x, y int) {
	cx, cy := grid.Coords(cell)
	return cx * squareSize, cy * squareSize
}

// Render draws the board, the snake, the food and the score.
func (g *Game) Render(s Surface) {
	size := g.settings.SquareSize

	s.BeginFrame()
	for cell := 0; cell < g.Grid.Cells(); cell++ {
		x, y := CellPixel(g.Grid, cell, size)
		s.DrawBoard(x, y, size)
	}
	for _, segment := range g.snake.Body {
		x, y := CellPixel(g.Grid, segment, size)
		s.DrawSnakeSegment(x, y, size)
	}
	if g.food != types.NoFood {
		x, y := CellPixel(g.Grid, g.food, size)
		s.DrawFood(x, y, size)
	}
	s.DrawScore(g.score, g.stateMgr.GetHighScore())
	s.EndFrame()
}
