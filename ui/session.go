package ui

import (
	"grid-snake/game"
	"grid-snake/game/loop"
	"grid-snake/input"
)

// Session bundles what a frontend drives every frame.
type Session struct {
	Game   *game.Game
	Driver *loop.Driver
	Queue  *loop.FrameQueue
	Input  *input.Handler
}
