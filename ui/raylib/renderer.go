package raylib

import (
	"context"
	"fmt"
	"time"

	"grid-snake/game/types"
	"grid-snake/input"
	"grid-snake/ui"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // Padding around game area
	hudHeight     = 40
	glowSize      = 3
)

var (
	boardColor = rl.NewColor(24, 28, 32, 255)
	lineColor  = rl.NewColor(44, 50, 56, 255)
	snakeColor = rl.NewColor(53, 255, 137, 255)
	foodColor  = rl.NewColor(255, 62, 62, 255)
)

type drawKind int

const (
	drawBoard drawKind = iota
	drawSegment
	drawFood
)

type cellOp struct {
	kind       drawKind
	x, y, size int32
}

// Renderer is a raylib window. Frames produced by the game are recorded
// and replayed on every display refresh, so the last scene stays on screen
// while the loop is idle between updates or after a game over.
type Renderer struct {
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
	glow         bool

	next      []cellOp
	scene     []cellOp
	score     int
	highScore int

	gameOver   bool
	finalScore int

	logger *log.Logger
}

// NewRenderer opens a window sized for the board.
func NewRenderer(settings types.Settings, glow bool, logger *log.Logger) *Renderer {
	side := int32(settings.GridSize * settings.SquareSize)
	r := &Renderer{
		screenWidth:  side + borderPadding*2,
		screenHeight: side + borderPadding*2 + hudHeight,
		offsetX:      borderPadding,
		offsetY:      borderPadding + hudHeight,
		glow:         glow,
		logger:       logger,
	}

	rl.InitWindow(r.screenWidth, r.screenHeight, "Snake")
	rl.SetTargetFPS(60)
	logger.Debug("window opened", "width", r.screenWidth, "height", r.screenHeight)
	return r
}

func (r *Renderer) BeginFrame() {
	r.next = r.next[:0]
	r.gameOver = false
}

func (r *Renderer) DrawBoard(x, y, size int) {
	r.next = append(r.next, cellOp{drawBoard, int32(x), int32(y), int32(size)})
}

func (r *Renderer) DrawSnakeSegment(x, y, size int) {
	r.next = append(r.next, cellOp{drawSegment, int32(x), int32(y), int32(size)})
}

func (r *Renderer) DrawFood(x, y, size int) {
	r.next = append(r.next, cellOp{drawFood, int32(x), int32(y), int32(size)})
}

func (r *Renderer) DrawScore(score, highScore int) {
	r.score = score
	r.highScore = highScore
}

func (r *Renderer) EndFrame() {
	r.scene, r.next = r.next, r.scene
}

func (r *Renderer) ShowGameOver(score, highScore int) {
	r.gameOver = true
	r.finalScore = score
	r.highScore = highScore
}

// Run polls keys, ticks the frame queue and presents the scene until the
// window closes, the player quits or ctx is cancelled.
func (r *Renderer) Run(ctx context.Context, s ui.Session) error {
	defer rl.CloseWindow()

	start := time.Now()
	s.Game.Render(r) // initial board behind the start prompt

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		for _, cmd := range pressedCommands() {
			if s.Input.Handle(cmd) {
				return nil
			}
		}

		s.Queue.Tick(time.Since(start))
		r.present(s.Game.Phase())
	}
	return nil
}

func (r *Renderer) present(phase types.Phase) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	for _, op := range r.scene {
		x, y := r.offsetX+op.x, r.offsetY+op.y
		switch op.kind {
		case drawBoard:
			rl.DrawRectangle(x, y, op.size, op.size, boardColor)
			rl.DrawRectangleLines(x, y, op.size, op.size, lineColor)
		case drawSegment:
			r.drawCell(x, y, op.size, snakeColor)
		case drawFood:
			r.drawCell(x, y, op.size, foodColor)
		}
	}

	fontSize := int32(hudHeight / 2)
	rl.DrawText(fmt.Sprintf("Score: %d", r.score), borderPadding, borderPadding, fontSize, rl.White)
	high := fmt.Sprintf("High score: %d", r.highScore)
	rl.DrawText(high, r.screenWidth-borderPadding-rl.MeasureText(high, fontSize), borderPadding, fontSize, rl.Gold)

	switch {
	case phase == types.NotStarted:
		r.drawBanner("Press Enter to start", "")
	case r.gameOver:
		r.drawBanner("Game Over!", fmt.Sprintf("Score %d - Best %d - Enter to retry", r.finalScore, r.highScore))
	}

	rl.EndDrawing()
}

func (r *Renderer) drawCell(x, y, size int32, color rl.Color) {
	if r.glow {
		rl.DrawRectangle(x-glowSize, y-glowSize, size+glowSize*2, size+glowSize*2, rl.Fade(color, 0.25))
	}
	rl.DrawRectangle(x+1, y+1, size-2, size-2, color)
}

func (r *Renderer) drawBanner(title, subtitle string) {
	boardW := r.screenWidth - borderPadding*2
	boardH := r.screenHeight - borderPadding*2 - hudHeight
	rl.DrawRectangle(r.offsetX, r.offsetY, boardW, boardH, rl.Fade(rl.Black, 0.6))

	titleSize := int32(boardW / 12)
	textWidth := rl.MeasureText(title, titleSize)
	rl.DrawText(title, r.offsetX+(boardW-textWidth)/2, r.offsetY+boardH/2-titleSize, titleSize, rl.White)

	if subtitle != "" {
		subSize := titleSize / 2
		subWidth := rl.MeasureText(subtitle, subSize)
		rl.DrawText(subtitle, r.offsetX+(boardW-subWidth)/2, r.offsetY+boardH/2+subSize, subSize, rl.LightGray)
	}
}

var keyCommands = []struct {
	key int32
	cmd input.Command
}{
	{rl.KeyEnter, input.Confirm},
	{rl.KeySpace, input.Confirm},
	{rl.KeyUp, input.Up},
	{rl.KeyW, input.Up},
	{rl.KeyDown, input.Down},
	{rl.KeyS, input.Down},
	{rl.KeyLeft, input.Left},
	{rl.KeyA, input.Left},
	{rl.KeyRight, input.Right},
	{rl.KeyD, input.Right},
	{rl.KeyQ, input.Quit},
}

func pressedCommands() []input.Command {
	var cmds []input.Command
	for _, kc := range keyCommands {
		if rl.IsKeyPressed(kc.key) {
			cmds = append(cmds, kc.cmd)
		}
	}
	return cmds
}
