package ui

import (
	"context"
	"fmt"
	"time"

	"grid-snake/game/types"
	"grid-snake/input"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth    = 2 // terminal columns per board cell
	boardLeft    = 1
	boardTop     = 2
	tickInterval = 16 * time.Millisecond
)

var (
	boardStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorLime)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// Terminal draws the board with tcell. One board cell takes two columns so
// that cells look roughly square.
type Terminal struct {
	screen   tcell.Screen
	gridSize int
	logger   *log.Logger
}

// NewTerminal takes over the controlling terminal.
func NewTerminal(settings types.Settings, logger *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	return newTerminal(screen, settings, logger), nil
}

func newTerminal(screen tcell.Screen, settings types.Settings, logger *log.Logger) *Terminal {
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen, gridSize: settings.GridSize, logger: logger}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) BeginFrame() {
	t.screen.Clear()
}

func (t *Terminal) DrawBoard(x, y, size int) {
	t.setCell(x, y, size, '·', ' ', boardStyle)
}

func (t *Terminal) DrawSnakeSegment(x, y, size int) {
	t.setCell(x, y, size, '█', '█', snakeStyle)
}

func (t *Terminal) DrawFood(x, y, size int) {
	t.setCell(x, y, size, '●', ' ', foodStyle)
}

func (t *Terminal) DrawScore(score, highScore int) {
	t.drawText(boardLeft, 0, fmt.Sprintf("Score: %d   High score: %d", score, highScore), hudStyle)
}

func (t *Terminal) EndFrame() {
	t.screen.Show()
}

func (t *Terminal) ShowGameOver(score, highScore int) {
	t.drawBanner("GAME OVER", fmt.Sprintf("score %d  best %d", score, highScore), "[Enter] play again  [q] quit")
	t.screen.Show()
}

func (t *Terminal) showStartPrompt() {
	t.drawBanner("SNAKE", "[Enter] start", "arrows or wasd to steer")
	t.screen.Show()
}

// setCell converts pixel coordinates back to a board cell.
func (t *Terminal) setCell(x, y, size int, left, right rune, style tcell.Style) {
	col := boardLeft + (x/size)*cellWidth
	row := boardTop + y/size
	t.screen.SetContent(col, row, left, nil, style)
	t.screen.SetContent(col+1, row, right, nil, style)
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawBanner(lines ...string) {
	width := t.gridSize * cellWidth
	top := boardTop + t.gridSize/2 - len(lines)/2
	for i, line := range lines {
		text := []rune(" " + line + " ")
		x := boardLeft + max(0, (width-len(text))/2)
		t.drawText(x, top+i, string(text), bannerStyle)
	}
}

// Run pumps terminal events and frame ticks until the player quits or ctx
// is cancelled.
func (t *Terminal) Run(ctx context.Context, s Session) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	start := time.Now()
	t.refresh(s)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				w, h := e.Size()
				t.logger.Debug("terminal resized", "width", w, "height", h)
				t.screen.Sync()
				t.refresh(s)
			case *tcell.EventKey:
				if s.Input.Handle(commandForKey(e)) {
					return nil
				}
			}
		case <-tick.C:
			s.Queue.Tick(time.Since(start))
			if s.Game.Phase() == types.NotStarted {
				t.showStartPrompt()
			}
		}
	}
}

func (t *Terminal) refresh(s Session) {
	s.Game.Render(t)
	if s.Game.Phase() == types.NotStarted {
		t.showStartPrompt()
	}
}

func commandForKey(ev *tcell.EventKey) input.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.Up
	case tcell.KeyDown:
		return input.Down
	case tcell.KeyLeft:
		return input.Left
	case tcell.KeyRight:
		return input.Right
	case tcell.KeyEnter:
		return input.Confirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.Quit
	case tcell.KeyRune:
		return input.ParseKey(string(ev.Rune()))
	}
	return input.None
}
