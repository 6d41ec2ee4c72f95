package input

import (
	"io"
	"strings"

	"grid-snake/game/types"

	"github.com/charmbracelet/log"
)

// Command is an abstract key press.
type Command int

const (
	None Command = iota
	Confirm
	Up
	Down
	Left
	Right
	Quit
)

func (c Command) String() string {
	switch c {
	case Confirm:
		return "confirm"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Direction returns the heading for a direction command.
func (c Command) Direction() (types.Direction, bool) {
	switch c {
	case Up:
		return types.UP, true
	case Down:
		return types.DOWN, true
	case Left:
		return types.LEFT, true
	case Right:
		return types.RIGHT, true
	default:
		return types.NONE, false
	}
}

// ParseKey maps a key name to a command. Names are case-insensitive and
// cover arrows, WASD and the confirm/quit keys.
func ParseKey(name string) Command {
	switch strings.ToLower(name) {
	case "enter", "return", "space", " ":
		return Confirm
	case "up", "arrowup", "w":
		return Up
	case "down", "arrowdown", "s":
		return Down
	case "left", "arrowleft", "a":
		return Left
	case "right", "arrowright", "d":
		return Right
	case "q", "escape", "esc", "ctrl+c":
		return Quit
	default:
		return None
	}
}

// Engine is the part of the game the handler drives.
type Engine interface {
	Phase() types.Phase
	Start()
	Reset()
	SetDirection(dir types.Direction)
}

// Loop is restarted whenever a run begins.
type Loop interface {
	Start()
}

// Handler applies commands to the engine according to its phase.
type Handler struct {
	engine Engine
	loop   Loop
	logger *log.Logger
}

func NewHandler(engine Engine, loop Loop, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		engine: engine,
		loop:   loop,
		logger: logger,
	}
}

// Handle applies cmd and reports whether the host should quit.
func (h *Handler) Handle(cmd Command) bool {
	if cmd == Quit {
		return true
	}

	switch h.engine.Phase() {
	case types.NotStarted:
		if cmd == Confirm {
			h.engine.Start()
			h.loop.Start()
		}
	case types.Running:
		if dir, ok := cmd.Direction(); ok {
			h.engine.SetDirection(dir)
		}
	case types.GameOver:
		if cmd == Confirm {
			h.engine.Reset()
			h.loop.Start()
		}
	}
	h.logger.Debug("key handled", "command", cmd, "phase", h.engine.Phase())
	return false
}
