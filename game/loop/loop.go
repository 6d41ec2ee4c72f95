package loop

import (
	"io"
	"time"

	"grid-snake/game"
	"grid-snake/game/types"

	"github.com/charmbracelet/log"
)

// FrameFunc is called once per display refresh with the time elapsed since
// the host started.
type FrameFunc func(now time.Duration)

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	Schedule(fn FrameFunc)
}

// Engine is the game state the driver advances and renders.
type Engine interface {
	Advance()
	Render(s game.Surface)
	Phase() types.Phase
	Speed() int
	Score() int
	HighScore() int
}

// Driver advances the engine whenever more than Speed milliseconds passed
// since the last update, renders every frame and reschedules itself until
// the game is over.
type Driver struct {
	engine    Engine
	surface   game.Surface
	scheduler Scheduler
	logger    *log.Logger

	running    bool
	generation uint64 // bumped by Start and Stop to invalidate pending frames
	primed     bool
	lastUpdate time.Duration

	frames  uint64
	updates uint64
}

func NewDriver(engine Engine, surface game.Surface, scheduler Scheduler, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		engine:    engine,
		surface:   surface,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start schedules the first frame. Calling Start on a running driver does
// nothing.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.generation++
	d.primed = false
	d.schedule()
}

// Stop cancels the loop: frames already scheduled return without work.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.generation++
}

// Running reports whether the driver will keep requesting frames.
func (d *Driver) Running() bool {
	return d.running
}

// Stats returns the number of frames run and of updates performed.
func (d *Driver) Stats() (frames, updates uint64) {
	return d.frames, d.updates
}

func (d *Driver) schedule() {
	gen := d.generation
	d.scheduler.Schedule(func(now time.Duration) {
		if gen != d.generation {
			return
		}
		d.frame(now)
	})
}

func (d *Driver) frame(now time.Duration) {
	if !d.running {
		return
	}
	d.frames++

	if d.engine.Phase() == types.GameOver {
		d.running = false
		d.generation++
		d.surface.ShowGameOver(d.engine.Score(), d.engine.HighScore())
		d.logger.Debug("loop stopped", "frames", d.frames, "updates", d.updates)
		return
	}

	if !d.primed {
		d.primed = true
		d.lastUpdate = now
	}

	interval := time.Duration(d.engine.Speed()) * time.Millisecond
	if now-d.lastUpdate > interval {
		d.lastUpdate = now
		d.updates++
		d.engine.Advance()
	}

	d.engine.Render(d.surface)
	d.schedule()
}
