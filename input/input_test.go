package input

import (
	"testing"

	"grid-snake/game/types"

	"github.com/stretchr/testify/assert"
)

type fakeEngine struct {
	phase      types.Phase
	starts     int
	resets     int
	directions []types.Direction
}

func (f *fakeEngine) Phase() types.Phase { return f.phase }
func (f *fakeEngine) Start() {
	f.starts++
	f.phase = types.Running
}
func (f *fakeEngine) Reset() {
	f.resets++
	f.phase = types.Running
}
func (f *fakeEngine) SetDirection(dir types.Direction) {
	f.directions = append(f.directions, dir)
}

type fakeLoop struct {
	starts int
}

func (f *fakeLoop) Start() { f.starts++ }

func TestParseKey(t *testing.T) {
	tests := map[string]Command{
		"Enter":      Confirm,
		"ArrowRight": Right,
		"arrowleft":  Left,
		"W":          Up,
		"s":          Down,
		"esc":        Quit,
		"x":          None,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ParseKey(name))
		})
	}
}

func TestHandler_NotStarted(t *testing.T) {
	engine := &fakeEngine{phase: types.NotStarted}
	loop := &fakeLoop{}
	h := NewHandler(engine, loop, nil)

	h.Handle(Right)
	assert.Empty(t, engine.directions)
	assert.Equal(t, 0, engine.starts)

	h.Handle(Confirm)
	assert.Equal(t, 1, engine.starts)
	assert.Equal(t, 1, loop.starts)
	assert.Equal(t, 0, engine.resets)
}

func TestHandler_Running(t *testing.T) {
	engine := &fakeEngine{phase: types.Running}
	loop := &fakeLoop{}
	h := NewHandler(engine, loop, nil)

	h.Handle(Up)
	h.Handle(Left)
	h.Handle(Confirm)
	h.Handle(None)

	assert.Equal(t, []types.Direction{types.UP, types.LEFT}, engine.directions)
	assert.Equal(t, 0, engine.starts)
	assert.Equal(t, 0, engine.resets)
	assert.Equal(t, 0, loop.starts)
}

func TestHandler_GameOver(t *testing.T) {
	engine := &fakeEngine{phase: types.GameOver}
	loop := &fakeLoop{}
	h := NewHandler(engine, loop, nil)

	h.Handle(Down)
	assert.Empty(t, engine.directions)

	h.Handle(Confirm)
	assert.Equal(t, 1, engine.resets)
	assert.Equal(t, 1, loop.starts)
	assert.Equal(t, 0, engine.starts)
}

func TestHandler_Quit(t *testing.T) {
	h := NewHandler(&fakeEngine{}, &fakeLoop{}, nil)
	assert.True(t, h.Handle(Quit))
	assert.False(t, h.Handle(Confirm))
}
