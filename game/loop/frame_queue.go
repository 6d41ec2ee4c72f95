package loop

import "time"

// FrameQueue is a Scheduler for hosts that own the display loop: callbacks
// scheduled now run on the next Tick. Not safe for concurrent use.
type FrameQueue struct {
	pending []FrameFunc
	spare   []FrameFunc
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) Schedule(fn FrameFunc) {
	q.pending = append(q.pending, fn)
}

// Tick runs the callbacks scheduled before this call and returns how many
// ran. Callbacks scheduled while ticking wait for the next Tick.
func (q *FrameQueue) Tick(now time.Duration) int {
	fns := q.pending
	q.pending = q.spare[:0]
	for i, fn := range fns {
		fn(now)
		fns[i] = nil
	}
	q.spare = fns[:0]
	return len(fns)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
