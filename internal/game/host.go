package game

import (
	"time"

	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

// frameQueue holds frame callbacks until the next refresh. Callbacks
// queued while a refresh runs wait for the following one.
type frameQueue struct {
	pending []fluid.FrameFunc
	running []fluid.FrameFunc
}

func (q *frameQueue) push(fn fluid.FrameFunc) {
	q.pending = append(q.pending, fn)
}

func (q *frameQueue) run(now time.Duration) int {
	q.running, q.pending = q.pending, q.running[:0]
	for _, fn := range q.running {
		fn(now)
	}
	n := len(q.running)
	clear(q.running)
	q.running = q.running[:0]
	return n
}

func (q *frameQueue) len() int {
	return len(q.pending)
}

// Host is the fluid.Container of the desktop window. The game calls
// Refresh once per Draw, which makes Draw the display refresh.
type Host struct {
	surface *Surface
	queue   frameQueue
	now     func() time.Duration
}

var _ fluid.Container = (*Host)(nil)

func NewHost() *Host {
	start := time.Now()
	return &Host{now: func() time.Duration { return time.Since(start) }}
}

func (h *Host) Mount(width, height int) fluid.Surface {
	if h.surface != nil {
		h.surface.Dispose()
	}
	h.surface = NewSurface(width, height)
	return h.surface
}

func (h *Host) RequestFrame(fn fluid.FrameFunc) {
	h.queue.push(fn)
}

// Refresh runs the callbacks requested since the previous refresh.
func (h *Host) Refresh() int {
	return h.queue.run(h.now())
}

// Surface is the mounted surface, nil before the meter is initialized.
func (h *Host) Surface() *Surface {
	return h.surface
}
