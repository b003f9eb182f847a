package fluid

import (
	"image/color"
	"math/rand/v2"
	"time"
)

// drawOp is one recorded surface call.
type drawOp struct {
	kind  string
	path  *Path
	color color.Color
	text  string
}

// recordingSurface keeps every call made during the current frame.
type recordingSurface struct {
	width, height int
	ops           []drawOp
	clears        int
	clipped       int
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }
func (s *recordingSurface) Resize(w, h int)  { s.width, s.height = w, h }

func (s *recordingSurface) Clear() {
	s.clears++
	s.ops = s.ops[:0]
}

func (s *recordingSurface) Clip(p *Path) {
	s.clipped++
	s.ops = append(s.ops, drawOp{kind: "clip", path: p})
}

func (s *recordingSurface) ResetClip() {
	s.clipped = 0
	s.ops = append(s.ops, drawOp{kind: "resetclip"})
}

func (s *recordingSurface) Fill(p *Path, c color.Color) {
	s.ops = append(s.ops, drawOp{kind: "fill", path: p, color: c})
}

func (s *recordingSurface) Stroke(p *Path, _ float64, c color.Color) {
	s.ops = append(s.ops, drawOp{kind: "stroke", path: p, color: c})
}

func (s *recordingSurface) FillText(text string, _, _ float64, _ Font, c color.Color) {
	s.ops = append(s.ops, drawOp{kind: "text", text: text, color: c})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// manualContainer queues frame requests until the test refreshes.
type manualContainer struct {
	surface *recordingSurface
	pending []FrameFunc
	now     time.Duration
	mounts  int
}

func (c *manualContainer) Mount(w, h int) Surface {
	c.mounts++
	c.surface = &recordingSurface{width: w, height: h}
	return c.surface
}

func (c *manualContainer) RequestFrame(fn FrameFunc) {
	c.pending = append(c.pending, fn)
}

// refresh advances the clock by d and runs the callbacks queued so far.
func (c *manualContainer) refresh(d time.Duration) {
	c.now += d
	run := c.pending
	c.pending = nil
	for _, fn := range run {
		fn(c.now)
	}
}

// qualifyingStep is just over one frame interval, so every refresh draws.
const qualifyingStep = time.Second/FPS + time.Millisecond

func newTestMeter() *Meter {
	return New(WithRand(rand.New(rand.NewPCG(1, 2))))
}

func squareOptions(size int) Options {
	o := DefaultOptions()
	o.Width, o.Height, o.Size = size, size, float64(size)
	return o
}
