package raster

import (
	"time"

	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

type container struct {
	surface *Surface
	pending []fluid.FrameFunc
}

func (c *container) Mount(w, h int) fluid.Surface {
	c.surface = New(w, h)
	return c.surface
}

func (c *container) RequestFrame(fn fluid.FrameFunc) {
	c.pending = append(c.pending, fn)
}

func (c *container) refresh(ms int64) {
	run := c.pending
	c.pending = nil
	for _, fn := range run {
		fn(time.Duration(ms) * time.Millisecond)
	}
}
