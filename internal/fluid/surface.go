package fluid

import (
	"errors"
	"image/color"
	"time"
)

// ErrInvalidContainer is returned by Init when no container is given.
var ErrInvalidContainer = errors.New("fluid: empty or invalid container")

// FrameFunc receives the refresh timestamp, measured from an arbitrary
// fixed origin chosen by the container.
type FrameFunc func(now time.Duration)

// Container is the host mount point. It hands out the drawing surface and
// the per-refresh callback primitive.
type Container interface {
	// Mount creates a surface of exactly width × height attached to the
	// container.
	Mount(width, height int) Surface

	// RequestFrame schedules fn to run once on the next display refresh.
	RequestFrame(fn FrameFunc)
}

// Surface is the 2D drawing target. A surface with a zero dimension must
// accept every call and draw nothing.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)

	// Clear makes every pixel transparent.
	Clear()

	Fill(p *Path, c color.Color)
	Stroke(p *Path, width float64, c color.Color)

	// Clip restricts subsequent drawing to p, intersected with any active
	// clip. ResetClip removes all clipping.
	Clip(p *Path)
	ResetClip()

	// FillText draws text centered on (x, y).
	FillText(text string, x, y float64, font Font, c color.Color)
}

// Font describes percentage text. Surfaces pick the closest face they have.
type Font struct {
	Family string
	Size   float64
}

// Size is a surface size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}
