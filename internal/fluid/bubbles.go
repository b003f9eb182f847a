package fluid

import (
	"math"
	"math/rand/v2"
)

const (
	bubbleAmount    = 12
	bubbleSpeed     = 20
	bubbleSize      = 2
	bubbleSwingStep = 0.03

	// bubbleTopMargin is how far below the fluid surface bubbles respawn.
	bubbleTopMargin = 10

	// bubbleMinFill is the fill level at or below which no bubble is drawn.
	bubbleMinFill = 10
)

// Bubble is one particle rising through the fluid band.
type Bubble struct {
	X, Y  float64
	R     float64
	VelX  float64
	VelY  float64
	Swing float64
}

// bubbleLayer is the fixed bubble pool plus the state shared by all of its
// particles.
type bubbleLayer struct {
	bubbles     []Bubble
	amount      int
	amountLimit int
	speed       float64
	size        float64
	current     float64 // ambient lateral current, px/s
	swing       float64 // shared swing phase
}

func newBubbleLayer() bubbleLayer {
	return bubbleLayer{
		amount:      bubbleAmount,
		amountLimit: bubbleAmount,
		speed:       bubbleSpeed,
		size:        bubbleSize,
	}
}

// populate refills the pool inside the band [top, bottom].
func (b *bubbleLayer) populate(rng *rand.Rand, width, top, bottom float64) {
	b.bubbles = b.bubbles[:0]
	for range b.amount {
		var bb Bubble
		b.reset(&bb, rng, width, top, bottom)
		b.bubbles = append(b.bubbles, bb)
	}
}

func (b *bubbleLayer) reset(bb *Bubble, rng *rand.Rand, width, top, bottom float64) {
	bb.R = random(rng, b.size, b.size*2) / 2
	bb.X = random(rng, 0, width)
	bb.Y = random(rng, bottom, top)
	bb.VelX = 0
	bb.VelY = random(rng, b.speed, b.speed*2)
	bb.Swing = random(rng, 0, 2*math.Pi)
}

// setLimit scales the number of eligible bubbles with the fill level.
func (b *bubbleLayer) setLimit(percentage float64) {
	b.amountLimit = int(math.Round(float64(b.amount) * percentage / 100))
}

// visible is the length of the pool prefix that is drawn this frame.
func (b *bubbleLayer) visible() int {
	return min(max(b.amountLimit-1, 1), len(b.bubbles))
}

// step moves one bubble and reports whether it left the band and has to be
// respawned. The shared swing phase advances once per processed bubble.
func (b *bubbleLayer) step(bb *Bubble, dt, top float64) bool {
	// Wrapping at 2π keeps the sway term within ±0.4·2π px per step; an
	// unwrapped phase would grow the sway without bound.
	b.swing = math.Mod(b.swing+bubbleSwingStep, 2*math.Pi)

	if math.Abs(bb.VelX) < math.Abs(b.current) {
		bb.VelX += b.current * dt
	}
	if math.Abs(bb.VelX) >= math.Abs(b.current) {
		bb.VelX = b.current
	}
	bb.Y -= bb.VelY * dt

	var sway float64
	if b.swing != 0 {
		sway = 0.4 * math.Cos(b.swing) * b.swing
	}
	bb.X += sway + bb.VelX*0.5

	return bb.Y <= top+bubbleTopMargin
}

// bubbleOpacity maps y inside [top, bottom] onto [0, 1].
func bubbleOpacity(y, top, bottom float64) float64 {
	if bottom <= top {
		return 0
	}
	return math.Min(math.Max((y-top)/(bottom-top), 0), 1)
}

func random(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return rng.Float64()*(hi-lo) + lo
}
