// Package fluid renders an animated fluid level: two superimposed waves
// whose baseline tracks a percentage, with optional rising bubbles and
// percentage text.
//
// A Meter is driven entirely by its Container: the container supplies the
// drawing surface and calls back once per display refresh. All methods must
// be called from the same goroutine that runs those callbacks.
package fluid

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/colorutil"
)

const (
	// FPS is the rate at which refreshes are turned into simulation and
	// draw work.
	FPS = 24

	// FillRate is how fast the displayed level chases the target, in
	// percentage points per second.
	FillRate = 15

	levelAlphaFactor = 0.3
)

// State is the lifecycle state of a Meter.
type State int

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Env is the input to Init.
type Env struct {
	Container      Container
	FillPercentage float64
	Options        Options
}

// Meter is one fluid meter instance.
type Meter struct {
	log   *zap.Logger
	rng   *rand.Rand
	onPop func()

	opts      Options
	resized   bool // ResizeCanvas was called
	container Container
	surface   Surface
	state     State

	clock      clock
	generation uint64

	target  float64
	current float64

	background Layer
	foreground Layer
	bubbles    bubbleLayer

	backgroundColor colorutil.RGBA
	textColor       colorutil.RGBA
}

// MeterOption customizes a Meter at construction.
type MeterOption func(*Meter)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) MeterOption {
	return func(m *Meter) {
		if l != nil {
			m.log = l
		}
	}
}

// WithRand sets the random source for bubble placement and random starts.
func WithRand(r *rand.Rand) MeterOption {
	return func(m *Meter) {
		if r != nil {
			m.rng = r
		}
	}
}

// WithBubblePop registers fn to be called whenever a bubble reaches the
// surface and respawns.
func WithBubblePop(fn func()) MeterOption {
	return func(m *Meter) {
		m.onPop = fn
	}
}

// New returns an uninitialized meter with default options.
func New(opts ...MeterOption) *Meter {
	m := &Meter{
		log:     zap.NewNop(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		opts:    DefaultOptions(),
		bubbles: newBubbleLayer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.applyOptions()
	return m
}

// Init mounts the meter in env.Container and starts the animation loop.
// Calling Init again stops the current loop and remounts.
func (m *Meter) Init(env Env) error {
	if env.Container == nil {
		return ErrInvalidContainer
	}
	if m.state != Uninitialized {
		m.Stop()
	}

	m.container = env.Container
	m.target = clampPercentage(env.FillPercentage)
	opts := env.Options
	if m.resized && opts.Width == 0 && opts.Height == 0 && opts.Size <= 0 {
		opts.Width, opts.Height, opts.Size = m.opts.Width, m.opts.Height, m.opts.Size
	}
	m.opts = opts.normalize()
	m.applyOptions()

	if m.opts.RandomStart {
		m.randomizePhases()
	}

	m.bubbles.populate(m.rng, float64(m.opts.Width), m.fluidTop(), m.meterBottom())
	m.bubbles.setLimit(m.current)

	m.surface = m.container.Mount(m.opts.Width, m.opts.Height)
	if m.opts.DrawShadow {
		m.drawShadow()
	}

	m.log.Debug("fluid meter initialized",
		zap.Int("width", m.opts.Width),
		zap.Int("height", m.opts.Height),
		zap.Float64("percentage", m.target),
		zap.Bool("bubbles", m.opts.DrawBubbles))

	m.state = Stopped
	m.Start()
	return nil
}

// Start begins a fresh animation loop. It does nothing before Init or while
// already running.
func (m *Meter) Start() {
	if m.state != Stopped {
		return
	}
	m.state = Running
	m.generation++
	m.clock = newClock(FPS)
	m.container.RequestFrame(m.loop(m.generation))
	m.log.Debug("fluid meter started", zap.Uint64("generation", m.generation))
}

// Stop ends the animation loop at its next refresh.
func (m *Meter) Stop() {
	if m.state != Running {
		return
	}
	m.state = Stopped
	m.log.Debug("fluid meter stopped", zap.Uint64("generation", m.generation))
}

// State reports the lifecycle state.
func (m *Meter) State() State {
	return m.state
}

// SetPercentage sets the target level, clamped to [0, 100].
func (m *Meter) SetPercentage(p float64) {
	m.target = clampPercentage(p)
}

// Percentage is the target level.
func (m *Meter) Percentage() float64 {
	return m.target
}

// CurrentPercentage is the level currently drawn.
func (m *Meter) CurrentPercentage() float64 {
	return m.current
}

// SetDrawBubbles toggles the bubble layer.
func (m *Meter) SetDrawBubbles(draw bool) {
	m.opts.DrawBubbles = draw
}

// SetColor sets the fill paint of both wave layers. Unparseable paint
// strings leave the layer unchanged.
func (m *Meter) SetColor(foreground, background string) {
	m.background.setFillStyle(background)
	m.foreground.setFillStyle(foreground)
}

// SetBackgroundColor sets the meter background from an [r, g, b(, a)]
// array. Arrays shorter than three channels are ignored.
func (m *Meter) SetBackgroundColor(c []float64) {
	if len(c) < 3 {
		return
	}
	rgba := colorutil.RGBA(c)
	m.opts.BackgroundColor = colorutil.RGBAToString(c, rgba.Alpha())
	m.backgroundColor = colorutil.ParseCSSColor(m.opts.BackgroundColor)
}

// SetLevelColor paints the foreground layer with c and the background
// layer with the same color at a reduced alpha.
func (m *Meter) SetLevelColor(c []float64) {
	if len(c) < 3 {
		return
	}
	alpha := colorutil.RGBA(c).Alpha()
	m.foreground.setFillStyle(colorutil.RGBAToString(c, alpha))
	m.background.setFillStyle(colorutil.RGBAToString(c, alpha*levelAlphaFactor))
}

// ResizeCanvas changes the surface size. The meter keeps the larger
// dimension as its size. Wave and bubble coordinates are not rescaled.
// A size set before Init is used when the Init options carry none.
func (m *Meter) ResizeCanvas(size Size) {
	m.resized = true
	m.opts.Width = max(size.Width, 0)
	m.opts.Height = max(size.Height, 0)
	m.opts.Size = float64(max(m.opts.Width, m.opts.Height))

	if m.surface != nil {
		m.surface.Resize(m.opts.Width, m.opts.Height)
	}
	m.log.Debug("fluid meter resized",
		zap.Int("width", m.opts.Width),
		zap.Int("height", m.opts.Height))
}

// Options returns a copy of the active configuration.
func (m *Meter) Options() Options {
	o := m.opts
	o.ForegroundLayer.FillStyle = m.foreground.FillStyle
	o.BackgroundLayer.FillStyle = m.background.FillStyle
	return o
}

// Layers returns copies of the background and foreground wave layers.
func (m *Meter) Layers() (background, foreground Layer) {
	return m.background, m.foreground
}

// loop is one self-rescheduling animation loop. A loop from an earlier
// generation exits at its next refresh.
func (m *Meter) loop(generation uint64) FrameFunc {
	var frame FrameFunc
	frame = func(now time.Duration) {
		if m.state != Running || generation != m.generation {
			return
		}
		dt, qualifies := m.clock.tick(now)
		m.container.RequestFrame(frame)
		if qualifies {
			m.render(dt)
		}
	}
	return frame
}

func (m *Meter) applyOptions() {
	m.background = newLayer(m.opts.BackgroundLayer)
	m.foreground = newLayer(m.opts.ForegroundLayer)
	if c := colorutil.ParseCSSColor(m.opts.BackgroundColor); c != nil {
		m.backgroundColor = c
	}
	if c := colorutil.ParseCSSColor(m.opts.FontFillStyle); c != nil {
		m.textColor = c
	}
}

func (m *Meter) randomizePhases() {
	for _, l := range []*Layer{&m.background, &m.foreground} {
		l.Angle = random(m.rng, 0, 360)
		l.HorizontalPosition = random(m.rng, 0, 2*math.Pi*l.Frequency)
	}
}

// updateFill moves the displayed level toward the target without passing it.
func (m *Meter) updateFill(dt float64) {
	step := FillRate * dt
	switch {
	case m.current < m.target:
		m.current = math.Min(m.current+step, m.target)
	case m.current > m.target:
		m.current = math.Max(m.current-step, m.target)
	}
}

func (m *Meter) meterRadius() float64 {
	return m.opts.Size * 0.9
}

// meterBottom is the y of the fluid baseline at 0%.
func (m *Meter) meterBottom() float64 {
	return float64(m.opts.Height) - m.opts.LevelOffset - (m.opts.Size-m.meterRadius())*0.5 - m.opts.BorderWidth
}

// fluidAmount is the height of the fluid column in pixels.
func (m *Meter) fluidAmount() float64 {
	usable := math.Max(float64(m.opts.Height)-m.opts.TopMargin, 0)
	return m.current * usable / 100
}

func (m *Meter) fluidTop() float64 {
	return m.meterBottom() - m.fluidAmount()
}

func clampPercentage(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 100)
}
