// Package background drives a fluid meter as a full-bleed card background:
// no border, shadow or text, a translucent level color and host-facing
// property setters.
package background

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/iburimskiy/fluid-meter/internal/colorutil"
	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

const (
	levelAlpha = 0.3

	layerAngularSpeed    = 100
	layerFrequency       = 30
	layerHorizontalSpeed = 75
	foregroundAmplitude  = 8
	backgroundAmplitude  = 6

	fontFamily      = "Raleway"
	foregroundColor = "rgba(28, 28, 28, 0.5)"
)

var (
	DefaultLevelColor      = []float64{0, 128, 0}
	DefaultBackgroundColor = []float64{28, 28, 28}
)

// Background holds the host properties and forwards changes to the meter.
type Background struct {
	meter     *fluid.Meter
	container fluid.Container
	log       *zap.Logger

	size            fluid.Size
	value           float64
	backgroundColor []float64
	levelColor      []float64
	filling         bool
	randomStart     bool
	topMargin       float64
}

// New wraps m. Nothing is drawn until Mount.
func New(m *fluid.Meter, log *zap.Logger) *Background {
	if log == nil {
		log = zap.NewNop()
	}
	return &Background{
		meter:           m,
		log:             log,
		backgroundColor: slices.Clone(DefaultBackgroundColor),
		levelColor:      slices.Clone(DefaultLevelColor),
	}
}

// Mount initializes the meter inside c with the current properties.
func (b *Background) Mount(c fluid.Container) error {
	b.container = c
	return b.init()
}

func (b *Background) init() error {
	if err := b.meter.Init(fluid.Env{
		Container:      b.container,
		FillPercentage: b.value,
		Options:        b.Options(),
	}); err != nil {
		return fmt.Errorf("mount fluid background: %w", err)
	}
	return nil
}

func (b *Background) mounted() bool {
	return b.container != nil
}

// Options is the meter configuration for the current properties.
func (b *Background) Options() fluid.Options {
	size := float64(max(b.size.Width, b.size.Height))
	levelFill := colorutil.RGBAToString(b.levelColor, colorutil.RGBA(b.levelColor).Alpha()*levelAlpha)

	return fluid.Options{
		Width:              b.size.Width,
		Height:             b.size.Height,
		Size:               size,
		BorderWidth:        0,
		LevelOffset:        0,
		TopMargin:          b.topMargin,
		BackgroundColor:    colorutil.RGBAToString(b.backgroundColor, colorutil.RGBA(b.backgroundColor).Alpha()),
		ForegroundColor:    foregroundColor,
		FontFamily:         fontFamily,
		FontSize:           1,
		FontFillStyle:      "white",
		DrawShadow:         false,
		DrawText:           false,
		DrawPercentageSign: false,
		DrawBubbles:        b.filling,
		RandomStart:        b.randomStart,
		ForegroundLayer: fluid.LayerOptions{
			FillStyle:       levelFill,
			AngularSpeed:    layerAngularSpeed,
			MaxAmplitude:    foregroundAmplitude,
			Frequency:       layerFrequency,
			HorizontalSpeed: -layerHorizontalSpeed,
		},
		BackgroundLayer: fluid.LayerOptions{
			FillStyle:       levelFill,
			AngularSpeed:    layerAngularSpeed,
			MaxAmplitude:    backgroundAmplitude,
			Frequency:       layerFrequency,
			HorizontalSpeed: layerHorizontalSpeed,
		},
	}
}

func (b *Background) Value() float64 { return b.value }

func (b *Background) SetValue(v float64) {
	b.value = v
	b.meter.SetPercentage(v)
}

func (b *Background) Size() fluid.Size { return b.size }

// SetSize resizes the canvas when either dimension changed. Sizes with a
// zero dimension are recorded but not applied.
func (b *Background) SetSize(s fluid.Size) {
	if s == b.size {
		return
	}
	b.size = s
	if s.Width == 0 || s.Height == 0 {
		return
	}
	b.meter.ResizeCanvas(s)
}

func (b *Background) SetBackgroundColor(c []float64) {
	if len(c) < 3 {
		return
	}
	b.backgroundColor = slices.Clone(c)
	b.meter.SetBackgroundColor(b.backgroundColor)
}

func (b *Background) SetLevelColor(c []float64) {
	if len(c) < 3 {
		return
	}
	b.levelColor = slices.Clone(c)
	b.meter.SetLevelColor(b.levelColor)
}

func (b *Background) LevelColor() []float64 { return slices.Clone(b.levelColor) }

func (b *Background) Filling() bool { return b.filling }

// SetFilling shows bubbles while the level is filling.
func (b *Background) SetFilling(filling bool) {
	b.filling = filling
	b.meter.SetDrawBubbles(filling)
}

// SetRandomStart takes effect on the next mount; a mounted background is
// re-initialized.
func (b *Background) SetRandomStart(random bool) error {
	if random == b.randomStart {
		return nil
	}
	b.randomStart = random
	return b.reinit("random start")
}

// SetTopMargin re-initializes a mounted background with the new margin.
func (b *Background) SetTopMargin(margin float64) error {
	if margin == b.topMargin {
		return nil
	}
	b.topMargin = margin
	return b.reinit("top margin")
}

func (b *Background) reinit(reason string) error {
	if !b.mounted() {
		return nil
	}
	b.log.Debug("reinitializing fluid background", zap.String("reason", reason))
	b.meter.Stop()
	return b.init()
}
