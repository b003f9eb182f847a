package fluid

import (
	"image/color"
	"math"

	"github.com/iburimskiy/fluid-meter/internal/colorutil"
)

// maxHorizontalPosition bounds the horizontal phase accumulator.
const maxHorizontalPosition = 1 << 53

// Layer is one sinusoidal wave contributing to the fluid surface.
type Layer struct {
	FillStyle          string
	Angle              float64 // degrees
	HorizontalPosition float64
	AngularSpeed       float64
	MaxAmplitude       float64
	Frequency          float64
	HorizontalSpeed    float64
	InitialHeight      float64 // baseline y of the surface, set every frame

	color color.NRGBA
}

func newLayer(o LayerOptions) Layer {
	l := Layer{
		AngularSpeed:    o.AngularSpeed,
		MaxAmplitude:    o.MaxAmplitude,
		Frequency:       o.Frequency,
		HorizontalSpeed: o.HorizontalSpeed,
	}
	l.setFillStyle(o.FillStyle)
	return l
}

// setFillStyle keeps the previous paint when s does not parse.
func (l *Layer) setFillStyle(s string) bool {
	c, ok := colorutil.ToColor(s)
	if !ok {
		return false
	}
	l.FillStyle = s
	l.color = c
	return true
}

// advance moves both phase accumulators forward by dt seconds.
func (l *Layer) advance(dt float64) {
	if l.AngularSpeed > 0 {
		l.Angle = math.Mod(l.Angle+l.AngularSpeed*dt, 360)
		if l.Angle < 0 {
			l.Angle += 360
		}
	}

	l.HorizontalPosition += l.HorizontalSpeed * dt
	if math.Abs(l.HorizontalPosition) > maxHorizontalPosition {
		l.HorizontalPosition = 0
	}
}

// Amplitude is the current peak displacement of the surface.
func (l *Layer) Amplitude() float64 {
	return l.MaxAmplitude * math.Sin(l.Angle*math.Pi/180)
}

// Displacement is the vertical offset of the surface at x.
func (l *Layer) Displacement(x float64) float64 {
	return Displacement(l.MaxAmplitude, l.Angle, l.HorizontalPosition, l.Frequency, x)
}

// Displacement computes maxAmplitude·sin(angle°)·sin((x+horizontalPosition)/frequency).
// A non-positive frequency yields a flat surface.
func Displacement(maxAmplitude, angle, horizontalPosition, frequency, x float64) float64 {
	if frequency <= 0 {
		return 0
	}
	amplitude := maxAmplitude * math.Sin(angle*math.Pi/180)
	return amplitude * math.Sin((x+horizontalPosition)/frequency)
}

// path outlines the fluid body: the wave along the top, closed down to the
// bottom corners of the surface.
func (l *Layer) path(width, height int) *Path {
	p := &Path{}
	p.LineTo(0, l.InitialHeight)
	for x := 0; x <= width; x++ {
		fx := float64(x)
		p.LineTo(fx, l.InitialHeight+l.Displacement(fx))
	}
	p.LineTo(float64(width), float64(height))
	p.LineTo(0, float64(height))
	return p
}
