package fluid

import (
	"image/color"
	"math"
	"strconv"

	"github.com/iburimskiy/fluid-meter/internal/colorutil"
)

const (
	shadowOffsetY = 4
	shadowBlur    = 6
	shadowAlpha   = 0.1

	bubbleLineWidth = 1
)

var textShadowColor = color.NRGBA{A: 102}

// render runs the simulation for one qualifying frame and draws it.
func (m *Meter) render(dt float64) {
	s := m.surface
	if s == nil {
		return
	}
	if w, h := s.Size(); w <= 0 || h <= 0 {
		return
	}

	s.Clear()
	m.drawBackground()
	m.drawFluid(dt)
	if m.opts.DrawText {
		m.drawText()
	}
}

// drawBackground fills the meter disc and the whole surface rectangle as a
// single path, so the rectangle hides the disc outline.
func (m *Meter) drawBackground() {
	c := m.opts.Size * 0.5
	r := m.meterRadius() - m.opts.BorderWidth
	if c < 0 || r < 0 {
		return
	}

	p := &Path{}
	p.Arc(c, c, r)
	p.Rect(0, 0, float64(m.opts.Width), float64(m.opts.Height))
	m.surface.Fill(p, m.backgroundColor.NRGBA())
}

// drawFluid fills the background and foreground layers, then draws the
// bubbles clipped to the union of both layers. The layer heights use the
// level from before this frame's fill step.
func (m *Meter) drawFluid(dt float64) {
	bottom := m.meterBottom()
	top := bottom - m.fluidAmount()
	m.updateFill(dt)
	w, h := m.surface.Size()

	body := &Path{}
	for _, l := range []*Layer{&m.background, &m.foreground} {
		l.advance(dt)
		l.InitialHeight = top
		p := l.path(w, h)
		m.surface.Fill(p, l.color)
		body.subpaths = append(body.subpaths, p.subpaths...)
	}

	m.bubbles.setLimit(m.current)
	if m.opts.DrawBubbles && m.current > bubbleMinFill {
		m.surface.Clip(body)
		m.drawBubbles(dt, top, bottom)
		m.surface.ResetClip()
	}
}

func (m *Meter) drawBubbles(dt, top, bottom float64) {
	if m.current <= bubbleMinFill {
		return
	}

	width := float64(m.opts.Width)
	for i := range m.bubbles.visible() {
		bb := &m.bubbles.bubbles[i]

		p := &Path{}
		p.Arc(bb.X, bb.Y, bb.R)
		alpha := bubbleOpacity(bb.Y, top, bottom)
		m.surface.Stroke(p, bubbleLineWidth, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(alpha * 255))})

		if m.bubbles.step(bb, dt, top) {
			m.bubbles.reset(bb, m.rng, width, top, bottom)
			if m.onPop != nil {
				m.onPop()
			}
		}
	}
}

func (m *Meter) drawText() {
	text := strconv.Itoa(int(math.Round(m.current)))
	if m.opts.DrawPercentageSign {
		text += "%"
	}

	w, h := m.surface.Size()
	x, y := float64(w)/2, float64(h)/2
	font := Font{Family: m.opts.FontFamily, Size: m.opts.FontSize}

	m.surface.FillText(text, x, y+1, font, textShadowColor)
	m.surface.FillText(text, x, y, font, m.textColor.NRGBA())
}

// drawShadow paints a soft drop shadow under the meter disc once, at mount.
func (m *Meter) drawShadow() {
	if m.surface == nil {
		return
	}
	c := m.opts.Size * 0.5
	r := m.meterRadius()
	if r <= 0 {
		return
	}

	for i := shadowBlur; i > 0; i-- {
		p := &Path{}
		p.Arc(c, c+shadowOffsetY, r+float64(i))
		alpha := shadowAlpha * float64(shadowBlur-i+1) / shadowBlur
		m.surface.Fill(p, color.NRGBA{A: uint8(math.Round(alpha * 255))})
	}

	disc := &Path{}
	disc.Arc(c, c, r)
	fg := colorutil.ParseCSSColor(m.opts.ForegroundColor)
	if fg == nil {
		fg = m.backgroundColor
	}
	m.surface.Fill(disc, fg.NRGBA())
}
