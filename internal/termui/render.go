package termui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

type cell struct {
	top, bottom color.RGBA
}

// renderHalfBlocks draws img two pixel rows per text line. Runs of equal
// cells share one style. Pixels are composited over black.
func renderHalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			out.WriteByte('\n')
		}
		run, n := cell{}, 0
		for x := b.Min.X; x < b.Max.X; x++ {
			c := cell{top: opaque(img.RGBAAt(x, y))}
			if y+1 < b.Max.Y {
				c.bottom = opaque(img.RGBAAt(x, y+1))
			}
			if n > 0 && c != run {
				out.WriteString(renderRun(run, n))
				n = 0
			}
			run = c
			n++
		}
		if n > 0 {
			out.WriteString(renderRun(run, n))
		}
	}
	return out.String()
}

func renderRun(c cell, n int) string {
	return lipgloss.NewStyle().
		Foreground(hex(c.top)).
		Background(hex(c.bottom)).
		Render(strings.Repeat(halfBlock, n))
}

// opaque drops alpha. RGBA pixels are premultiplied, so this is "over black".
func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex())
}
