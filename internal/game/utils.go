package game

import (
	"fmt"
	"math"
	"time"

	ebimath "github.com/edwinsyarief/ebi-math"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clamp01(s), clamp01(v)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}

// hueLevelColor is a saturated level color for hue h.
func hueLevelColor(h float64) []float64 {
	r, g, b := hsvToRgb(h, 0.8, 0.9)
	return []float64{float64(r), float64(g), float64(b)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// centerOffset is the translation that centers an inner box in an outer one.
func centerOffset(outerW, outerH, innerW, innerH int) ebimath.Vector {
	return ebimath.VInt(outerW, outerH).Sub(ebimath.VInt(innerW, innerH)).ScaleF(0.5)
}

// formatPosition formats a track position as MM:SS/MM:SS.
func formatPosition(pos, total time.Duration) string {
	return formatDuration(pos) + "/" + formatDuration(total)
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	d = max(d, 0)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
