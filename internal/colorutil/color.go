// Package colorutil converts between the color forms hosts hand to the fluid
// meter: RGB(A) arrays and CSS paint strings.
package colorutil

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGBA is the array form of a color: [r, g, b] or [r, g, b, a] with
// channels in 0-255 and alpha in 0-1.
type RGBA []float64

// Alpha returns the alpha channel, 1 when the array has none.
func (c RGBA) Alpha() float64 {
	if len(c) > 3 {
		return c[3]
	}
	return 1
}

// ParseCSSColor normalizes v into array form. Arrays are returned as-is
// (same backing storage); strings may be rgb(), rgba(), hex or a CSS color
// name. Anything else, including unparseable strings, yields nil.
func ParseCSSColor(v any) RGBA {
	switch c := v.(type) {
	case RGBA:
		return c
	case []float64:
		return RGBA(c)
	case string:
		return parseString(c)
	}
	return nil
}

// RGBAToString renders the first three channels of c with the given alpha
// as a CSS rgba() paint string.
func RGBAToString(c []float64, alpha float64) string {
	var ch [3]float64
	copy(ch[:], c)

	var b strings.Builder
	b.WriteString("rgba(")
	for _, v := range ch {
		b.WriteString(formatNumber(v))
		b.WriteString(", ")
	}
	b.WriteString(formatNumber(alpha))
	b.WriteString(")")
	return b.String()
}

// ToColor parses a paint string into a drawable color.
func ToColor(s string) (color.NRGBA, bool) {
	c := parseString(s)
	if c == nil {
		return color.NRGBA{}, false
	}
	return c.NRGBA(), true
}

// NRGBA converts the array form into a drawable color. Missing channels
// are treated as 0, missing alpha as opaque.
func (c RGBA) NRGBA() color.NRGBA {
	var ch [3]float64
	copy(ch[:], c)
	return color.NRGBA{
		R: channel(ch[0]),
		G: channel(ch[1]),
		B: channel(ch[2]),
		A: channel(clamp(c.Alpha(), 0, 1) * 255),
	}
}

// FromColor converts any color.Color into array form with alpha.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{float64(n.R), float64(n.G), float64(n.B), float64(n.A) / 255}
}

func parseString(s string) RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil
	case s == "transparent":
		return RGBA{0, 0, 0, 0}
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}
	if named, ok := colornames.Map[s]; ok {
		return RGBA{float64(named.R), float64(named.G), float64(named.B)}
	}
	return nil
}

// parseFunctional handles rgb(r, g, b) and rgba(r, g, b, a), comma or
// space separated, with an optional "/ a" alpha.
func parseFunctional(s string) RGBA {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil
	}
	switch s[:open] {
	case "rgb", "rgba":
	default:
		return nil
	}

	body := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : len(s)-1])
	fields := strings.Fields(body)
	if len(fields) != 3 && len(fields) != 4 {
		return nil
	}

	out := make(RGBA, 0, len(fields))
	for i, f := range fields {
		v, ok := parseComponent(f, i == 3)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func parseComponent(f string, isAlpha bool) (float64, bool) {
	if pct, ok := strings.CutSuffix(f, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		if isAlpha {
			return v / 100, true
		}
		return math.Round(v * 255 / 100), true
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseHex(s string) RGBA {
	digits := s[1:]
	alpha := -1.0

	switch len(digits) {
	case 4:
		a, err := strconv.ParseUint(digits[3:], 16, 8)
		if err != nil {
			return nil
		}
		alpha = float64(a) / 15
		digits = digits[:3]
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return nil
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	case 3, 6:
	default:
		return nil
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return nil
	}
	r, g, b := c.RGB255()
	out := RGBA{float64(r), float64(g), float64(b)}
	if alpha >= 0 {
		out = append(out, math.Round(alpha*1000)/1000)
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 255)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
