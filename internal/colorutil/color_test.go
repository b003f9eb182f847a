package colorutil

import (
	"image/color"
	"math"
	"testing"
)

func equalRGBA(a, b RGBA) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want RGBA
	}{
		{"rgb", "rgb(255, 128, 0)", RGBA{255, 128, 0}},
		{"rgba", "rgba(255, 128, 0, 0.5)", RGBA{255, 128, 0, 0.5}},
		{"space separated", "rgb(1 2 3 / 0.25)", RGBA{1, 2, 3, 0.25}},
		{"short hex", "#fff", RGBA{255, 255, 255}},
		{"long hex", "#e2e2e2", RGBA{226, 226, 226}},
		{"hex with alpha", "#00000080", RGBA{0, 0, 0, 0.502}},
		{"named", "purple", RGBA{128, 0, 128}},
		{"named mixed case", " White ", RGBA{255, 255, 255}},
		{"transparent", "transparent", RGBA{0, 0, 0, 0}},
		{"invalid", "invalid-color", nil},
		{"empty", "", nil},
		{"bad hex", "#12", nil},
		{"too many components", "rgb(1, 2, 3, 4, 5)", nil},
		{"unsupported type", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSSColor(tt.in)
			if !equalRGBA(got, tt.want) {
				t.Errorf("ParseCSSColor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCSSColorArrayIdentity(t *testing.T) {
	in := []float64{255, 128, 0, 1}
	got := ParseCSSColor(in)
	if len(got) != len(in) || &got[0] != &in[0] {
		t.Fatalf("array input was copied: got %v", got)
	}

	typed := RGBA{1, 2, 3}
	if got := ParseCSSColor(typed); &got[0] != &typed[0] {
		t.Fatal("RGBA input was copied")
	}
}

func TestRGBAToString(t *testing.T) {
	if got := RGBAToString([]float64{255, 128, 0}, 0.8); got != "rgba(255, 128, 0, 0.8)" {
		t.Errorf("got %q", got)
	}
	if got := RGBAToString([]float64{100, 50, 25}, 1); got != "rgba(100, 50, 25, 1)" {
		t.Errorf("got %q", got)
	}
	if got := RGBAToString([]float64{7}, 0); got != "rgba(7, 0, 0, 0)" {
		t.Errorf("short input: got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	got := ParseCSSColor(RGBAToString([]float64{10, 20, 30}, 0.4))
	if !equalRGBA(got, RGBA{10, 20, 30, 0.4}) {
		t.Fatalf("round trip = %v", got)
	}
}

func TestToColor(t *testing.T) {
	c, ok := ToColor("rgba(10, 20, 30, 0.5)")
	if !ok {
		t.Fatal("ToColor failed")
	}
	if want := (color.NRGBA{R: 10, G: 20, B: 30, A: 128}); c != want {
		t.Errorf("ToColor = %v, want %v", c, want)
	}
	if _, ok := ToColor("nope"); ok {
		t.Error("ToColor accepted garbage")
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 0, G: 128, B: 0, A: 255})
	if !equalRGBA(got, RGBA{0, 128, 0, 1}) {
		t.Errorf("FromColor = %v", got)
	}
}
