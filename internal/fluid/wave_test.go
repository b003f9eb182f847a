package fluid

import (
	"math"
	"testing"
)

func TestDisplacementFormula(t *testing.T) {
	tests := []struct {
		amp, angle, hp, freq, x float64
	}{
		{12, 90, 0, 40, 0},
		{12, 90, 0, 40, 31.4},
		{9, 45, 120.5, 30, 77},
		{8, 300, -5000, 30, 199},
	}
	for _, tt := range tests {
		want := tt.amp * math.Sin(tt.angle*math.Pi/180) * math.Sin((tt.x+tt.hp)/tt.freq)
		got := Displacement(tt.amp, tt.angle, tt.hp, tt.freq, tt.x)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Displacement(%+v) = %v, want %v", tt, got, want)
		}
		if again := Displacement(tt.amp, tt.angle, tt.hp, tt.freq, tt.x); again != got {
			t.Errorf("Displacement is not deterministic: %v != %v", again, got)
		}
	}
}

func TestDisplacementDegenerate(t *testing.T) {
	if got := Displacement(0, 90, 10, 30, 5); got != 0 {
		t.Errorf("zero amplitude: %v", got)
	}
	if got := Displacement(10, 0, 10, 30, 5); got != 0 {
		t.Errorf("zero angle: %v", got)
	}
	if got := Displacement(10, 90, 10, 0, 5); got != 0 {
		t.Errorf("zero frequency: %v", got)
	}
}

func TestLayerAdvance(t *testing.T) {
	l := Layer{AngularSpeed: 140, HorizontalSpeed: 150, Frequency: 40}
	l.advance(1)
	if l.Angle != 140 || l.HorizontalPosition != 150 {
		t.Fatalf("after 1s: angle=%v hp=%v", l.Angle, l.HorizontalPosition)
	}
	l.advance(2)
	if math.Abs(l.Angle-60) > 1e-9 {
		t.Errorf("angle should wrap at 360: %v", l.Angle)
	}
	if l.HorizontalPosition != 450 {
		t.Errorf("hp = %v", l.HorizontalPosition)
	}
}

func TestLayerAdvanceWithoutAngularSpeed(t *testing.T) {
	l := Layer{AngularSpeed: 0, HorizontalSpeed: -150, Frequency: 30, MaxAmplitude: 9}
	l.advance(1)
	if l.Angle != 0 {
		t.Errorf("angle moved without angular speed: %v", l.Angle)
	}
	if l.HorizontalPosition != -150 {
		t.Errorf("hp = %v", l.HorizontalPosition)
	}
	if l.Amplitude() != 0 {
		t.Errorf("amplitude = %v, want flat surface", l.Amplitude())
	}
}

func TestHorizontalPositionOverflowGuard(t *testing.T) {
	l := Layer{HorizontalSpeed: 1, HorizontalPosition: maxHorizontalPosition}
	l.advance(1e6)
	if l.HorizontalPosition != 0 {
		t.Errorf("hp = %v, want reset to 0", l.HorizontalPosition)
	}

	l = Layer{HorizontalSpeed: -1, HorizontalPosition: -maxHorizontalPosition}
	l.advance(1e6)
	if l.HorizontalPosition != 0 {
		t.Errorf("negative hp = %v, want reset to 0", l.HorizontalPosition)
	}
}

func TestFlatLayerPath(t *testing.T) {
	l := Layer{MaxAmplitude: 0, Frequency: 30, InitialHeight: 40}
	p := l.path(10, 100)
	sub := p.Subpaths()
	if len(sub) != 1 {
		t.Fatalf("subpaths = %d", len(sub))
	}
	pts := sub[0]
	// start point, x = 0..10, two bottom corners
	if len(pts) != 1+11+2 {
		t.Fatalf("points = %d", len(pts))
	}
	for _, pt := range pts[:12] {
		if pt.Y != 40 {
			t.Fatalf("flat surface has y = %v", pt.Y)
		}
	}
	if last := pts[len(pts)-1]; last.X != 0 || last.Y != 100 {
		t.Errorf("path does not close at the bottom-left corner: %v", last)
	}
	if p.Empty() {
		t.Error("flat path reported empty")
	}
}

func TestWavePathFollowsDisplacement(t *testing.T) {
	l := Layer{MaxAmplitude: 12, Angle: 90, Frequency: 40, HorizontalPosition: 17, InitialHeight: 100}
	pts := l.path(50, 200).Subpaths()[0]
	for x := 0; x <= 50; x++ {
		want := 100 + l.Displacement(float64(x))
		if got := pts[x+1].Y; math.Abs(got-want) > 1e-9 {
			t.Fatalf("y(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestNormalizeLayerDefaults(t *testing.T) {
	o := Options{Width: 200, Height: 100}.normalize()
	if o.Size != 200 {
		t.Errorf("size = %v, want the larger dimension", o.Size)
	}
	if o.ForegroundLayer != DefaultForegroundLayer() {
		t.Errorf("foreground layer = %+v", o.ForegroundLayer)
	}
	if o.BackgroundLayer != DefaultBackgroundLayer() {
		t.Errorf("background layer = %+v", o.BackgroundLayer)
	}

	o = Options{Size: 50, ForegroundLayer: LayerOptions{MaxAmplitude: 3}}.normalize()
	if o.Width != 50 || o.Height != 50 {
		t.Errorf("size-only options = %dx%d", o.Width, o.Height)
	}
	if o.ForegroundLayer.Frequency != DefaultForegroundLayer().Frequency || o.ForegroundLayer.MaxAmplitude != 3 {
		t.Errorf("partial layer = %+v", o.ForegroundLayer)
	}
	if o.ForegroundLayer.FillStyle != "purple" {
		t.Errorf("fill style = %q", o.ForegroundLayer.FillStyle)
	}
}
