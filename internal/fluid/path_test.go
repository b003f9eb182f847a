package fluid

import (
	"math"
	"testing"
)

func TestPathLineToStartsSubpath(t *testing.T) {
	var p Path
	p.LineTo(1, 2)
	p.LineTo(3, 4)
	sub := p.Subpaths()
	if len(sub) != 1 || len(sub[0]) != 2 {
		t.Fatalf("subpaths = %v", sub)
	}
	if !p.Empty() {
		t.Error("two points have no area")
	}
}

func TestPathArc(t *testing.T) {
	var p Path
	p.Arc(50, 50, 10)
	pts := p.Subpaths()[0]
	if len(pts) != 16 {
		t.Fatalf("small arc has %d segments, want 16", len(pts))
	}
	for _, pt := range pts {
		if d := math.Hypot(pt.X-50, pt.Y-50); math.Abs(d-10) > 1e-9 {
			t.Fatalf("point %v is %v from the center", pt, d)
		}
	}

	p = Path{}
	p.Arc(0, 0, 1000)
	if n := len(p.Subpaths()[0]); n != 256 {
		t.Errorf("large arc has %d segments, want 256", n)
	}

	p = Path{}
	p.Arc(0, 0, 0)
	p.Arc(0, 0, -3)
	if !p.Empty() || len(p.Subpaths()) != 0 {
		t.Error("degenerate arcs added subpaths")
	}
}

func TestPathBounds(t *testing.T) {
	var p Path
	p.Rect(10, 20, 30, 40)
	p.MoveTo(-5, 100)
	minX, minY, maxX, maxY := p.Bounds()
	if minX != -5 || minY != 20 || maxX != 40 || maxY != 100 {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
