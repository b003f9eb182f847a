package fluid

import "math"

// Point is a path vertex in surface pixels.
type Point struct {
	X, Y float64
}

// Path is an outline made of polygonal subpaths. Every subpath is implicitly
// closed when filled. Overlapping subpaths with the same winding fill as a
// union (non-zero rule), like a canvas path with several shapes.
type Path struct {
	subpaths [][]Point
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.subpaths = append(p.subpaths, []Point{pt(x, y)})
}

// LineTo appends a point to the current subpath. On an empty path it
// behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.subpaths) == 0 {
		p.MoveTo(x, y)
		return
	}
	last := len(p.subpaths) - 1
	p.subpaths[last] = append(p.subpaths[last], pt(x, y))
}

// Arc adds a full clockwise circle as its own subpath.
func (p *Path) Arc(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	n := arcSegments(r)
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	p.subpaths = append(p.subpaths, pts)
}

// Rect adds a clockwise rectangle as its own subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.subpaths = append(p.subpaths, []Point{
		pt(x, y),
		pt(x+w, y),
		pt(x+w, y+h),
		pt(x, y+h),
	})
}

// Subpaths exposes the outline to surfaces. Callers must not modify it.
func (p *Path) Subpaths() [][]Point {
	return p.subpaths
}

// Empty reports whether the path has no subpath with an area.
func (p *Path) Empty() bool {
	for _, sp := range p.subpaths {
		if len(sp) >= 3 {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of all points.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, sp := range p.subpaths {
		for _, pt := range sp {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func arcSegments(r float64) int {
	n := int(math.Ceil(r))
	return min(max(n, 16), 256)
}

func pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
