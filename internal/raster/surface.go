// Package raster is a software fluid.Surface backed by an *image.RGBA.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

// Surface rasterizes paths with golang.org/x/image/vector. Overlapping
// subpaths fill as a union; the clip is an alpha mask.
type Surface struct {
	img  *image.RGBA
	mask *image.Alpha
	clip *image.Alpha
	rast *vector.Rasterizer

	faces   faceCache
	version uint64
}

var _ fluid.Surface = (*Surface)(nil)

// New returns a transparent surface of w × h pixels.
func New(w, h int) *Surface {
	s := &Surface{rast: vector.NewRasterizer(0, 0)}
	s.Resize(w, h)
	return s
}

// Image is the backing image. It is reused across frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Version increases on every call that may change pixels.
func (s *Surface) Version() uint64 {
	return s.version
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changes. Content and
// clip are dropped.
func (s *Surface) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.img != nil {
		if cw, ch := s.Size(); cw == w && ch == h {
			return
		}
	}
	r := image.Rect(0, 0, w, h)
	s.img = image.NewRGBA(r)
	s.mask = image.NewAlpha(r)
	s.clip = nil
	s.version++
}

func (s *Surface) Clear() {
	clear(s.img.Pix)
	s.version++
}

func (s *Surface) Fill(p *fluid.Path, c color.Color) {
	if !s.cover(p) {
		return
	}
	s.paint(c)
}

// Stroke outlines every subpath, closing edge included, with quads of the
// given width.
func (s *Surface) Stroke(p *fluid.Path, width float64, c color.Color) {
	if width <= 0 || s.empty() {
		return
	}
	w, h := s.Size()
	s.rast.Reset(w, h)
	half := width / 2
	drawn := false
	for _, sp := range p.Subpaths() {
		if len(sp) < 2 {
			continue
		}
		for i := range sp {
			a, b := sp[i], sp[(i+1)%len(sp)]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			s.rast.MoveTo(float32(a.X+nx), float32(a.Y+ny))
			s.rast.LineTo(float32(b.X+nx), float32(b.Y+ny))
			s.rast.LineTo(float32(b.X-nx), float32(b.Y-ny))
			s.rast.LineTo(float32(a.X-nx), float32(a.Y-ny))
			s.rast.ClosePath()
			drawn = true
		}
	}
	if !drawn {
		return
	}
	s.rasterize()
	s.paint(c)
}

// Clip intersects the active clip with p.
func (s *Surface) Clip(p *fluid.Path) {
	if s.empty() {
		return
	}
	// cover already intersects with the active clip.
	if !s.cover(p) {
		clear(s.mask.Pix)
	}
	if s.clip == nil {
		s.clip = image.NewAlpha(s.mask.Rect)
	}
	copy(s.clip.Pix, s.mask.Pix)
}

func (s *Surface) ResetClip() {
	s.clip = nil
}

// FillText draws text centered on (x, y) with a Go Regular face of the
// requested size. Text ignores the clip.
func (s *Surface) FillText(text string, x, y float64, f fluid.Font, c color.Color) {
	if text == "" || s.empty() {
		return
	}
	face := s.faces.get(f.Size)
	m := face.Metrics()
	adv := font.MeasureString(face, text)
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x*64)) - adv/2,
			Y: fixed.Int26_6(math.Round(y*64)) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(text)
	s.version++
}

func (s *Surface) empty() bool {
	w, h := s.Size()
	return w == 0 || h == 0
}

// cover rasterizes the fill coverage of p into s.mask and reports whether
// p had anything to fill.
func (s *Surface) cover(p *fluid.Path) bool {
	if s.empty() || p.Empty() {
		return false
	}
	w, h := s.Size()
	s.rast.Reset(w, h)
	for _, sp := range p.Subpaths() {
		if len(sp) < 3 {
			continue
		}
		s.rast.MoveTo(float32(sp[0].X), float32(sp[0].Y))
		for _, pt := range sp[1:] {
			s.rast.LineTo(float32(pt.X), float32(pt.Y))
		}
		s.rast.ClosePath()
	}
	s.rasterize()
	return true
}

func (s *Surface) rasterize() {
	s.rast.DrawOp = draw.Src
	s.rast.Draw(s.mask, s.mask.Rect, image.Opaque, image.Point{})
	if s.clip != nil {
		for i, a := range s.clip.Pix {
			s.mask.Pix[i] = uint8(uint16(s.mask.Pix[i]) * uint16(a) / 0xff)
		}
	}
}

func (s *Surface) paint(c color.Color) {
	draw.DrawMask(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, s.mask, image.Point{}, draw.Over)
	s.version++
}

// faceCache keeps one face per pixel size.
type faceCache map[int]font.Face

func (fc *faceCache) get(size float64) font.Face {
	px := max(int(math.Round(size)), 1)
	if *fc == nil {
		*fc = faceCache{}
	}
	if f, ok := (*fc)[px]; ok {
		return f
	}
	f := newFace(px)
	(*fc)[px] = f
	return f
}

var fallbackFace font.Face = basicfont.Face7x13
