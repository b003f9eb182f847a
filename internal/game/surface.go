package game

import (
	"bytes"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

// whiteSubImage is the one-pixel source for solid triangles.
var whiteSubImage = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

var goRegular = sync.OnceValues(func() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
})

// Surface is a fluid.Surface on ebiten images. Clipped drawing goes
// through an offscreen layer that is masked before it is composited.
type Surface struct {
	img   *ebiten.Image
	layer *ebiten.Image
	mask  *ebiten.Image
	tmp   *ebiten.Image

	clipped bool

	vs []ebiten.Vertex
	is []uint16
}

var _ fluid.Surface = (*Surface)(nil)

func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Image is the surface content, nil when the surface has a zero dimension.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(w, h int) {
	if cw, ch := s.Size(); s.img != nil && cw == w && ch == h {
		return
	}
	s.Dispose()
	if w <= 0 || h <= 0 {
		return
	}
	s.img = ebiten.NewImage(w, h)
	s.layer = ebiten.NewImage(w, h)
	s.mask = ebiten.NewImage(w, h)
	s.tmp = ebiten.NewImage(w, h)
}

// Dispose releases the GPU images.
func (s *Surface) Dispose() {
	for _, img := range []*ebiten.Image{s.img, s.layer, s.mask, s.tmp} {
		if img != nil {
			img.Deallocate()
		}
	}
	s.img, s.layer, s.mask, s.tmp = nil, nil, nil, nil
	s.clipped = false
}

func (s *Surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *Surface) Fill(p *fluid.Path, c color.Color) {
	if s.img == nil || p.Empty() {
		return
	}
	s.draw(func(dst *ebiten.Image) { s.fill(dst, p, c) })
}

func (s *Surface) Stroke(p *fluid.Path, width float64, c color.Color) {
	if s.img == nil || width <= 0 {
		return
	}
	s.draw(func(dst *ebiten.Image) { s.stroke(dst, p, width, c) })
}

// Clip intersects the mask with p.
func (s *Surface) Clip(p *fluid.Path) {
	if s.img == nil {
		return
	}
	if !s.clipped {
		s.mask.Clear()
		s.fill(s.mask, p, color.White)
		s.clipped = true
		return
	}
	s.tmp.Clear()
	s.fill(s.tmp, p, color.White)
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationIn
	s.mask.DrawImage(s.tmp, op)
}

func (s *Surface) ResetClip() {
	s.clipped = false
}

func (s *Surface) FillText(str string, x, y float64, f fluid.Font, c color.Color) {
	if s.img == nil || str == "" {
		return
	}
	src, err := goRegular()
	if err != nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.img, str, &text.GoTextFace{Source: src, Size: f.Size}, op)
}

// draw runs fn against the surface, through the masked layer when a clip
// is active.
func (s *Surface) draw(fn func(dst *ebiten.Image)) {
	if !s.clipped {
		fn(s.img)
		return
	}
	s.layer.Clear()
	fn(s.layer)
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationIn
	s.layer.DrawImage(s.mask, op)
	s.img.DrawImage(s.layer, nil)
}

func (s *Surface) fill(dst *ebiten.Image, p *fluid.Path, c color.Color) {
	s.vs, s.is = buildPath(p, false).AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.triangles(dst, c, ebiten.FillRuleNonZero)
}

func (s *Surface) stroke(dst *ebiten.Image, p *fluid.Path, width float64, c color.Color) {
	s.vs, s.is = buildPath(p, true).AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	s.triangles(dst, c, ebiten.FillRuleFillAll)
}

func (s *Surface) triangles(dst *ebiten.Image, c color.Color, rule ebiten.FillRule) {
	if len(s.is) == 0 {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(nc.R) / 0xff
		s.vs[i].ColorG = float32(nc.G) / 0xff
		s.vs[i].ColorB = float32(nc.B) / 0xff
		s.vs[i].ColorA = float32(nc.A) / 0xff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = rule
	op.AntiAlias = true
	dst.DrawTriangles(s.vs, s.is, whiteSubImage(), op)
}

func buildPath(p *fluid.Path, closed bool) *vector.Path {
	var vp vector.Path
	for _, sp := range p.Subpaths() {
		if len(sp) == 0 {
			continue
		}
		vp.MoveTo(float32(sp[0].X), float32(sp[0].Y))
		for _, pt := range sp[1:] {
			vp.LineTo(float32(pt.X), float32(pt.Y))
		}
		if closed {
			vp.Close()
		}
	}
	return &vp
}
