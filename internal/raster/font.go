package raster

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// newFace returns Go Regular at px pixels, or the fixed 7x13 face when the
// font cannot be loaded.
func newFace(px int) font.Face {
	f, err := goRegular()
	if err != nil {
		return fallbackFace
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fallbackFace
	}
	return face
}
