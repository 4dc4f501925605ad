package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/adnsv/go-utils/fs"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is a canonical icon that can be rendered at any size. Render must
// be safe for concurrent use.
type Source interface {
	Render(w, h int) (image.Image, error)
}

// Open loads the source icon at fn. SVG files are rendered directly at the
// requested size, everything else is decoded once and resampled.
func Open(fn string, f Filter) (Source, error) {
	if !fs.FileExists(fn) {
		return nil, fmt.Errorf("%s: %w", fn, os.ErrNotExist)
	}
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(fn)) == ".svg" {
		log.Debug().Msgf("loading vector source %s", fn)
		return NewVector(buf)
	}
	log.Debug().Msgf("loading bitmap source %s", fn)
	img, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		log.Warn().Msgf("source icon %s is not square (%dx%d), output will be stretched", fn, b.Dx(), b.Dy())
	}
	log.Debug().Msgf("decoded %s image %dx%d", format, b.Dx(), b.Dy())
	return &Bitmap{Image: img, Filter: f}, nil
}

type Bitmap struct {
	Image  image.Image
	Filter Filter
}

func (s *Bitmap) Render(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", w, h)
	}
	return Resize(s.Image, w, h, s.Filter), nil
}

// Vector keeps the raw SVG; the parsed icon carries its render target, so
// every Render parses a private copy.
type Vector struct {
	buf []byte
}

func NewVector(buf []byte) (*Vector, error) {
	if _, err := oksvg.ReadIconStream(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	return &Vector{buf: buf}, nil
}

func (s *Vector) Render(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(s.buf))
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
