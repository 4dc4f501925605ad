package raster

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel used by Resize.
type Filter int

const (
	CatmullRom = Filter(iota) // default
	BiLinear
	ApproxBiLinear
	NearestNeighbor
)

func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "catmullrom", "catmull-rom", "bicubic":
		return CatmullRom, nil
	case "bilinear":
		return BiLinear, nil
	case "approx", "approxbilinear", "approx-bilinear":
		return ApproxBiLinear, nil
	case "nearest", "nearestneighbor", "nearest-neighbor":
		return NearestNeighbor, nil
	}
	return CatmullRom, fmt.Errorf("unknown resampling filter '%s'", s)
}

func (f Filter) String() string {
	switch f {
	case CatmullRom:
		return "catmullrom"
	case BiLinear:
		return "bilinear"
	case ApproxBiLinear:
		return "approx-bilinear"
	case NearestNeighbor:
		return "nearest"
	default:
		return "<invalid>"
	}
}

func (f Filter) interpolator() draw.Interpolator {
	switch f {
	case BiLinear:
		return draw.BiLinear
	case ApproxBiLinear:
		return draw.ApproxBiLinear
	case NearestNeighbor:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales src to exactly w×h pixels. The aspect ratio is not
// preserved: a non-square source is stretched to fill a square target.
func Resize(src image.Image, w, h int, f Filter) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	f.interpolator().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
