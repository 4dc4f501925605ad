package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

const JPEGQuality = 95

// Encode writes img in the format implied by the file extension ext.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".ico":
		return ico.Encode(w, img)
	}
	return fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, ext)
}

// EncodeFor encodes img for the destination file fn.
func EncodeFor(fn string, img image.Image) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := Encode(&buf, img, filepath.Ext(fn)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
