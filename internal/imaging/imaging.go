// Package imaging re-encodes uploaded assessment photos as bounded-size
// WebP before they reach blob storage.
package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
)

const (
	DefaultMaxSide = 1600
	DefaultQuality = 80

	ContentType = "image/webp"
	Extension   = ".webp"
)

type Options struct {
	MaxSide int
	Quality float32
}

func DefaultOptions() Options {
	return Options{MaxSide: DefaultMaxSide, Quality: DefaultQuality}
}

// Normalize decodes any supported image, shrinks it so that its longest
// side is at most opt.MaxSide and encodes it as lossy WebP. Input that does
// not decode as an image is a validation error.
func Normalize(data []byte, opt Options) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.New(httperr.CodeValidation, "file is not a supported image")
	}

	img := fit(src, opt.MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
