// Package imaging normalises uploaded product images to upright JPEGs of a
// bounded width.
package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	defaultQuality = 85
	// MaxPixels bounds the decoded size; a small file can declare huge
	// dimensions.
	MaxPixels = 40_000_000
)

var (
	ErrUnsupported = errors.New("unsupported image format (jpeg/png/webp)")
	ErrTooLarge    = errors.New("image dimensions too large")
)

// ToJPEG decodes a jpeg, png or webp image, applies its EXIF orientation,
// scales it down to maxWidth when wider (0 keeps the size) and re-encodes it
// as JPEG.
func ToJPEG(input []byte, maxWidth, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrUnsupported
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}

	img, err := decode(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	img = applyOrientation(img, orientation(input))
	if maxWidth > 0 {
		img = scaleToWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type decoder struct {
	config func(io.Reader) (image.Config, error)
	decode func(io.Reader) (image.Image, error)
}

var decoders = []decoder{
	{jpeg.DecodeConfig, jpeg.Decode},
	{png.DecodeConfig, png.Decode},
	{webp.DecodeConfig, webp.Decode},
}

// decode reads the header first and only decodes images within MaxPixels.
func decode(r *bytes.Reader) (image.Image, error) {
	for _, d := range decoders {
		_, _ = r.Seek(0, io.SeekStart)
		cfg, err := d.config(r)
		if err != nil {
			continue
		}
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return nil, ErrUnsupported
		}
		if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
			return nil, ErrTooLarge
		}

		_, _ = r.Seek(0, io.SeekStart)
		img, err := d.decode(r)
		if err != nil {
			return nil, ErrUnsupported
		}
		return img, nil
	}
	return nil, ErrUnsupported
}

// orientation returns 1 when the image carries no usable EXIF tag.
func orientation(input []byte) int {
	x, err := exif.Decode(bytes.NewReader(input))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// EXIF orientation values:
// 1 normal, 2 flip horizontal, 3 rotate 180, 4 flip vertical,
// 5 transpose, 6 rotate 90 CW, 7 transverse, 8 rotate 90 CCW
func applyOrientation(src image.Image, ori int) image.Image {
	switch ori {
	case 2:
		return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, y })
	case 3:
		return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4:
		return remap(src, false, func(x, y, w, h int) (int, int) { return x, h - 1 - y })
	case 5:
		return remap(src, true, func(x, y, w, h int) (int, int) { return y, x })
	case 6:
		return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, x })
	case 7:
		return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8:
		return remap(src, true, func(x, y, w, h int) (int, int) { return y, w - 1 - x })
	default:
		return src
	}
}

// remap copies every source pixel to the position given by to. swap
// exchanges the output width and height for the quarter turns.
func remap(src image.Image, swap bool, to func(x, y, w, h int) (int, int)) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	rect := image.Rect(0, 0, w, h)
	if swap {
		rect = image.Rect(0, 0, h, w)
	}

	dst := image.NewRGBA(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := to(x, y, w, h)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func scaleToWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW || h <= 0 {
		return src
	}

	newH := int(math.Round(float64(h) * float64(maxW) / float64(w)))
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
