// Package bitmap provides the grayscale pixel buffers the region extractor
// works on, plus the binarization steps that prepare a cell for tracing.
package bitmap

import (
	"image"
	"image/color"
)

// Bitmap represents a rectangular grayscale pixel buffer,
// one byte per pixel, 0 = black, 255 = white.
type Bitmap struct {
	width  int
	height int
	pix    []uint8
}

// New creates a bitmap of the given dimensions, filled with white.
func New(width, height int) *Bitmap {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = 255
	}
	return &Bitmap{width: width, height: height, pix: pix}
}

// FromImage converts an image to a grayscale bitmap using the standard
// luminance weights.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := &Bitmap{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]uint8, bounds.Dx()*bounds.Dy()),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			b.pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return b
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.height
}

// At returns the gray value of a single pixel.
// Out-of-bounds coordinates read as white.
func (b *Bitmap) At(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 255
	}
	return b.pix[y*b.width+x]
}

// Set sets the gray value of a single pixel. Out-of-bounds writes are
// ignored.
func (b *Bitmap) Set(x, y int, v uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = v
}

// Crop returns a copy of the sub-region. The rectangle is clipped to the
// bitmap bounds.
func (b *Bitmap) Crop(r image.Rectangle) *Bitmap {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	out := New(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := (r.Min.Y+y)*b.width + r.Min.X
		dst := y * r.Dx()
		copy(out.pix[dst:dst+r.Dx()], b.pix[src:src+r.Dx()])
	}
	return out
}

// EnhanceContrast returns a copy with contrast stretched around the mean
// luminance by the given factor. factor 1.0 is a no-op; higher values push
// pixels toward black or white.
func (b *Bitmap) EnhanceContrast(factor float64) *Bitmap {
	if len(b.pix) == 0 || factor == 1.0 {
		return b.clone()
	}

	var sum int64
	for _, v := range b.pix {
		sum += int64(v)
	}
	mean := float64(sum) / float64(len(b.pix))

	out := &Bitmap{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	for i, v := range b.pix {
		adjusted := mean + (float64(v)-mean)*factor
		switch {
		case adjusted < 0:
			out.pix[i] = 0
		case adjusted > 255:
			out.pix[i] = 255
		default:
			out.pix[i] = uint8(adjusted + 0.5)
		}
	}
	return out
}

// Threshold returns a binary copy: pixels strictly darker than t become ink
// (0), everything else background (255). The threshold is a single global
// scalar; per-cell adaptive thresholding is deliberately not attempted.
func (b *Bitmap) Threshold(t uint8) *Bitmap {
	out := &Bitmap{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	for i, v := range b.pix {
		if v < t {
			out.pix[i] = 0
		} else {
			out.pix[i] = 255
		}
	}
	return out
}

// InkCount returns the number of ink (black) pixels in a binarized bitmap.
func (b *Bitmap) InkCount() int {
	n := 0
	for _, v := range b.pix {
		if v == 0 {
			n++
		}
	}
	return n
}

// ToImage converts the bitmap to an image.Gray.
func (b *Bitmap) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

func (b *Bitmap) clone() *Bitmap {
	out := &Bitmap{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	copy(out.pix, b.pix)
	return out
}
