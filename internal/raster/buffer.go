package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Colour-space tags carried through a warp unchanged.
const (
	ColorSpaceSRGB      = "srgb"
	ColorSpaceDisplayP3 = "display-p3"
)

// PixelBuffer holds an image as a flat slice for cache locality.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, not premultiplied, len = W*H*4
	// ColorSpace is an opaque tag; empty means untagged.
	ColorSpace string
}

// NewPixelBuffer allocates a zeroed (fully transparent) buffer.
func NewPixelBuffer(w, h int, colorSpace string) *PixelBuffer {
	return &PixelBuffer{
		Width:      w,
		Height:     h,
		Pix:        make([]uint8, w*h*4),
		ColorSpace: colorSpace,
	}
}

// Validate checks that the dimensions and the pixel slice agree.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("raster: nil pixel buffer")
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("raster: negative size %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("raster: pixel data has %d bytes, want %d for %dx%d", len(b.Pix), b.Width*b.Height*4, b.Width, b.Height)
	}
	return nil
}

// Offset returns the index of the red byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// In reports whether (x, y) lies on the canvas.
func (b *PixelBuffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the pixel at (x, y), or transparent black off the canvas.
func (b *PixelBuffer) At(x, y int) color.NRGBA {
	if !b.In(x, y) {
		return color.NRGBA{}
	}
	i := b.Offset(x, y)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y); writes off the canvas are ignored.
func (b *PixelBuffer) Set(x, y int, c color.NRGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.Offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	return &c
}

// ToNRGBA copies the buffer into an image anchored at (0, 0).
func (b *PixelBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// FromImage converts any image to a buffer anchored at (0, 0).
func FromImage(src image.Image, colorSpace string) *PixelBuffer {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := NewPixelBuffer(w, h, colorSpace)

	n, ok := src.(*image.NRGBA)
	if !ok {
		n = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(n, n.Bounds(), src, bounds.Min, draw.Src)
		bounds = n.Bounds()
	}
	for y := 0; y < h; y++ {
		off := n.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf.Pix[y*w*4:(y+1)*w*4], n.Pix[off:off+w*4])
	}
	return buf
}
