package postprocess

import (
	"image"

	"affine-warp/internal/raster"

	"golang.org/x/image/draw"
)

// Thumbnail scales buf to fit inside size×size, keeping the aspect ratio,
// with premultiplied-alpha-aware CatmullRom filtering. Buffers already small
// enough are returned as is.
func Thumbnail(buf *raster.PixelBuffer, size int) *raster.PixelBuffer {
	w, h := buf.Width, buf.Height
	if size <= 0 || (w <= size && h <= size) || w == 0 || h == 0 {
		return buf
	}
	tw, th := size, size
	if w > h {
		th = max(1, (h*size+w/2)/w)
	} else {
		tw = max(1, (w*size+h/2)/h)
	}

	// Premultiply alpha
	premul := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(buf.Pix); i += 4 {
		a := float64(buf.Pix[i+3]) / 255.0
		premul.Pix[i] = uint8(float64(buf.Pix[i])*a + 0.5)
		premul.Pix[i+1] = uint8(float64(buf.Pix[i+1])*a + 0.5)
		premul.Pix[i+2] = uint8(float64(buf.Pix[i+2])*a + 0.5)
		premul.Pix[i+3] = buf.Pix[i+3]
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	out := raster.NewPixelBuffer(tw, th, buf.ColorSpace)
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
