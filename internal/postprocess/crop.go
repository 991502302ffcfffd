package postprocess

import (
	"image"

	"affine-warp/internal/raster"
)

// OpaqueBounds returns the smallest rectangle holding every pixel with
// non-zero alpha, or the empty rectangle for a blank buffer.
func OpaqueBounds(buf *raster.PixelBuffer) image.Rectangle {
	w, h := buf.Width, buf.Height
	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			if buf.Pix[row+x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// CropAlpha crops buf to OpaqueBounds. A blank buffer is returned unchanged.
func CropAlpha(buf *raster.PixelBuffer) *raster.PixelBuffer {
	r := OpaqueBounds(buf)
	if r.Empty() || (r.Dx() == buf.Width && r.Dy() == buf.Height) {
		return buf
	}
	cropW, cropH := r.Dx(), r.Dy()
	cropped := raster.NewPixelBuffer(cropW, cropH, buf.ColorSpace)
	for y := 0; y < cropH; y++ {
		srcOff := buf.Offset(r.Min.X, r.Min.Y+y)
		dstOff := y * cropW * 4
		copy(cropped.Pix[dstOff:dstOff+cropW*4], buf.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}

// Coverage returns the fraction of pixels with non-zero alpha.
func Coverage(buf *raster.PixelBuffer) float64 {
	n := buf.Width * buf.Height
	if n == 0 {
		return 0
	}
	count := 0
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] > 0 {
			count++
		}
	}
	return float64(count) / float64(n)
}
