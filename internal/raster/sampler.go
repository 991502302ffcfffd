package raster

import "math"

// sampleNearest copies the pixel whose centre is closest to (x, y). Points
// that round off the canvas leave out untouched.
func sampleNearest(src *PixelBuffer, x, y float64, out []uint8) {
	fx := math.Floor(x + 0.5)
	fy := math.Floor(y + 0.5)
	if !(fx >= 0 && fx < float64(src.Width) && fy >= 0 && fy < float64(src.Height)) {
		return
	}
	i := src.Offset(int(fx), int(fy))
	copy(out, src.Pix[i:i+4])
}

// sampleBilinear filters the four pixels around (x, y) with premultiplied
// alpha so transparent neighbours do not darken edges. Points outside
// [0, W-1] × [0, H-1] leave out untouched.
func sampleBilinear(src *PixelBuffer, x, y float64, out []uint8) {
	w, h := src.Width, src.Height
	if !(x >= 0 && x <= float64(w-1) && y >= 0 && y <= float64(h-1)) {
		return
	}

	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}
	dx := x - float64(x0)
	dy := y - float64(y0)

	pix := src.Pix

	// Four texels
	i00 := src.Offset(x0, y0)
	i10 := src.Offset(x1, y0)
	i01 := src.Offset(x0, y1)
	i11 := src.Offset(x1, y1)

	w00 := (1 - dx) * (1 - dy) * float64(pix[i00+3])
	w10 := dx * (1 - dy) * float64(pix[i10+3])
	w01 := (1 - dx) * dy * float64(pix[i01+3])
	w11 := dx * dy * float64(pix[i11+3])

	fa := w00 + w10 + w01 + w11
	if fa <= 0 {
		return
	}
	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11

	out[0] = clamp255(fr / fa)
	out[1] = clamp255(fg / fa)
	out[2] = clamp255(fb / fa)
	out[3] = clamp255(fa)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
