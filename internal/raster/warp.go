package raster

import (
	"context"
	"fmt"
	"math"
	"strings"

	"affine-warp/internal/mathutil"

	"golang.org/x/sync/errgroup"
)

// Mode selects how source pixels reach the destination.
type Mode int

const (
	// ModeForward pushes every source pixel to floor(M·p). Expanding maps
	// leave holes; contracting maps overwrite, last writer wins.
	ModeForward Mode = iota
	// ModeNearest pulls every destination pixel from round(M⁻¹·p).
	ModeNearest
	// ModeBilinear pulls every destination pixel by bilinear filtering at M⁻¹·p.
	ModeBilinear
)

var modeNames = [...]string{"forward", "nearest", "bilinear"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String. The empty string means ModeForward.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeForward, nil
	}
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("raster: unknown warp mode %q", s)
}

// Options tunes Warp.
type Options struct {
	Mode Mode
	// Workers > 1 splits the pixel loop into bands processed concurrently.
	// The output is identical to the single-threaded result.
	Workers int
}

// AffineWarp forward-maps src through the top two rows of m into a new
// buffer of the same size and colour space.
func AffineWarp(src *PixelBuffer, m []float64) (*PixelBuffer, error) {
	return Warp(context.Background(), src, m, Options{})
}

// Warp resamples src through the affine matrix m (at least 6 entries,
// row-major; a third row, if present, is ignored).
func Warp(ctx context.Context, src *PixelBuffer, m []float64, opts Options) (*PixelBuffer, error) {
	if len(m) < 6 {
		return nil, fmt.Errorf("raster: matrix must have 6 elements: %w: %d", mathutil.ErrInvalidMatrixSize, len(m))
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	aff := mathutil.Mat3{m[0], m[1], m[2], m[3], m[4], m[5], 0, 0, 1}
	dst := NewPixelBuffer(src.Width, src.Height, src.ColorSpace)

	var err error
	switch opts.Mode {
	case ModeForward:
		if opts.Workers > 1 {
			err = forwardParallel(ctx, src, dst, aff, opts.Workers)
		} else {
			err = forward(ctx, src, dst, aff)
		}
	case ModeNearest, ModeBilinear:
		err = backward(ctx, src, dst, aff.Inverse(), opts)
	default:
		err = fmt.Errorf("raster: unknown warp mode %v", opts.Mode)
	}
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// cell returns the destination index for source pixel (i, j), or -1 when
// floor(M·(i, j, 1)) falls off the canvas. NaN and ±Inf fail every bound.
func cell(m *mathutil.Mat3, i, j, w, h int) int {
	x := math.Floor(m[0]*float64(i) + m[1]*float64(j) + m[2])
	y := math.Floor(m[3]*float64(i) + m[4]*float64(j) + m[5])
	if !(x >= 0 && x < float64(w) && y >= 0 && y < float64(h)) {
		return -1
	}
	return (int(y)*w + int(x)) * 4
}

func forward(ctx context.Context, src, dst *PixelBuffer, m mathutil.Mat3) error {
	w, h := src.Width, src.Height
	for i := 0; i < w; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := 0; j < h; j++ {
			d := cell(&m, i, j, w, h)
			if d < 0 {
				continue
			}
			s := (j*w + i) * 4
			copy(dst.Pix[d:d+4], src.Pix[s:s+4])
		}
	}
	return nil
}

// forwardParallel computes destination cells concurrently, then scatters
// them in the same column-major order as forward so collisions resolve
// identically.
func forwardParallel(ctx context.Context, src, dst *PixelBuffer, m mathutil.Mat3, workers int) error {
	w, h := src.Width, src.Height
	cells := make([]int, w*h)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, b := range bands(w, workers) {
		g.Go(func() error {
			for i := b[0]; i < b[1]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := cells[i*h : (i+1)*h]
				for j := range row {
					row[j] = cell(&m, i, j, w, h)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for k, d := range cells {
		if d < 0 {
			continue
		}
		i, j := k/h, k%h
		s := (j*w + i) * 4
		copy(dst.Pix[d:d+4], src.Pix[s:s+4])
	}
	return nil
}

// backward walks destination pixels and pulls from src through inv. Every
// destination pixel is written by exactly one band.
func backward(ctx context.Context, src, dst *PixelBuffer, inv mathutil.Mat3, opts Options) error {
	sample := sampleNearest
	if opts.Mode == ModeBilinear {
		sample = sampleBilinear
	}
	rows := func(ctx context.Context, y0, y1 int) error {
		for y := y0; y < y1; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := 0; x < dst.Width; x++ {
				p := inv.MulPoint(mathutil.Vec2{float64(x), float64(y)})
				d := dst.Offset(x, y)
				sample(src, p[0], p[1], dst.Pix[d:d+4])
			}
		}
		return nil
	}

	if opts.Workers <= 1 {
		return rows(ctx, 0, dst.Height)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, b := range bands(dst.Height, opts.Workers) {
		g.Go(func() error { return rows(gctx, b[0], b[1]) })
	}
	return g.Wait()
}

// bands splits [0, n) into at most 4*workers contiguous half-open ranges.
func bands(n, workers int) [][2]int {
	count := workers * 4
	if count > n {
		count = n
	}
	if count < 1 {
		return nil
	}
	out := make([][2]int, 0, count)
	step := (n + count - 1) / count
	for lo := 0; lo < n; lo += step {
		hi := lo + step
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}
