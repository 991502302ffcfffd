// Package transform dispatches point-correspondence warps by kind. Only the
// affine kind has a solver; the others are part of the surface so callers can
// name them and get a clear error.
package transform

import (
	"context"
	"errors"
	"fmt"

	"affine-warp/internal/affine"
	"affine-warp/internal/mathutil"
	"affine-warp/internal/raster"
)

// ErrUnsupportedTransform is returned for kinds without a solver.
var ErrUnsupportedTransform = errors.New("unsupported transform")

// Config describes one warp. Source[i] corresponds to Destination[i].
type Config struct {
	Image       *raster.PixelBuffer
	Source      []mathutil.Vec2
	Destination []mathutil.Vec2
	Kind        Kind
	Options     raster.Options
	// Strict rejects a collinear source triangle instead of producing a
	// non-finite matrix and a blank image.
	Strict bool
}

// Resolve returns the concrete kind for cfg, checking the point counts.
func Resolve(cfg Config) (Kind, error) {
	if len(cfg.Source) != len(cfg.Destination) {
		return 0, fmt.Errorf("transform: %w: %d source points, %d destination points",
			affine.ErrPointCount, len(cfg.Source), len(cfg.Destination))
	}
	k := cfg.Kind
	if k == Auto {
		k = kindFor(len(cfg.Source))
	}
	if n := k.Points(); n != 0 && len(cfg.Source) != n {
		return 0, fmt.Errorf("transform: %w: %v needs %d point pairs, got %d",
			affine.ErrPointCount, k, n, len(cfg.Source))
	}
	if k == PiecewiseAffine && len(cfg.Source) < 3 {
		return 0, fmt.Errorf("transform: %w: %v needs at least 3 point pairs, got %d",
			affine.ErrPointCount, k, len(cfg.Source))
	}
	return k, nil
}

// Matrix solves the transform without touching any image.
func Matrix(cfg Config) (mathutil.Mat3, error) {
	k, err := Resolve(cfg)
	if err != nil {
		return mathutil.Mat3{}, err
	}
	if k != Affine {
		return mathutil.Mat3{}, fmt.Errorf("transform: %w: %v", ErrUnsupportedTransform, k)
	}

	src, err := affine.TriangleFromPoints(cfg.Source)
	if err != nil {
		return mathutil.Mat3{}, err
	}
	dst, err := affine.TriangleFromPoints(cfg.Destination)
	if err != nil {
		return mathutil.Mat3{}, err
	}
	if cfg.Strict {
		return affine.FromTrianglesStrict(src, dst)
	}
	return affine.FromTriangles(src, dst), nil
}

// Warp solves the transform and resamples cfg.Image with it.
func Warp(ctx context.Context, cfg Config) (*raster.PixelBuffer, error) {
	if cfg.Image == nil {
		return nil, fmt.Errorf("transform: no image")
	}
	m, err := Matrix(cfg)
	if err != nil {
		return nil, err
	}
	return raster.Warp(ctx, cfg.Image, m[:], cfg.Options)
}

// AffineWarp is Warp for the common three-point case.
func AffineWarp(img *raster.PixelBuffer, src, dst affine.Triangle) (*raster.PixelBuffer, error) {
	return Warp(context.Background(), Config{
		Image:       img,
		Source:      src.Points(),
		Destination: dst.Points(),
		Kind:        Affine,
	})
}
