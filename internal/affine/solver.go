package affine

import (
	"errors"
	"fmt"
	"math"

	"affine-warp/internal/mathutil"
)

// ErrDegenerateTriangle is returned by FromTrianglesStrict for a collinear
// source triangle.
var ErrDegenerateTriangle = errors.New("degenerate source triangle")

// Epsilon is the determinant magnitude below which FromTrianglesStrict treats
// the source triangle as collinear.
const Epsilon = 1e-9

// FromTriangles returns the affine matrix T with T·[src|1] = [dst|1], i.e.
//
//	t0 t1 t2     x1 x2 x3     x'1 x'2 x'3
//	t3 t4 t5  ·  y1 y2 y3  =  y'1 y'2 y'3
//	0  0  1      1  1  1      1   1   1
//
// so T = dst · src⁻¹. A collinear source triangle is not rejected: the result
// holds ±Inf/NaN entries and any warp with it drops every pixel.
func FromTriangles(src, dst Triangle) mathutil.Mat3 {
	inv, _ := mathutil.Inverse(src.matrix6())
	d := mathutil.Mat3From6([6]float64(dst.matrix6()))

	m := mathutil.Mat3Mul(d, inv)
	m[6], m[7], m[8] = 0, 0, 1
	return m
}

// FromTrianglesStrict is FromTriangles with a degeneracy check on the source.
func FromTrianglesStrict(src, dst Triangle) (mathutil.Mat3, error) {
	det, _ := mathutil.Determinant(src.matrix6())
	if math.Abs(det) < Epsilon || math.IsNaN(det) {
		return mathutil.Mat3{}, fmt.Errorf("affine: %w: %v (det %g)", ErrDegenerateTriangle, src, det)
	}
	m := FromTriangles(src, dst)
	if !m.IsFinite() {
		return mathutil.Mat3{}, fmt.Errorf("affine: %w: non-finite matrix for %v -> %v", ErrDegenerateTriangle, src, dst)
	}
	return m, nil
}

// ApplyToPoint maps (x, y) through the top two rows of m:
//
//	x' = m0·x + m1·y + m2
//	y' = m3·x + m4·y + m5
func ApplyToPoint(m []float64, x, y float64) (float64, float64, error) {
	if len(m) < 6 {
		return 0, 0, fmt.Errorf("affine: matrix must have 6 elements: %w: %d", mathutil.ErrInvalidMatrixSize, len(m))
	}
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5], nil
}

// Residuals returns, per vertex, the distance between m applied to src[i]
// and dst[i].
func Residuals(m mathutil.Mat3, src, dst Triangle) [3]float64 {
	var r [3]float64
	for i := range src {
		r[i] = m.MulPoint(src[i]).Sub(dst[i]).Len()
	}
	return r
}
