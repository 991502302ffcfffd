package mathutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMatrixSize is returned when a matrix slice has a length the
// operation cannot interpret.
var ErrInvalidMatrixSize = errors.New("invalid matrix size")

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type for zero heap allocation.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Mat3From6 completes a 6-element matrix with the implicit bottom row [1, 1, 1].
func Mat3From6(m [6]float64) Mat3 {
	return Mat3{m[0], m[1], m[2], m[3], m[4], m[5], 1, 1, 1}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// MulPoint maps a 2D point through the top two rows, treating it as (x, y, 1).
func (m Mat3) MulPoint(p Vec2) Vec2 {
	return Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// Det expands along the first row:
//
//	| a b c |
//	| d e f |  =>  a(ei − fh) − b(di − fg) + c(dh − eg)
//	| g h i |
func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns adj(M)/det(M). A singular matrix is not special-cased:
// its entries come out as ±Inf or NaN.
func (m Mat3) Inverse() Mat3 {
	d := m.Det()
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) / d,
		(m[2]*m[7] - m[1]*m[8]) / d,
		(m[1]*m[5] - m[2]*m[4]) / d,
		(m[5]*m[6] - m[3]*m[8]) / d,
		(m[0]*m[8] - m[2]*m[6]) / d,
		(m[2]*m[3] - m[0]*m[5]) / d,
		(m[3]*m[7] - m[4]*m[6]) / d,
		(m[1]*m[6] - m[0]*m[7]) / d,
		(m[0]*m[4] - m[1]*m[3]) / d,
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// IsFinite reports whether no entry is NaN or ±Inf.
func (m Mat3) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Determinant accepts a 6- or 9-element row-major matrix. The 6-element form
// stands for a matrix whose bottom row is [1, 1, 1].
func Determinant(m []float64) (float64, error) {
	switch len(m) {
	case 6:
		return m[0]*(m[4]-m[5]) -
			m[1]*(m[3]-m[5]) +
			m[2]*(m[3]-m[4]), nil
	case 9:
		return Mat3(m).Det(), nil
	}
	return 0, fmt.Errorf("mathutil: cannot calculate determinant: %w: %d", ErrInvalidMatrixSize, len(m))
}

// Inverse accepts the same shapes as Determinant and always returns the full
// 3×3 inverse.
func Inverse(m []float64) (Mat3, error) {
	switch len(m) {
	case 6:
		// Closed form of the adjugate with g = h = i = 1:
		//
		//	| e-f  c-b  bf-ce |
		//	| f-d  a-c  cd-af |
		//	| d-e  b-a  ae-bd |
		d, _ := Determinant(m)
		return Mat3{
			(m[4] - m[5]) / d,
			(m[2] - m[1]) / d,
			(m[1]*m[5] - m[2]*m[4]) / d,
			(m[5] - m[3]) / d,
			(m[0] - m[2]) / d,
			(m[2]*m[3] - m[0]*m[5]) / d,
			(m[3] - m[4]) / d,
			(m[1] - m[0]) / d,
			(m[0]*m[4] - m[1]*m[3]) / d,
		}, nil
	case 9:
		return Mat3(m).Inverse(), nil
	}
	return Mat3{}, fmt.Errorf("mathutil: cannot calculate inverse: %w: %d", ErrInvalidMatrixSize, len(m))
}
