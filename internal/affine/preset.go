package affine

import (
	"fmt"

	"affine-warp/internal/mathutil"
)

// Preset describes a destination triangle relative to a source triangle:
// scale and rotate about the source centroid, then translate.
type Preset struct {
	RotateDeg float64
	Scale     float64
	Translate mathutil.Vec2
}

// IsZero reports whether p leaves every triangle where it is.
func (p Preset) IsZero() bool {
	return p.RotateDeg == 0 && (p.Scale == 0 || p.Scale == 1) && p.Translate == (mathutil.Vec2{})
}

// Matrix returns the homogeneous matrix p applies to src. A zero Scale
// means 1.
func (p Preset) Matrix(src Triangle) mathutil.Mat3 {
	s := p.Scale
	if s == 0 {
		s = 1
	}
	m := mathutil.Mat3Mul(mathutil.Rot2(mathutil.Deg2Rad(p.RotateDeg)), mathutil.Scale2(s, s))
	m = mathutil.About(m, src.Centroid())
	return mathutil.Mat3Mul(mathutil.Translate2(p.Translate[0], p.Translate[1]), m)
}

// Apply returns the destination triangle for src.
func (p Preset) Apply(src Triangle) Triangle {
	return src.Transform(p.Matrix(src))
}

// ParseOffset parses "dx,dy".
func ParseOffset(s string) (mathutil.Vec2, error) {
	pts, err := ParsePoints(s)
	if err != nil {
		return mathutil.Vec2{}, err
	}
	if len(pts) != 1 {
		return mathutil.Vec2{}, fmt.Errorf("affine: offset %q: want dx,dy", s)
	}
	return pts[0], nil
}
