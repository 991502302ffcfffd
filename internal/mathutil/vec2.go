package mathutil

import (
	"fmt"
	"math"
)

// Vec2 is a 2D point or vector (x, y).
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Cross returns the z component of the 3D cross product.
func (a Vec2) Cross(b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func (v Vec2) Len() float64 {
	return math.Hypot(v[0], v[1])
}

// Homogeneous returns (x, y, 1).
func (v Vec2) Homogeneous() Vec3 {
	return Vec3{v[0], v[1], 1}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v[0], v[1])
}
