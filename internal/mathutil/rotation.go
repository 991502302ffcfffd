package mathutil

import "math"

// Rot2 returns a homogeneous 2D rotation about the origin. Angle in radians.
// With the image y axis pointing down a positive angle turns clockwise on screen.
func Rot2(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Scale2 returns a homogeneous 2D scale about the origin.
func Scale2(sx, sy float64) Mat3 {
	return Mat3Diag(sx, sy, 1)
}

// Translate2 returns a homogeneous 2D translation.
func Translate2(dx, dy float64) Mat3 {
	return Mat3{
		1, 0, dx,
		0, 1, dy,
		0, 0, 1,
	}
}

// About conjugates m so that it acts about pivot instead of the origin.
func About(m Mat3, pivot Vec2) Mat3 {
	return Mat3Mul(Mat3Mul(Translate2(pivot[0], pivot[1]), m), Translate2(-pivot[0], -pivot[1]))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
