package affine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"affine-warp/internal/mathutil"
)

// ErrPointCount is returned when a point list does not hold exactly the
// number of points a transform needs.
var ErrPointCount = errors.New("wrong number of points")

// Triangle holds three correspondence points. Order matters: src[i] maps to dst[i].
type Triangle [3]mathutil.Vec2

// TriangleFromFlat reads the flat x1, y1, x2, y2, x3, y3 form.
func TriangleFromFlat(v []float64) (Triangle, error) {
	if len(v) != 6 {
		return Triangle{}, fmt.Errorf("affine: %w: want 6 coordinates, got %d", ErrPointCount, len(v))
	}
	return Triangle{{v[0], v[1]}, {v[2], v[3]}, {v[4], v[5]}}, nil
}

// TriangleFromPoints copies the first three points of pts. The slice must hold
// exactly three points.
func TriangleFromPoints(pts []mathutil.Vec2) (Triangle, error) {
	if len(pts) != 3 {
		return Triangle{}, fmt.Errorf("affine: %w: want 3 points, got %d", ErrPointCount, len(pts))
	}
	return Triangle{pts[0], pts[1], pts[2]}, nil
}

// ParsePoints parses "x1,y1,x2,y2,...". Whitespace around numbers is ignored.
func ParsePoints(s string) ([]mathutil.Vec2, error) {
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("affine: parse %q: odd number of coordinates", s)
	}
	pts := make([]mathutil.Vec2, len(fields)/2)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("affine: parse %q: %w", s, err)
		}
		pts[i/2][i%2] = x
	}
	return pts, nil
}

// ParseTriangle parses "x1,y1,x2,y2,x3,y3".
func ParseTriangle(s string) (Triangle, error) {
	pts, err := ParsePoints(s)
	if err != nil {
		return Triangle{}, err
	}
	return TriangleFromPoints(pts)
}

// Flat returns x1, y1, x2, y2, x3, y3.
func (t Triangle) Flat() []float64 {
	return []float64{t[0][0], t[0][1], t[1][0], t[1][1], t[2][0], t[2][1]}
}

// Points returns the vertices as a slice.
func (t Triangle) Points() []mathutil.Vec2 {
	return []mathutil.Vec2{t[0], t[1], t[2]}
}

// matrix6 packs x coordinates into row 0 and y coordinates into row 1; the
// implicit third row is [1, 1, 1].
func (t Triangle) matrix6() []float64 {
	return []float64{
		t[0][0], t[1][0], t[2][0],
		t[0][1], t[1][1], t[2][1],
	}
}

// Matrix returns the homogeneous vertex matrix the solver inverts. Its
// determinant is twice the signed area.
func (t Triangle) Matrix() mathutil.Mat3 {
	return mathutil.Mat3From6([6]float64(t.matrix6()))
}

// Area returns the signed area; positive for counter-clockwise vertices in a
// y-up frame.
func (t Triangle) Area() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])) / 2
}

// Degenerate reports whether the vertices are collinear within eps.
func (t Triangle) Degenerate(eps float64) bool {
	return math.Abs(t.Area()) <= eps
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() mathutil.Vec2 {
	return t[0].Add(t[1]).Add(t[2]).Scale(1.0 / 3)
}

// Transform maps every vertex through m.
func (t Triangle) Transform(m mathutil.Mat3) Triangle {
	return Triangle{m.MulPoint(t[0]), m.MulPoint(t[1]), m.MulPoint(t[2])}
}

func (t Triangle) String() string {
	return fmt.Sprintf("[%v %v %v]", t[0], t[1], t[2])
}
