package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    []float64
		want float64
	}{
		{"full", []float64{1, 2, 1, 3, 4, 1, -1, 2, -1}, 8},
		{"identity", []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 1},
		{"six element", []float64{1, 0, 0, 0, 1, 0}, 1},
		{"six element equals completed", []float64{2, 5, -1, 3, 0, 4}, Mat3From6([6]float64{2, 5, -1, 3, 0, 4}).Det()},
		{"collinear columns", []float64{0, 1, 2, 0, 1, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Determinant(tt.m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeterminantInvalidSize(t *testing.T) {
	for _, n := range []int{0, 4, 5, 7, 8, 10, 16} {
		_, err := Determinant(make([]float64, n))
		require.ErrorIs(t, err, ErrInvalidMatrixSize, "len %d", n)
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    []float64
		want Mat3
	}{
		{
			"full",
			[]float64{1, 2, 1, 3, 4, 1, -1, 2, -1},
			Mat3{-0.75, 0.5, -0.25, 0.25, 0, 0.25, 1.25, -0.5, -0.25},
		},
		{
			"bottom row of ones",
			[]float64{1, 0, 0, 0, 1, 0, 1, 1, 1},
			Mat3{1, 0, 0, 0, 1, 0, -1, -1, 1},
		},
		{
			"six element",
			[]float64{1, 0, 0, 0, 1, 0},
			Mat3{1, 0, 0, 0, 1, 0, -1, -1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Inverse(tt.m)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want[:], inv[:], tol)

			twice, err := Inverse(inv[:])
			require.NoError(t, err)
			orig := tt.m
			if len(orig) == 6 {
				orig = append(append([]float64{}, orig...), 1, 1, 1)
			}
			assert.InDeltaSlice(t, orig, twice[:], tol)
		})
	}
}

func TestInverseRoundTrip(t *testing.T) {
	mats := [][]float64{
		{2, -1, 0, -1, 2, -1, 0, -1, 2},
		{0.5, 3, 7, -2, 1, 0.25, 4, 4, -9},
		{10, 0, 3, 0, 10, 4, 0, 0, 1},
		{3, 1, 4, 1, 5, 9},
		{-2, 7, 0.5, 6, -3, 12},
	}
	for _, m := range mats {
		inv, err := Inverse(m)
		require.NoError(t, err)
		twice, err := Inverse(inv[:])
		require.NoError(t, err)

		want := m
		if len(m) == 6 {
			want = append(append([]float64{}, m...), 1, 1, 1)
		}
		assert.InDeltaSlice(t, want, twice[:], tol, "%v", m)

		prod := Mat3Mul(Mat3(want), inv)
		id := Mat3Identity()
		assert.InDeltaSlice(t, id[:], prod[:], tol, "%v", m)
	}
}

func TestInverseDoesNotMutateInput(t *testing.T) {
	m := []float64{3, 1, 4, 1, 5, 9}
	cp := append([]float64{}, m...)
	_, err := Inverse(m)
	require.NoError(t, err)
	assert.Equal(t, cp, m)
}

func TestInverseSingular(t *testing.T) {
	// Collinear points (0,0), (1,1), (2,2).
	inv, err := Inverse([]float64{0, 1, 2, 0, 1, 2})
	require.NoError(t, err)
	assert.False(t, inv.IsFinite())

	inv = Mat3{}.Inverse()
	assert.True(t, math.IsNaN(inv[0]))
}

func TestInverseInvalidSize(t *testing.T) {
	_, err := Inverse([]float64{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidMatrixSize)
	assert.Contains(t, err.Error(), "3")
}

func TestMulPoint(t *testing.T) {
	m := Mat3Mul(Translate2(5, -2), Scale2(2, 3))
	assert.Equal(t, Vec2{7, 1}, m.MulPoint(Vec2{1, 1}))
	assert.Equal(t, Vec3{7, 1, 1}, m.MulVec3(Vec2{1, 1}.Homogeneous()))

	r := About(Rot2(Deg2Rad(90)), Vec2{1, 1})
	p := r.MulPoint(Vec2{2, 1})
	assert.InDelta(t, 1.0, p[0], 1e-12)
	assert.InDelta(t, 2.0, p[1], 1e-12)
}

func TestTranspose(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}, m.Transpose())
	assert.Equal(t, m, m.Transpose().Transpose())
}
