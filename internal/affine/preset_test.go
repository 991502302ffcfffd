package affine

import (
	"testing"

	"affine-warp/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTriangle(t *testing.T, want, got Triangle) {
	t.Helper()
	assert.InDeltaSlice(t, want.Flat(), got.Flat(), 1e-9, "want %v got %v", want, got)
}

func TestPresetApply(t *testing.T) {
	src := Triangle{{0, 0}, {3, 0}, {0, 3}} // centroid (1, 1)

	tests := []struct {
		name   string
		preset Preset
		want   Triangle
	}{
		{"zero", Preset{}, src},
		{"translate", Preset{Translate: mathutil.Vec2{2, -1}}, Triangle{{2, -1}, {5, -1}, {2, 2}}},
		{"scale", Preset{Scale: 2}, Triangle{{-1, -1}, {5, -1}, {-1, 5}}},
		{"rotate180", Preset{RotateDeg: 180}, Triangle{{2, 2}, {-1, 2}, {2, -1}}},
		{"rotate90", Preset{RotateDeg: 90}, Triangle{{2, 0}, {2, 3}, {-1, 0}}},
		{"scale then translate", Preset{Scale: 2, Translate: mathutil.Vec2{1, 1}}, Triangle{{0, 0}, {6, 0}, {0, 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.preset.Apply(src)
			assertTriangle(t, tt.want, got)
			// The centroid moves by exactly the translation.
			wantC, gotC := src.Centroid().Add(tt.preset.Translate), got.Centroid()
			assert.InDeltaSlice(t, wantC[:], gotC[:], 1e-9)
		})
	}
}

func TestPresetRoundTripsThroughSolver(t *testing.T) {
	src := Triangle{{10, 20}, {40, 25}, {15, 60}}
	p := Preset{RotateDeg: 30, Scale: 0.5, Translate: mathutil.Vec2{5, 7}}
	m := FromTriangles(src, p.Apply(src))
	want := p.Matrix(src)
	assert.InDeltaSlice(t, want[:], m[:], 1e-9)
}

func TestPresetIsZero(t *testing.T) {
	assert.True(t, Preset{}.IsZero())
	assert.True(t, Preset{Scale: 1}.IsZero())
	assert.False(t, Preset{Scale: 2}.IsZero())
	assert.False(t, Preset{RotateDeg: 1}.IsZero())
	assert.False(t, Preset{Translate: mathutil.Vec2{0, 1}}.IsZero())
}

func TestParseOffset(t *testing.T) {
	v, err := ParseOffset(" 3.5, -2")
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec2{3.5, -2}, v)

	for _, s := range []string{"", "1", "1,2,3", "a,1"} {
		_, err := ParseOffset(s)
		require.Error(t, err, s)
	}
}

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints("0,0, 4,0, 4,4, 0,4")
	require.NoError(t, err)
	assert.Equal(t, []mathutil.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, pts)

	_, err = ParsePoints("1,2,3")
	require.Error(t, err)
}
