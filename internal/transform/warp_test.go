package transform

import (
	"context"
	"image/color"
	"testing"

	"affine-warp/internal/affine"
	"affine-warp/internal/mathutil"
	"affine-warp/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *raster.PixelBuffer {
	b := raster.NewPixelBuffer(w, h, raster.ColorSpaceSRGB)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			b.Set(x, y, color.NRGBA{R: v, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return b
}

var unit = []mathutil.Vec2{{0, 0}, {0, 1}, {1, 0}}

func TestResolve(t *testing.T) {
	three := unit
	four := []mathutil.Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	five := append(append([]mathutil.Vec2{}, four...), mathutil.Vec2{2, 2})

	tests := []struct {
		name     string
		kind     Kind
		src, dst []mathutil.Vec2
		want     Kind
		wantErr  bool
	}{
		{"auto three", Auto, three, three, Affine, false},
		{"auto four", Auto, four, four, Projective, false},
		{"auto five", Auto, five, five, PiecewiseAffine, false},
		{"affine four", Affine, four, four, 0, true},
		{"projective three", Projective, three, three, 0, true},
		{"mismatched", Affine, three, four, 0, true},
		{"piecewise two", PiecewiseAffine, three[:2], three[:2], 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(Config{Kind: tt.kind, Source: tt.src, Destination: tt.dst})
			if tt.wantErr {
				require.ErrorIs(t, err, affine.ErrPointCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatrix(t *testing.T) {
	m, err := Matrix(Config{
		Source:      unit,
		Destination: []mathutil.Vec2{{1, 0}, {1, 1}, {2, 0}},
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 1, 0, 1, 0, 0, 0, 1}, m[:], 1e-9)

	m, err = Matrix(Config{
		Kind:        Affine,
		Source:      unit,
		Destination: []mathutil.Vec2{{0, 0}, {1, 0}, {0, -1}},
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1, 0, 0, 0, 0, 1}, m[:], 1e-9)
}

func TestMatrixUnsupported(t *testing.T) {
	four := []mathutil.Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for _, k := range []Kind{Auto, Projective} {
		_, err := Matrix(Config{Kind: k, Source: four, Destination: four})
		require.ErrorIs(t, err, ErrUnsupportedTransform, "%v", k)
	}
	_, err := Matrix(Config{Kind: PiecewiseAffine, Source: unit, Destination: unit})
	require.ErrorIs(t, err, ErrUnsupportedTransform)
}

func TestMatrixStrict(t *testing.T) {
	line := []mathutil.Vec2{{0, 0}, {1, 1}, {2, 2}}
	_, err := Matrix(Config{Source: line, Destination: unit, Strict: true})
	require.ErrorIs(t, err, affine.ErrDegenerateTriangle)

	m, err := Matrix(Config{Source: line, Destination: unit})
	require.NoError(t, err)
	assert.False(t, m.IsFinite())
}

func TestWarp(t *testing.T) {
	img := checker(16, 12)
	out, err := Warp(context.Background(), Config{
		Image:       img,
		Source:      unit,
		Destination: []mathutil.Vec2{{3, 2}, {3, 3}, {4, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, img.Width, out.Width)
	assert.Equal(t, img.Height, out.Height)
	assert.Equal(t, img.ColorSpace, out.ColorSpace)
	assert.Equal(t, img.At(0, 0), out.At(3, 2))
	assert.Equal(t, img.At(5, 7), out.At(8, 9))
	assert.Equal(t, color.NRGBA{}, out.At(2, 2))
}

func TestWarpDegenerateBlanks(t *testing.T) {
	img := checker(8, 8)
	out, err := Warp(context.Background(), Config{
		Image:       img,
		Source:      []mathutil.Vec2{{0, 0}, {1, 1}, {2, 2}},
		Destination: unit,
	})
	require.NoError(t, err)
	assert.Equal(t, make([]uint8, len(img.Pix)), out.Pix)
}

func TestWarpErrors(t *testing.T) {
	_, err := Warp(context.Background(), Config{Source: unit, Destination: unit})
	require.Error(t, err)

	_, err = Warp(context.Background(), Config{Image: checker(2, 2), Source: unit, Destination: unit[:2]})
	require.ErrorIs(t, err, affine.ErrPointCount)
}

func TestAffineWarp(t *testing.T) {
	img := checker(6, 6)
	tri := affine.Triangle{{0, 0}, {0, 1}, {1, 0}}
	out, err := AffineWarp(img, tri, tri)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Auto, Affine, Projective, PiecewiseAffine} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("Piecewise-Affine")
	require.NoError(t, err)
	assert.Equal(t, PiecewiseAffine, got)
	got, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Auto, got)
	_, err = ParseKind("perspective")
	require.Error(t, err)
}
