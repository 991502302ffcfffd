package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"affine-warp/internal/raster"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SaveOptions tunes encoding.
type SaveOptions struct {
	// JPEGQuality is 1-100; 0 means 90. Alpha is dropped in JPEG output.
	JPEGQuality int
}

// Formats lists the extensions Save understands.
var Formats = []string{"webp", "png", "bmp", "tiff", "jpg"}

// Save writes buf to path, choosing the encoder from the extension. Parent
// directories are created as needed.
func Save(path string, buf *raster.PixelBuffer, opts SaveOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if err := Encode(f, buf, filepath.Ext(path), opts); err != nil {
		f.Close()
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	return f.Close()
}

// Encode writes buf in the format named by ext ("png", ".webp", ...).
func Encode(w io.Writer, buf *raster.PixelBuffer, ext string, opts SaveOptions) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	img := buf.ToNRGBA()
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "jpg", "jpeg":
		q := opts.JPEGQuality
		if q <= 0 {
			q = 90
		}
		return jpeg.Encode(w, opaque(img), &jpeg.Options{Quality: q})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// opaque flattens img onto black so the JPEG encoder does not see
// non-premultiplied colour under zero alpha.
func opaque(img *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		out.Pix[i] = uint8(uint32(img.Pix[i]) * a / 255)
		out.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		out.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
		out.Pix[i+3] = 255
	}
	return out
}
