package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"affine-warp/internal/raster"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when neither the header nor the file
// extension identify a supported image format.
var ErrUnknownFormat = errors.New("unknown image format")

// LoadOptions tunes decoding.
type LoadOptions struct {
	// SVGScale multiplies the SVG view box size; 0 means 1.
	SVGScale float64
	// ColorSpace tags the decoded buffer; empty means raster.ColorSpaceSRGB.
	ColorSpace string
}

// Load reads an image file into a pixel buffer.
func Load(path string, opts LoadOptions) (*raster.PixelBuffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}
	buf, err := Decode(raw, filepath.Ext(path), opts)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return buf, nil
}

// Decode identifies the format of data (ext is a hint for formats without a
// reliable magic number) and decodes it.
func Decode(data []byte, ext string, opts LoadOptions) (*raster.PixelBuffer, error) {
	cs := opts.ColorSpace
	if cs == "" {
		cs = raster.ColorSpaceSRGB
	}

	var (
		img image.Image
		err error
	)
	switch Format(data, ext) {
	case "svg":
		img, err = rasterizeSVG(data, opts.SVGScale)
	case "tga":
		img, err = tga.Decode(bytes.NewReader(data))
	case "":
		return nil, ErrUnknownFormat
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return raster.FromImage(img, cs), nil
}

// Format names the image format of data: a filetype extension such as
// "png", "jpg" or "webp", or "svg"/"tga" for the text and header-less
// formats. It returns "" when nothing matches.
func Format(data []byte, ext string) string {
	if filetype.IsImage(data) {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			return kind.Extension
		}
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	switch {
	case ext == "svg" || looksLikeSVG(data):
		return "svg"
	case ext == "tga":
		return "tga"
	}
	return ""
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}
