package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"affine-warp/internal/affine"
	"affine-warp/internal/imageio"
	"affine-warp/internal/log"
	"affine-warp/internal/mathutil"
	"affine-warp/internal/postprocess"
	"affine-warp/internal/raster"
	"affine-warp/internal/transform"

	"go.uber.org/zap"
)

func main() {
	// CLI flags
	in := flag.String("in", "", "Input image (png, jpg, gif, bmp, tiff, webp, tga, svg)")
	out := flag.String("out", "", "Output image; the extension picks the format (default: <in>.warped.webp)")
	srcPts := flag.String("src", "", "Source points x1,y1,x2,y2,x3,y3")
	dstPts := flag.String("dst", "", "Destination points (default: source points moved by the presets)")
	rotate := flag.Float64("rotate", 0, "Preset: rotate the source triangle about its centroid, degrees")
	scale := flag.Float64("scale", 1, "Preset: scale the source triangle about its centroid")
	translate := flag.String("translate", "", "Preset: move the source triangle by dx,dy")
	kind := flag.String("transform", "auto", "Transform kind: auto, affine, projective, piecewise-affine")
	mode := flag.String("mode", "forward", "Resampling: forward, nearest, bilinear")
	workers := flag.Int("workers", 1, "Goroutines used by the warp")
	strict := flag.Bool("strict", false, "Reject a collinear source triangle")
	thumb := flag.Int("thumb", 0, "Also write a thumbnail no larger than N×N")
	crop := flag.Bool("crop", false, "Crop the output to its non-transparent bounds")
	svgScale := flag.Float64("svg-scale", 1, "Rasterisation scale for SVG input")
	quality := flag.Int("quality", 90, "JPEG quality 1-100")
	jsonLog := flag.Bool("json", false, "Log JSON instead of console output")

	flag.Parse()

	if *jsonLog {
		log.Structured()
	}
	defer log.Sync()

	if *in == "" || *srcPts == "" {
		fmt.Fprintln(os.Stderr, "Usage: warp -in image -src x1,y1,x2,y2,x3,y3 (-dst ... | -rotate/-scale/-translate) [-out file]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = log.With(ctx, "input", *in)

	src, err := affine.ParsePoints(*srcPts)
	if err != nil {
		log.Fatalf("source points: %v", err)
	}
	dst, err := destination(src, *dstPts, *rotate, *scale, *translate)
	if err != nil {
		log.Fatalf("destination points: %v", err)
	}

	k, err := transform.ParseKind(*kind)
	if err != nil {
		log.Fatalf("%v", err)
	}
	m, err := raster.ParseMode(*mode)
	if err != nil {
		log.Fatalf("%v", err)
	}

	img, err := imageio.Load(*in, imageio.LoadOptions{SVGScale: *svgScale})
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	cfg := transform.Config{
		Image:       img,
		Source:      src,
		Destination: dst,
		Kind:        k,
		Options:     raster.Options{Mode: m, Workers: *workers},
		Strict:      *strict,
	}
	mat, err := transform.Matrix(cfg)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}
	if !mat.IsFinite() {
		log.Logger(ctx).Warn("source triangle is degenerate; output will be empty")
	}

	start := time.Now()
	warped, err := raster.Warp(ctx, img, mat[:], cfg.Options)
	if err != nil {
		log.Fatalf("warp: %v", err)
	}
	coverage := postprocess.Coverage(warped)
	if *crop {
		warped = postprocess.CropAlpha(warped)
	}

	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".warped.webp"
	}
	opts := imageio.SaveOptions{JPEGQuality: *quality}
	if err := imageio.Save(*out, warped, opts); err != nil {
		log.Fatalf("save: %v", err)
	}
	if *thumb > 0 {
		ext := filepath.Ext(*out)
		thumbPath := strings.TrimSuffix(*out, ext) + ".thumb" + ext
		if err := imageio.Save(thumbPath, postprocess.Thumbnail(warped, *thumb), opts); err != nil {
			log.Fatalf("save thumbnail: %v", err)
		}
	}

	log.Logger(ctx).Info("warped",
		zap.String("output", *out),
		zap.Stringer("mode", m),
		zap.Float64s("matrix", mat[:6]),
		zap.Int("width", warped.Width),
		zap.Int("height", warped.Height),
		zap.Float64("coverage", coverage),
		zap.Duration("elapsed", time.Since(start)))
}

// destination returns the explicit -dst points, or src moved by the presets.
func destination(src []mathutil.Vec2, dst string, rotate, scale float64, translate string) ([]mathutil.Vec2, error) {
	preset := affine.Preset{RotateDeg: rotate, Scale: scale}
	if translate != "" {
		off, err := affine.ParseOffset(translate)
		if err != nil {
			return nil, err
		}
		preset.Translate = off
	}

	if dst != "" {
		if !preset.IsZero() {
			return nil, fmt.Errorf("-dst and presets are mutually exclusive")
		}
		return affine.ParsePoints(dst)
	}
	if preset.IsZero() {
		return nil, fmt.Errorf("need -dst or at least one of -rotate, -scale, -translate")
	}
	tri, err := affine.TriangleFromPoints(src)
	if err != nil {
		return nil, fmt.Errorf("presets need a source triangle: %w", err)
	}
	return preset.Apply(tri).Points(), nil
}
