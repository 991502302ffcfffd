package main

import (
	"flag"
	"fmt"
	"os"

	"affine-warp/internal/affine"
	"affine-warp/internal/mathutil"
	"affine-warp/internal/transform"
)

func main() {
	srcPts := flag.String("src", "", "Source points x1,y1,x2,y2,x3,y3")
	dstPts := flag.String("dst", "", "Destination points x1,y1,x2,y2,x3,y3")
	rotate := flag.Float64("rotate", 0, "Preset rotation about the source centroid, degrees (without -dst)")
	scale := flag.Float64("scale", 1, "Preset scale about the source centroid (without -dst)")
	strict := flag.Bool("strict", false, "Fail on a collinear source triangle")
	flag.Parse()

	if *srcPts == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -src x1,y1,x2,y2,x3,y3 [-dst x1,y1,x2,y2,x3,y3 | -rotate deg -scale s]")
		os.Exit(2)
	}

	src, err := affine.ParseTriangle(*srcPts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	dst := affine.Preset{RotateDeg: *rotate, Scale: *scale}.Apply(src)
	if *dstPts != "" {
		if dst, err = affine.ParseTriangle(*dstPts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	m, err := transform.Matrix(transform.Config{
		Source:      src.Points(),
		Destination: dst.Points(),
		Kind:        transform.Affine,
		Strict:      *strict,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sm := src.Matrix()
	fmt.Printf("Source:      %v\n", src)
	fmt.Printf("Destination: %v\n", dst)
	fmt.Printf("Source area: %.4f (det %.4f)\n", src.Area(), sm.Det())
	if src.Degenerate(affine.Epsilon) {
		fmt.Println("  WARNING: source triangle is degenerate")
	}

	fmt.Println("\nSource matrix inverse:")
	printMat(sm.Inverse())
	fmt.Println("\nTransform:")
	printMat(m)

	fmt.Println("\nResiduals:")
	for i, r := range affine.Residuals(m, src, dst) {
		fmt.Printf("  v%d %v -> %v  |err| = %.3g\n", i, src[i], m.MulPoint(src[i]), r)
	}
}

func printMat(m mathutil.Mat3) {
	for r := 0; r < 3; r++ {
		fmt.Printf("  [%10.4f %10.4f %10.4f]\n", m[r*3], m[r*3+1], m[r*3+2])
	}
}
