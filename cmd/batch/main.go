package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"affine-warp/internal/batch"
	"affine-warp/internal/config"
	"affine-warp/internal/imageio"
	"affine-warp/internal/log"
	"affine-warp/internal/raster"

	"go.uber.org/zap"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	jobsFile := flag.String("jobs", "", "Jobs manifest (.json, .yaml, .toml)")
	testN := flag.Int("test", 0, "Run only the first N jobs")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/warped)")
	format := flag.String("format", "", "Output format when a job names no output (default: webp)")
	mode := flag.String("mode", "", "Resampling: forward, nearest, bilinear (default: forward)")
	strict := flag.Bool("strict", false, "Fail jobs whose source triangle is collinear")
	jsonLog := flag.Bool("json", false, "Log JSON instead of console output")

	flag.Parse()

	if *jsonLog {
		log.Structured()
	}
	defer log.Sync()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		JobsFile:  *jobsFile,
		OutputDir: *outputDir,
		Mode:      *mode,
		Format:    *format,
		Workers:   *workers,
		Strict:    *strict,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	warpMode, _ := raster.ParseMode(cfg.Mode)

	jobs, err := batch.LoadJobs(cfg.JobsFile)
	if err != nil {
		log.Fatalf("Error loading jobs: %v", err)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs to run.")
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Print summary
	fmt.Printf("Affine warp batch: %s\n", cfg.JobsFile)
	fmt.Printf("Jobs: %d, Workers: %d, Mode: %s\n", len(jobs), cfg.Workers, cfg.Mode)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		InputDir:      cfg.InputDir,
		OutputDir:     cfg.OutputDir,
		Images:        imageio.NewCache(imageio.LoadOptions{SVGScale: cfg.SVGScale}),
		Format:        cfg.Format,
		Mode:          warpMode,
		Strict:        cfg.Strict,
		WarpWorkers:   cfg.WarpWorkers,
		ThumbnailSize: cfg.ThumbnailSize,
		JPEGQuality:   cfg.JPEGQuality,
		Workers:       cfg.Workers,
	}

	results := batch.Run(ctx, batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Warped: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Logger(ctx).Warn("cannot create output directory", zap.Error(err))
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Logger(ctx).Warn("manifest write failed", zap.Error(err))
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
