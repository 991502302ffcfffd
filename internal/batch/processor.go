package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"affine-warp/internal/imageio"
	"affine-warp/internal/log"
	"affine-warp/internal/postprocess"
	"affine-warp/internal/raster"
	"affine-warp/internal/transform"

	"go.uber.org/zap"
)

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir      string
	OutputDir     string
	Images        *imageio.Cache
	Format        string
	Mode          raster.Mode
	Strict        bool
	WarpWorkers   int
	ThumbnailSize int
	JPEGQuality   int
	Workers       int
	// Progress is the interval between progress log lines; zero means 2s.
	Progress time.Duration
}

// Result holds the outcome of processing one job.
type Result struct {
	Name      string
	Input     string
	Output    string
	Thumbnail string
	Transform string
	Mode      string
	Matrix    [9]float64
	Coverage  float64
	Success   bool
	Error     string
}

// Run processes all jobs using a worker pool. Results are in job order.
// Cancelling ctx fails the jobs that have not started yet.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Images == nil {
		cfg.Images = imageio.NewCache(imageio.LoadOptions{})
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	start := time.Now()
	logger := log.Logger(ctx)

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("jobs_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(ctx context.Context, cfg Config, job Job) Result {
	res := Result{
		Name:      job.Name,
		Input:     resolve(cfg.InputDir, job.Input),
		Transform: transform.Auto.String(),
		Mode:      cfg.Mode.String(),
	}
	fail := func(err error) Result {
		res.Error = err.Error()
		log.Logger(ctx).Warn("job failed", zap.String("job", job.Name), zap.Error(err))
		return res
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	kind, err := transform.ParseKind(job.Transform)
	if err != nil {
		return fail(err)
	}
	mode := cfg.Mode
	if job.Mode != "" {
		if mode, err = raster.ParseMode(job.Mode); err != nil {
			return fail(err)
		}
	}
	res.Mode = mode.String()

	src, err := Points(job.Source)
	if err != nil {
		return fail(fmt.Errorf("source: %w", err))
	}
	dst, err := Points(job.Destination)
	if err != nil {
		return fail(fmt.Errorf("destination: %w", err))
	}

	img, err := cfg.Images.Load(res.Input)
	if err != nil {
		return fail(err)
	}

	tc := transform.Config{
		Image:       img,
		Source:      src,
		Destination: dst,
		Kind:        kind,
		Options:     raster.Options{Mode: mode, Workers: cfg.WarpWorkers},
		Strict:      cfg.Strict,
	}
	if k, err := transform.Resolve(tc); err == nil {
		res.Transform = k.String()
	}
	m, err := transform.Matrix(tc)
	if err != nil {
		return fail(err)
	}
	res.Matrix = m
	out, err := raster.Warp(ctx, img, m[:], tc.Options)
	if err != nil {
		return fail(err)
	}

	res.Coverage = postprocess.Coverage(out)
	if res.Coverage == 0 {
		log.Logger(ctx).Warn("warped image is empty", zap.String("job", job.Name))
	}

	res.Output = outputPath(cfg, job)
	if err := imageio.Save(res.Output, out, imageio.SaveOptions{JPEGQuality: cfg.JPEGQuality}); err != nil {
		return fail(err)
	}

	if cfg.ThumbnailSize > 0 {
		ext := filepath.Ext(res.Output)
		res.Thumbnail = strings.TrimSuffix(res.Output, ext) + ".thumb" + ext
		thumb := postprocess.Thumbnail(out, cfg.ThumbnailSize)
		if err := imageio.Save(res.Thumbnail, thumb, imageio.SaveOptions{JPEGQuality: cfg.JPEGQuality}); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// outputPath is job.Output under cfg.OutputDir, or <name>.<format> when the
// job names no output.
func outputPath(cfg Config, job Job) string {
	if job.Output != "" {
		return resolve(cfg.OutputDir, job.Output)
	}
	format := cfg.Format
	if format == "" {
		format = "webp"
	}
	return filepath.Join(cfg.OutputDir, job.Name+"."+format)
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
