package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"affine-warp/internal/imageio"
	"affine-warp/internal/raster"
)

// Config holds all configurable paths and warp settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	JobsFile  string `json:"jobs_file"`

	// Warp settings
	Mode        string `json:"mode"`
	Strict      bool   `json:"strict"`
	WarpWorkers int    `json:"warp_workers"`

	// Output settings
	Format        string  `json:"format"`
	JPEGQuality   int     `json:"jpeg_quality"`
	ThumbnailSize int     `json:"thumbnail_size"`
	SVGScale      float64 `json:"svg_scale"`
	Workers       int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. An unset base_dir
// becomes the directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	JobsFile  string
	OutputDir string
	Mode      string
	Format    string
	Workers   int
	Strict    bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.JobsFile != "" {
		c.JobsFile = flags.JobsFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Strict {
		c.Strict = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.InputDir == "" {
		c.InputDir = c.BaseDir
	} else if !filepath.IsAbs(c.InputDir) {
		c.InputDir = filepath.Join(c.BaseDir, c.InputDir)
	}

	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "warped")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	if c.JobsFile != "" && !filepath.IsAbs(c.JobsFile) {
		c.JobsFile = filepath.Join(c.BaseDir, c.JobsFile)
	}

	// Defaults for warp settings
	if c.Mode == "" {
		c.Mode = raster.ModeForward.String()
	}
	c.Format = strings.TrimPrefix(strings.ToLower(c.Format), ".")
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = 90
	}
	if c.SVGScale <= 0 {
		c.SVGScale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.WarpWorkers <= 0 {
		c.WarpWorkers = 1
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if _, err := raster.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !slices.Contains(imageio.Formats, c.Format) && c.Format != "tif" && c.Format != "jpeg" {
		return fmt.Errorf("config: unsupported output format %q (want one of %s)", c.Format, strings.Join(imageio.Formats, ", "))
	}
	if c.JobsFile == "" {
		return fmt.Errorf("config: no jobs file")
	}
	return nil
}
