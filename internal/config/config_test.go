package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"input_dir": "images",
		"jobs_file": "jobs.yaml",
		"mode": "bilinear",
		"format": ".PNG",
		"warp_workers": 4
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)

	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join(dir, "images"), cfg.InputDir)
	assert.Equal(t, filepath.Join(dir, "warped"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "jobs.yaml"), cfg.JobsFile)
	assert.Equal(t, "bilinear", cfg.Mode)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 4, cfg.WarpWorkers)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 1.0, cfg.SVGScale)
	assert.Equal(t, 90, cfg.JPEGQuality)
	require.NoError(t, cfg.Validate())
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{BaseDir: "/data", Mode: "nearest", Format: "png", Workers: 2}
	cfg.Resolve(Flags{
		JobsFile:  "/jobs/all.toml",
		OutputDir: "out",
		Mode:      "forward",
		Format:    "tiff",
		Workers:   7,
		Strict:    true,
	})
	assert.Equal(t, "/jobs/all.toml", cfg.JobsFile)
	assert.Equal(t, filepath.Join("/data", "out"), cfg.OutputDir)
	assert.Equal(t, "/data", cfg.InputDir)
	assert.Equal(t, "forward", cfg.Mode)
	assert.Equal(t, "tiff", cfg.Format)
	assert.Equal(t, 7, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 1, cfg.WarpWorkers)
}

func TestValidate(t *testing.T) {
	base := Config{BaseDir: "/data", JobsFile: "jobs.json"}
	base.Resolve(Flags{})
	require.NoError(t, base.Validate())

	bad := base
	bad.Mode = "bicubic"
	require.Error(t, bad.Validate())

	bad = base
	bad.Format = "gif"
	require.Error(t, bad.Validate())

	bad = base
	bad.JobsFile = ""
	require.Error(t, bad.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	require.Error(t, err)
}
