package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"affine-warp/internal/mathutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Job describes one warp. Points are flat coordinate lists
// [x1, y1, x2, y2, ...]; source and destination pair up by index.
type Job struct {
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Input       string    `json:"input" yaml:"input" toml:"input"`
	Output      string    `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Source      []float64 `json:"source" yaml:"source" toml:"source"`
	Destination []float64 `json:"destination" yaml:"destination" toml:"destination"`
	Transform   string    `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`
	Mode        string    `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
}

// JobFile is the top-level shape of a jobs manifest.
type JobFile struct {
	Jobs []Job `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// LoadJobs reads a jobs manifest; the extension picks JSON, YAML or TOML.
// Jobs without a name are named after their input file.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}

	var jf JobFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &jf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &jf)
	case ".toml":
		err = toml.Unmarshal(data, &jf)
	default:
		return nil, fmt.Errorf("batch: unknown jobs file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}

	seen := make(map[string]int, len(jf.Jobs))
	for i := range jf.Jobs {
		j := &jf.Jobs[i]
		if j.Input == "" {
			return nil, fmt.Errorf("batch: job %d: no input", i)
		}
		if j.Name == "" {
			base := filepath.Base(j.Input)
			j.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if prev, dup := seen[j.Name]; dup {
			return nil, fmt.Errorf("batch: jobs %d and %d share the name %q", prev, i, j.Name)
		}
		seen[j.Name] = i
	}
	return jf.Jobs, nil
}

// Points converts a flat coordinate list to points.
func Points(flat []float64) ([]mathutil.Vec2, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("batch: odd number of coordinates (%d)", len(flat))
	}
	pts := make([]mathutil.Vec2, len(flat)/2)
	for i := range pts {
		pts[i] = mathutil.Vec2{flat[2*i], flat[2*i+1]}
	}
	return pts, nil
}
