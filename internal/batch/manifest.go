package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name      string    `json:"name"`
	Input     string    `json:"input"`
	Output    string    `json:"output,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Transform string    `json:"transform"`
	Mode      string    `json:"mode"`
	Matrix    []float64 `json:"matrix,omitempty"`
	Coverage  float64   `json:"coverage"`
	Error     string    `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every result.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      r.Name,
			Input:     r.Input,
			Output:    r.Output,
			Thumbnail: r.Thumbnail,
			Transform: r.Transform,
			Mode:      r.Mode,
			Coverage:  r.Coverage,
			Error:     r.Error,
		}
		if r.Success {
			entries[i].Matrix = r.Matrix[:]
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
