package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	sederr "github.com/sedstack/sedinit/internal/errors"
)

// Save writes the summary as YAML atomically (write-then-rename).
func Save(path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return sederr.IOWriteError(path, err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return sederr.IOWriteError(tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up on failure
		return sederr.IOWriteError(path, err)
	}
	return nil
}

// Load reads a summary written by Save.
func Load(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sederr.IOFileNotFound(path)
		}
		return nil, sederr.IOReadError(path, err)
	}

	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}
