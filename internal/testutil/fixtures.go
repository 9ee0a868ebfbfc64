// Package testutil provides test infrastructure, fixtures, and helpers for sedinit.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sedstack/sedinit/internal/config"
)

// Sections is a model input keyed by section then key.
type Sections map[string]map[string]string

// BaseSections returns an input with every process switched off and valid
// calibration parameters.
func BaseSections() Sections {
	return Sections{
		"SEDOPTIONS": {
			"MASS WASTING":    "FALSE",
			"SURFACE EROSION": "FALSE",
			"ROAD EROSION":    "FALSE",
			"CHANNEL ROUTING": "FALSE",
		},
		"PARAMETERS": {
			"MASS WASTING SPACING": "10",
			"MAXIMUM ITERATIONS":   "100",
			"CHANNEL PARENT D50":   "1",
			"CHANNEL PARENT D90":   "8",
			"DEBRIS FLOW D50":      "4",
			"DEBRIS FLOW D90":      "60",
		},
	}
}

// Set assigns a value, creating the section if needed, and returns s.
func (s Sections) Set(section, key, value string) Sections {
	if s[section] == nil {
		s[section] = make(map[string]string)
	}
	s[section][key] = value
	return s
}

// Delete removes a key and returns s.
func (s Sections) Delete(section, key string) Sections {
	delete(s[section], key)
	return s
}

// Store returns s as an in-memory config store.
func (s Sections) Store() *config.Input {
	return config.NewInput(s)
}

// TOML renders s as model input text with every value quoted.
func (s Sections) TOML() string {
	var b strings.Builder
	for _, sec := range sortedKeys(s) {
		fmt.Fprintf(&b, "[%s]\n", sec)
		for _, key := range sortedKeys(s[sec]) {
			fmt.Fprintf(&b, "%q = %q\n", key, s[sec][key])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content to name inside a fresh temp dir and returns the
// path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
