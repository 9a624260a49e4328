// ABOUTME: YAML encode preset loading
// ABOUTME: Maps preset files onto the CLI's encoder settings
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Preset holds encoder settings loaded from a YAML file. Explicit
// command-line flags override preset values.
type Preset struct {
	Input       string   `yaml:"input"`
	Output      string   `yaml:"output"`
	Bitrate     int      `yaml:"bitrate"`
	MinBitrate  int      `yaml:"min-bitrate"`
	MaxBitrate  int      `yaml:"max-bitrate"`
	Quality     *float64 `yaml:"quality"`
	Cutoff      int      `yaml:"cutoff"`
	ImpulseBias float64  `yaml:"impulse-bias"`
	Rate        int      `yaml:"rate"`
}

// loadPreset reads and parses a preset file
func loadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return &p, nil
}
