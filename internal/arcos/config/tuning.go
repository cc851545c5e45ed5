// Package config loads JSON tuning defaults for the linker and trackers,
// with pointer-optional fields so a partial file can override only the
// values it mentions.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the canonical tuning defaults file, read relative
// to the current working directory.
const DefaultConfigPath = "config/tracking.defaults.json"

// TuningConfig mirrors linker.Params, with every field optional so a
// config file only needs to mention what it overrides.
type TuningConfig struct {
	Eps                  *float64 `json:"eps,omitempty"`
	EpsPrev              *float64 `json:"eps_prev,omitempty"`
	MinClusterSize       *int     `json:"min_cluster_size,omitempty"`
	MinSamples           *int     `json:"min_samples,omitempty"`
	Method               *string  `json:"method,omitempty"`
	PropagationThreshold *int     `json:"propagation_threshold,omitempty"`
	MemoryDepth          *int     `json:"memory_depth,omitempty"`
	Jobs                 *int     `json:"jobs,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field nil, meaning
// "use the linker's defaults".
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig reads and parses a TuningConfig from a JSON file.
// Fields absent from the file keep their nil (default) value.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return cfg, nil
}

// GetEps returns Eps or its default.
func (c *TuningConfig) GetEps() float64 {
	if c.Eps == nil {
		return 1
	}
	return *c.Eps
}

// GetMinClusterSize returns MinClusterSize or its default.
func (c *TuningConfig) GetMinClusterSize() int {
	if c.MinClusterSize == nil {
		return 1
	}
	return *c.MinClusterSize
}

// GetMinSamples returns MinSamples or its default.
func (c *TuningConfig) GetMinSamples() int {
	if c.MinSamples == nil {
		return 1
	}
	return *c.MinSamples
}

// GetMethod returns Method or its default ("dbscan").
func (c *TuningConfig) GetMethod() string {
	if c.Method == nil {
		return "dbscan"
	}
	return *c.Method
}

// GetPropagationThreshold returns PropagationThreshold or its default.
func (c *TuningConfig) GetPropagationThreshold() int {
	if c.PropagationThreshold == nil {
		return 1
	}
	return *c.PropagationThreshold
}

// GetMemoryDepth returns MemoryDepth or its default.
func (c *TuningConfig) GetMemoryDepth() int {
	if c.MemoryDepth == nil {
		return 1
	}
	return *c.MemoryDepth
}

// GetJobs returns Jobs or its default.
func (c *TuningConfig) GetJobs() int {
	if c.Jobs == nil {
		return 1
	}
	return *c.Jobs
}
