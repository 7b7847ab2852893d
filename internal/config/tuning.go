package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/roifilter/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// Accepted values for roi_policy.
const (
	PolicyStrict = "strict"
	PolicySlack  = "slack"
)

// TuningConfig represents the root configuration for ROI filtering.
// Every field is optional; the Get* methods supply defaults for fields
// left out of the JSON file.
type TuningConfig struct {
	// Filter policy: "strict" or "slack"
	RoiPolicy *string `json:"roi_policy,omitempty"`

	// Concurrency
	FilterWorkers      *int `json:"filter_workers,omitempty"`
	ParallelMinObjects *int `json:"parallel_min_objects,omitempty"`

	// Build an R-tree over the ROI polygons for each frame
	SpatialIndex *bool `json:"spatial_index,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to the
// value its getter falls back to.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		RoiPolicy:          ptrString(PolicySlack),
		FilterWorkers:      ptrInt(4),
		ParallelMinObjects: ptrInt(256),
		SpatialIndex:       ptrBool(false),
	}
}

// maxConfigFileSize caps the tuning file at 1MB.
const maxConfigFileSize = 1 * 1024 * 1024

// LoadTuningConfig loads a TuningConfig from a JSON file on disk.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	return LoadTuningConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadTuningConfigFS loads a TuningConfig through fsys.
// The file must have a .json extension and be no larger than 1MB.
func LoadTuningConfigFS(fsys fsutil.FileSystem, path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseTuningConfig(data)
}

// ParseTuningConfig decodes and validates a TuningConfig from JSON.
func ParseTuningConfig(data []byte) (*TuningConfig, error) {
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/perception/roi/, cmd/tools/roi-filter/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	// A blank roi_policy is treated as unset.
	if c.RoiPolicy != nil {
		switch strings.ToLower(strings.TrimSpace(*c.RoiPolicy)) {
		case "", PolicyStrict, PolicySlack:
		default:
			return fmt.Errorf("roi_policy must be %q or %q, got %q", PolicyStrict, PolicySlack, *c.RoiPolicy)
		}
	}

	if c.FilterWorkers != nil && *c.FilterWorkers < 1 {
		return fmt.Errorf("filter_workers must be at least 1, got %d", *c.FilterWorkers)
	}

	if c.ParallelMinObjects != nil && *c.ParallelMinObjects < 0 {
		return fmt.Errorf("parallel_min_objects must be non-negative, got %d", *c.ParallelMinObjects)
	}

	return nil
}

// GetRoiPolicy returns the roi_policy value, lower-cased, or the default.
func (c *TuningConfig) GetRoiPolicy() string {
	if c.RoiPolicy == nil || strings.TrimSpace(*c.RoiPolicy) == "" {
		return PolicySlack
	}
	return strings.ToLower(strings.TrimSpace(*c.RoiPolicy))
}

// GetFilterWorkers returns the filter_workers value or the default.
func (c *TuningConfig) GetFilterWorkers() int {
	if c.FilterWorkers == nil {
		return 4
	}
	return *c.FilterWorkers
}

// GetParallelMinObjects returns the parallel_min_objects value or the default.
func (c *TuningConfig) GetParallelMinObjects() int {
	if c.ParallelMinObjects == nil {
		return 256
	}
	return *c.ParallelMinObjects
}

// GetSpatialIndex returns the spatial_index value or the default.
func (c *TuningConfig) GetSpatialIndex() bool {
	if c.SpatialIndex == nil {
		return false // default: linear scan
	}
	return *c.SpatialIndex
}
