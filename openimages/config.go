// Package openimages adapts framework-native detection results to an
// OpenImages-style mean-average-precision engine and renders per-class
// result tables.
package openimages

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-eval/engine"
	"github.com/nvr-ai/go-eval/logging"
)

// DefaultLogger is the logger-selection token used when none is configured.
const DefaultLogger = "current"

// Config configures a Metric. Deprecated fields are resolved once at
// construction time and never consulted afterwards.
type Config struct {
	// Logger selects the logger the rendered tables and warnings go
	// through. Defaults to DefaultLogger.
	Logger string `json:"logger" yaml:"logger"`
	// DistBackend selects the engine's distributed communication backend.
	// Defaults to engine.DistBackendNone.
	DistBackend engine.DistBackend `json:"dist_backend" yaml:"dist_backend"`
	// IoUThrs and IoFThrs are forwarded to engines built from this
	// configuration and are consumed pairwise for reporting.
	IoUThrs []float64 `json:"iou_thrs" yaml:"iou_thrs"`
	IoFThrs []float64 `json:"iof_thrs" yaml:"iof_thrs"`
	// ScaleRanges partitions results by ground-truth box scale.
	ScaleRanges []engine.ScaleRange `json:"scale_ranges" yaml:"scale_ranges"`

	// IoAThrs is deprecated: use IoFThrs instead. When set and IoFThrs is
	// absent, its value is adopted as IoFThrs with a warning.
	IoAThrs []float64 `json:"ioa_thrs" yaml:"ioa_thrs"`
	// CollectDevice is deprecated and ignored: use DistBackend instead.
	CollectDevice string `json:"collect_device" yaml:"collect_device"`
}

// resolve normalizes the configuration, applying defaults and the
// backward-compatibility shims for deprecated options. Deprecation
// warnings are non-fatal.
func (c Config) resolve(log *logging.Logger) Config {
	if c.Logger == "" {
		c.Logger = DefaultLogger
	}

	if c.IoAThrs != nil && c.IoFThrs == nil {
		c.IoFThrs = c.IoAThrs
		log.Warn("the ioa_thrs option is deprecated, use iof_thrs instead")
	}
	c.IoAThrs = nil

	if c.CollectDevice != "" {
		log.Warn("the collect_device option is deprecated and ignored, use dist_backend instead")
		c.CollectDevice = ""
	}

	if c.DistBackend == "" {
		c.DistBackend = engine.DistBackendNone
	}

	return c
}

// EngineConfig assembles the engine-facing configuration from the resolved
// options and the dataset class names.
func (c Config) EngineConfig(classes []string) engine.Config {
	return engine.Config{
		IoUThrs:     c.IoUThrs,
		IoFThrs:     c.IoFThrs,
		ScaleRanges: c.ScaleRanges,
		Classes:     classes,
		Backend:     c.DistBackend,
	}
}

// LoadConfig reads a Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "parse json config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "parse yaml config")
		}
	default:
		return Config{}, errors.Errorf("unsupported config extension %q", ext)
	}

	return cfg, nil
}
