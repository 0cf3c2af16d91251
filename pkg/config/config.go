package config

import (
	"github.com/sdejongh/cmpnorris/pkg/digest"
	"github.com/sdejongh/cmpnorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CompareConfig holds the defaults of every comparison
type CompareConfig struct {
	Mode            models.Mode `yaml:"mode"`
	Dereference     bool        `yaml:"dereference"`
	ChunkSize       int         `yaml:"chunk_size"`
	DigestAlgorithm string      `yaml:"digest_algorithm"`
	DigestEncoding  string      `yaml:"digest_encoding"`
	Blocking        bool        `yaml:"blocking"`
	// Exclude holds glob patterns of entries left out of directory comparisons
	Exclude []string `yaml:"exclude,omitempty"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers     int   `yaml:"max_workers"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"` // bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar on terminals
	Quiet    bool   `yaml:"quiet"`    // Only report through the exit code
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Mode:            models.ModeByte,
			Dereference:     false,
			ChunkSize:       65536,
			DigestAlgorithm: digest.DefaultAlgorithm,
			DigestEncoding:  digest.DefaultEncoding,
			Blocking:        false,
		},
		Performance: PerformanceConfig{
			MaxWorkers:     5,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compare.Mode != models.ModeByte && c.Compare.Mode != models.ModeDigest {
		return &models.ValidationError{
			Field:   "compare.mode",
			Message: "must be 'byte' or 'digest'",
		}
	}

	if c.Compare.ChunkSize < 1 {
		return &models.ValidationError{
			Field:   "compare.chunk_size",
			Message: "must be at least 1 byte",
		}
	}

	if !digest.IsSupported(c.Compare.DigestAlgorithm) {
		return &models.ValidationError{
			Field:   "compare.digest_algorithm",
			Message: "unsupported algorithm '" + c.Compare.DigestAlgorithm + "'",
		}
	}

	if !digest.IsSupportedEncoding(c.Compare.DigestEncoding) {
		return &models.ValidationError{
			Field:   "compare.digest_encoding",
			Message: "unsupported encoding '" + c.Compare.DigestEncoding + "'",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "performance.bandwidth_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
