package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/cmpnorris/pkg/config"
	"github.com/sdejongh/cmpnorris/pkg/logging"
	"github.com/sdejongh/cmpnorris/pkg/models"
	"github.com/sdejongh/cmpnorris/pkg/ratelimit"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with the flags set on the command line
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config, flags *CompareFlags) error {
	changed := cmd.Flags().Changed

	if changed("mode") {
		cfg.Compare.Mode = models.Mode(flags.Mode)
	}
	if changed("chunk-size") {
		cfg.Compare.ChunkSize = flags.ChunkSize
	}
	if changed("algorithm") {
		cfg.Compare.DigestAlgorithm = flags.Algorithm
	}
	if changed("encoding") {
		cfg.Compare.DigestEncoding = flags.Encoding
	}
	if changed("dereference") {
		cfg.Compare.Dereference = flags.Dereference
	}
	if changed("blocking") {
		cfg.Compare.Blocking = flags.Blocking
	}
	if len(flags.Exclude) > 0 {
		cfg.Compare.Exclude = flags.Exclude
	}

	// Parallel workers (default: 5)
	if flags.Parallel > 0 {
		cfg.Performance.MaxWorkers = flags.Parallel
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 5
	}

	if flags.Bandwidth != "" {
		limit, err := ratelimit.ParseRate(flags.Bandwidth)
		if err != nil {
			return fmt.Errorf("invalid bandwidth limit: %w", err)
		}
		cfg.Performance.BandwidthLimit = limit
	}

	if changed("output") {
		cfg.Output.Format = flags.Output
	}

	// A log file enables logging
	if flags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = flags.LogFile
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.LogFormat
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose && !globalFlags.Quiet {
		cfg.Output.Progress = true
	}

	return nil
}

// newRequest creates a comparison request from configuration
func newRequest(cfg *config.Config, target models.Target, path1, path2 string) (*models.Request, error) {
	req := &models.Request{
		ID:              uuid.New().String(),
		Path1:           path1,
		Path2:           path2,
		Target:          target,
		Mode:            cfg.Compare.Mode,
		Blocking:        cfg.Compare.Blocking,
		Dereference:     cfg.Compare.Dereference,
		ChunkSize:       cfg.Compare.ChunkSize,
		DigestAlgorithm: cfg.Compare.DigestAlgorithm,
		DigestEncoding:  cfg.Compare.DigestEncoding,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		BandwidthLimit:  cfg.Performance.BandwidthLimit,
		ExcludePatterns: cfg.Compare.Exclude,
		CreatedAt:       time.Now(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
