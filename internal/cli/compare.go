package cli

import (
	"context"
	"io"
	"time"

	"github.com/sdejongh/cmpnorris/internal/platform"
	"github.com/sdejongh/cmpnorris/pkg/compare"
	"github.com/sdejongh/cmpnorris/pkg/logging"
	"github.com/sdejongh/cmpnorris/pkg/models"
	"github.com/sdejongh/cmpnorris/pkg/output"
	"github.com/sdejongh/cmpnorris/pkg/ratelimit"
	"github.com/sdejongh/cmpnorris/pkg/storage"
	"github.com/spf13/cobra"
)

// NewFilesCommand creates the files command
func NewFilesCommand() *cobra.Command {
	return newCompareCommand(models.TargetFiles, "files PATH1 PATH2",
		"Compare two files",
		`Compare the content of two regular files. The exit status is 0 when the
files are equal, 1 when they differ and 2 when the comparison failed.`)
}

// NewDirsCommand creates the dirs command
func NewDirsCommand() *cobra.Command {
	return newCompareCommand(models.TargetDirs, "dirs PATH1 PATH2",
		"Compare two directory trees",
		`Compare two directory trees. The trees are equal when they hold the same
relative file paths and every pair of files has the same content. The exit
status is 0 when the trees are equal, 1 when they differ and 2 when the
comparison failed.`)
}

func newCompareCommand(target models.Target, use, short, long string) *cobra.Command {
	flags := &CompareFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, target, flags, args)
		},
	}
	addCompareFlags(cmd, flags)
	return cmd
}

func runCompare(cmd *cobra.Command, target models.Target, flags *CompareFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, path := range args {
		if err := platform.ValidatePath(path); err != nil {
			return &ExitError{Code: ExitTrouble, Err: err}
		}
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return trouble("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if err := applyFlagsToConfig(cmd, cfg, flags); err != nil {
		return &ExitError{Code: ExitTrouble, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return trouble("invalid configuration: %w", err)
	}

	req, err := newRequest(cfg, target, args[0], args[1])
	if err != nil {
		return trouble("invalid request: %w", err)
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return trouble("failed to create logger: %w", err)
	}
	defer logger.Close()
	ctx = logging.WithRequestID(ctx, req.ID)

	formatter, err := output.New(cfg.Output.Format, cfg.Output.Progress && !cfg.Output.Quiet)
	if err != nil {
		return &ExitError{Code: ExitTrouble, Err: err}
	}
	var writer io.Writer = cmd.OutOrStdout()
	if cfg.Output.Quiet {
		writer = io.Discard
	}
	if err := formatter.Start(writer, req); err != nil {
		return trouble("failed to start output: %w", err)
	}

	comparator, err := compare.New(req.Target, req.Mode, req.Blocking, newOptions(ctx, req, logger, formatter))
	if err != nil {
		formatter.Error(err)
		return &ExitError{Code: ExitTrouble, Err: err}
	}

	logger.Info(ctx, "comparison started", logging.Fields{
		"path1":      req.Path1,
		"path2":      req.Path2,
		"comparator": comparator.Name(),
		"blocking":   req.Blocking,
	})

	start := time.Now()
	result, cmpErr := comparator.Compare(ctx, req.Path1, req.Path2)
	report := newReport(req, result, cmpErr, start)

	if err := formatter.Complete(report); err != nil {
		return trouble("failed to write report: %w", err)
	}

	logger.Info(ctx, "comparison finished", logging.Fields{
		"status":         string(report.Status),
		"reason":         report.Reason,
		"files_compared": report.FilesCompared,
		"bytes_compared": report.BytesCompared,
		"duration_ms":    report.Duration.Milliseconds(),
	})

	switch report.Status {
	case models.StatusEqual:
		return nil
	case models.StatusDifferent:
		return &ExitError{Code: ExitDifferent}
	default:
		return &ExitError{Code: ExitTrouble, Err: cmpErr}
	}
}

// newOptions builds the comparator options of a request
func newOptions(ctx context.Context, req *models.Request, logger logging.Logger, formatter output.Formatter) compare.Options {
	fs := storage.NewLocal()
	return compare.Options{
		Dereference:     req.Dereference,
		ChunkSize:       req.ChunkSize,
		DigestAlgorithm: req.DigestAlgorithm,
		DigestEncoding:  req.DigestEncoding,
		Filesystem:      fs,
		Lister:          storage.NewExcludeLister(storage.NewWalker(fs, req.Dereference), req.ExcludePatterns),
		MaxWorkers:      req.MaxWorkers,
		ReaderWrapper:   ratelimit.Wrapper(ctx, ratelimit.NewLimiter(req.BandwidthLimit)),
		Progress: func(path string, current, total int64) {
			formatter.Progress(output.ProgressUpdate{Path: path, Current: current, Total: total})
		},
		Logger: logger,
	}
}

// newReport turns the outcome of a comparison into a report
func newReport(req *models.Request, result *compare.Comparison, err error, start time.Time) *models.Report {
	end := time.Now()
	report := &models.Report{
		RequestID: req.ID,
		Path1:     req.Path1,
		Path2:     req.Path2,
		Target:    req.Target,
		Mode:      req.Mode,
		Blocking:  req.Blocking,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Status:    models.StatusFailed,
	}

	if result != nil {
		report.Digest1 = result.Digest1
		report.Digest2 = result.Digest2
		report.FilesCompared = result.FilesCompared
		report.BytesCompared = result.BytesCompared

		switch result.Result {
		case compare.Equal:
			report.Status = models.StatusEqual
			report.Reason = result.Reason
		case compare.NotEqual:
			report.Status = models.StatusDifferent
			report.Reason = result.Reason
		}
	}

	if report.Status == models.StatusFailed {
		switch {
		case err != nil:
			report.Error = err.Error()
		case result != nil && result.Error != nil:
			report.Error = result.Error.Error()
		default:
			report.Error = "comparison produced no result"
		}
	}

	return report
}
