package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/cmpnorris/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer    io.Writer
	startTime time.Time
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, req *models.Request) error {
	f.writer = writer
	f.startTime = time.Now()

	if writer != nil && req != nil {
		fmt.Fprintf(writer, "Comparing %s (%s, %s): %s <-> %s\n",
			req.Target, req.Mode, scheduling(req.Blocking), req.Path1, req.Path2)
	}

	return nil
}

// Progress is a no-op, per-chunk lines would drown the summary
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	w := f.writer
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Path 1:         %s\n", report.Path1)
	fmt.Fprintf(w, "  Path 2:         %s\n", report.Path2)
	fmt.Fprintf(w, "  Mode:           %s %s (%s)\n", report.Target, report.Mode, scheduling(report.Blocking))
	if report.Target == models.TargetDirs {
		fmt.Fprintf(w, "  Files compared: %d\n", report.FilesCompared)
	}
	fmt.Fprintf(w, "  Data compared:  %s\n", formatBytes(report.BytesCompared))

	if report.Duration.Seconds() > 0 && report.BytesCompared > 0 {
		avgSpeed := float64(report.BytesCompared) / report.Duration.Seconds()
		fmt.Fprintf(w, "  Average speed:  %s/s\n", formatBytes(int64(avgSpeed)))
	}

	if report.Digest1 != "" || report.Digest2 != "" {
		fmt.Fprintf(w, "  Digest 1:       %s\n", report.Digest1)
		fmt.Fprintf(w, "  Digest 2:       %s\n", report.Digest2)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)
	if report.Reason != "" {
		fmt.Fprintf(w, "Reason: %s\n", report.Reason)
	}
	if report.Error != "" {
		fmt.Fprintf(w, "Error:  %s\n", report.Error)
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func scheduling(blocking bool) string {
	if blocking {
		return "blocking"
	}
	return "concurrent"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
