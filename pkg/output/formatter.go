package output

import (
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/cmpnorris/pkg/models"
	"golang.org/x/term"
)

// ProgressUpdate represents the progress of one file comparison
type ProgressUpdate struct {
	Path    string
	Current int64
	Total   int64
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and progress bar formatters
type Formatter interface {
	// Start initializes the formatter for a new comparison
	Start(writer io.Writer, req *models.Request) error

	// Progress reports progress during a comparison.
	// It may be called concurrently from several comparisons.
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the report
	Complete(report *models.Report) error

	// Error reports an error that prevented a report
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// New returns the formatter for format. When progress is set and stderr is
// a terminal, the formatter also draws a progress bar on stderr.
func New(format string, progress bool) (Formatter, error) {
	var f Formatter
	switch format {
	case "human", "":
		f = NewHumanFormatter()
	case "json":
		f = NewJSONFormatter()
	default:
		return nil, &models.ValidationError{Field: "output", Message: fmt.Sprintf("unknown format %q (use: human, json)", format)}
	}

	if progress && isTerminal(os.Stderr) {
		return NewProgressFormatter(f, os.Stderr), nil
	}
	return f, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
