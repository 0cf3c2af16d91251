package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/sdejongh/cmpnorris/pkg/models"
	"golang.org/x/term"
)

const barTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . }}`

// getUpdateInterval returns the progress refresh interval based on OS
// Windows terminals have higher latency with ANSI sequences, so we use a longer interval
func getUpdateInterval() time.Duration {
	if runtime.GOOS == "windows" {
		return 300 * time.Millisecond
	}
	return 100 * time.Millisecond
}

// fileProgress tracks the last reported position of one file
type fileProgress struct {
	current int64
	total   int64
}

// ProgressFormatter draws a byte progress bar while another formatter
// produces the report. Progress of concurrent file comparisons is summed.
type ProgressFormatter struct {
	inner Formatter
	out   io.Writer

	mu        sync.Mutex
	bar       *pb.ProgressBar
	files     map[string]*fileProgress
	current   int64
	total     int64
	startTime time.Time
	termWidth int
}

// NewProgressFormatter creates a progress bar formatter drawing on out
func NewProgressFormatter(inner Formatter, out io.Writer) *ProgressFormatter {
	if out == nil {
		out = os.Stderr
	}
	return &ProgressFormatter{
		inner: inner,
		out:   out,
		files: make(map[string]*fileProgress),
	}
}

// Start initializes the inner formatter and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, req *models.Request) error {
	if err := f.inner.Start(writer, req); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.termWidth = 120
	if file, ok := f.out.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.termWidth = width
		}
	}

	f.files = make(map[string]*fileProgress)
	f.current, f.total = 0, 0
	f.startTime = time.Now()

	f.bar = pb.New64(0).
		SetWriter(f.out).
		SetTemplateString(barTemplate).
		SetRefreshRate(getUpdateInterval()).
		SetWidth(f.termWidth).
		Set(pb.Bytes, true).
		Set(pb.Terminal, true).
		Set("prefix", "")
	f.bar.Start()
	return nil
}

// Progress updates the bar with the position of one file
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, ok := f.files[update.Path]
	if !ok {
		fp = &fileProgress{}
		f.files[update.Path] = fp
	}
	f.current += update.Current - fp.current
	f.total += update.Total - fp.total
	fp.current, fp.total = update.Current, update.Total

	if f.bar == nil {
		return nil
	}
	f.bar.SetTotal(f.total)
	f.bar.SetCurrent(f.current)
	f.bar.Set("prefix", truncatePath(update.Path, f.termWidth/3))
	return nil
}

// Complete stops the bar and hands the report to the inner formatter
func (f *ProgressFormatter) Complete(report *models.Report) error {
	f.finish()
	return f.inner.Complete(report)
}

// Error stops the bar and hands the error to the inner formatter
func (f *ProgressFormatter) Error(err error) error {
	f.finish()
	return f.inner.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return
	}
	f.bar.Finish()
	f.bar = nil
	fmt.Fprintf(f.out, "%s read in %s\n", formatBytes(f.current), formatDuration(time.Since(f.startTime)))
}

// truncatePath keeps the end of path, which names the file, within width runes
func truncatePath(path string, width int) string {
	runes := []rune(path)
	if width < 4 || len(runes) <= width {
		return path
	}
	return "..." + string(runes[len(runes)-width+3:])
}
