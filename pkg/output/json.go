package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/cmpnorris/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer    io.Writer
	startTime time.Time
}

// JSONReportData represents the final report data
type JSONReportData struct {
	RequestID     string           `json:"request_id,omitempty"`
	Status        string           `json:"status"`
	Path1         string           `json:"path1"`
	Path2         string           `json:"path2"`
	Target        string           `json:"target"`
	Mode          string           `json:"mode"`
	Blocking      bool             `json:"blocking"`
	Reason        string           `json:"reason,omitempty"`
	Error         string           `json:"error,omitempty"`
	Digests       *JSONDigestData  `json:"digests,omitempty"`
	FilesCompared int              `json:"files_compared"`
	Transfer      JSONTransferData `json:"transfer"`
	StartTime     string           `json:"start_time,omitempty"`
	Duration      string           `json:"duration"`
	DurationMs    int64            `json:"duration_ms"`
}

// JSONDigestData holds the digests of both sides
type JSONDigestData struct {
	Path1 string `json:"path1"`
	Path2 string `json:"path2"`
}

// JSONTransferData represents read statistics
type JSONTransferData struct {
	BytesCompared   int64  `json:"bytes_compared"`
	AverageSpeed    int64  `json:"average_speed_bytes_per_sec,omitempty"`
	AverageSpeedStr string `json:"average_speed,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, req *models.Request) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.startTime = time.Now()
	return nil
}

// Progress is not reported, the output must stay a single JSON document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete writes the report as a JSON document
func (f *JSONFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	var avgSpeed int64
	var avgSpeedStr string
	if report.Duration.Seconds() > 0 && report.BytesCompared > 0 {
		avgSpeed = int64(float64(report.BytesCompared) / report.Duration.Seconds())
		avgSpeedStr = formatBytes(avgSpeed) + "/s"
	}

	data := JSONReportData{
		RequestID:     report.RequestID,
		Status:        string(report.Status),
		Path1:         report.Path1,
		Path2:         report.Path2,
		Target:        string(report.Target),
		Mode:          string(report.Mode),
		Blocking:      report.Blocking,
		Reason:        report.Reason,
		Error:         report.Error,
		FilesCompared: report.FilesCompared,
		Transfer: JSONTransferData{
			BytesCompared:   report.BytesCompared,
			AverageSpeed:    avgSpeed,
			AverageSpeedStr: avgSpeedStr,
		},
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
	}
	if !report.StartTime.IsZero() {
		data.StartTime = report.StartTime.Format(time.RFC3339)
	}
	if report.Digest1 != "" || report.Digest2 != "" {
		data.Digests = &JSONDigestData{Path1: report.Digest1, Path2: report.Digest2}
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error writes an error that prevented a report as a document of its own
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
