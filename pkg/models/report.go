package models

import (
	"time"
)

// Report represents the outcome of a comparison request
type Report struct {
	RequestID string
	Path1     string
	Path2     string
	Target    Target
	Mode      Mode
	Blocking  bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Outcome
	Status        Status
	Reason        string
	Error         string
	Digest1       string
	Digest2       string
	FilesCompared int
	BytesCompared int64
}

// Status represents the overall result
type Status string

const (
	// StatusEqual indicates both sides have identical content
	StatusEqual Status = "equal"
	// StatusDifferent indicates the sides differ
	StatusDifferent Status = "different"
	// StatusFailed indicates the comparison could not be completed
	StatusFailed Status = "failed"
)

// ExitCode returns the process exit code for the status, following cmp(1)
func (s Status) ExitCode() int {
	switch s {
	case StatusEqual:
		return 0
	case StatusDifferent:
		return 1
	default:
		return 2
	}
}
