package models

import (
	"time"
)

// Target defines what kind of entries a request compares
type Target string

const (
	// TargetFiles compares two regular files
	TargetFiles Target = "files"
	// TargetDirs compares two directory trees
	TargetDirs Target = "dirs"
)

// Mode defines how content is compared
type Mode string

const (
	// ModeByte compares content byte-by-byte in fixed-size chunks
	ModeByte Mode = "byte"
	// ModeDigest compares cryptographic digests of both streams
	ModeDigest Mode = "digest"
)

// Request represents a single comparison requested by the user
type Request struct {
	ID              string
	Path1           string
	Path2           string
	Target          Target
	Mode            Mode
	Blocking        bool
	Dereference     bool
	ChunkSize       int
	DigestAlgorithm string
	DigestEncoding  string
	MaxWorkers      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	ExcludePatterns []string
	CreatedAt       time.Time
}

// Validate checks if the request is usable
func (r *Request) Validate() error {
	if r.Path1 == "" {
		return &ValidationError{Field: "Path1", Message: "first path is required"}
	}
	if r.Path2 == "" {
		return &ValidationError{Field: "Path2", Message: "second path is required"}
	}
	switch r.Target {
	case TargetFiles, TargetDirs:
	default:
		return &ValidationError{Field: "Target", Message: "must be 'files' or 'dirs'"}
	}
	switch r.Mode {
	case ModeByte, ModeDigest:
	default:
		return &ValidationError{Field: "Mode", Message: "must be 'byte' or 'digest'"}
	}
	if r.ChunkSize < 1 {
		return &ValidationError{Field: "ChunkSize", Message: "chunk size must be at least 1 byte"}
	}
	if r.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if r.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
