package compare

import (
	"context"
	"io"
)

// Result represents the outcome of comparing two files or directory trees
type Result string

const (
	// Equal indicates both sides hold identical content
	Equal Result = "equal"
	// NotEqual indicates the sides differ
	NotEqual Result = "not_equal"
	// Failed indicates the comparison could not be completed
	Failed Result = "failed"
)

// Comparison holds the verdict of a single comparison request.
// A Comparison is only ever built once the verdict is final.
type Comparison struct {
	Path1  string
	Path2  string
	Result Result
	Reason string
	Error  error

	// Digest1 and Digest2 are set by digest comparisons of files
	Digest1 string
	Digest2 string

	BytesCompared int64
	FilesCompared int
}

// Comparator decides whether the entries at two paths are equal
type Comparator interface {
	// Compare compares path1 with path2. When the result is Failed the
	// error is returned as well.
	Compare(ctx context.Context, path1, path2 string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}

// ReaderWrapper wraps every opened stream, e.g. for rate limiting
type ReaderWrapper func(io.ReadCloser) io.ReadCloser

// ProgressFunc receives the number of bytes consumed from path so far.
// During directory comparisons it may be called from several goroutines.
type ProgressFunc func(path string, current, total int64)

// Callback receives the result of a concurrent comparison, exactly once
type Callback func(*Comparison, error)

func equal(path1, path2, reason string) *Comparison {
	return &Comparison{Path1: path1, Path2: path2, Result: Equal, Reason: reason}
}

func notEqual(path1, path2, reason string) *Comparison {
	return &Comparison{Path1: path1, Path2: path2, Result: NotEqual, Reason: reason}
}

func failed(path1, path2 string, err error) (*Comparison, error) {
	return &Comparison{
		Path1:  path1,
		Path2:  path2,
		Result: Failed,
		Reason: err.Error(),
		Error:  err,
	}, err
}
