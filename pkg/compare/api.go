package compare

import (
	"context"
	"fmt"

	"github.com/sdejongh/cmpnorris/pkg/models"
)

// New builds the comparator for a target, a mode and a scheduling model
func New(target models.Target, mode models.Mode, blocking bool, opts Options) (Comparator, error) {
	files, err := newFileComparator(mode, blocking, opts)
	if err != nil {
		return nil, err
	}

	switch target {
	case models.TargetFiles:
		return files, nil
	case models.TargetDirs:
		return NewDirectoryComparator(files, opts, !blocking)
	default:
		return nil, &models.ValidationError{Field: "Target", Message: fmt.Sprintf("unknown target %q", target)}
	}
}

func newFileComparator(mode models.Mode, blocking bool, opts Options) (Comparator, error) {
	switch {
	case mode == models.ModeByte && blocking:
		return NewBlockingByteComparator(opts)
	case mode == models.ModeByte:
		return NewByteComparator(opts)
	case mode == models.ModeDigest && blocking:
		return NewBlockingDigestComparator(opts)
	case mode == models.ModeDigest:
		return NewDigestComparator(opts)
	default:
		return nil, &models.ValidationError{Field: "Mode", Message: fmt.Sprintf("unknown mode %q", mode)}
	}
}

// FilesByByte compares two files byte-by-byte and calls done once with
// the result, from another goroutine
func FilesByByte(ctx context.Context, path1, path2 string, opts Options, done Callback) {
	run(ctx, models.TargetFiles, models.ModeByte, path1, path2, opts, done)
}

// FilesByDigest compares the digests of two files and calls done once with
// the result, from another goroutine. Both digests are part of the result.
func FilesByDigest(ctx context.Context, path1, path2 string, opts Options, done Callback) {
	run(ctx, models.TargetFiles, models.ModeDigest, path1, path2, opts, done)
}

// DirsByByte compares two directory trees byte-by-byte and calls done once
// with the result, from another goroutine
func DirsByByte(ctx context.Context, path1, path2 string, opts Options, done Callback) {
	run(ctx, models.TargetDirs, models.ModeByte, path1, path2, opts, done)
}

// DirsByDigest compares two directory trees by digest and calls done once
// with the result, from another goroutine
func DirsByDigest(ctx context.Context, path1, path2 string, opts Options, done Callback) {
	run(ctx, models.TargetDirs, models.ModeDigest, path1, path2, opts, done)
}

// FilesByByteSync compares two files byte-by-byte
func FilesByByteSync(ctx context.Context, path1, path2 string, opts Options) (*Comparison, error) {
	return runSync(ctx, models.TargetFiles, models.ModeByte, path1, path2, opts)
}

// FilesByDigestSync compares the digests of two files
func FilesByDigestSync(ctx context.Context, path1, path2 string, opts Options) (*Comparison, error) {
	return runSync(ctx, models.TargetFiles, models.ModeDigest, path1, path2, opts)
}

// DirsByByteSync compares two directory trees byte-by-byte
func DirsByByteSync(ctx context.Context, path1, path2 string, opts Options) (*Comparison, error) {
	return runSync(ctx, models.TargetDirs, models.ModeByte, path1, path2, opts)
}

// DirsByDigestSync compares two directory trees by digest
func DirsByDigestSync(ctx context.Context, path1, path2 string, opts Options) (*Comparison, error) {
	return runSync(ctx, models.TargetDirs, models.ModeDigest, path1, path2, opts)
}

func run(ctx context.Context, target models.Target, mode models.Mode, path1, path2 string, opts Options, done Callback) {
	go func() {
		c, err := New(target, mode, false, opts)
		if err != nil {
			done(failed(path1, path2, err))
			return
		}
		done(c.Compare(ctx, path1, path2))
	}()
}

func runSync(ctx context.Context, target models.Target, mode models.Mode, path1, path2 string, opts Options) (*Comparison, error) {
	c, err := New(target, mode, true, opts)
	if err != nil {
		return nil, err
	}
	return c.Compare(ctx, path1, path2)
}
