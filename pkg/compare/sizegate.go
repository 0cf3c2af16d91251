package compare

import (
	"context"
	"fmt"

	"github.com/sdejongh/cmpnorris/internal/platform"
	"github.com/sdejongh/cmpnorris/pkg/storage"
)

// resolvePair turns both paths into absolute, cleaned paths
func resolvePair(path1, path2 string) (string, string, error) {
	p1, err := platform.Resolve(path1)
	if err != nil {
		return path1, path2, &IOError{Op: "resolve", Path: path1, Err: err}
	}
	p2, err := platform.Resolve(path2)
	if err != nil {
		return p1, path2, &IOError{Op: "resolve", Path: path2, Err: err}
	}
	return p1, p2, nil
}

// statPair stats both paths and checks that both are of kind want.
// Symbolic links are followed only when opts.Dereference is set.
func statPair(ctx context.Context, opts Options, path1, path2 string, want storage.FileType) (*storage.FileInfo, *storage.FileInfo, error) {
	info1, err := statKind(ctx, opts, path1, want)
	if err != nil {
		return nil, nil, err
	}
	info2, err := statKind(ctx, opts, path2, want)
	if err != nil {
		return nil, nil, err
	}
	return info1, info2, nil
}

func statKind(ctx context.Context, opts Options, path string, want storage.FileType) (*storage.FileInfo, error) {
	stat := opts.Filesystem.Lstat
	if opts.Dereference {
		stat = opts.Filesystem.Stat
	}

	info, err := stat(ctx, path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.Type != want {
		return nil, &KindError{Path: path, Want: want, Got: info.Type}
	}
	return info, nil
}

// sizeGate decides byte comparisons of files with different sizes without
// reading them. It returns nil when the content has to be compared.
func sizeGate(path1, path2 string, info1, info2 *storage.FileInfo) *Comparison {
	if info1.Size == info2.Size {
		return nil
	}
	return notEqual(path1, path2, fmt.Sprintf("size mismatch: %d != %d", info1.Size, info2.Size))
}
