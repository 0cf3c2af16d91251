package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
)

// Billy is a Filesystem backed by a go-billy filesystem
type Billy struct {
	fs billy.Filesystem
}

// NewBilly wraps a go-billy filesystem
func NewBilly(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// NewLocal returns a Filesystem over the host operating system
func NewLocal() *Billy {
	return NewBilly(osfs.New(string(filepath.Separator)))
}

// Stat returns metadata, following symbolic links
func (b *Billy) Stat(ctx context.Context, path string) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	return newFileInfo(path, info), nil
}

// Lstat returns metadata without following symbolic links
func (b *Billy) Lstat(ctx context.Context, path string) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := b.fs.Lstat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lstat %q", path)
	}
	return newFileInfo(path, info), nil
}

// Open opens a file for reading
func (b *Billy) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := b.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	return f, nil
}

// ReadDir returns the direct children of a directory
func (b *Billy) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "readdir %q", path)
	}

	entries := make([]FileInfo, 0, len(list))
	for _, info := range list {
		entries = append(entries, *newFileInfo(filepath.Join(path, info.Name()), info))
	}
	return entries, nil
}

// Raw returns the underlying go-billy filesystem
func (b *Billy) Raw() billy.Filesystem {
	return b.fs
}
