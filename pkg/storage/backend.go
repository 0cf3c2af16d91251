package storage

import (
	"context"
	"io"
	"os"
	"time"
)

// FileType classifies a filesystem entry
type FileType string

const (
	// TypeFile is a regular file
	TypeFile FileType = "file"
	// TypeDir is a directory
	TypeDir FileType = "dir"
	// TypeSymlink is a symbolic link that was not followed
	TypeSymlink FileType = "symlink"
	// TypeOther is anything else (device, socket, pipe...)
	TypeOther FileType = "other"
)

// FileInfo represents metadata about a filesystem entry
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	Type         FileType
	Permissions  uint32
}

// IsFile reports whether the entry is a regular file
func (fi *FileInfo) IsFile() bool {
	return fi.Type == TypeFile
}

// IsDir reports whether the entry is a directory
func (fi *FileInfo) IsDir() bool {
	return fi.Type == TypeDir
}

// Filesystem is the set of operations the comparators need from storage.
// Paths are absolute.
type Filesystem interface {
	// Stat returns metadata, following symbolic links
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Lstat returns metadata of the entry itself, without following links
	Lstat(ctx context.Context, path string) (*FileInfo, error)

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadDir returns the direct children of a directory, not following links
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)
}

// Lister returns every entry below root, recursively. The root itself is
// not part of the result.
type Lister interface {
	List(ctx context.Context, root string) ([]FileInfo, error)
}

// typeOf maps file mode bits to a FileType
func typeOf(mode os.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return TypeFile
	case mode.IsDir():
		return TypeDir
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	default:
		return TypeOther
	}
}

func newFileInfo(path string, info os.FileInfo) *FileInfo {
	return &FileInfo{
		Path:        path,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Type:        typeOf(info.Mode()),
		Permissions: uint32(info.Mode().Perm()),
	}
}
