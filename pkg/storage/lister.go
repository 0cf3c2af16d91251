package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sdejongh/cmpnorris/internal/platform"
)

// Walker lists a directory tree recursively through a Filesystem
type Walker struct {
	fs          Filesystem
	dereference bool
}

// NewWalker creates a recursive lister.
// When dereference is set, symbolic links are classified by their target
// and linked directories are descended into. Link cycles are not detected.
func NewWalker(fs Filesystem, dereference bool) *Walker {
	return &Walker{fs: fs, dereference: dereference}
}

// List returns all entries below root
func (w *Walker) List(ctx context.Context, root string) ([]FileInfo, error) {
	var entries []FileInfo
	if err := w.walk(ctx, root, root, &entries); err != nil {
		return nil, errors.Wrapf(err, "list %q", root)
	}
	return entries, nil
}

func (w *Walker) walk(ctx context.Context, root, dir string, out *[]FileInfo) error {
	children, err := w.fs.ReadDir(ctx, dir)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return err
		}

		if child.Type == TypeSymlink && w.dereference {
			target, err := w.fs.Stat(ctx, child.Path)
			if err != nil {
				return err
			}
			child.Size = target.Size
			child.ModTime = target.ModTime
			child.Type = target.Type
			child.Permissions = target.Permissions
		}

		rel, err := platform.RelativeTo(root, child.Path)
		if err != nil {
			return err
		}
		child.RelativePath = rel
		*out = append(*out, child)

		if child.Type == TypeDir {
			if err := w.walk(ctx, root, child.Path, out); err != nil {
				return err
			}
		}
	}
	return nil
}
