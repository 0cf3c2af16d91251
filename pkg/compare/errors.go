package compare

import (
	"errors"
	"fmt"

	"github.com/sdejongh/cmpnorris/pkg/storage"
)

var (
	// ErrNotAFile is matched by errors about a path that must be a regular file
	ErrNotAFile = errors.New("not a file")
	// ErrNotADirectory is matched by errors about a path that must be a directory
	ErrNotADirectory = errors.New("not a directory")
)

// KindError reports an entry whose type does not fit the comparison
type KindError struct {
	Path string
	Want storage.FileType
	Got  storage.FileType
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %v (found %s)", e.Path, e.sentinel(), e.Got)
}

// Is makes errors.Is match ErrNotAFile or ErrNotADirectory
func (e *KindError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *KindError) sentinel() error {
	if e.Want == storage.TypeDir {
		return ErrNotADirectory
	}
	return ErrNotAFile
}

// IOError reports a failed filesystem operation
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
