package compare

import (
	"fmt"

	"github.com/sdejongh/cmpnorris/pkg/digest"
	"github.com/sdejongh/cmpnorris/pkg/logging"
	"github.com/sdejongh/cmpnorris/pkg/models"
	"github.com/sdejongh/cmpnorris/pkg/storage"
)

const (
	// DefaultChunkSize is the number of bytes compared per window
	DefaultChunkSize = 65536
	// DefaultMaxWorkers is the number of file pairs compared at once
	// by a concurrent directory comparison
	DefaultMaxWorkers = 5

	minBlockSize   = 4096
	highWaterRatio = 4
)

// Options configures a comparison. Zero values select the defaults.
type Options struct {
	// Dereference follows symbolic links when checking entry kinds and
	// when listing directories
	Dereference bool

	ChunkSize       int
	DigestAlgorithm string
	DigestEncoding  string

	Filesystem storage.Filesystem
	Lister     storage.Lister
	MaxWorkers int

	ReaderWrapper ReaderWrapper
	Progress      ProgressFunc
	Logger        logging.Logger
}

// resolve returns a copy of o with defaults filled in, or a validation error
func (o Options) resolve() (Options, error) {
	switch {
	case o.ChunkSize == 0:
		o.ChunkSize = DefaultChunkSize
	case o.ChunkSize < 0:
		return o, &models.ValidationError{Field: "ChunkSize", Message: fmt.Sprintf("must be positive, got %d", o.ChunkSize)}
	}

	switch {
	case o.MaxWorkers == 0:
		o.MaxWorkers = DefaultMaxWorkers
	case o.MaxWorkers < 0:
		return o, &models.ValidationError{Field: "MaxWorkers", Message: fmt.Sprintf("must be positive, got %d", o.MaxWorkers)}
	}

	if o.DigestAlgorithm == "" {
		o.DigestAlgorithm = digest.DefaultAlgorithm
	}
	if !digest.IsSupported(o.DigestAlgorithm) {
		return o, &models.ValidationError{Field: "DigestAlgorithm", Message: fmt.Sprintf("unsupported algorithm %q", o.DigestAlgorithm)}
	}

	if o.DigestEncoding == "" {
		o.DigestEncoding = digest.DefaultEncoding
	}
	if !digest.IsSupportedEncoding(o.DigestEncoding) {
		return o, &models.ValidationError{Field: "DigestEncoding", Message: fmt.Sprintf("unsupported encoding %q", o.DigestEncoding)}
	}

	if o.Filesystem == nil {
		o.Filesystem = storage.NewLocal()
	}
	if o.Lister == nil {
		o.Lister = storage.NewWalker(o.Filesystem, o.Dereference)
	}
	if o.Logger == nil {
		o.Logger = logging.NewNullLogger()
	}

	return o, nil
}

// blockSize is the size of a single read from a stream
func (o Options) blockSize() int {
	return max(o.ChunkSize, minBlockSize)
}

// highWater is the pending byte count above which a side stops being read
// while the other side is still running
func (o Options) highWater() int {
	return highWaterRatio * o.blockSize()
}
