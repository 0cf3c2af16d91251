package compare

import (
	"context"
	"io"
	"sync"

	"github.com/sdejongh/cmpnorris/pkg/logging"
	"github.com/sdejongh/cmpnorris/pkg/storage"
)

// source is an opened stream that is closed at most once, from any goroutine
type source struct {
	io.ReadCloser
	path string

	once     sync.Once
	closeErr error
}

func (s *source) Close() error {
	s.once.Do(func() {
		s.closeErr = s.ReadCloser.Close()
	})
	return s.closeErr
}

// pair holds two opened files
type pair struct {
	path1, path2 string
	size         int64
	src          [2]*source
}

func (p *pair) close() {
	p.src[0].Close()
	p.src[1].Close()
}

// engine carries what every file comparator shares: resolved options and
// the pool of read buffers
type engine struct {
	opts    Options
	buffers *sync.Pool
}

func newEngine(opts Options) (*engine, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	blockSize := resolved.blockSize()
	return &engine{
		opts: resolved,
		buffers: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, blockSize)
				return &buf
			},
		},
	}, nil
}

// open resolves and checks both paths, then opens them. When checkSize is
// set, files of different sizes are decided without being opened: the
// returned Comparison is then the verdict and the pair is nil.
func (e *engine) open(ctx context.Context, path1, path2 string, checkSize bool) (*pair, *Comparison, error) {
	p1, p2, err := resolvePair(path1, path2)
	if err != nil {
		cmp, err := failed(path1, path2, err)
		return nil, cmp, err
	}

	info1, info2, err := statPair(ctx, e.opts, p1, p2, storage.TypeFile)
	if err != nil {
		cmp, err := failed(p1, p2, err)
		return nil, cmp, err
	}
	if checkSize {
		if cmp := sizeGate(p1, p2, info1, info2); cmp != nil {
			return nil, cmp, nil
		}
	}

	src1, err := e.openSource(ctx, p1)
	if err != nil {
		cmp, err := failed(p1, p2, err)
		return nil, cmp, err
	}
	src2, err := e.openSource(ctx, p2)
	if err != nil {
		src1.Close()
		cmp, err := failed(p1, p2, err)
		return nil, cmp, err
	}

	return &pair{path1: p1, path2: p2, size: info1.Size, src: [2]*source{src1, src2}}, nil, nil
}

func (e *engine) openSource(ctx context.Context, path string) (*source, error) {
	rc, err := e.opts.Filesystem.Open(ctx, path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	if e.opts.ReaderWrapper != nil {
		rc = e.opts.ReaderWrapper(rc)
	}
	return &source{ReadCloser: rc, path: path}, nil
}

func (e *engine) getBuffer() *[]byte {
	return e.buffers.Get().(*[]byte)
}

func (e *engine) putBuffer(buf *[]byte) {
	e.buffers.Put(buf)
}

func (e *engine) logResult(ctx context.Context, method string, cmp *Comparison) {
	fields := logging.Fields{
		"method": method,
		"path1":  cmp.Path1,
		"path2":  cmp.Path2,
		"result": string(cmp.Result),
		"bytes":  cmp.BytesCompared,
	}
	if cmp.Result == Failed {
		e.opts.Logger.Error(ctx, "file comparison failed", cmp.Error, fields)
		return
	}
	fields["reason"] = cmp.Reason
	e.opts.Logger.Debug(ctx, "file comparison finished", fields)
}
