package compare

import (
	"context"
	"hash"
	"io"

	"github.com/sdejongh/cmpnorris/pkg/digest"
)

// BlockingByteComparator compares files byte-by-byte from the calling
// goroutine, reading one block from each file in turn
type BlockingByteComparator struct {
	*engine
}

// NewBlockingByteComparator creates a sequential byte-by-byte comparator
func NewBlockingByteComparator(opts Options) (*BlockingByteComparator, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &BlockingByteComparator{engine: e}, nil
}

// Compare compares two files byte-by-byte
func (c *BlockingByteComparator) Compare(ctx context.Context, path1, path2 string) (cmp *Comparison, err error) {
	defer func() { c.logResult(ctx, c.Name(), cmp) }()

	p, cmp, err := c.open(ctx, path1, path2, true)
	if p == nil {
		return cmp, err
	}
	defer p.close()

	buf := c.getBuffer()
	defer c.putBuffer(buf)

	w := newWindow(c.opts.ChunkSize)
	progress := newProgressTracker(c.opts.Progress, p.path1, p.size)
	limit := c.opts.highWater()
	var ended [2]bool

	for !ended[0] || !ended[1] {
		if err := ctx.Err(); err != nil {
			return failed(p.path1, p.path2, err)
		}

		for i, src := range p.src {
			if ended[i] || (w.buffered(i) >= limit && !ended[1-i]) {
				continue
			}
			n, err := src.Read(*buf)
			w.push(i, (*buf)[:n])
			if err == io.EOF {
				ended[i] = true
			} else if err != nil {
				return failed(p.path1, p.path2, &IOError{Op: "read", Path: src.path, Err: err})
			}
		}

		if !w.drain() || w.diverged(ended) {
			return byteVerdict(p, w, NotEqual), nil
		}
		progress.update(w.compared)
	}

	if !w.settle() {
		return byteVerdict(p, w, NotEqual), nil
	}
	progress.finish(w.compared)
	return byteVerdict(p, w, Equal), nil
}

// Name returns the comparator name
func (c *BlockingByteComparator) Name() string {
	return "byte"
}

// BlockingDigestComparator hashes both files from the calling goroutine,
// reading one block from each file in turn
type BlockingDigestComparator struct {
	*engine
}

// NewBlockingDigestComparator creates a sequential digest comparator
func NewBlockingDigestComparator(opts Options) (*BlockingDigestComparator, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &BlockingDigestComparator{engine: e}, nil
}

// Compare compares the digests of two files
func (c *BlockingDigestComparator) Compare(ctx context.Context, path1, path2 string) (cmp *Comparison, err error) {
	defer func() { c.logResult(ctx, c.Name(), cmp) }()

	p, cmp, err := c.open(ctx, path1, path2, false)
	if p == nil {
		return cmp, err
	}
	defer p.close()

	var hashers [2]hash.Hash
	for i := range hashers {
		if hashers[i], err = digest.New(c.opts.DigestAlgorithm); err != nil {
			return failed(p.path1, p.path2, err)
		}
	}

	buf := c.getBuffer()
	defer c.putBuffer(buf)

	progress := newProgressTracker(c.opts.Progress, p.path1, p.size)
	var counts [2]int64
	var ended [2]bool

	for !ended[0] || !ended[1] {
		if err := ctx.Err(); err != nil {
			return failed(p.path1, p.path2, err)
		}

		for i, src := range p.src {
			if ended[i] {
				continue
			}
			n, err := src.Read(*buf)
			hashers[i].Write((*buf)[:n])
			counts[i] += int64(n)
			if err == io.EOF {
				ended[i] = true
			} else if err != nil {
				return failed(p.path1, p.path2, &IOError{Op: "read", Path: src.path, Err: err})
			}
		}
		progress.update(counts[0])
	}
	progress.finish(counts[0])

	var sums [2]string
	for i, h := range hashers {
		if sums[i], err = digest.Encode(h.Sum(nil), c.opts.DigestEncoding); err != nil {
			return failed(p.path1, p.path2, err)
		}
	}
	return digestVerdict(p, c.opts.DigestAlgorithm, sums, counts[0]), nil
}

// Name returns the comparator name
func (c *BlockingDigestComparator) Name() string {
	return "digest"
}
