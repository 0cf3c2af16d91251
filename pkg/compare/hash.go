package compare

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/cmpnorris/pkg/digest"
)

// DigestComparator compares files by hashing both streams concurrently and
// comparing the encoded digests. File sizes are never used as a shortcut.
type DigestComparator struct {
	*engine
}

// NewDigestComparator creates a concurrent digest comparator
func NewDigestComparator(opts Options) (*DigestComparator, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &DigestComparator{engine: e}, nil
}

// Compare compares the digests of two files
func (c *DigestComparator) Compare(ctx context.Context, path1, path2 string) (cmp *Comparison, err error) {
	defer func() { c.logResult(ctx, c.Name(), cmp) }()

	p, cmp, err := c.open(ctx, path1, path2, false)
	if p == nil {
		return cmp, err
	}
	return c.stream(ctx, p)
}

func (c *DigestComparator) stream(ctx context.Context, p *pair) (*Comparison, error) {
	defer p.close()

	g, gctx := errgroup.WithContext(ctx)
	// the first failure closes both streams, unblocking the other reader
	stop := context.AfterFunc(gctx, p.close)
	defer stop()

	var sums [2]string
	var counts [2]int64
	for i := range p.src {
		var progress *progressTracker
		if i == 0 {
			progress = newProgressTracker(c.opts.Progress, p.path1, p.size)
		}
		g.Go(func() error {
			sum, n, err := c.hash(gctx, p.src[i], progress)
			sums[i], counts[i] = sum, n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return failed(p.path1, p.path2, err)
	}
	return digestVerdict(p, c.opts.DigestAlgorithm, sums, counts[0]), nil
}

// hash streams src through a new hasher and returns the encoded digest
func (c *DigestComparator) hash(ctx context.Context, src *source, progress *progressTracker) (string, int64, error) {
	h, err := digest.New(c.opts.DigestAlgorithm)
	if err != nil {
		return "", 0, err
	}

	buf := c.getBuffer()
	defer c.putBuffer(buf)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return "", total, err
		}

		n, err := src.Read(*buf)
		if n > 0 {
			h.Write((*buf)[:n])
			total += int64(n)
			progress.update(total)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", total, ctx.Err()
			}
			return "", total, &IOError{Op: "read", Path: src.path, Err: err}
		}
	}
	progress.finish(total)

	sum, err := digest.Encode(h.Sum(nil), c.opts.DigestEncoding)
	return sum, total, err
}

func digestVerdict(p *pair, algorithm string, sums [2]string, n int64) *Comparison {
	var cmp *Comparison
	if sums[0] == sums[1] {
		cmp = equal(p.path1, p.path2, algorithm+" digests match")
	} else {
		cmp = notEqual(p.path1, p.path2, algorithm+" digests differ")
	}
	cmp.Digest1 = sums[0]
	cmp.Digest2 = sums[1]
	cmp.BytesCompared = n
	cmp.FilesCompared = 1
	return cmp
}

// Name returns the comparator name
func (c *DigestComparator) Name() string {
	return "digest"
}
