package compare

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ByteComparator compares files byte-by-byte.
// Each file is read by its own goroutine; a single driver goroutine owns
// the pending bytes of both sides and compares them chunk by chunk, so a
// difference is detected as soon as both sides have delivered it.
type ByteComparator struct {
	*engine
}

// NewByteComparator creates a concurrent byte-by-byte comparator
func NewByteComparator(opts Options) (*ByteComparator, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &ByteComparator{engine: e}, nil
}

// block is one read delivered by a reader goroutine
type block struct {
	buf *[]byte
	n   int
	err error
}

// Compare compares two files byte-by-byte
func (c *ByteComparator) Compare(ctx context.Context, path1, path2 string) (cmp *Comparison, err error) {
	defer func() { c.logResult(ctx, c.Name(), cmp) }()

	p, cmp, err := c.open(ctx, path1, path2, true)
	if p == nil {
		return cmp, err
	}
	return c.stream(ctx, p)
}

func (c *ByteComparator) stream(ctx context.Context, p *pair) (*Comparison, error) {
	readCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	var in [2]chan block
	for i := range in {
		in[i] = make(chan block)
		wg.Add(1)
		go c.read(readCtx, &wg, p.src[i], in[i])
	}
	defer func() {
		cancel()
		p.close()
		wg.Wait()
	}()

	w := newWindow(c.opts.ChunkSize)
	progress := newProgressTracker(c.opts.Progress, p.path1, p.size)
	limit := c.opts.highWater()
	var ended [2]bool

	for !ended[0] || !ended[1] {
		// A side is paused while it is far ahead of a side that is still running
		var recv [2]chan block
		for i := range recv {
			if !ended[i] && (w.buffered(i) < limit || ended[1-i]) {
				recv[i] = in[i]
			}
		}

		var b block
		var side int
		select {
		case <-ctx.Done():
			return failed(p.path1, p.path2, ctx.Err())
		case b = <-recv[0]:
			side = 0
		case b = <-recv[1]:
			side = 1
		}

		if b.buf != nil {
			w.push(side, (*b.buf)[:b.n])
			c.putBuffer(b.buf)
		}
		switch {
		case b.err == io.EOF:
			ended[side] = true
		case b.err != nil:
			return failed(p.path1, p.path2, &IOError{Op: "read", Path: p.src[side].path, Err: b.err})
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

// read delivers blocks from src until it ends, fails or ctx is cancelled
func (c *ByteComparator) read(ctx context.Context, wg *sync.WaitGroup, src io.Reader, out chan<- block) {
	defer wg.Done()
	for {
		buf := c.getBuffer()
		n, err := src.Read(*buf)
		select {
		case out <- block{buf: buf, n: n, err: err}:
		case <-ctx.Done():
			c.putBuffer(buf)
			return
		}
		if err != nil {
			return
		}
	}
}

func byteVerdict(p *pair, w *window, result Result) *Comparison {
	cmp := notEqual(p.path1, p.path2, w.reason)
	if result == Equal {
		cmp = equal(p.path1, p.path2, fmt.Sprintf("content matches (%d bytes)", w.compared))
	}
	cmp.BytesCompared = w.compared
	cmp.FilesCompared = 1
	return cmp
}

// Name returns the comparator name
func (c *ByteComparator) Name() string {
	return "byte"
}
