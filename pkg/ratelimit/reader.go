package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Limiter is a token bucket shared by every stream of a run
type Limiter struct {
	bytesPerSecond int64
	mu             sync.Mutex
	tokens         int64     // Available tokens (bytes)
	lastUpdate     time.Time // Last time tokens were updated
	bucketSize     int64     // Maximum tokens (burst size)
}

// NewLimiter creates a limiter allowing bytesPerSecond bytes per second.
// It returns nil, meaning no limit, when bytesPerSecond is not positive.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second worth of data, at least 64KB so that reads are not split too finely
	bucketSize := max(bytesPerSecond, 65536)

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
		bucketSize:     bucketSize,
	}
}

// Wait blocks until n tokens are available and takes them.
// n is capped at the bucket size. It returns early when ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int64) error {
	n = min(n, l.bucketSize)
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= n {
			l.tokens -= n
			l.mu.Unlock()
			return nil
		}
		deficit := n - l.tokens
		l.mu.Unlock()

		wait := max(time.Duration(float64(deficit)/float64(l.bytesPerSecond)*float64(time.Second)), time.Millisecond)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refund returns tokens taken by Wait but not used
func (l *Limiter) refund(n int64) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = min(l.tokens+n, l.bucketSize)
}

// refill adds tokens based on elapsed time (must be called with lock held)
func (l *Limiter) refill() {
	now := time.Now()
	tokensToAdd := int64(float64(now.Sub(l.lastUpdate)) / float64(time.Second) * float64(l.bytesPerSecond))
	if tokensToAdd > 0 {
		l.tokens = min(l.tokens+tokensToAdd, l.bucketSize)
		l.lastUpdate = now
	}
}

// ReadCloser is a rate limited io.ReadCloser
type ReadCloser struct {
	rc      io.ReadCloser
	limiter *Limiter
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewReadCloser wraps rc so that reads draw from limiter.
// Closing the stream interrupts a read waiting for tokens.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	ctx, cancel := context.WithCancel(ctx)
	return &ReadCloser{rc: rc, limiter: limiter, ctx: ctx, cancel: cancel}
}

// Read reads at most as many bytes as the limiter grants
func (r *ReadCloser) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return r.rc.Read(p)
	}

	granted := min(int64(len(p)), r.limiter.bucketSize)
	if err := r.limiter.Wait(r.ctx, granted); err != nil {
		return 0, err
	}

	n, err := r.rc.Read(p[:granted])
	r.limiter.refund(granted - int64(n))
	return n, err
}

// Close closes the wrapped stream
func (r *ReadCloser) Close() error {
	r.cancel()
	return r.rc.Close()
}

// Wrapper returns a function wrapping streams with limiter, for use as a
// comparator reader wrapper. A nil limiter yields nil.
func Wrapper(ctx context.Context, limiter *Limiter) func(io.ReadCloser) io.ReadCloser {
	if limiter == nil {
		return nil
	}
	return func(rc io.ReadCloser) io.ReadCloser {
		return NewReadCloser(ctx, rc, limiter)
	}
}
