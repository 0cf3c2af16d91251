package compare

import "sync/atomic"

// latch records that a terminal result has been chosen
type latch struct {
	decided atomic.Bool
}

// set claims the latch and reports whether the caller was first
func (l *latch) set() bool {
	return l.decided.CompareAndSwap(false, true)
}

func (l *latch) done() bool {
	return l.decided.Load()
}
