package compare

import (
	"bytes"
	"fmt"
)

// window holds the pending bytes of both sides of a byte comparison and
// compares them in equal, chunk-sized windows
type window struct {
	chunk    int
	pending  [2]byteQueue
	scratch  [2][]byte
	compared int64
	reason   string
}

func newWindow(chunk int) *window {
	return &window{
		chunk:   chunk,
		scratch: [2][]byte{make([]byte, chunk), make([]byte, chunk)},
	}
}

// push appends bytes read from one side
func (w *window) push(side int, p []byte) {
	w.pending[side].Write(p)
}

func (w *window) buffered(side int) int {
	return w.pending[side].Len()
}

// drain compares full chunks while both sides hold one.
// It returns false on the first difference.
func (w *window) drain() bool {
	for w.pending[0].Len() >= w.chunk && w.pending[1].Len() >= w.chunk {
		w.pending[0].Read(w.scratch[0])
		w.pending[1].Read(w.scratch[1])
		if !w.same(w.scratch[0], w.scratch[1]) {
			return false
		}
	}
	return true
}

// settle compares the remainders once both sides have ended
func (w *window) settle() bool {
	if !w.drain() {
		return false
	}
	n0, n1 := w.pending[0].Len(), w.pending[1].Len()
	if n0 != n1 {
		w.reason = fmt.Sprintf("length mismatch after %d bytes", w.compared+int64(min(n0, n1)))
		return false
	}
	a, b := w.scratch[0][:n0], w.scratch[1][:n1]
	w.pending[0].Read(a)
	w.pending[1].Read(b)
	return w.same(a, b)
}

// diverged reports whether a side that has ended holds fewer pending bytes
// than the other side. Both sides always consume the same number of bytes,
// so their total lengths must differ.
func (w *window) diverged(ended [2]bool) bool {
	n0, n1 := w.pending[0].Len(), w.pending[1].Len()
	if (ended[0] && n1 > n0) || (ended[1] && n0 > n1) {
		w.reason = fmt.Sprintf("length mismatch after %d bytes", w.compared+int64(min(n0, n1)))
		return true
	}
	return false
}

func (w *window) same(a, b []byte) bool {
	if bytes.Equal(a, b) {
		w.compared += int64(len(a))
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			w.reason = fmt.Sprintf("content differs at byte offset %d", w.compared+int64(i))
			break
		}
	}
	return false
}
