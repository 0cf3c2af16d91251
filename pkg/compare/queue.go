package compare

const minQueueCapacity = 512

// byteQueue is a growable ring buffer of pending bytes
type byteQueue struct {
	buf  []byte
	head int
	size int
}

// Len returns the number of pending bytes
func (q *byteQueue) Len() int {
	return q.size
}

// Write appends p, growing the buffer when needed
func (q *byteQueue) Write(p []byte) {
	if len(p) == 0 {
		return
	}
	if q.size+len(p) > len(q.buf) {
		q.grow(q.size + len(p))
	}

	tail := (q.head + q.size) % len(q.buf)
	n := copy(q.buf[tail:], p)
	copy(q.buf, p[n:])
	q.size += len(p)
}

// Read moves up to len(p) bytes from the front of the queue into p
func (q *byteQueue) Read(p []byte) int {
	n := q.peek(p)
	q.size -= n
	if q.size == 0 {
		q.head = 0
	} else {
		q.head = (q.head + n) % len(q.buf)
	}
	return n
}

// peek copies up to len(p) bytes from the front without consuming them
func (q *byteQueue) peek(p []byte) int {
	n := min(len(p), q.size)
	if n == 0 {
		return 0
	}
	first := min(n, len(q.buf)-q.head)
	copy(p, q.buf[q.head:q.head+first])
	copy(p[first:n], q.buf[:n-first])
	return n
}

func (q *byteQueue) grow(need int) {
	buf := make([]byte, max(2*len(q.buf), need, minQueueCapacity))
	q.peek(buf)
	q.buf = buf
	q.head = 0
}
