package compare

import (
	"bytes"
	"testing"
)

func TestByteQueueFIFO(t *testing.T) {
	var q byteQueue
	var want []byte

	// Interleave writes and reads so the ring wraps and grows several times
	var got []byte
	next := 0
	for round := 0; round < 200; round++ {
		chunk := pattern(round%37 + 1)
		for i := range chunk {
			chunk[i] = byte(next)
			next++
		}
		q.Write(chunk)
		want = append(want, chunk...)

		out := make([]byte, round%23)
		n := q.Read(out)
		got = append(got, out[:n]...)
	}
	rest := make([]byte, q.Len())
	q.Read(rest)
	got = append(got, rest...)

	if !bytes.Equal(got, want) {
		t.Fatalf("queue returned bytes out of order")
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after draining, want 0", q.Len())
	}
}

func TestByteQueueWrapAround(t *testing.T) {
	var q byteQueue
	q.Write(make([]byte, minQueueCapacity-10))
	q.Read(make([]byte, minQueueCapacity-20))

	// Fits without growing: tail wraps to the front of the buffer
	in := []byte("0123456789abcdef0123")
	q.Write(in)
	if len(q.buf) != minQueueCapacity {
		t.Fatalf("queue grew to %d, want %d", len(q.buf), minQueueCapacity)
	}

	out := make([]byte, q.Len())
	if n := q.Read(out); n != 30 {
		t.Fatalf("Read() = %d, want 30", n)
	}
	if !bytes.Equal(out[10:], in) {
		t.Errorf("wrapped bytes = %q, want %q", out[10:], in)
	}
}

func TestByteQueueEmpty(t *testing.T) {
	var q byteQueue
	q.Write(nil)
	if n := q.Read(make([]byte, 8)); n != 0 {
		t.Errorf("Read() on empty queue = %d, want 0", n)
	}
}

func TestWindow(t *testing.T) {
	t.Run("DrainComparesFullChunks", func(t *testing.T) {
		w := newWindow(4)
		w.push(0, []byte("abcdefg"))
		w.push(1, []byte("abcd"))
		if !w.drain() {
			t.Fatal("drain() reported a difference")
		}
		if w.compared != 4 || w.buffered(0) != 3 || w.buffered(1) != 0 {
			t.Errorf("compared=%d pending=%d/%d", w.compared, w.buffered(0), w.buffered(1))
		}
	})

	t.Run("DrainReportsOffset", func(t *testing.T) {
		w := newWindow(4)
		w.push(0, []byte("abcdefgh"))
		w.push(1, []byte("abcdefXh"))
		if w.drain() {
			t.Fatal("drain() missed a difference")
		}
		if w.reason != "content differs at byte offset 6" {
			t.Errorf("reason = %q", w.reason)
		}
	})

	t.Run("SettleRemainders", func(t *testing.T) {
		w := newWindow(4)
		w.push(0, []byte("abcdef"))
		w.push(1, []byte("abcdef"))
		if !w.settle() {
			t.Fatalf("settle() = false: %s", w.reason)
		}
		if w.compared != 6 {
			t.Errorf("compared = %d, want 6", w.compared)
		}
	})

	t.Run("SettleLengthMismatch", func(t *testing.T) {
		w := newWindow(4)
		w.push(0, []byte("abcde"))
		w.push(1, []byte("abcdef"))
		if w.settle() {
			t.Fatal("settle() accepted remainders of different length")
		}
	})

	t.Run("Diverged", func(t *testing.T) {
		w := newWindow(4)
		w.push(0, []byte("ab"))
		w.push(1, []byte("abc"))
		if w.diverged([2]bool{false, false}) {
			t.Error("diverged() while both sides run")
		}
		if !w.diverged([2]bool{true, false}) {
			t.Error("diverged() missed an ended shorter side")
		}
		if w.diverged([2]bool{false, true}) {
			t.Error("diverged() when the ended side is longer")
		}
	})
}
