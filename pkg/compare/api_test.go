package compare

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sdejongh/cmpnorris/pkg/models"
)

type outcome struct {
	cmp *Comparison
	err error
}

// await collects the callback result and fails if it is delivered twice
func await(t *testing.T, start func(done Callback)) outcome {
	t.Helper()
	results := make(chan outcome, 2)
	start(func(cmp *Comparison, err error) {
		results <- outcome{cmp, err}
	})

	var first outcome
	select {
	case first = <-results:
	case <-time.After(10 * time.Second):
		t.Fatal("callback was never called")
	}
	select {
	case <-results:
		t.Fatal("callback was called twice")
	case <-time.After(50 * time.Millisecond):
	}
	return first
}

func TestConcurrentOperations(t *testing.T) {
	h := NewTestHelper(t)
	f1, f2 := h.CreateBoth("x", []byte("abc"))
	h.CreateBoth("sub/y", []byte("def"))
	other := h.CreateFile2("z", []byte("abd"))

	ctx := context.Background()
	tests := []struct {
		name  string
		start func(done Callback)
		want  Result
	}{
		{"FilesByByte", func(done Callback) { FilesByByte(ctx, f1, f2, Options{}, done) }, Equal},
		{"FilesByByteDiffer", func(done Callback) { FilesByByte(ctx, f1, other, Options{}, done) }, NotEqual},
		{"FilesByDigest", func(done Callback) { FilesByDigest(ctx, f1, f2, Options{}, done) }, Equal},
		{"FilesByDigestDiffer", func(done Callback) { FilesByDigest(ctx, f1, other, Options{}, done) }, NotEqual},
		{"DirsByByte", func(done Callback) { DirsByByte(ctx, h.Root1(), h.Root1(), Options{}, done) }, Equal},
		{"DirsByByteDiffer", func(done Callback) { DirsByByte(ctx, h.Root1(), h.Root2(), Options{}, done) }, NotEqual},
		{"DirsByDigest", func(done Callback) { DirsByDigest(ctx, h.Root1(), h.Root1(), Options{}, done) }, Equal},
		{"DirsByDigestDiffer", func(done Callback) { DirsByDigest(ctx, h.Root1(), h.Root2(), Options{}, done) }, NotEqual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := await(t, tt.start)
			if got.err != nil {
				t.Fatalf("error = %v", got.err)
			}
			if got.cmp.Result != tt.want {
				t.Errorf("Result = %s (%s), want %s", got.cmp.Result, got.cmp.Reason, tt.want)
			}
		})
	}
}

func TestConcurrentOperationsFailures(t *testing.T) {
	h := NewTestHelper(t)
	f1 := h.CreateFile1("x", []byte("abc"))

	t.Run("NotAFile", func(t *testing.T) {
		got := await(t, func(done Callback) {
			FilesByByte(context.Background(), f1, h.Root2(), Options{}, done)
		})
		if !errors.Is(got.err, ErrNotAFile) {
			t.Errorf("error = %v, want ErrNotAFile", got.err)
		}
		if got.cmp == nil || got.cmp.Result != Failed {
			t.Errorf("expected failed comparison, got %+v", got.cmp)
		}
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		got := await(t, func(done Callback) {
			FilesByDigest(context.Background(), f1, f1, Options{DigestAlgorithm: "nope"}, done)
		})
		var valErr *models.ValidationError
		if !errors.As(got.err, &valErr) {
			t.Errorf("error = %v, want validation error", got.err)
		}
		if got.cmp == nil || got.cmp.Result != Failed {
			t.Errorf("expected failed comparison, got %+v", got.cmp)
		}
	})
}

func TestBlockingOperations(t *testing.T) {
	h := NewTestHelper(t)
	f1, f2 := h.CreateBoth("x", []byte("abc"))
	h.CreateBoth("sub/y", []byte("def"))

	ctx := context.Background()
	tests := []struct {
		name string
		run  func() (*Comparison, error)
	}{
		{"FilesByByteSync", func() (*Comparison, error) { return FilesByByteSync(ctx, f1, f2, Options{}) }},
		{"FilesByDigestSync", func() (*Comparison, error) { return FilesByDigestSync(ctx, f1, f2, Options{}) }},
		{"DirsByByteSync", func() (*Comparison, error) { return DirsByByteSync(ctx, h.Root1(), h.Root2(), Options{}) }},
		{"DirsByDigestSync", func() (*Comparison, error) { return DirsByDigestSync(ctx, h.Root1(), h.Root2(), Options{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := tt.run()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if cmp.Result != Equal {
				t.Errorf("Result = %s (%s), want equal", cmp.Result, cmp.Reason)
			}
		})
	}

	t.Run("NotADirectory", func(t *testing.T) {
		_, err := DirsByByteSync(ctx, f1, h.Root2(), Options{})
		if !errors.Is(err, ErrNotADirectory) {
			t.Errorf("error = %v, want ErrNotADirectory", err)
		}
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		cmp, err := FilesByByteSync(ctx, f1, f2, Options{ChunkSize: -5})
		var valErr *models.ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "ChunkSize" {
			t.Errorf("error = %v, want ChunkSize validation error", err)
		}
		if cmp != nil {
			t.Errorf("expected no comparison, got %+v", cmp)
		}
	})
}
