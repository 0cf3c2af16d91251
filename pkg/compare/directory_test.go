package compare

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/cmpnorris/pkg/models"
	"github.com/sdejongh/cmpnorris/pkg/storage"
)

type dirComparatorCase struct {
	name     string
	mode     models.Mode
	blocking bool
}

func dirComparators() []dirComparatorCase {
	return []dirComparatorCase{
		{"Byte", models.ModeByte, false},
		{"BlockingByte", models.ModeByte, true},
		{"Digest", models.ModeDigest, false},
		{"BlockingDigest", models.ModeDigest, true},
	}
}

func compareDirs(t *testing.T, tc dirComparatorCase, opts Options, path1, path2 string) (*Comparison, error) {
	t.Helper()
	c, err := New(models.TargetDirs, tc.mode, tc.blocking, opts)
	if err != nil {
		t.Fatalf("failed to create comparator: %v", err)
	}
	return c.Compare(context.Background(), path1, path2)
}

func TestDirectoryComparatorScenario(t *testing.T) {
	h := NewTestHelper(t)
	// A = one, B = two, C = three
	h.CreateBoth("x", []byte("abc"))
	h.CreateBoth("sub/y", []byte("def"))
	rootC := filepath.Join(h.tempDir, "three")
	h.write(filepath.Join(rootC, "x"), []byte("abc"))
	h.write(filepath.Join(rootC, "sub", "y"), []byte("xyz"))

	for _, tc := range dirComparators() {
		t.Run(tc.name, func(t *testing.T) {
			cmp, err := compareDirs(t, tc, Options{}, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare(A, B) error = %v", err)
			}
			if cmp.Result != Equal {
				t.Fatalf("Compare(A, B) = %s (%s), want equal", cmp.Result, cmp.Reason)
			}
			if cmp.FilesCompared != 2 || cmp.BytesCompared != 6 {
				t.Errorf("FilesCompared=%d BytesCompared=%d, want 2 and 6", cmp.FilesCompared, cmp.BytesCompared)
			}

			cmp, err = compareDirs(t, tc, Options{}, h.Root1(), rootC)
			if err != nil {
				t.Fatalf("Compare(A, C) error = %v", err)
			}
			if cmp.Result != NotEqual {
				t.Fatalf("Compare(A, C) = %s, want not_equal", cmp.Result)
			}
			if !strings.HasPrefix(cmp.Reason, "sub/y: ") {
				t.Errorf("Reason = %q, want it to name sub/y", cmp.Reason)
			}
		})
	}
}

func TestDirectoryComparatorTreeChanges(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(h *TestHelper)
		reason string
	}{
		{
			name: "FileAdded",
			setup: func(h *TestHelper) {
				h.CreateFile2("extra", []byte("new"))
			},
			reason: "entry count mismatch: 3 != 4",
		},
		{
			name: "FileRemoved",
			setup: func(h *TestHelper) {
				if err := os.Remove(h.Path2("a")); err != nil {
					h.t.Fatal(err)
				}
			},
			reason: "entry count mismatch: 3 != 2",
		},
		{
			name: "FileRenamed",
			setup: func(h *TestHelper) {
				if err := os.Rename(h.Path2("a"), h.Path2("renamed")); err != nil {
					h.t.Fatal(err)
				}
			},
			reason: "a: missing in ",
		},
		{
			name: "FileMovedToOtherDirectory",
			setup: func(h *TestHelper) {
				if err := os.Rename(h.Path2("d/b"), h.Path2("b")); err != nil {
					h.t.Fatal(err)
				}
			},
			reason: "d/b: missing in ",
		},
		{
			name: "FileReplacedByDirectory",
			setup: func(h *TestHelper) {
				if err := os.Remove(h.Path2("a")); err != nil {
					h.t.Fatal(err)
				}
				if err := os.Mkdir(h.Path2("a"), 0755); err != nil {
					h.t.Fatal(err)
				}
			},
			reason: "a: missing in ",
		},
	}

	for _, tt := range tests {
		for _, tc := range dirComparators() {
			t.Run(tt.name+"/"+tc.name, func(t *testing.T) {
				h := NewTestHelper(t)
				h.CreateBoth("a", []byte("alpha"))
				h.CreateBoth("d/b", []byte("beta"))
				tt.setup(h)

				cmp, err := compareDirs(t, tc, Options{}, h.Root1(), h.Root2())
				if err != nil {
					t.Fatalf("Compare() error = %v", err)
				}
				if cmp.Result != NotEqual {
					t.Fatalf("Result = %s, want not_equal", cmp.Result)
				}
				if !strings.HasPrefix(cmp.Reason, tt.reason) {
					t.Errorf("Reason = %q, want prefix %q", cmp.Reason, tt.reason)
				}
			})
		}
	}
}

func TestDirectoryComparatorEmptyTrees(t *testing.T) {
	h := NewTestHelper(t)

	for _, tc := range dirComparators() {
		t.Run(tc.name, func(t *testing.T) {
			cmp, err := compareDirs(t, tc, Options{}, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != Equal || cmp.FilesCompared != 0 {
				t.Errorf("Result = %s, FilesCompared = %d; want equal and 0", cmp.Result, cmp.FilesCompared)
			}
		})
	}
}

func TestDirectoryComparatorManyFiles(t *testing.T) {
	for _, tc := range dirComparators() {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTestHelper(t)
			for i := 0; i < 40; i++ {
				h.CreateBoth(fmt.Sprintf("dir%d/file%02d", i%4, i), pattern(1000+i))
			}

			opts := Options{MaxWorkers: 3, ChunkSize: 256}
			cmp, err := compareDirs(t, tc, opts, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != Equal || cmp.FilesCompared != 40 {
				t.Fatalf("Result = %s, FilesCompared = %d; want equal and 40", cmp.Result, cmp.FilesCompared)
			}

			changed := pattern(1017)
			changed[500]++
			h.CreateFile2("dir1/file17", changed)

			cmp, err = compareDirs(t, tc, opts, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != NotEqual {
				t.Fatalf("Result = %s, want not_equal", cmp.Result)
			}
			if !strings.HasPrefix(cmp.Reason, "dir1/file17: ") {
				t.Errorf("Reason = %q, want it to name dir1/file17", cmp.Reason)
			}
		})
	}
}

func TestDirectoryComparatorManyDifferences(t *testing.T) {
	h := NewTestHelper(t)
	changed := make(map[string]bool)
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("dir%d/file%02d", i%4, i)
		content := pattern(2000 + i)
		h.CreateFile1(name, content)
		if i%4 != 0 {
			content = append([]byte(nil), content...)
			content[i*10]++
			changed[name] = true
		}
		h.CreateFile2(name, content)
	}

	ctx := context.Background()
	opts := Options{MaxWorkers: 4, ChunkSize: 64}
	starts := map[string]func(done Callback){
		"DirsByByte":   func(done Callback) { DirsByByte(ctx, h.Root1(), h.Root2(), opts, done) },
		"DirsByDigest": func(done Callback) { DirsByDigest(ctx, h.Root1(), h.Root2(), opts, done) },
	}

	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			for run := 0; run < 10; run++ {
				got := await(t, start)
				if got.err != nil {
					t.Fatalf("run %d: error = %v", run, got.err)
				}
				if got.cmp.Result != NotEqual {
					t.Fatalf("run %d: Result = %s (%s), want not_equal", run, got.cmp.Result, got.cmp.Reason)
				}
				rel, _, _ := strings.Cut(got.cmp.Reason, ": ")
				if !changed[rel] {
					t.Errorf("run %d: Reason = %q does not name a changed file", run, got.cmp.Reason)
				}
			}
		})
	}
}

func TestDirectoryComparatorRejectsFiles(t *testing.T) {
	h := NewTestHelper(t)
	file := h.CreateFile1("f", []byte("x"))

	for _, tc := range dirComparators() {
		t.Run(tc.name, func(t *testing.T) {
			cmp, err := compareDirs(t, tc, Options{}, file, h.Root2())
			if !errors.Is(err, ErrNotADirectory) {
				t.Errorf("error = %v, want ErrNotADirectory", err)
			}
			if cmp.Result != Failed {
				t.Errorf("Result = %s, want failed", cmp.Result)
			}
		})
	}
}

func TestDirectoryComparatorMissingRoot(t *testing.T) {
	h := NewTestHelper(t)
	missing := filepath.Join(h.tempDir, "nowhere")

	for _, tc := range dirComparators() {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compareDirs(t, tc, Options{}, h.Root1(), missing)
			var ioErr *IOError
			if !errors.As(err, &ioErr) || ioErr.Path != missing {
				t.Errorf("error = %v, want *IOError on %s", err, missing)
			}
		})
	}
}

func TestDirectoryComparatorSymlinks(t *testing.T) {
	h := NewTestHelper(t)
	target := h.CreateFile1("x", []byte("same"))
	h.CreateFile2("x", []byte("same"))
	if err := os.Symlink(target, h.Path1("link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	h.CreateFile2("link", []byte("same"))

	for _, tc := range dirComparators() {
		t.Run(tc.name+"/NoDereference", func(t *testing.T) {
			cmp, err := compareDirs(t, tc, Options{}, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != NotEqual {
				t.Errorf("Result = %s, want not_equal", cmp.Result)
			}
		})
		t.Run(tc.name+"/Dereference", func(t *testing.T) {
			cmp, err := compareDirs(t, tc, Options{Dereference: true}, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != Equal {
				t.Errorf("Result = %s (%s), want equal", cmp.Result, cmp.Reason)
			}
		})
	}
}

// stripLister drops relative paths from the listing of another lister
type stripLister struct {
	storage.Lister
}

func (l stripLister) List(ctx context.Context, root string) ([]storage.FileInfo, error) {
	entries, err := l.Lister.List(ctx, root)
	for i := range entries {
		entries[i].RelativePath = ""
	}
	return entries, err
}

type brokenLister struct{}

var errListing = errors.New("listing unavailable")

func (brokenLister) List(ctx context.Context, root string) ([]storage.FileInfo, error) {
	return nil, errListing
}

func TestDirectoryComparatorCustomLister(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateBoth("x", []byte("abc"))
	h.CreateBoth("sub/y", []byte("def"))

	t.Run("RelativePathsComputed", func(t *testing.T) {
		lister := stripLister{storage.NewWalker(storage.NewLocal(), false)}
		for _, tc := range dirComparators() {
			cmp, err := compareDirs(t, tc, Options{Lister: lister}, h.Root1(), h.Root2())
			if err != nil {
				t.Fatalf("%s: Compare() error = %v", tc.name, err)
			}
			if cmp.Result != Equal {
				t.Errorf("%s: Result = %s (%s), want equal", tc.name, cmp.Result, cmp.Reason)
			}
		}
	})

	t.Run("ListingFails", func(t *testing.T) {
		for _, tc := range dirComparators() {
			cmp, err := compareDirs(t, tc, Options{Lister: brokenLister{}}, h.Root1(), h.Root2())
			if !errors.Is(err, errListing) {
				t.Errorf("%s: error = %v, want listing error", tc.name, err)
			}
			var ioErr *IOError
			if !errors.As(err, &ioErr) || ioErr.Op != "list" {
				t.Errorf("%s: error = %v, want list IOError", tc.name, err)
			}
			if cmp.Result != Failed {
				t.Errorf("%s: Result = %s, want failed", tc.name, cmp.Result)
			}
		}
	})
}

func TestDirectoryComparatorName(t *testing.T) {
	files, err := NewDigestComparator(Options{})
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDirectoryComparator(files, Options{}, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Name(); got != "directory-digest" {
		t.Errorf("Name() = %q, want directory-digest", got)
	}
}
