package compare

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/cmpnorris/internal/platform"
	"github.com/sdejongh/cmpnorris/pkg/logging"
	"github.com/sdejongh/cmpnorris/pkg/storage"
)

// DirectoryComparator compares two directory trees by pairing their files
// on relative path and delegating each pair to a file comparator
type DirectoryComparator struct {
	files      Comparator
	opts       Options
	concurrent bool
}

// NewDirectoryComparator creates a directory comparator using files for
// every pair of files. When concurrent is set, both trees are listed at the
// same time and up to opts.MaxWorkers pairs are compared at once.
func NewDirectoryComparator(files Comparator, opts Options, concurrent bool) (*DirectoryComparator, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &DirectoryComparator{files: files, opts: resolved, concurrent: concurrent}, nil
}

// filePair is a file present on both sides
type filePair struct {
	rel          string
	path1, path2 string
}

// Compare compares two directory trees
func (d *DirectoryComparator) Compare(ctx context.Context, path1, path2 string) (*Comparison, error) {
	start := time.Now()

	p1, p2, err := resolvePair(path1, path2)
	if err != nil {
		return failed(path1, path2, err)
	}
	if _, _, err := statPair(ctx, d.opts, p1, p2, storage.TypeDir); err != nil {
		return failed(p1, p2, err)
	}

	list1, list2, err := d.list(ctx, p1, p2)
	if err != nil {
		return failed(p1, p2, err)
	}
	if len(list1) != len(list2) {
		return notEqual(p1, p2, fmt.Sprintf("entry count mismatch: %d != %d", len(list1), len(list2))), nil
	}

	pairs, mismatch, err := match(p1, p2, list1, list2)
	if err != nil {
		return failed(p1, p2, err)
	}
	if mismatch != "" {
		return notEqual(p1, p2, mismatch), nil
	}

	var cmp *Comparison
	if d.concurrent {
		cmp, err = d.dispatch(ctx, p1, p2, pairs)
	} else {
		cmp, err = d.walk(ctx, p1, p2, pairs)
	}

	d.opts.Logger.Info(ctx, "directory comparison finished", logging.Fields{
		"method":   d.Name(),
		"path1":    p1,
		"path2":    p2,
		"result":   string(cmp.Result),
		"files":    cmp.FilesCompared,
		"bytes":    cmp.BytesCompared,
		"duration": time.Since(start).String(),
	})
	return cmp, err
}

// list returns the recursive listings of both roots
func (d *DirectoryComparator) list(ctx context.Context, root1, root2 string) ([]storage.FileInfo, []storage.FileInfo, error) {
	var list1, list2 []storage.FileInfo
	listOne := func(ctx context.Context, root string, out *[]storage.FileInfo) error {
		entries, err := d.opts.Lister.List(ctx, root)
		if err != nil {
			return &IOError{Op: "list", Path: root, Err: err}
		}
		*out = entries
		return nil
	}

	if !d.concurrent {
		if err := listOne(ctx, root1, &list1); err != nil {
			return nil, nil, err
		}
		if err := listOne(ctx, root2, &list2); err != nil {
			return nil, nil, err
		}
		return list1, list2, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return listOne(gctx, root1, &list1) })
	g.Go(func() error { return listOne(gctx, root2, &list2) })
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return list1, list2, nil
}

// match pairs every file of list1 with the file of list2 at the same
// relative path, in relative path order. When the files of both sides
// cannot be paired one to one, the reason is returned instead.
func match(root1, root2 string, list1, list2 []storage.FileInfo) ([]filePair, string, error) {
	index := make(map[string]string, len(list2))
	for i := range list2 {
		if !list2[i].IsFile() {
			continue
		}
		rel, err := relativeKey(root2, &list2[i])
		if err != nil {
			return nil, "", err
		}
		index[rel] = list2[i].Path
	}

	var pairs []filePair
	for i := range list1 {
		if !list1[i].IsFile() {
			continue
		}
		rel, err := relativeKey(root1, &list1[i])
		if err != nil {
			return nil, "", err
		}
		pairs = append(pairs, filePair{rel: rel, path1: list1[i].Path})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].rel < pairs[j].rel
	})

	for i := range pairs {
		path2, ok := index[pairs[i].rel]
		if !ok {
			return nil, fmt.Sprintf("%s: missing in %s", pairs[i].rel, root2), nil
		}
		pairs[i].path2 = path2
	}
	if len(pairs) != len(index) {
		return nil, fmt.Sprintf("file count mismatch: %d != %d", len(pairs), len(index)), nil
	}
	return pairs, "", nil
}

// relativeKey returns the slash separated path of entry below root
func relativeKey(root string, entry *storage.FileInfo) (string, error) {
	if entry.RelativePath != "" {
		return entry.RelativePath, nil
	}
	return platform.RelativeTo(root, entry.Path)
}

// walk compares pairs one after the other and stops at the first
// pair that is not equal
func (d *DirectoryComparator) walk(ctx context.Context, root1, root2 string, pairs []filePair) (*Comparison, error) {
	var bytes int64
	for i, fp := range pairs {
		cmp, err := d.files.Compare(ctx, fp.path1, fp.path2)
		if cmp.Result != Equal {
			return propagate(root1, root2, fp, cmp, i), err
		}
		bytes += cmp.BytesCompared
	}
	return allEqual(root1, root2, len(pairs), bytes), nil
}

// dispatch compares pairs on a pool of MaxWorkers goroutines. The first
// pair that is not equal decides the result and cancels the others.
func (d *DirectoryComparator) dispatch(ctx context.Context, root1, root2 string, pairs []filePair) (*Comparison, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(d.opts.MaxWorkers)
	if err != nil {
		return failed(root1, root2, err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		first    latch
		verdict  *Comparison
		firstErr error
		files    atomic.Int64
		bytes    atomic.Int64
	)
	decide := func(cmp *Comparison, err error) {
		if first.set() {
			verdict, firstErr = cmp, err
			cancel()
		}
	}

	for _, fp := range pairs {
		if first.done() {
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if first.done() {
				return
			}
			cmp, err := d.files.Compare(ctx, fp.path1, fp.path2)
			if cmp.Result == Equal {
				files.Add(1)
				bytes.Add(cmp.BytesCompared)
				return
			}
			decide(propagate(root1, root2, fp, cmp, int(files.Load())), err)
		})
		if err != nil {
			wg.Done()
			decide(failed(root1, root2, err))
			break
		}
	}
	wg.Wait()

	if verdict != nil {
		return verdict, firstErr
	}
	return allEqual(root1, root2, int(files.Load()), bytes.Load()), nil
}

// propagate turns the verdict of one file pair into the verdict of the trees
func propagate(root1, root2 string, fp filePair, cmp *Comparison, compared int) *Comparison {
	return &Comparison{
		Path1:         root1,
		Path2:         root2,
		Result:        cmp.Result,
		Reason:        fmt.Sprintf("%s: %s", fp.rel, cmp.Reason),
		Error:         cmp.Error,
		BytesCompared: cmp.BytesCompared,
		FilesCompared: compared,
	}
}

func allEqual(root1, root2 string, files int, bytes int64) *Comparison {
	cmp := equal(root1, root2, fmt.Sprintf("%d files match", files))
	cmp.FilesCompared = files
	cmp.BytesCompared = bytes
	return cmp
}

// Name returns the comparator name
func (d *DirectoryComparator) Name() string {
	return "directory-" + d.files.Name()
}
