package storage

import (
	"context"
	"path"
	"strings"
)

// ExcludeLister drops the entries of another Lister whose relative path
// matches one of a set of glob patterns. Entries below an excluded
// directory are dropped as well.
//
// Patterns support:
//   - Simple glob patterns: *.tmp, *.log
//   - Directory patterns: .git/, node_modules/
//   - Path patterns: build/*, **/test/*
type ExcludeLister struct {
	lister   Lister
	patterns []string
}

// NewExcludeLister wraps lister. Without patterns lister is returned as is.
func NewExcludeLister(lister Lister, patterns []string) Lister {
	if len(patterns) == 0 {
		return lister
	}
	return &ExcludeLister{lister: lister, patterns: patterns}
}

// List returns the entries of the wrapped lister that are not excluded
func (l *ExcludeLister) List(ctx context.Context, root string) ([]FileInfo, error) {
	entries, err := l.lister.List(ctx, root)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if !l.excluded(e.RelativePath) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// excluded checks rel and each of its parent directories
func (l *ExcludeLister) excluded(rel string) bool {
	for i := 0; i < len(rel); i++ {
		if rel[i] == '/' && ShouldExclude(rel[:i], l.patterns) {
			return true
		}
	}
	return ShouldExclude(rel, l.patterns)
}

// ShouldExclude checks if a slash-separated relative path matches one of patterns
func ShouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	baseName := path.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		// Patterns may be written with either separator
		pattern = strings.ReplaceAll(pattern, "\\", "/")

		// Directory pattern: the path is, or is inside, such a directory
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			if strings.HasPrefix(relativePath, dirPattern+"/") ||
				relativePath == dirPattern ||
				strings.Contains(relativePath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		// **/pattern matches pattern at any depth
		if strings.Contains(pattern, "**") {
			parts := strings.Split(pattern, "**/")
			if len(parts) == 2 && parts[0] == "" {
				suffix := parts[1]
				if matchGlob(baseName, suffix) ||
					strings.HasSuffix(relativePath, "/"+suffix) || relativePath == suffix ||
					matchGlobPath(relativePath, suffix) {
					return true
				}
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			// Pattern applies to the full path
			if matched, _ := path.Match(pattern, relativePath); matched {
				return true
			}
		} else if matchGlob(baseName, pattern) {
			return true
		}
	}

	return false
}

// matchGlob performs simple glob matching on a single path component
func matchGlob(name, pattern string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}

// matchGlobPath checks if any component of the path matches the pattern
func matchGlobPath(p, pattern string) bool {
	for _, part := range strings.Split(p, "/") {
		if matchGlob(part, pattern) {
			return true
		}
	}
	return false
}
