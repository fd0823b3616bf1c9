package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/retidy/retidy/pkg/ignore"
	"github.com/retidy/retidy/pkg/logger"
)

// SkipDirNames are directory names never descended into, independent of any
// ignore file: version-control internals, dependency caches, virtual
// environments, and compiled-output caches.
var SkipDirNames = map[string]struct{}{
	".git":         {},
	".svn":         {},
	".hg":          {},
	"__pycache__":  {},
	"node_modules": {},
	".venv":        {},
}

// ScanOptions configures a tree scan.
type ScanOptions struct {
	Root            string
	IncludePatterns []string // doublestar globs over the relative path
	ExcludePatterns []string
	NoIgnore        bool // disable .gitignore/.retidyignore matching
}

// Scan walks the root and returns one FileRecord per regular file, in
// deterministic traversal order. Directories are never recorded. A file whose
// metadata cannot be read still yields a record, with the failure noted on
// its Reason, so a single unreadable file never aborts the scan.
func Scan(opts ScanOptions) ([]*FileRecord, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("root does not exist: %s", root)
	}

	var matcher *ignore.Matcher
	if !opts.NoIgnore {
		if m, err := ignore.NewMatcher(root); err != nil {
			logger.Warn("ignore matcher unavailable, scanning everything", logger.Err(err))
		} else {
			matcher = m
		}
	}

	var records []*FileRecord
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory: log and continue with the rest of the tree
			logger.Warn("walk error", logger.String("path", path), logger.Err(err))
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if _, skip := SkipDirNames[d.Name()]; skip {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.IsIgnoredDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.IsIgnored(rel) {
			return nil
		}
		if !matchesPatterns(rel, opts.IncludePatterns, opts.ExcludePatterns) {
			return nil
		}

		rec := &FileRecord{
			RelPath: rel,
			AbsPath: path,
			Action:  KeepInPlace,
		}
		if info, err := d.Info(); err != nil {
			rec.Reason = fmt.Sprintf("stat failed: %v", err)
		} else {
			rec.Size = info.Size()
			rec.ModTime = info.ModTime()
		}
		records = append(records, rec)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}
	return records, nil
}

// matchesPatterns applies include globs (any must match, empty means all) and
// exclude globs (none may match) to a slash-normalized relative path.
func matchesPatterns(rel string, include, exclude []string) bool {
	for _, pat := range exclude {
		if ok, err := doublestar.Match(strings.TrimSpace(pat), rel); err == nil && ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if ok, err := doublestar.Match(strings.TrimSpace(pat), rel); err == nil && ok {
			return true
		}
	}
	return false
}
