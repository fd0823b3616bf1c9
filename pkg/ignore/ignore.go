// Package ignore provides gitignore-based file filtering using go-git
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher provides gitignore-based file filtering rooted at a scan root.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher with layered ignore files:
// 1. built-in internal/tooling directory exclusions (always on)
// 2. .gitignore and related git ignore files
// 3. .retidyignore at the scan root (repo overrides)
// 4. ~/.retidy/.retidyignore (user overrides)
func NewMatcher(root string) (*Matcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	fs := osfs.New(abs)

	var allPatterns []gitignore.Pattern

	// Internal/tooling directories are never scanned regardless of ignore files
	defaultPatterns := []string{
		".git/**", ".svn/**", ".hg/**",
		"__pycache__/**", "node_modules/**", ".venv/**",
	}
	for _, pattern := range defaultPatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// ReadPatterns with nil reads .gitignore, global excludes, and .git/info/exclude
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	if repoPatterns, err := readIgnoreFile(filepath.Join(abs, ".retidyignore")); err == nil {
		for _, pattern := range repoPatterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userIgnorePath := filepath.Join(homeDir, ".retidy", ".retidyignore")
		if userPatterns, err := readIgnoreFile(userIgnorePath); err == nil {
			for _, pattern := range userPatterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		root:    abs,
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a text file (like .retidyignore)
func readIgnoreFile(path string) ([]string, error) {
	// Only .retidyignore files in known locations are readable here
	cleaned := filepath.Clean(path)
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+".retidyignore") {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- path cleaned and allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// IsIgnored checks if a file path should be ignored. The path may be
// absolute or relative to the matcher root.
func (m *Matcher) IsIgnored(path string) bool {
	return m.matcher.Match(m.split(path), false)
}

// IsIgnoredDir checks if a directory should be ignored (and thus skipped
// during traversal).
func (m *Matcher) IsIgnoredDir(path string) bool {
	return m.matcher.Match(m.split(path), true)
}

// split converts a path into slash components relative to the matcher root.
func (m *Matcher) split(path string) []string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(m.root, path); err == nil {
			path = rel
		}
	}
	path = filepath.ToSlash(path)
	if path == "" || path == "." {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
