// Package treemap produces read-only survey reports for a project tree: a
// capped tree view, a source-root survey, and a list of suspicious nested-app
// paths. It never mutates the tree.
package treemap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ignoredNames keeps the survey lean: structure, not noise.
var ignoredNames = map[string]struct{}{
	".git":          {},
	"node_modules":  {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	".pytest_cache": {},
	"dist":          {},
	"build":         {},
	".next":         {},
	".turbo":        {},
	".cache":        {},
	".idea":         {},
	".vscode":       {},
}

// keySrcFiles are the files whose presence identifies a live application
// source root.
var keySrcFiles = []string{
	"App.tsx", "main.tsx", "index.tsx", "vite-env.d.ts", "App.jsx", "main.jsx",
}

// maxEntriesPerDir caps files shown per directory in the tree view.
const maxEntriesPerDir = 80

// Options configures a mapping run.
type Options struct {
	Root string
	// AppDir, when set, enables nested-app-folder and expected-src checks
	// for that directory name.
	AppDir string
}

// Report holds the three survey documents as text.
type Report struct {
	Tree       string
	SrcSurvey  string
	Suspicious string
}

// Run surveys the tree and returns the report bodies.
func Run(opts Options) (*Report, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("root does not exist: %s", root)
	}

	rep := &Report{
		Tree:       renderTree(root),
		SrcSurvey:  renderSrcSurvey(root),
		Suspicious: strings.Join(suspiciousPaths(root, opts.AppDir), "\n"),
	}
	return rep, nil
}

// Write stores the report files under root/reports/ and returns their paths.
func (r *Report) Write(root string) ([]string, error) {
	dir := filepath.Join(root, "reports")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	outputs := []struct {
		name string
		body string
	}{
		{"repo_tree.txt", r.Tree},
		{"src_locations.txt", r.SrcSurvey},
		{"suspicious_paths.txt", r.Suspicious},
	}
	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		p := filepath.Join(dir, out.name)
		if err := os.WriteFile(p, []byte(out.body), 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func ignored(name string) bool {
	_, ok := ignoredNames[name]
	return ok
}

func renderTree(root string) string {
	lines := []string{
		fmt.Sprintf("ROOT: %s", root),
		fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)),
		"",
		filepath.Base(root) + "/",
	}
	walkTree(root, "", &lines)
	return strings.Join(lines, "\n") + "\n"
}

func walkTree(dir, prefix string, lines *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		*lines = append(*lines, fmt.Sprintf("%s[PERMISSION DENIED] %s/", prefix, filepath.Base(dir)))
		return
	}

	filtered := entries[:0]
	for _, e := range entries {
		if !ignored(e.Name()) {
			filtered = append(filtered, e)
		}
	}
	// Directories first, then files, each alphabetical
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].IsDir() != filtered[j].IsDir() {
			return filtered[i].IsDir()
		}
		return strings.ToLower(filtered[i].Name()) < strings.ToLower(filtered[j].Name())
	})

	shown := filtered
	omitted := 0
	if len(filtered) > maxEntriesPerDir {
		shown = filtered[:maxEntriesPerDir]
		omitted = len(filtered) - maxEntriesPerDir
	}

	for i, entry := range shown {
		last := i == len(shown)-1 && omitted == 0
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		if entry.IsDir() {
			*lines = append(*lines, prefix+connector+entry.Name()+"/")
			walkTree(filepath.Join(dir, entry.Name()), childPrefix, lines)
		} else {
			*lines = append(*lines, prefix+connector+entry.Name())
		}
	}
	if omitted > 0 {
		*lines = append(*lines, fmt.Sprintf("%s└── ... (%d more items omitted)", prefix, omitted))
	}
}

// findSrcDirs locates every src/ directory outside ignored subtrees. Matches
// are not descended into.
func findSrcDirs(root string) []string {
	var srcs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if ignored(d.Name()) {
			return filepath.SkipDir
		}
		if d.Name() == "src" {
			srcs = append(srcs, path)
			return filepath.SkipDir
		}
		return nil
	})
	sort.Strings(srcs)
	return srcs
}

func renderSrcSurvey(root string) string {
	lines := []string{
		fmt.Sprintf("ROOT: %s", root),
		fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)),
		"",
	}
	srcs := findSrcDirs(root)
	if len(srcs) == 0 {
		lines = append(lines, "No src/ folders found.")
	}
	for _, src := range srcs {
		lines = append(lines, describeSrc(src))
	}
	return strings.Join(lines, "\n") + "\n"
}

// describeSrc reports key-file presence and the first entries of one src
// directory.
func describeSrc(src string) string {
	var present []string
	for _, f := range keySrcFiles {
		if _, err := os.Stat(filepath.Join(src, f)); err == nil {
			present = append(present, f)
		}
	}
	presentStr := "(none)"
	if len(present) > 0 {
		presentStr = strings.Join(present, ", ")
	}

	var top []string
	entries, err := os.ReadDir(src)
	if err != nil {
		top = []string{"[unreadable]"}
	} else {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})
		if len(entries) > 25 {
			entries = entries[:25]
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				name += "/"
			}
			top = append(top, name)
		}
	}

	return fmt.Sprintf("SRC: %s\n  Key files present: %s\n  First entries: %s\n",
		src, presentStr, strings.Join(top, ", "))
}

// suspiciousPaths flags common flip-flop and nesting issues: doubled app
// directories, multiple package.json roots, and stray src/ trees.
func suspiciousPaths(root, appDir string) []string {
	var flags []string

	if appDir != "" {
		appLower := strings.ToLower(appDir)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if ignored(d.Name()) {
				return filepath.SkipDir
			}
			parts := strings.Split(strings.ToLower(filepath.ToSlash(path)), "/")
			for i := 0; i < len(parts)-1; i++ {
				if parts[i] == appLower && parts[i+1] == appLower {
					flags = append(flags, fmt.Sprintf("Nested app folder detected: %s", path))
					break
				}
			}
			return nil
		})
	}

	var packageJSONs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == "package.json" {
			packageJSONs = append(packageJSONs, path)
		}
		return nil
	})
	sort.Strings(packageJSONs)
	switch len(packageJSONs) {
	case 0:
	case 1:
		flags = append(flags, fmt.Sprintf("Single package.json detected at: %s", packageJSONs[0]))
	default:
		flags = append(flags, "Multiple package.json detected (possible multiple app roots):")
		for _, p := range packageJSONs {
			flags = append(flags, "  - "+p)
		}
	}

	srcs := findSrcDirs(root)
	if len(srcs) == 0 {
		flags = append(flags, "No src/ folders found.")
	} else {
		flags = append(flags, "All src/ folders found:")
		for _, s := range srcs {
			flags = append(flags, "  - "+s)
		}
	}

	if appDir != "" {
		expected := filepath.Join(root, appDir, "src")
		if _, err := os.Stat(filepath.Join(root, appDir)); err == nil {
			if _, err := os.Stat(expected); err != nil {
				flags = append(flags, fmt.Sprintf("Expected app src missing: %s", expected))
			} else {
				flags = append(flags, fmt.Sprintf("Expected app src present: %s", expected))
			}
		}
	}

	return flags
}
