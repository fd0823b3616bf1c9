package links

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/retidy/retidy/pkg/logger"
)

// BackupSuffix is appended to a document's path for its one-time pre-edit
// backup. The suffix deliberately avoids the .bak extension so backups are
// not themselves swept up as not-needed artifacts on the next reorg pass.
const BackupSuffix = ".bak_links"

// attrRe extracts href/src attribute values. Group 1 is the attribute name,
// group 2 the quoted value.
var attrRe = regexp.MustCompile(`(?i)\b(href|src)\s*=\s*["']([^"']+)["']`)

// driveRe matches Windows drive-letter absolute paths like C:\ or D:/.
var driveRe = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// skipPrefixes are reference values that are never filesystem-relative.
var skipPrefixes = []string{"http://", "https://", "mailto:", "tel:", "#", "javascript:"}

// Issue records one broken or fixed reference found during remediation.
type Issue struct {
	File         string `json:"file"`
	Attr         string `json:"attr"`
	Original     string `json:"original"`
	ResolvedFrom string `json:"resolved_from"`
	Status       string `json:"status"` // BROKEN or FIXED
	Suggestion   string `json:"suggestion"`
}

// Issue statuses.
const (
	StatusBroken = "BROKEN"
	StatusFixed  = "FIXED"
)

// Engine scans HTML documents under DocsRoot for broken relative references
// and proposes (or applies) replacements resolved through the filename index.
type Engine struct {
	Root     string // repo root, for report-relative paths
	DocsRoot string // documentation subtree to scan
	Index    Index
	Apply    bool // rewrite documents in place (with one-time backups)
}

// Result is the outcome of a remediation pass. Every fixed reference appears
// in both lists: once as BROKEN with its suggestion, once as FIXED.
type Result struct {
	ScannedDocs int
	Broken      []Issue
	Fixed       []Issue
}

type replacement struct {
	start, end int
	value      string
}

// Run processes every HTML document under the docs root in sorted order.
func (e *Engine) Run() (*Result, error) {
	docs, err := e.htmlDocs()
	if err != nil {
		return nil, err
	}

	res := &Result{ScannedDocs: len(docs)}
	for _, doc := range docs {
		if err := e.processDoc(doc, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (e *Engine) htmlDocs() ([]string, error) {
	var docs []string
	err := filepath.WalkDir(e.DocsRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ".html") {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", e.DocsRoot, err)
	}
	sort.Strings(docs)
	return docs, nil
}

func (e *Engine) processDoc(doc string, res *Result) error {
	data, err := os.ReadFile(doc) // #nosec G304 -- enumerated under docs root
	if err != nil {
		logger.Warn("unreadable document, skipping", logger.String("doc", doc), logger.Err(err))
		return nil
	}
	text := string(data)
	docDir := filepath.Dir(doc)

	var repls []replacement
	for _, m := range attrRe.FindAllStringSubmatchIndex(text, -1) {
		attr := text[m[2]:m[3]]
		val := text[m[4]:m[5]]

		if skipValue(val) {
			continue
		}
		rawPath := stripQueryFragment(val)
		if rawPath == "" {
			continue
		}

		target := resolveTarget(docDir, rawPath)
		if _, err := os.Stat(target); err == nil {
			continue // healthy link
		}

		issue := Issue{
			File:         e.relToRoot(doc),
			Attr:         strings.ToLower(attr),
			Original:     val,
			ResolvedFrom: e.relToRoot(docDir),
			Status:       StatusBroken,
		}

		candidates := e.Index.Lookup(filepath.Base(rawPath))
		if len(candidates) == 0 {
			res.Broken = append(res.Broken, issue)
			continue
		}

		best := chooseBestCandidate(docDir, candidates)
		newRel, err := filepath.Rel(docDir, best)
		if err != nil {
			res.Broken = append(res.Broken, issue)
			continue
		}
		newVal := preserveSuffix(val, filepath.ToSlash(newRel))

		issue.Suggestion = newVal
		res.Broken = append(res.Broken, issue)

		fixedIssue := issue
		fixedIssue.Status = StatusFixed
		res.Fixed = append(res.Fixed, fixedIssue)

		repls = append(repls, replacement{start: m[4], end: m[5], value: newVal})
	}

	if len(repls) > 0 && e.Apply {
		if err := e.rewrite(doc, text, repls); err != nil {
			return err
		}
	}
	return nil
}

// rewrite writes a one-time backup of the original content, then applies all
// replacements in a single pass. Spans are processed in reverse document
// order so earlier edits never invalidate the offsets of edits not yet
// applied.
func (e *Engine) rewrite(doc, original string, repls []replacement) error {
	backup := doc + BackupSuffix
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		if err := os.WriteFile(backup, []byte(original), 0o600); err != nil {
			return fmt.Errorf("write backup %s: %w", backup, err)
		}
	}

	sort.Slice(repls, func(i, j int) bool { return repls[i].start > repls[j].start })
	text := original
	for _, r := range repls {
		text = text[:r.start] + r.value + text[r.end:]
	}

	if err := os.WriteFile(doc, []byte(text), 0o600); err != nil {
		return fmt.Errorf("rewrite %s: %w", doc, err)
	}
	logger.Info("rewrote document", logger.String("doc", e.relToRoot(doc)), logger.Int("fixes", len(repls)))
	return nil
}

func (e *Engine) relToRoot(path string) string {
	if rel, err := filepath.Rel(e.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

// skipValue reports whether a reference value is out of remediation scope:
// external schemes, fragment-only anchors, absolute disk paths, data URIs.
func skipValue(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	if v == "" {
		return true
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	if driveRe.MatchString(val) {
		return true
	}
	return strings.HasPrefix(v, "data:")
}

// stripQueryFragment returns the unescaped path portion of a reference value.
func stripQueryFragment(val string) string {
	path := val
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

// preserveSuffix re-appends the original query string and fragment, in that
// order, to a replacement path.
func preserveSuffix(original, newPath string) string {
	rest := original
	var fragment string
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		fragment = rest[i:]
		rest = rest[:i]
	}
	var query string
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		query = rest[i:]
	}
	return newPath + query + fragment
}

// resolveTarget resolves a reference path against the document directory. A
// slash-absolute path stands on its own.
func resolveTarget(docDir, rawPath string) string {
	p := filepath.FromSlash(rawPath)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(docDir, p)
}

// chooseBestCandidate picks the replacement target among same-named files.
// Candidates are scored by (same directory as the document, fewer directory
// hops from the document, lower-cased absolute path) and the maximum wins,
// making the choice deterministic for any candidate ordering.
func chooseBestCandidate(docDir string, candidates []string) string {
	type scored struct {
		path    string
		sameDir int
		depth   int
		key     string
	}

	items := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		s := scored{path: cand, key: strings.ToLower(cand)}
		if filepath.Dir(cand) == docDir {
			s.sameDir = 1
		}
		if rel, err := filepath.Rel(docDir, cand); err == nil {
			s.depth = strings.Count(filepath.ToSlash(rel), "/") + 1
		} else {
			s.depth = 9999
		}
		items = append(items, s)
	}

	best := items[0]
	for _, s := range items[1:] {
		if s.sameDir != best.sameDir {
			if s.sameDir > best.sameDir {
				best = s
			}
			continue
		}
		if s.depth != best.depth {
			if s.depth < best.depth {
				best = s
			}
			continue
		}
		if s.key > best.key {
			best = s
		}
	}
	return best.path
}
