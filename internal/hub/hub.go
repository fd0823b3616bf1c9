// Package hub regenerates the navigation hub page for the plan directory: a
// single index.html linking the master reader, the microsteps index, and the
// discovered module pages. Selection here is lookup and templating only; the
// page carries no decision logic.
package hub

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aymerick/raymond"
)

//go:embed hub.html.hbs
var hubTemplate string

// maxModulePages caps the module list so a sprawling tree cannot produce an
// unusable hub.
const maxModulePages = 80

// Link is one hub entry.
type Link struct {
	Label string
	Href  string
}

// Generate writes <docsRoot>/index.html and returns its path.
func Generate(docsRoot string) (string, error) {
	abs, err := filepath.Abs(docsRoot)
	if err != nil {
		return "", fmt.Errorf("resolve docs root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("create docs root: %w", err)
	}

	var primary []Link
	if master := pickMaster(abs); master != "" {
		primary = append(primary, Link{Label: "Master Reader", Href: master})
	}
	if micro := pickMicrosteps(abs); micro != "" {
		primary = append(primary, Link{Label: "Microsteps", Href: micro})
	}
	if len(primary) == 0 {
		primary = []Link{
			{Label: "Master Reader (not found)", Href: "#"},
			{Label: "Microsteps (not found)", Href: "#"},
		}
	}

	modules := discoverModulePages(abs)

	html, err := render(primary, modules)
	if err != nil {
		return "", err
	}

	out := filepath.Join(abs, "index.html")
	if err := os.WriteFile(out, []byte(html), 0o600); err != nil {
		return "", fmt.Errorf("write hub: %w", err)
	}
	return out, nil
}

func render(primary, modules []Link) (string, error) {
	data := map[string]interface{}{
		"updated": time.Now().Format("2006-01-02 15:04:05"),
		"primary": linkMaps(primary),
		"modules": linkMaps(modules),
	}
	html, err := raymond.Render(hubTemplate, data)
	if err != nil {
		return "", fmt.Errorf("render hub template: %w", err)
	}
	return html, nil
}

func linkMaps(ls []Link) []map[string]string {
	out := make([]map[string]string, len(ls))
	for i, l := range ls {
		out[i] = map[string]string{"label": l.Label, "href": l.Href}
	}
	return out
}

// pickMaster returns the master reader page relative to the docs root:
// preferred names first, then the first glob hit in sorted order.
func pickMaster(docsRoot string) string {
	preferred := []string{
		"MASTER_BUILD_PLAN_CONSOLIDATED_V2.html",
		"MASTER_BUILD_PLAN_CONSOLIDATED.html",
	}
	for _, name := range preferred {
		if fileExists(filepath.Join(docsRoot, name)) {
			return name
		}
	}

	hits, _ := filepath.Glob(filepath.Join(docsRoot, "*MASTER_BUILD_PLAN*.html"))
	sort.Strings(hits)
	if len(hits) > 0 {
		return filepath.Base(hits[0])
	}
	return ""
}

// pickMicrosteps returns the microsteps index page relative to the docs
// root: known locations first, then the first index page with "micro" in its
// path.
func pickMicrosteps(docsRoot string) string {
	candidates := []string{
		"microsteps_full/index.html",
		"m0_m8_microsteps/index.html",
		"m6_m8_microsteps/index.html",
		"m6_m8_microsteps/index__2.html",
	}
	for _, rel := range candidates {
		if fileExists(filepath.Join(docsRoot, filepath.FromSlash(rel))) {
			return rel
		}
	}

	var hits []string
	for _, rel := range htmlPages(docsRoot) {
		low := strings.ToLower(rel)
		if strings.HasPrefix(strings.ToLower(filepath.Base(rel)), "index") && strings.Contains(low, "micro") {
			hits = append(hits, rel)
		}
	}
	if len(hits) > 0 {
		return hits[0]
	}
	return ""
}

// discoverModulePages finds module overview and index pages under the docs
// root, falling back to every top-level page when no module structure exists.
func discoverModulePages(docsRoot string) []Link {
	seen := make(map[string]struct{})
	var items []Link
	add := func(rel string) {
		if _, ok := seen[rel]; ok || len(items) >= maxModulePages {
			return
		}
		seen[rel] = struct{}{}
		items = append(items, Link{Label: rel, Href: rel})
	}

	for _, rel := range htmlPages(docsRoot) {
		low := strings.ToLower(rel)
		if low == "index.html" {
			continue
		}

		moduleish := false
		for i := 0; i <= 8; i++ {
			seg := fmt.Sprintf("m%d/", i)
			if strings.Contains(low, "/"+seg) || strings.HasPrefix(low, seg) {
				moduleish = true
				break
			}
		}
		if !moduleish {
			for _, k := range []string{"v_01", "module", "build_plan", "microsteps"} {
				if strings.Contains(low, k) {
					moduleish = true
					break
				}
			}
		}

		base := strings.ToLower(filepath.Base(rel))
		if moduleish && (strings.Contains(low, "overview") || strings.HasPrefix(base, "index")) {
			add(rel)
		}
	}

	if len(items) == 0 {
		for _, rel := range htmlPages(docsRoot) {
			if !strings.Contains(rel, "/") && strings.ToLower(rel) != "index.html" {
				add(rel)
			}
		}
	}
	return items
}

// htmlPages lists every HTML page under the docs root as a sorted,
// slash-normalized relative path.
func htmlPages(docsRoot string) []string {
	var pages []string
	_ = filepath.WalkDir(docsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".html") {
			if rel, err := filepath.Rel(docsRoot, path); err == nil {
				pages = append(pages, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	sort.Strings(pages)
	return pages
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
