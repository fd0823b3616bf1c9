package hub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestGenerateWritesIndexHTML(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "MASTER_BUILD_PLAN_CONSOLIDATED_V2.html"), "<html></html>")
	writeFile(t, filepath.Join(docsRoot, "microsteps_full", "index.html"), "<html></html>")
	writeFile(t, filepath.Join(docsRoot, "m3", "overview.html"), "<html></html>")

	out, err := Generate(docsRoot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(docsRoot, "index.html"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Master Reader")
	assert.Contains(t, html, "MASTER_BUILD_PLAN_CONSOLIDATED_V2.html")
	assert.Contains(t, html, "Microsteps")
	assert.Contains(t, html, "microsteps_full/index.html")
	assert.Contains(t, html, "m3/overview.html")
}

func TestPickMasterPrefersV2(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "MASTER_BUILD_PLAN_CONSOLIDATED.html"), "a")
	writeFile(t, filepath.Join(docsRoot, "MASTER_BUILD_PLAN_CONSOLIDATED_V2.html"), "b")

	assert.Equal(t, "MASTER_BUILD_PLAN_CONSOLIDATED_V2.html", pickMaster(docsRoot))
}

func TestPickMasterFallsBackToGlob(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "OLD_MASTER_BUILD_PLAN_draft.html"), "a")

	assert.Equal(t, "OLD_MASTER_BUILD_PLAN_draft.html", pickMaster(docsRoot))
}

func TestPickMasterEmptyWhenAbsent(t *testing.T) {
	assert.Equal(t, "", pickMaster(t.TempDir()))
}

func TestPickMicrostepsDiscoversByKeyword(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "custom_microsteps", "index_all.html"), "a")

	assert.Equal(t, "custom_microsteps/index_all.html", pickMicrosteps(docsRoot))
}

func TestGeneratePlaceholdersWhenNothingFound(t *testing.T) {
	docsRoot := t.TempDir()

	out, err := Generate(docsRoot)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Master Reader (not found)")
	assert.Contains(t, html, "Microsteps (not found)")
}

func TestDiscoverModulePagesFallsBackToTopLevel(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "notes.html"), "a")
	writeFile(t, filepath.Join(docsRoot, "index.html"), "stale hub")

	links := discoverModulePages(docsRoot)
	require.Len(t, links, 1)
	assert.Equal(t, "notes.html", links[0].Href)
}

func TestDiscoverModulePagesSkipsNonOverviewPages(t *testing.T) {
	docsRoot := t.TempDir()
	writeFile(t, filepath.Join(docsRoot, "m2", "overview.html"), "a")
	writeFile(t, filepath.Join(docsRoot, "m2", "detail_page.html"), "b")

	links := discoverModulePages(docsRoot)
	require.Len(t, links, 1)
	assert.Equal(t, "m2/overview.html", links[0].Href)
}
