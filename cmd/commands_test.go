package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "retidy")
}

func TestLinksDryRunReportsWithoutEditing(t *testing.T) {
	root := t.TempDir()
	doc := filepath.Join(root, "Build_plan", "m3", "page.html")
	original := `<a href="old/overview.html">x</a>`
	writeFile(t, doc, original)
	writeFile(t, filepath.Join(root, "Build_plan", "m3", "overview.html"), "<html></html>")

	out := execute(t, "links", "--root", root, "--apply=false")
	assert.Contains(t, out, "Broken links found: 1")
	assert.Contains(t, out, "Fixes suggested: 1")
	assert.Contains(t, out, "Dry run only.")

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "dry run must not rewrite documents")

	stamps, err := os.ReadDir(filepath.Join(root, "reports", "links"))
	require.NoError(t, err)
	require.Len(t, stamps, 1)
	reportDir := filepath.Join(root, "reports", "links", stamps[0].Name())
	for _, name := range []string{"broken_links.csv", "fixed_links.csv"} {
		_, err := os.Stat(filepath.Join(reportDir, name))
		assert.NoError(t, err, name)
	}
}

func TestLinksApplyRewritesDocument(t *testing.T) {
	root := t.TempDir()
	doc := filepath.Join(root, "Build_plan", "m3", "page.html")
	writeFile(t, doc, `<a href="old/overview.html">x</a>`)
	writeFile(t, filepath.Join(root, "Build_plan", "m3", "overview.html"), "<html></html>")

	execute(t, "links", "--root", root, "--apply=true")

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `href="overview.html"`)
	_, err = os.Stat(doc + ".bak_links")
	assert.NoError(t, err, "apply must leave a backup next to the document")
}

func TestHubCommandWritesIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Build_plan", "MASTER_BUILD_PLAN_CONSOLIDATED.html"), "<html></html>")

	out := execute(t, "hub", "--root", root)
	assert.Contains(t, out, "Wrote:")

	data, err := os.ReadFile(filepath.Join(root, "Build_plan", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "MASTER_BUILD_PLAN_CONSOLIDATED.html")
}

func TestMapCommandWritesSurveyReports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "src", "App.tsx"), "x")
	writeFile(t, filepath.Join(root, "app", "package.json"), "{}")

	out := execute(t, "map", "--root", root)
	assert.Contains(t, out, "Repo mapping complete.")

	for _, name := range []string{"repo_tree.txt", "src_locations.txt", "suspicious_paths.txt"} {
		_, err := os.Stat(filepath.Join(root, "reports", name))
		assert.NoError(t, err, name)
	}
}

func TestQuarantineNothingToDo(t *testing.T) {
	out := execute(t, "quarantine", "--root", t.TempDir(), "--apply=false")
	assert.Contains(t, out, "No orphan src found. Nothing to do.")
}

func TestQuarantineDryRunLeavesSrc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "x")

	out := execute(t, "quarantine", "--root", root, "--apply=false")
	assert.Contains(t, out, "Dry run only.")

	_, err := os.Stat(filepath.Join(root, "src", "App.tsx"))
	assert.NoError(t, err, "dry run must not move src/")
}

func TestQuarantineApplyMovesSrc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "x")

	out := execute(t, "quarantine", "--root", root, "--apply=true")
	assert.Contains(t, out, "Orphan src quarantined safely.")

	_, err := os.Stat(filepath.Join(root, "src"))
	assert.True(t, os.IsNotExist(err), "src/ should be gone")

	entries, err := os.ReadDir(filepath.Join(root, "archive", "_orphaned_src"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "src_")
	_, err = os.Stat(filepath.Join(root, "archive", "_orphaned_src", entries[0].Name(), "App.tsx"))
	assert.NoError(t, err)
}
