package treemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRunMissingRootFails(t *testing.T) {
	_, err := Run(Options{Root: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestTreeSkipsNoiseDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), "a")
	writeFile(t, filepath.Join(root, "node_modules", "lib", "index.js"), "x")
	writeFile(t, filepath.Join(root, ".git", "config"), "x")
	writeFile(t, filepath.Join(root, "dist", "bundle.js"), "x")

	rep, err := Run(Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(rep.Tree, "keep.txt") {
		t.Error("tree should list regular files")
	}
	for _, noisy := range []string{"node_modules", ".git", "dist"} {
		if strings.Contains(rep.Tree, noisy) {
			t.Errorf("tree should not contain %s", noisy)
		}
	}
}

func TestSrcSurveyReportsKeyFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "src", "App.tsx"), "x")
	writeFile(t, filepath.Join(root, "app", "src", "main.tsx"), "x")
	writeFile(t, filepath.Join(root, "app", "src", "util.ts"), "x")

	rep, err := Run(Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(rep.SrcSurvey, "App.tsx, main.tsx") {
		t.Errorf("survey should list key files in order, got:\n%s", rep.SrcSurvey)
	}
	if !strings.Contains(rep.SrcSurvey, filepath.Join("app", "src")) {
		t.Errorf("survey should name the src dir, got:\n%s", rep.SrcSurvey)
	}
}

func TestSrcSurveyNoSrcFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"), "x")

	rep, err := Run(Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.SrcSurvey, "No src/ folders found.") {
		t.Errorf("got:\n%s", rep.SrcSurvey)
	}
}

func TestSuspiciousFlagsMultiplePackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), "{}")
	writeFile(t, filepath.Join(root, "app", "package.json"), "{}")

	rep, err := Run(Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.Suspicious, "Multiple package.json detected") {
		t.Errorf("got:\n%s", rep.Suspicious)
	}
}

func TestSuspiciousFlagsNestedAppDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "myapp", "myapp", "src", "App.tsx"), "x")

	rep, err := Run(Options{Root: root, AppDir: "myapp"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.Suspicious, "Nested app folder detected") {
		t.Errorf("got:\n%s", rep.Suspicious)
	}
}

func TestSuspiciousReportsExpectedAppSrc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "myapp", "readme.md"), "x")

	rep, err := Run(Options{Root: root, AppDir: "myapp"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.Suspicious, "Expected app src missing") {
		t.Errorf("got:\n%s", rep.Suspicious)
	}

	writeFile(t, filepath.Join(root, "myapp", "src", "App.tsx"), "x")
	rep, err = Run(Options{Root: root, AppDir: "myapp"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rep.Suspicious, "Expected app src present") {
		t.Errorf("got:\n%s", rep.Suspicious)
	}
}

func TestWriteProducesThreeReports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), "a")

	rep, err := Run(Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	paths, err := rep.Write(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %d, want 3", len(paths))
	}
	for _, name := range []string{"repo_tree.txt", "src_locations.txt", "suspicious_paths.txt"} {
		if _, err := os.Stat(filepath.Join(root, "reports", name)); err != nil {
			t.Errorf("report %s missing: %v", name, err)
		}
	}
}
