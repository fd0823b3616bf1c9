package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Build_plan", cfg.PlanDir)

	layout := cfg.Layout()
	for _, dir := range []string{"Build_plan", "docs", "spec", "src", "fixtures", "golden", "tools", "reports", "archive"} {
		assert.Contains(t, layout, dir)
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a.PlanDir = "Other_plan"
	assert.Equal(t, "Build_plan", Default().PlanDir, "mutating one copy must not leak into the defaults")
}

func TestLoadWithoutOverrideReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Build_plan", cfg.PlanDir)
	assert.Contains(t, cfg.Rules.CanonicalEntrypoints, "index.html")
	assert.Contains(t, cfg.Rules.NotNeededExtensions, ".bak")
	assert.Contains(t, cfg.Rules.PlanHints, "m3")
}

func TestLoadMergesOverrideOverDefaults(t *testing.T) {
	root := t.TempDir()
	override := "plan_dir: Docs_plan\nrules:\n  not_needed_tokens:\n    - scratch\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(override), 0o600))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "Docs_plan", cfg.PlanDir)
	assert.Equal(t, []string{"scratch"}, cfg.Rules.NotNeededTokens)
	// Untouched sections keep their defaults.
	assert.Contains(t, cfg.Rules.NotNeededExtensions, ".zip")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName),
		[]byte("plan_dir: x\nbogus_key: true\n"), 0o600))

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoadRejectsWrongTypes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName),
		[]byte("plan_dir: 42\n"), 0o600))

	_, err := Load(root)
	require.Error(t, err)
}

func TestValidateOverrideListsAllViolations(t *testing.T) {
	err := ValidateOverride([]byte("plan_dir: 42\nrules: notamap\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan_dir")
	assert.Contains(t, err.Error(), "rules")
}

func TestValidateOverrideAcceptsEmptyFile(t *testing.T) {
	assert.NoError(t, ValidateOverride(nil))
	assert.NoError(t, ValidateOverride([]byte("# comment only\n")))
}

func TestPlannedDirsStableOrder(t *testing.T) {
	cfg := Default()
	first := cfg.PlannedDirs()
	second := cfg.PlannedDirs()
	require.Equal(t, first, second)

	assert.Contains(t, first, "archive/_duplicates")
	assert.Contains(t, first, "archive/_not_needed")
	assert.Contains(t, first, "archive/_unknown_review")
	assert.Contains(t, first, "Build_plan")
}
