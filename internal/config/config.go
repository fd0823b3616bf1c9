// Package config loads retidy configuration: the canonical layout, the
// classification rule tables, and per-repo overrides from .retidy.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// ConfigFileName is the per-repo override file looked up at the scan root.
const ConfigFileName = ".retidy.yaml"

// Config holds all configuration for a retidy run.
type Config struct {
	// PlanDir is the canonical plan directory name where human-readable
	// build-plan documents are consolidated.
	PlanDir string      `mapstructure:"plan_dir"`
	Rules   RulesConfig `mapstructure:"rules"`
}

// RulesConfig holds the keyword and extension tables driving classification.
// All matching against these tables is case-insensitive.
type RulesConfig struct {
	CanonicalEntrypoints []string `mapstructure:"canonical_entrypoints"`
	PlanHints            []string `mapstructure:"plan_hints"`
	NotNeededExtensions  []string `mapstructure:"not_needed_extensions"`
	NotNeededTokens      []string `mapstructure:"not_needed_tokens"`
	KeepExtensions       []string `mapstructure:"keep_extensions"`
}

var defaultConfig = Config{
	PlanDir: "Build_plan",
	Rules: RulesConfig{
		CanonicalEntrypoints: []string{
			"MASTER_BUILD_PLAN_CONSOLIDATED.html",
			"MASTER_BUILD_PLAN_CONSOLIDATED_V2.html",
			"index.html",
		},
		PlanHints: []string{
			"build_plan",
			"master_build_plan",
			"microstep",
			"microsteps",
			"module",
			"m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8",
		},
		NotNeededExtensions: []string{".zip", ".7z", ".rar", ".bak", ".tmp", ".log"},
		NotNeededTokens:     []string{"old", "backup", "export", "exports", "tmp", "temp"},
		KeepExtensions: []string{
			".html", ".css", ".js", ".json", ".md", ".txt",
			".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg",
			".py", ".ts", ".tsx", ".jsx", ".yaml", ".yml",
			".csv",
		},
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Load returns the effective configuration for a scan root. If the root
// carries a .retidy.yaml it is schema-validated and merged over the defaults;
// otherwise the defaults are returned as-is.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetDefault("plan_dir", defaultConfig.PlanDir)
	v.SetDefault("rules.canonical_entrypoints", defaultConfig.Rules.CanonicalEntrypoints)
	v.SetDefault("rules.plan_hints", defaultConfig.Rules.PlanHints)
	v.SetDefault("rules.not_needed_extensions", defaultConfig.Rules.NotNeededExtensions)
	v.SetDefault("rules.not_needed_tokens", defaultConfig.Rules.NotNeededTokens)
	v.SetDefault("rules.keep_extensions", defaultConfig.Rules.KeepExtensions)
	v.SetEnvPrefix("RETIDY")
	v.AutomaticEnv()

	cfgPath := filepath.Join(root, ConfigFileName)
	if data, err := os.ReadFile(cfgPath); err == nil { // #nosec G304 -- fixed name under scan root
		if err := ValidateOverride(data); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
		}
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Layout maps each top-level directory of the canonical layout to its purpose.
func (c *Config) Layout() map[string]string {
	return map[string]string{
		c.PlanDir:  "Human-readable build plan readers (HTML, assets)",
		"docs":     "General documentation / notes",
		"spec":     "Machine-readable specs (schemas/contracts)",
		"src":      "Implementation code",
		"fixtures": "Test fixtures",
		"golden":   "Golden outputs / snapshots for determinism",
		"tools":    "Utility scripts (build, validate, export)",
		"reports":  "Generated reports",
		"archive":  "Moved-aside items not needed or duplicates (safe holding area)",
	}
}

// ArchiveSubdirs lists the archive subtrees created under the root.
var ArchiveSubdirs = []string{
	"archive/_duplicates",
	"archive/_not_needed",
	"archive/_unknown_review",
}

// PlannedDirs returns every directory the apply step ensures exists, in a
// stable order.
func (c *Config) PlannedDirs() []string {
	layout := c.Layout()
	dirs := make([]string, 0, len(layout)+len(ArchiveSubdirs))
	for d := range layout {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	dirs = append(dirs, ArchiveSubdirs...)
	return dirs
}
