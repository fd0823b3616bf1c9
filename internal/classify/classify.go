// Package classify decides where a file belongs in the canonical layout.
//
// The destination classifier is a priority list of (predicate, destination
// builder, reason) rules evaluated in a fixed order; the first match wins.
// Reasons are fixed strings selected per rule, never computed, so repeated
// runs over the same snapshot produce identical audit output. All functions
// here are pure over the injected Ruleset.
package classify

import (
	"path"
	"strings"

	"github.com/retidy/retidy/internal/config"
)

// UnknownReviewPrefix is the archive subtree receiving files no rule claims.
const UnknownReviewPrefix = "archive/_unknown_review/"

// File is the classifier's view of one scanned file.
type File struct {
	Rel  string // slash-normalized path from root
	Name string // base name

	relLower  string
	nameLower string
	ext       string // lower-cased extension, including the dot
}

// NewFile prepares the lowered forms a classification pass needs.
func NewFile(rel string) File {
	name := path.Base(rel)
	return File{
		Rel:       rel,
		Name:      name,
		relLower:  strings.ToLower(rel),
		nameLower: strings.ToLower(name),
		ext:       strings.ToLower(path.Ext(name)),
	}
}

// Decision is a classified destination plus the fixed reason that selected it.
type Decision struct {
	Dest   string
	Reason string
}

// Rule is one entry of the ordered classification table.
type Rule struct {
	Name   string
	Reason string
	Match  func(f File) bool
	Dest   func(f File) string
}

// Extension and keyword tables shared by the rules. These are fixed; the
// configurable tables (entrypoints, plan hints, keep list) come from config.
var (
	sourceExts = map[string]struct{}{
		".py": {}, ".js": {}, ".ts": {}, ".tsx": {}, ".jsx": {},
	}
	imageExts = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {}, ".gif": {}, ".svg": {},
	}
	dataExts = map[string]struct{}{
		".json": {}, ".yaml": {}, ".yml": {},
	}
	specTokens    = []string{"contract", "schema", "spec"}
	toolTokens    = []string{"tool", "script", "build", "validate", "export"}
	fixtureTokens = []string{"fixture", "toybook", "book1window"}
	goldenTokens  = []string{"golden", "snapshot", "expected_output"}
)

// Ruleset binds the rule table to one configuration.
type Ruleset struct {
	planDir   string
	planToken string // lowered plan directory name, used as a path keyword

	entrypoints     map[string]struct{}
	planHints       []string
	notNeededExts   map[string]struct{}
	notNeededTokens []string
	keepExts        map[string]struct{}

	rules []Rule
}

// NewRuleset builds the ordered rule table from a configuration.
func NewRuleset(cfg *config.Config) *Ruleset {
	rs := &Ruleset{
		planDir:         cfg.PlanDir,
		planToken:       strings.ToLower(cfg.PlanDir),
		entrypoints:     lowerSet(cfg.Rules.CanonicalEntrypoints),
		planHints:       lowerAll(cfg.Rules.PlanHints),
		notNeededExts:   lowerSet(cfg.Rules.NotNeededExtensions),
		notNeededTokens: lowerAll(cfg.Rules.NotNeededTokens),
		keepExts:        lowerSet(cfg.Rules.KeepExtensions),
	}
	rs.rules = rs.buildRules()
	return rs
}

// PlanDir returns the canonical plan directory name.
func (rs *Ruleset) PlanDir() string { return rs.planDir }

// Rules exposes the ordered table so its order is independently testable.
func (rs *Ruleset) Rules() []Rule { return rs.rules }

func (rs *Ruleset) buildRules() []Rule {
	imageHints := append([]string{rs.planToken, "micro", "reader", "module"},
		"m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8")

	return []Rule{
		{
			Name:   "canonical-entrypoint",
			Reason: "Canonical plan entrypoint",
			Match: func(f File) bool {
				_, ok := rs.entrypoints[f.nameLower]
				return ok
			},
			Dest: func(f File) string { return rs.planDir + "/" + f.Name },
		},
		{
			Name:   "already-in-plan",
			Reason: "Already in plan directory",
			Match: func(f File) bool {
				return strings.HasPrefix(f.relLower, rs.planToken+"/")
			},
			Dest: func(f File) string { return f.Rel },
		},
		{
			Name:   "plan-html",
			Reason: "HTML appears to be build-plan related",
			Match: func(f File) bool {
				return f.ext == ".html" && containsAny(f.relLower, rs.planHints)
			},
			// Flatten any subpath: only the base name survives the move
			Dest: func(f File) string { return rs.planDir + "/" + f.Name },
		},
		{
			Name:   "spec-markdown",
			Reason: "Spec-like markdown",
			Match: func(f File) bool {
				return f.ext == ".md" && containsAny(f.relLower, specTokens)
			},
			Dest: func(f File) string { return "spec/" + f.Name },
		},
		{
			Name:   "docs-markdown",
			Reason: "General markdown documentation",
			Match:  func(f File) bool { return f.ext == ".md" },
			Dest:   func(f File) string { return "docs/" + f.Name },
		},
		{
			Name:   "schema-contract",
			Reason: "Schema/contract file",
			Match: func(f File) bool {
				_, ok := dataExts[f.ext]
				return ok && containsAny(f.relLower, specTokens)
			},
			Dest: func(f File) string { return "spec/" + f.Name },
		},
		{
			Name:   "tooling-script",
			Reason: "Tooling script",
			Match: func(f File) bool {
				_, ok := sourceExts[f.ext]
				return ok && containsAny(f.relLower, toolTokens)
			},
			Dest: func(f File) string { return "tools/" + f.Name },
		},
		{
			Name:   "source-code",
			Reason: "Source code",
			Match: func(f File) bool {
				_, ok := sourceExts[f.ext]
				return ok
			},
			Dest: func(f File) string { return "src/" + f.Name },
		},
		{
			Name:   "plan-asset-image",
			Reason: "Build-plan asset image",
			Match: func(f File) bool {
				_, ok := imageExts[f.ext]
				return ok && containsAny(f.relLower, imageHints)
			},
			Dest: func(f File) string { return rs.planDir + "/assets/" + f.Name },
		},
		{
			Name:   "docs-asset-image",
			Reason: "Documentation asset image",
			Match: func(f File) bool {
				_, ok := imageExts[f.ext]
				return ok
			},
			Dest: func(f File) string { return "docs/assets/" + f.Name },
		},
		{
			Name:   "fixture",
			Reason: "Fixture file",
			Match:  func(f File) bool { return containsAny(f.relLower, fixtureTokens) },
			Dest:   func(f File) string { return "fixtures/" + f.Name },
		},
		{
			Name:   "golden-output",
			Reason: "Golden output",
			Match:  func(f File) bool { return containsAny(f.relLower, goldenTokens) },
			Dest:   func(f File) string { return "golden/" + f.Name },
		},
		{
			Name:   "misc-keep",
			Reason: "Misc keep-extension file",
			Match: func(f File) bool {
				_, ok := rs.keepExts[f.ext]
				return ok
			},
			Dest: func(f File) string { return "docs/misc/" + f.Name },
		},
		{
			Name:   "unknown",
			Reason: "Unknown file type; review",
			Match:  func(f File) bool { return true },
			Dest:   func(f File) string { return UnknownReviewPrefix + f.Name },
		},
	}
}

// Classify maps a relative path to its destination and reason. The final
// catch-all rule guarantees a decision for every input.
func (rs *Ruleset) Classify(rel string) Decision {
	f := NewFile(rel)
	for _, rule := range rs.rules {
		if rule.Match(f) {
			return Decision{Dest: rule.Dest(f), Reason: rule.Reason}
		}
	}
	// Unreachable: the last rule matches everything
	return Decision{Dest: UnknownReviewPrefix + f.Name, Reason: "Unknown file type; review"}
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
