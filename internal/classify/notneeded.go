package classify

import (
	"fmt"
	"path"
	"strings"
)

// NotNeeded reports whether a file should be archived as a packaging artifact
// or a backup/export/temp leftover, and why. Two rule families fire
// independently: a known not-needed extension flags unconditionally, and a
// backup/export/temp token in the path flags unless the plan directory token
// appears anywhere in the lowered path. The substring suppression is
// deliberately literal, not segment-aware; downstream tooling may rely on it.
func (rs *Ruleset) NotNeeded(rel string) (string, bool) {
	relLower := strings.ToLower(rel)
	ext := strings.ToLower(path.Ext(rel))

	if _, ok := rs.notNeededExts[ext]; ok {
		return fmt.Sprintf("Packaged artifact (%s)", ext), true
	}

	if containsAny(relLower, rs.notNeededTokens) {
		if !strings.Contains(relLower, rs.planToken) {
			return "Looks like export/backup/temp", true
		}
	}

	return "", false
}
