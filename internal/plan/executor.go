package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retidy/retidy/pkg/logger"
)

// Executor applies planned moves against the filesystem. Nothing is ever
// deleted or overwritten: destination collisions get a numeric suffix, and a
// missing source is skipped so a partially applied batch can be re-run.
type Executor struct {
	Root        string
	PlannedDirs []string // relative layout dirs ensured before moving
	ReportDir   string   // absolute; files under it are never moved
}

// Apply executes the move list and returns how many moves actually ran.
func (e *Executor) Apply(actions []MoveAction) (int, error) {
	for _, dir := range e.PlannedDirs {
		if err := os.MkdirAll(filepath.Join(e.Root, filepath.FromSlash(dir)), 0o750); err != nil {
			return 0, fmt.Errorf("create layout dir %s: %w", dir, err)
		}
	}

	moved := 0
	for _, act := range actions {
		if _, err := os.Stat(act.Source); os.IsNotExist(err) {
			// Already relocated by an earlier action or a previous run
			logger.Debug("source gone, skipping", logger.String("source", act.Source))
			continue
		}
		if e.ReportDir != "" && strings.HasPrefix(act.Source, e.ReportDir+string(os.PathSeparator)) {
			continue
		}

		finalDest, err := moveFile(act.Source, act.Dest)
		if err != nil {
			return moved, fmt.Errorf("move %s: %w", act.Source, err)
		}
		if finalDest != act.Dest {
			logger.Debug("destination occupied, disambiguated",
				logger.String("dest", act.Dest), logger.String("final", finalDest))
		}
		moved++
	}
	return moved, nil
}

// moveFile relocates src to dest, inserting a __N suffix before the extension
// until an unused name is found. Returns the destination actually used.
func moveFile(src, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return "", err
	}

	final := dest
	if _, err := os.Stat(final); err == nil {
		ext := filepath.Ext(dest)
		stem := strings.TrimSuffix(dest, ext)
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s__%d%s", stem, i, ext)
			if _, err := os.Stat(candidate); os.IsNotExist(err) {
				final = candidate
				break
			}
		}
	}

	if err := os.Rename(src, final); err != nil {
		return "", err
	}
	return final, nil
}
