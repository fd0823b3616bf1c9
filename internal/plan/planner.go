package plan

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/retidy/retidy/internal/classify"
	"github.com/retidy/retidy/internal/inventory"
)

// MoveAction is one planned relocation. Paths are absolute at plan time.
type MoveAction struct {
	Source string
	Dest   string
	Record *inventory.FileRecord
}

// Planner assigns each FileRecord exactly one action. Rules are applied in
// strict priority order: duplicate check, not-needed check, destination
// classification, identity check.
type Planner struct {
	root  string
	rules *classify.Ruleset
}

// NewPlanner creates a planner rooted at an absolute scan root.
func NewPlanner(root string, rules *classify.Ruleset) *Planner {
	return &Planner{root: root, rules: rules}
}

// Plan mutates each record's Action, Reason, and DestRelPath and returns the
// move list. Records already at their classified destination produce no move.
func (p *Planner) Plan(records []*inventory.FileRecord, dups map[string]struct{}) []MoveAction {
	var actions []MoveAction

	for _, rec := range records {
		name := path.Base(rec.RelPath)
		relLower := strings.ToLower(rec.RelPath)

		if _, isDup := dups[rec.RelPath]; isDup {
			rec.Action = inventory.ArchiveDuplicate
			rec.Reason = "Duplicate content (sha256 match)"
			rec.DestRelPath = "archive/_duplicates/" + name
			actions = append(actions, p.action(rec))
			continue
		}

		// Items already inside the archive tree are never re-archived
		if reason, flagged := p.rules.NotNeeded(rec.RelPath); flagged && !strings.HasPrefix(relLower, "archive/") {
			rec.Action = inventory.ArchiveNotNeeded
			rec.Reason = reason
			rec.DestRelPath = "archive/_not_needed/" + name
			actions = append(actions, p.action(rec))
			continue
		}

		decision := p.rules.Classify(rec.RelPath)
		rec.Reason = decision.Reason
		rec.DestRelPath = decision.Dest

		if rec.RelPath == decision.Dest {
			rec.Action = inventory.KeepInPlace
			continue
		}

		if strings.HasPrefix(decision.Dest, classify.UnknownReviewPrefix) {
			rec.Action = inventory.ArchiveUnknown
		} else {
			rec.Action = inventory.MoveToDest
		}
		actions = append(actions, p.action(rec))
	}

	return actions
}

func (p *Planner) action(rec *inventory.FileRecord) MoveAction {
	return MoveAction{
		Source: rec.AbsPath,
		Dest:   filepath.Join(p.root, filepath.FromSlash(rec.DestRelPath)),
		Record: rec,
	}
}
