package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/retidy/retidy/internal/inventory"
	"github.com/retidy/retidy/internal/plan"
)

var titleCaser = cases.Title(language.English)

// RenderActionSummary prints the per-action counts as an aligned two-column
// table, most frequent first.
func RenderActionSummary(w io.Writer, records []*inventory.FileRecord) {
	counts := make(map[inventory.Action]int)
	for _, rec := range records {
		counts[rec.Action]++
	}

	type row struct {
		label string
		count int
	}
	rows := make([]row, 0, len(counts))
	for action, n := range counts {
		rows = append(rows, row{label: actionLabel(action), count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})

	width := runewidth.StringWidth("Action")
	for _, r := range rows {
		if rw := runewidth.StringWidth(r.label); rw > width {
			width = rw
		}
	}

	fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight("Action", width), "Count")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", width), "-----")
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %d\n", runewidth.FillRight(r.label, width), r.count)
	}
}

// RenderPlannedMoves prints each planned move relative to the root.
func RenderPlannedMoves(w io.Writer, root string, actions []plan.MoveAction) {
	for _, act := range actions {
		fmt.Fprintf(w, "  MOVE: %s -> %s\n", relOrSelf(root, act.Source), relOrSelf(root, act.Dest))
	}
}

// RenderPlannedDirs prints the layout directories an apply run ensures.
func RenderPlannedDirs(w io.Writer, dirs []string) {
	for _, d := range dirs {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

// actionLabel turns KEEP_IN_PLACE into "Keep In Place" for console output.
func actionLabel(action inventory.Action) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(string(action), "_", " ")))
}

func relOrSelf(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
