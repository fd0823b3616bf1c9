// Package report serializes run outcomes: the tabular per-file record, the
// JSON run summary, the link issue tables, and the console dry-run view.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/retidy/retidy/internal/inventory"
	"github.com/retidy/retidy/internal/links"
)

// Summary is the JSON run report. It carries every record so an applied run
// can be audited after the fact.
type Summary struct {
	Root      string                  `json:"root"`
	RunID     string                  `json:"run_id"`
	Timestamp time.Time               `json:"timestamp"`
	Apply     bool                    `json:"apply"`
	Hashing   bool                    `json:"hashing"`
	Counts    Counts                  `json:"counts"`
	Records   []*inventory.FileRecord `json:"records"`
}

// Counts aggregates a run for the summary header.
type Counts struct {
	TotalFilesScanned  int `json:"total_files_scanned"`
	MovesPlanned       int `json:"moves_planned"`
	DuplicatesDetected int `json:"duplicates_detected"`
}

// NewSummary stamps a fresh run summary with a unique run id.
func NewSummary(root string, apply, hashing bool, records []*inventory.FileRecord, movesPlanned, dups int) *Summary {
	return &Summary{
		Root:      root,
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		Apply:     apply,
		Hashing:   hashing,
		Counts: Counts{
			TotalFilesScanned:  len(records),
			MovesPlanned:       movesPlanned,
			DuplicatesDetected: dups,
		},
		Records: records,
	}
}

// Dir returns a timestamped report directory under root/reports/<kind>/ and
// creates it.
func Dir(root, kind string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(root, "reports", kind, stamp)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	return dir, nil
}

// WriteRecordsCSV writes one row per FileRecord.
func WriteRecordsCSV(path string, records []*inventory.FileRecord) error {
	f, err := os.Create(path) // #nosec G304 -- path built from the report dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rel_path", "action", "reason", "dest_rel_path", "size", "mtime", "sha256"}); err != nil {
		return err
	}
	for _, rec := range records {
		mtime := ""
		if !rec.ModTime.IsZero() {
			mtime = rec.ModTime.Format(time.RFC3339)
		}
		row := []string{
			rec.RelPath,
			string(rec.Action),
			rec.Reason,
			rec.DestRelPath,
			strconv.FormatInt(rec.Size, 10),
			mtime,
			rec.Digest,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteIssuesCSV writes one row per LinkIssue.
func WriteIssuesCSV(path string, issues []links.Issue) error {
	f, err := os.Create(path) // #nosec G304 -- path built from the report dir
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file", "attr", "original", "resolved_from", "status", "suggestion"}); err != nil {
		return err
	}
	for _, issue := range issues {
		row := []string{issue.File, issue.Attr, issue.Original, issue.ResolvedFrom, issue.Status, issue.Suggestion}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes any report value as indented JSON.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
