package plan

import (
	"testing"
	"time"

	"github.com/retidy/retidy/internal/inventory"
)

func rec(rel, digest string, mtime time.Time) *inventory.FileRecord {
	return &inventory.FileRecord{RelPath: rel, Digest: digest, ModTime: mtime}
}

func TestDuplicatesKeepsNewest(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	records := []*inventory.FileRecord{
		rec("a.txt", "d1", t1),
		rec("b.txt", "d1", t2),
	}

	dups := Duplicates(records)
	if _, ok := dups["a.txt"]; !ok {
		t.Error("expected older a.txt to be a duplicate")
	}
	if _, ok := dups["b.txt"]; ok {
		t.Error("newest b.txt must be the keeper, not a duplicate")
	}
}

func TestDuplicatesTieBreakIsScanOrder(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []*inventory.FileRecord{
		rec("first.txt", "d1", t1),
		rec("second.txt", "d1", t1),
		rec("third.txt", "d1", t1),
	}

	dups := Duplicates(records)
	if _, ok := dups["first.txt"]; ok {
		t.Error("on equal mtimes the first-scanned record must be kept")
	}
	for _, rel := range []string{"second.txt", "third.txt"} {
		if _, ok := dups[rel]; !ok {
			t.Errorf("expected %s to be a duplicate", rel)
		}
	}
}

func TestDuplicatesIgnoresRecordsWithoutDigest(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []*inventory.FileRecord{
		rec("a.txt", "", t1),
		rec("b.txt", "", t1),
		rec("c.txt", "d2", t1),
	}

	if dups := Duplicates(records); len(dups) != 0 {
		t.Errorf("expected no duplicates, got %v", dups)
	}
}

func TestDuplicatesDistinctDigestsUntouched(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []*inventory.FileRecord{
		rec("a.txt", "d1", t1),
		rec("b.txt", "d2", t1),
	}

	if dups := Duplicates(records); len(dups) != 0 {
		t.Errorf("expected no duplicates across distinct digests, got %v", dups)
	}
}
