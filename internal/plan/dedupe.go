// Package plan turns an inventory snapshot into per-file actions and applies
// the resulting moves. Planning is a read-only pass over the snapshot; the
// executor is the only code here that touches the filesystem.
package plan

import "github.com/retidy/retidy/internal/inventory"

// Duplicates groups records by content digest and returns the relative paths
// of every non-keeper member. Within a group the keeper is the record with
// the greatest modification time; on equal times the record seen first in
// scan order wins, so repeated dry runs stay identical. Records without a
// digest (hashing disabled or failed) never participate.
func Duplicates(records []*inventory.FileRecord) map[string]struct{} {
	groups := make(map[string][]*inventory.FileRecord)
	var digests []string

	for _, rec := range records {
		if rec.Digest == "" {
			continue
		}
		if _, seen := groups[rec.Digest]; !seen {
			digests = append(digests, rec.Digest)
		}
		groups[rec.Digest] = append(groups[rec.Digest], rec)
	}

	dups := make(map[string]struct{})
	for _, digest := range digests {
		group := groups[digest]
		if len(group) < 2 {
			continue
		}
		keeper := group[0]
		for _, rec := range group[1:] {
			// Strictly-after comparison keeps the earlier scan position on ties
			if rec.ModTime.After(keeper.ModTime) {
				keeper = rec
			}
		}
		for _, rec := range group {
			if rec != keeper {
				dups[rec.RelPath] = struct{}{}
			}
		}
	}
	return dups
}
