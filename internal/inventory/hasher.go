package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// HashRecords computes the sha256 content digest of every record, fanning out
// over a bounded worker pool. Cost scales with total bytes, which is why
// hashing is opt-in. Each worker writes only to its own record, indexed by
// position, so the records slice keeps its scan order and duplicate keeper
// selection stays deterministic. A per-file hash failure is recorded on the
// record's Reason and never fails the run.
func HashRecords(ctx context.Context, records []*FileRecord, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			digest, err := hashFile(rec.AbsPath)
			if err != nil {
				rec.Reason = fmt.Sprintf("hash failed: %v", err)
				return nil
			}
			rec.Digest = digest
			return nil
		})
	}
	_ = g.Wait() // workers only return ctx errors; per-file failures stay on the records
}

// hashFile returns the hex sha256 digest of a file's full content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the scan itself
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
