// Package links audits relative href/src references in HTML documents and
// repairs the broken ones by rediscovering moved targets through a filename
// index.
package links

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps a lower-cased base file name to every absolute path bearing that
// name. Collisions are expected and retained; ambiguity is resolved by
// candidate scoring at remediation time, not here.
type Index map[string][]string

// BuildIndex recursively scans the documentation subtree.
func BuildIndex(docsRoot string) (Index, error) {
	abs, err := filepath.Abs(docsRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve docs root: %w", err)
	}

	idx := make(Index)
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		key := strings.ToLower(d.Name())
		idx[key] = append(idx[key], path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("index %s: %w", abs, walkErr)
	}
	return idx, nil
}

// Lookup returns the candidate paths for a base file name, if any.
func (idx Index) Lookup(name string) []string {
	return idx[strings.ToLower(name)]
}
