package links

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexRetainsCollisions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "m3", "overview.html"), "a")
	writeFile(t, filepath.Join(root, "m7", "overview.html"), "b")
	writeFile(t, filepath.Join(root, "intro.html"), "c")

	idx, err := BuildIndex(root)
	require.NoError(t, err)

	assert.Len(t, idx.Lookup("overview.html"), 2, "colliding names must all be retained")
	assert.Len(t, idx.Lookup("intro.html"), 1)
	assert.Empty(t, idx.Lookup("absent.html"))
}

func TestIndexLookupIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Overview.HTML"), "a")

	idx, err := BuildIndex(root)
	require.NoError(t, err)

	assert.Len(t, idx.Lookup("overview.html"), 1)
	assert.Len(t, idx.Lookup("OVERVIEW.HTML"), 1)
}

func TestBuildIndexMissingRootFails(t *testing.T) {
	_, err := BuildIndex(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
