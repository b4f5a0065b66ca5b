package fsutil_test

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/signalgrid/internal/fsutil"
	"github.com/specialistvlad/signalgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"b.hcl":          "",
		"a.HCL":          "",
		"nested/c.json":  "",
		"nested/d.txt":   "",
		"nested/e.hcl.x": "",
	})

	files, err := fsutil.FindFilesByExtension(dir, ".hcl", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.HCL"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.json"),
	}, files)

	single, err := fsutil.FindFilesByExtension(filepath.Join(dir, "b.hcl"), ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.hcl")}, single)

	_, err = fsutil.FindFilesByExtension(filepath.Join(dir, "missing"), ".hcl")
	assert.Error(t, err)
}

func TestFirstExisting(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"BTC.parquet": ""})

	path, ok, err := fsutil.FirstExisting(filepath.Join(dir, "BTC.csv"), filepath.Join(dir, "BTC.parquet"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "BTC.parquet"), path)

	_, ok, err = fsutil.FirstExisting(filepath.Join(dir, "ETH.csv"), dir)
	require.NoError(t, err)
	assert.False(t, ok)
}
