package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestFindFilesByExtensions(t *testing.T) {
	root := t.TempDir()
	hcl := touch(t, root, "a.hcl")
	yaml := touch(t, root, "nested/b.YAML")
	txt := touch(t, root, "nested/deeper/c.txt")
	touch(t, root, "notes.md")
	touch(t, root, "hcl")

	files, err := FindFilesByExtensions(root, ".hcl", ".yaml", ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{hcl, yaml, txt}, files)
}

func TestFindFilesByExtensions_NoMatches(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "readme.md")

	files, err := FindFilesByExtensions(root, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtensions_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtensions(filepath.Join(t.TempDir(), "absent"), ".hcl")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindFilesByExtensions_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtensions(t.TempDir()) })
	assert.Panics(t, func() { _, _ = FindFilesByExtensions(t.TempDir(), "") })
}
