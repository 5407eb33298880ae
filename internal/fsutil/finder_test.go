package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.docx"))
	touch(t, filepath.Join(root, "b.DOC"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.doc"))
	touch(t, filepath.Join(root, "sub", "d.docx.bak"))

	files, err := FindFilesByExtension(root, ".doc", ".docx")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.docx"),
		filepath.Join(root, "b.DOC"),
		filepath.Join(root, "sub", "c.doc"),
	}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".doc")
	require.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	require.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
	require.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.NoError(t, EnsureDir(""))
}
