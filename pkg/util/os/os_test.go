package os

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	created, err := EnsureDir(dir, true)
	require.NoError(t, err)
	require.True(t, created)

	created, err = EnsureDir(dir, true)
	require.NoError(t, err)
	require.False(t, created)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644))

	_, err = EnsureDir(dir, true)
	require.Error(t, err)

	_, err = EnsureDir(dir, false)
	require.NoError(t, err)

	_, err = EnsureDir(filepath.Join(dir, "f"), false)
	require.Error(t, err)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	for _, name := range []string{"b.txt", "a.png", "sub/c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.pdf"),
	}, files)

	files, err = ListFiles(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "b.txt")}, files)

	_, err = ListFiles(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
