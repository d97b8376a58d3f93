package source

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "container.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "**%%FILENAME/a\n_SIG/x**%%")

	buf, err := Load(path, 0)
	require.NoError(t, err)
	require.Equal(t, "**%%FILENAME/a\n_SIG/x**%%", string(buf.Bytes()))
	if runtime.GOOS != "windows" {
		require.True(t, buf.Mapped())
	}

	require.NoError(t, buf.Close())
	require.Nil(t, buf.Bytes())
}

func TestLoad_Empty(t *testing.T) {
	buf, err := Load(writeFile(t, ""), 0)
	require.NoError(t, err)
	require.Empty(t, buf.Bytes())
	require.False(t, buf.Mapped())
	require.NoError(t, buf.Close())
}

func TestLoad_Limit(t *testing.T) {
	path := writeFile(t, strings.Repeat("x", 100))

	_, err := Load(path, 99)
	require.ErrorIs(t, err, ErrTooLarge)

	buf, err := Load(path, 100)
	require.NoError(t, err)
	require.Len(t, buf.Bytes(), 100)
	require.NoError(t, buf.Close())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"), 0)
	require.Error(t, err)

	_, err = Load(t.TempDir(), 0)
	require.Error(t, err)
}

func TestReadAll_Limit(t *testing.T) {
	_, err := readAll(strings.NewReader("abcdef"), 5)
	require.ErrorIs(t, err, ErrTooLarge)

	buf, err := readAll(strings.NewReader("abcde"), 5)
	require.NoError(t, err)
	require.Equal(t, "abcde", string(buf.Bytes()))
}
