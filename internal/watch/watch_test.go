package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/extract"
	"github.com/ostafen/envcarve/internal/filter"
	"github.com/stretchr/testify/require"
)

const sample = "FILENAME/pic\nEXT/png\n\x89PNG\x01\x02**%%FILENAME/notes\nEXT/txt\n_SIG/hello"

func TestWatcher_Unpack(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	path := filepath.Join(dir, "box.env")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	records, err := filter.New("*.txt")
	require.NoError(t, err)

	w, err := New(Options{Dir: dir, OutDir: out, Records: records})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "box-files"), w.OutputDir(path))

	n, err := w.Unpack(path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(out, "box-files", "notes.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	_, err = os.Stat(filepath.Join(out, "box-files", "pic.png"))
	require.True(t, os.IsNotExist(err))
}

func TestWatcher_UnpackNoRecords(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "empty.env")
	require.NoError(t, os.WriteFile(path, []byte("**%%**%%"), 0644))

	w, err := New(Options{Dir: dir, Parser: container.NewParser(container.WithNames(container.IndexNames()))})
	require.NoError(t, err)

	_, err = w.Unpack(path)
	require.ErrorIs(t, err, extract.ErrNoFiles)
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	inputs, err := filter.New("*.env")
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		unpacked []string
	)

	w, err := New(Options{
		Dir:         dir,
		OutDir:      out,
		Inputs:      inputs,
		QuietPeriod: 50 * time.Millisecond,
		OnUnpack: func(path string, files int, err error) {
			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				unpacked = append(unpacked, filepath.Base(path))
			}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.bin"), []byte(sample), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "box.env"), []byte(sample), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(unpacked) == 1
	}, 5*time.Second, 20*time.Millisecond)

	data, err := os.ReadFile(filepath.Join(out, "box-files", "pic.png"))
	require.NoError(t, err)
	require.Equal(t, "\x89PNG\x01\x02", string(data))

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"box.env"}, unpacked)
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestWatcher_OutputDirInsideWatchedDir(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Options{Dir: dir})
	require.NoError(t, err)

	for _, name := range []string{"dump", ".env"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("FILENAME/a\nEXT/txt\n_SIG/hello"), 0644))

		outDir := w.OutputDir(path)
		require.Equal(t, filepath.Join(dir, name+"-files"), outDir)

		n, err := w.Unpack(path)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		data, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
		require.NoError(t, err)
		require.Equal(t, "hello", string(data))
	}

	_, err = os.Stat(filepath.Join(dir, "a.txt"))
	require.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{"dump", "dump-files", ".env", ".env-files"}, names)
}
