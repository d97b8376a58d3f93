package bundle

import (
	"bytes"
	"io"
	"testing"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/extract"
	"github.com/stretchr/testify/require"
)

func readBundle(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		entries[f.Name] = content
	}
	return entries
}

func TestWrite(t *testing.T) {
	recs := []container.Record{
		{Name: "pic", Ext: "png", Content: []byte{0x89, 'P', 'N', 'G', 1, 2, 3}},
		{Name: "readme", Content: bytes.Repeat([]byte("text "), 100)},
		{Name: "empty", Ext: "bin", Content: nil},
	}

	for _, method := range []Method{Store, Deflate, Zstd} {
		t.Run(string(method), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, recs, method))

			entries := readBundle(t, buf.Bytes())
			require.Len(t, entries, 3)
			require.Equal(t, recs[0].Content, entries["pic.png"])
			require.Equal(t, recs[1].Content, entries["readme"])
			require.Empty(t, entries["empty.bin"])
		})
	}
}

func TestWrite_DuplicateNames(t *testing.T) {
	recs := []container.Record{
		{Name: "a", Ext: "txt", Content: []byte("one")},
		{Name: "a", Ext: "txt", Content: []byte("two")},
		{Name: "../escape", Ext: "txt", Content: []byte("three")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, recs, Store))

	zr, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"a.txt", "a-1.txt", "escape.txt"}, names)

	entries := readBundle(t, buf.Bytes())
	require.Equal(t, "one", string(entries["a.txt"]))
	require.Equal(t, "two", string(entries["a-1.txt"]))
}

func TestWrite_NoRecords(t *testing.T) {
	err := Write(io.Discard, nil, Deflate)
	require.ErrorIs(t, err, extract.ErrNoFiles)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	require.Equal(t, Deflate, m)

	m, err = ParseMethod("ZSTD")
	require.NoError(t, err)
	require.Equal(t, Zstd, m)

	_, err = ParseMethod("lzma")
	require.ErrorIs(t, err, ErrUnknownMethod)

	err = Write(io.Discard, []container.Record{{Name: "a"}}, Method("lzma"))
	require.ErrorIs(t, err, ErrUnknownMethod)
}
