package container

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngContent = []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01, 0x02}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func zeros(n int) []byte {
	return make([]byte, n)
}

func TestParse_EndToEnd(t *testing.T) {
	buf := concat(
		zeros(16),
		[]byte("FILENAME/pic\nEXT/png\n"),
		pngContent,
		[]byte(Delimiter),
		zeros(16),
	)

	recs := Parse(buf)
	require.Len(t, recs, 1)
	require.Equal(t, "pic", recs[0].Name)
	require.Equal(t, "png", recs[0].Ext)
	require.Equal(t, pngContent, recs[0].Content)
	require.Equal(t, "png", recs[0].Type)
	require.Equal(t, 16+len("FILENAME/pic\nEXT/png\n"), recs[0].Offset)
	require.Equal(t, "pic.png", recs[0].FileName())
}

func TestParse_ContentBorrowsBuffer(t *testing.T) {
	buf := concat([]byte("FILENAME/a\n"), pngContent)
	recs := Parse(buf)
	require.Len(t, recs, 1)

	rec := recs[0]
	require.Same(t, &buf[rec.Offset], &rec.Content[0])
}

func TestParse_EmptyInputs(t *testing.T) {
	require.Empty(t, Parse(nil))
	require.Empty(t, Parse([]byte{}))
	require.Empty(t, Parse(zeros(64)))

	for n := 1; n <= 5; n++ {
		buf := []byte(strings.Repeat(Delimiter, n))
		require.Empty(t, Parse(buf), "delimiters only: %d", n)
	}

	padded := bytes.Join([][]byte{zeros(3), zeros(7), zeros(1)}, []byte(Delimiter))
	require.Empty(t, Parse(padded))
}

func TestParse_WithoutDelimiterYieldsAtMostOneRecord(t *testing.T) {
	inputs := [][]byte{
		[]byte("just some text"),
		concat([]byte("FILENAME/a\n"), pngContent, []byte("%PDF"), []byte("<?xml")),
		[]byte("FILENAME/a\n_SIG/one_SIG/two"),
		concat(zeros(5), []byte{0xFF, 0xD8, 0xFF}, zeros(5)),
	}

	for _, in := range inputs {
		require.LessOrEqual(t, len(Parse(in)), 1)
	}
}

func TestParse_DropsSegmentsWithoutBoundary(t *testing.T) {
	buf := concat(
		[]byte("FILENAME/first\nEXT/txt\n_SIG/one"),
		[]byte(Delimiter),
		[]byte("FILENAME/lost\nEXT/txt\nno marker"),
		[]byte(Delimiter),
		[]byte("FILENAME/third\n"), []byte("GIF89a..."),
	)

	recs := Parse(buf)
	require.Len(t, recs, 2)
	require.Equal(t, "first", recs[0].Name)
	require.Equal(t, "one", string(recs[0].Content))
	require.Equal(t, "third", recs[1].Name)
	require.Equal(t, "gif", recs[1].Ext)
}

func TestParse_SignaturePriority(t *testing.T) {
	content := concat(pngContent, []byte("...%PDF..."), []byte{0xFF, 0xD8, 0xFF}, []byte("_SIG/"))
	buf := concat([]byte(Delimiter), []byte("FILENAME/img\nEXT/png\n"), content, []byte(Delimiter))

	recs := Parse(buf)
	require.Len(t, recs, 1)
	require.Equal(t, content, recs[0].Content)
}

func TestParse_FallbackMarker(t *testing.T) {
	buf := []byte("**%%FILENAME/readme\nEXT/txt\n_SIG/plain text body**%%")

	recs := Parse(buf)
	require.Len(t, recs, 1)
	require.Equal(t, "readme", recs[0].Name)
	require.Equal(t, "txt", recs[0].Ext)
	require.Equal(t, "plain text body", string(recs[0].Content))
	require.Empty(t, recs[0].Type)
}

func TestParse_FallbackMarkerWithEmptyContent(t *testing.T) {
	recs := Parse([]byte("FILENAME/empty\n_SIG/"))
	require.Len(t, recs, 1)
	require.Empty(t, recs[0].Content)
	require.Empty(t, recs[0].Ext)
	require.Equal(t, "empty", recs[0].FileName())
}

func TestParse_ExtensionResolution(t *testing.T) {
	type testCase struct {
		name   string
		header string
		body   []byte
		ext    string
	}

	cases := []testCase{
		{"explicit ext wins", "EXT/jpeg\n", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"empty ext falls back to signature", "EXT/\n", []byte("%PDF-1.4"), "pdf"},
		{"missing ext uses signature", "", []byte("<?xml?>"), "xml"},
		{"no ext and marker", "", []byte("_SIG/data"), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := concat([]byte("FILENAME/f\n"+tc.header), tc.body)
			recs := Parse(buf)
			require.Len(t, recs, 1)
			require.Equal(t, tc.ext, recs[0].Ext)
		})
	}
}

func TestParse_FallbackNames(t *testing.T) {
	buf := concat(
		pngContent, []byte(Delimiter),
		[]byte("FILENAME/\n"), pngContent, []byte(Delimiter),
		[]byte("EXT/bin\n_SIG/x"),
	)

	recsA := NewParser(WithNames(SeededNames(42))).Parse(buf)
	recsB := NewParser(WithNames(SeededNames(42))).Parse(buf)
	require.Len(t, recsA, 3)
	require.Equal(t, recsA, recsB)

	seen := make(map[string]bool)
	for _, rec := range recsA {
		require.True(t, strings.HasPrefix(rec.Name, FallbackPrefix))
		require.Len(t, rec.Name, len(FallbackPrefix)+12)
		require.False(t, seen[rec.Name])
		seen[rec.Name] = true
	}

	recs := NewParser(WithNames(IndexNames())).Parse(buf)
	require.Equal(t, "block-000", recs[0].Name)
	require.Equal(t, "block-001", recs[1].Name)
	require.Equal(t, "block-002", recs[2].Name)
	require.Equal(t, "block-002.bin", recs[2].FileName())
}

func TestParse_RandomNamesAreDistinct(t *testing.T) {
	buf := bytes.Repeat(concat([]byte("_SIG/x"), []byte(Delimiter)), 200)

	recs := Parse(buf)
	require.Len(t, recs, 200)

	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		require.False(t, seen[rec.Name])
		seen[rec.Name] = true
	}
}

func TestParse_ZeroPaddingInsensitivity(t *testing.T) {
	segment := concat([]byte("FILENAME/doc\nEXT/pdf\nSHA1/abc\n"), []byte("%PDF-1.7 body"))
	want := Parse(segment)
	require.Len(t, want, 1)

	for _, pad := range []int{1, 2, 7, 512} {
		buf := concat(zeros(pad), segment, zeros(pad*3))
		got := Parse(buf)
		require.Len(t, got, 1)
		require.Equal(t, want[0].Name, got[0].Name)
		require.Equal(t, want[0].Ext, got[0].Ext)
		require.Equal(t, want[0].Content, got[0].Content)
		require.Equal(t, want[0].Hash, got[0].Hash)
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	var parts [][]byte
	for _, name := range []string{"c", "a", "b"} {
		parts = append(parts, concat([]byte("FILENAME/"+name+"\n_SIG/"), []byte(name)))
	}
	buf := bytes.Join(parts, []byte(Delimiter))

	recs := Parse(buf)
	require.Len(t, recs, 3)
	require.Equal(t, "c", recs[0].Name)
	require.Equal(t, "a", recs[1].Name)
	require.Equal(t, "b", recs[2].Name)
}

func TestParser_Scan(t *testing.T) {
	buf := concat(
		zeros(4), []byte(Delimiter),
		[]byte("no boundary"), []byte(Delimiter),
		[]byte("FILENAME/ok\n_SIG/1"),
	)

	var reasons []DropReason
	for res := range NewParser().Scan(buf) {
		reasons = append(reasons, res.Dropped)
	}
	require.Equal(t, []DropReason{DropEmpty, DropNoBoundary, DropNone}, reasons)

	n := 0
	for range NewParser().Scan(buf) {
		n++
		break
	}
	require.Equal(t, 1, n)
}
