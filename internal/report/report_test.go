package report

import (
	"bytes"
	"testing"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []container.Record {
	buf := []byte("FILENAME/pic\nEXT/png\n\x89PNG\x01\x02**%%FILENAME/notes\nEXT/txt\n_SIG/hello")
	return container.Parse(buf)
}

func TestWriteAndVerify(t *testing.T) {
	recs := sampleRecords()
	require.Len(t, recs, 2)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "sample.env", 80, recs))
	require.Contains(t, buf.String(), "<filename>pic.png</filename>")
	require.Contains(t, buf.String(), `<hashdigest type="sha1">`)

	mismatches, err := Verify(bytes.NewReader(buf.Bytes()), recs)
	require.NoError(t, err)
	require.Empty(t, mismatches)
}

func TestVerify_Mismatches(t *testing.T) {
	recs := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "sample.env", 80, recs))

	changed := []container.Record{recs[0], recs[1]}
	changed[1].Content = []byte("HELLO")

	mismatches, err := Verify(bytes.NewReader(buf.Bytes()), changed)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	require.Equal(t, 1, mismatches[0].Index)
	require.Equal(t, "notes.txt", mismatches[0].Name)
	require.Equal(t, "sha1 digest mismatch", mismatches[0].Reason)

	mismatches, err = Verify(bytes.NewReader(buf.Bytes()), recs[:1])
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	require.Equal(t, "missing from container", mismatches[0].Reason)

	extra := append(append([]container.Record{}, recs...), container.Record{Name: "x"})
	mismatches, err = Verify(bytes.NewReader(buf.Bytes()), extra)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	require.Equal(t, "missing from report", mismatches[0].Reason)
	require.Equal(t, "#2 x: missing from report", mismatches[0].String())
}

func TestVerify_InvalidReport(t *testing.T) {
	_, err := Verify(bytes.NewReader([]byte("<dfxml><fileobject>")), nil)
	require.Error(t, err)
}
