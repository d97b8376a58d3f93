package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Debug("hidden")
	l.Infof("hidden %d", 1)
	l.Warnf("found %d files", 3)
	l.Error("boom")

	require.Equal(t, "[WARN] found 3 files\n[ERROR] boom\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("debug"))
	require.Equal(t, WarnLevel, ParseLevel("WARN"))
	require.Equal(t, ErrorLevel, ParseLevel("Error"))
	require.Equal(t, InfoLevel, ParseLevel("INFO"))
	require.Equal(t, InfoLevel, ParseLevel("bogus"))
	require.Equal(t, "WARN", WarnLevel.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
}
