package filter

import (
	"testing"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/stretchr/testify/require"
)

func TestFilter_Match(t *testing.T) {
	f, err := New("*.png", "report-?.pdf", "docs/*.{txt,md}")
	require.NoError(t, err)

	require.True(t, f.Match("pic.png"))
	require.True(t, f.Match("report-1.pdf"))
	require.True(t, f.Match("docs/readme.md"))
	require.False(t, f.Match("report-10.pdf"))
	require.False(t, f.Match("sub/pic.png"))
	require.False(t, f.Match("docs/deep/readme.md"))
	require.Equal(t, []string{"*.png", "report-?.pdf", "docs/*.{txt,md}"}, f.Patterns())
}

func TestFilter_Empty(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	require.True(t, f.Match("anything"))

	recs := []container.Record{{Name: "a"}, {Name: "b"}}
	require.Equal(t, recs, f.Records(recs))
}

func TestFilter_Records(t *testing.T) {
	f, err := New("*.txt")
	require.NoError(t, err)

	recs := []container.Record{
		{Name: "a", Ext: "txt"},
		{Name: "b", Ext: "png"},
		{Name: "c", Ext: "txt"},
	}

	got := f.Records(recs)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Name)
	require.Equal(t, "c", got[1].Name)
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New("[")
	require.Error(t, err)
}
