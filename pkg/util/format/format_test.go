package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "0B", FormatBytes(0))
	require.Equal(t, "1023B", FormatBytes(1023))
	require.Equal(t, "1KB", FormatBytes(1024))
	require.Equal(t, "1.50KB", FormatBytes(1536))
	require.Equal(t, "4MB", FormatBytes(4*MB))
	require.Equal(t, "2GB", FormatBytes(2*GB))
}

func TestParseBytes(t *testing.T) {
	type testCase struct {
		in   string
		want uint64
	}

	cases := []testCase{
		{"", 0},
		{"512", 512},
		{"512B", 512},
		{"4KB", 4 * KB},
		{"4kb", 4 * KB},
		{"1.5MB", 3 * MB / 2},
		{" 2 GB ", 2 * GB},
		{"1TB", TB},
	}

	for _, tc := range cases {
		v, err := ParseBytes(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, v, tc.in)
	}

	for _, bad := range []string{"MB", "abc", "-1KB", "1XB"} {
		_, err := ParseBytes(bad)
		require.Error(t, err, bad)
	}
}
