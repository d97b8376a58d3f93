package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	type testCase struct {
		name   string
		header string
		want   Fields
	}

	cases := []testCase{
		{"empty", "", Fields{}},
		{"basic", "FILENAME/pic\nEXT/png\n", Fields{"FILENAME": "pic", "EXT": "png"}},
		{"value keeps slashes", "FILENAME/dir/sub/file\n", Fields{"FILENAME": "dir/sub/file"}},
		{"trims key and value", "  FILENAME /  report  \r\n", Fields{"FILENAME": "report"}},
		{"skips blank lines", "\n\n  \nEXT/txt\n\n", Fields{"EXT": "txt"}},
		{"ignores lines without slash", "garbage\nEXT/txt\nmore garbage", Fields{"EXT": "txt"}},
		{"last duplicate wins", "EXT/a\nEXT/b\n", Fields{"EXT": "b"}},
		{"empty key", "/value\n", Fields{"": "value"}},
		{"empty value", "EXT/\n", Fields{"EXT": ""}},
		{"no trailing newline", "SHA1/abc", Fields{"SHA1": "abc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseHeader([]byte(tc.header)))
		})
	}
}

func TestParseHeader_BinaryGarbage(t *testing.T) {
	fields := ParseHeader([]byte{0xFF, 0xFE, '/', 0x00, '\n', 'K', '/', 'v'})
	require.Equal(t, "v", fields["K"])
	require.Len(t, fields, 2)
}

func TestFields_Get(t *testing.T) {
	f := Fields{"EXT": "png"}

	v, ok := f.Get("EXT")
	require.True(t, ok)
	require.Equal(t, "png", v)

	_, ok = f.Get("FILENAME")
	require.False(t, ok)
}
