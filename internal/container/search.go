package container

import "bytes"

const (
	// Delimiter separates segments in a container.
	Delimiter = "**%%"

	// FallbackMarker separates header and content when the content does not
	// start with a known signature. The marker itself is not part of the content.
	FallbackMarker = "_SIG/"
)

var (
	delimiter      = []byte(Delimiter)
	fallbackMarker = []byte(FallbackMarker)
)

// IndexOf returns the index of the first occurrence of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
func IndexOf(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}
