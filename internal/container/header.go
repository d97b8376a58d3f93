package container

import (
	"bytes"
	"strings"
)

// Well-known header keys.
const (
	KeyFilename = "FILENAME"
	KeyExt      = "EXT"
	KeySHA1     = "SHA1"
)

// Fields holds the key/value pairs of a segment header.
type Fields map[string]string

// Get returns the value stored under key.
func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// ParseHeader decodes a header block made of "KEY/value" lines separated by
// line feeds. Keys and values are trimmed, the value keeps any further '/'.
// Blank lines and lines without '/' are skipped; a repeated key keeps its
// last value. Malformed input only yields fewer fields.
func ParseHeader(b []byte) Fields {
	fields := make(Fields)
	for _, ln := range bytes.Split(b, []byte{'\n'}) {
		ln = bytes.TrimSpace(ln)
		if len(ln) == 0 {
			continue
		}

		key, value, ok := strings.Cut(string(ln), "/")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}
