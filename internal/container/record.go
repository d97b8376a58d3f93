package container

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Record is a file recovered from a container.
type Record struct {
	Name    string
	Ext     string
	Content []byte // Sub-slice of the parsed buffer

	Type   string // Type of the matched signature, empty for marker-framed content
	Hash   string // SHA1 header value, if any
	Offset int    // Offset of Content within the parsed buffer
	Header Fields
}

// Reconstruct builds a Record from a decoded header, the signature detected at
// the content start and the content itself. fallbackName is used when the
// header has no FILENAME.
func Reconstruct(fields Fields, sig Signature, content []byte, fallbackName string) Record {
	name := fields[KeyFilename]
	if name == "" {
		name = fallbackName
	}

	ext := fields[KeyExt]
	if ext == "" {
		ext = sig.Ext
	}

	return Record{
		Name:    name,
		Ext:     ext,
		Content: content,
		Type:    sig.Type,
		Hash:    fields[KeySHA1],
		Header:  fields,
	}
}

// FileName returns "name.ext", or just the name when the extension is empty.
func (r Record) FileName() string {
	if r.Ext == "" {
		return r.Name
	}
	return r.Name + "." + r.Ext
}

// Size returns the content length in bytes.
func (r Record) Size() int {
	return len(r.Content)
}

// Checksum returns the xxHash64 digest of the content.
func (r Record) Checksum() uint64 {
	return xxhash.Sum64(r.Content)
}

// SHA1 returns the hex encoded SHA-1 digest of the content.
func (r Record) SHA1() string {
	sum := sha1.Sum(r.Content)
	return hex.EncodeToString(sum[:])
}

// VerifySHA1 checks the content against the SHA1 header value.
// Records without a declared hash always verify.
func (r Record) VerifySHA1() bool {
	if r.Hash == "" {
		return true
	}
	return strings.EqualFold(r.SHA1(), strings.TrimSpace(r.Hash))
}
