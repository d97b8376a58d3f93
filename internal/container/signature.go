package container

import (
	"github.com/ostafen/envcarve/pkg/table"
)

// Signature is a magic byte prefix identifying an embedded file type.
type Signature struct {
	Type        string
	Ext         string
	Description string
	Magic       []byte
}

// Found reports whether s is a real match rather than the zero Signature.
func (s Signature) Found() bool {
	return len(s.Magic) > 0
}

// Signatures lists the magic prefixes that mark the start of file content
// inside a segment.
var Signatures = []Signature{
	{
		Type:        "jpeg",
		Ext:         "jpg",
		Description: "JPEG image",
		Magic:       []byte{0xFF, 0xD8, 0xFF},
	},
	{
		Type:        "png",
		Ext:         "png",
		Description: "Portable Network Graphics image",
		Magic:       []byte{0x89, 0x50, 0x4E, 0x47},
	},
	{
		Type:        "gif",
		Ext:         "gif",
		Description: "Graphics Interchange Format image",
		Magic:       []byte{0x47, 0x49, 0x46, 0x38},
	},
	{
		Type:        "pdf",
		Ext:         "pdf",
		Description: "Portable Document Format",
		Magic:       []byte{0x25, 0x50, 0x44, 0x46},
	},
	{
		Type:        "zip",
		Ext:         "zip",
		Description: "ZIP archive",
		Magic:       []byte{0x50, 0x4B, 0x03, 0x04},
	},
	{
		Type:        "xml",
		Ext:         "xml",
		Description: "XML document",
		Magic:       []byte("<?xml"),
	},
}

var signatureTable = buildSignatureTable(Signatures)

func buildSignatureTable(sigs []Signature) *table.PrefixTable[Signature] {
	t := table.New[Signature]()
	// Insert in reverse so that, for identical magics, the first entry wins.
	for i := len(sigs) - 1; i >= 0; i-- {
		t.Insert(sigs[i].Magic, sigs[i])
	}
	return t
}

// DetectSignature returns the signature starting at the lowest index of b,
// together with that index. When two signatures start at the same index the
// shorter magic wins. It returns the zero Signature and -1 if nothing matches.
func DetectSignature(b []byte) (Signature, int) {
	if signatureTable.Size() == 0 {
		return Signature{}, -1
	}

	for i := range b {
		if sig, ok := signatureTable.Match(b[i:]); ok {
			return sig, i
		}
	}
	return Signature{}, -1
}

// StartsWithSignature reports whether b begins with a known magic.
func StartsWithSignature(b []byte) bool {
	_, ok := signatureTable.Match(b)
	return ok
}
