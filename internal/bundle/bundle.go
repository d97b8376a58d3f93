package bundle

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/extract"
)

// DefaultName is the file name used for bundles when none is given.
const DefaultName = "extracted_files.zip"

// Method selects how entries are compressed.
type Method string

const (
	Store   Method = "store"
	Deflate Method = "deflate"
	Zstd    Method = "zstd"
)

// ErrUnknownMethod is returned for unsupported compression methods.
var ErrUnknownMethod = errors.New("unknown compression method")

// ParseMethod parses a method name, defaulting to Deflate.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(s)); m {
	case "":
		return Deflate, nil
	case Store, Deflate, Zstd:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) zipMethod() uint16 {
	switch m {
	case Store:
		return zip.Store
	case Zstd:
		return zstd.ZipMethodWinZip
	default:
		return zip.Deflate
	}
}

// Write bundles recs into a zip archive written to w. Entries are named as
// extract.FileNames names them, so duplicates get distinct names.
func Write(w io.Writer, recs []container.Record, method Method) error {
	if len(recs) == 0 {
		return extract.ErrNoFiles
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	if method == Zstd {
		zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	}

	modified := time.Now()
	for i, name := range extract.FileNames(recs) {
		rec := recs[i]

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     filepath.ToSlash(name),
			Method:   method.zipMethod(),
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create entry %q: %w", name, err)
		}

		if _, err := fw.Write(rec.Content); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", name, err)
		}
	}
	return zw.Close()
}

// NewReader opens a bundle for reading, with zstd entries supported.
func NewReader(r io.ReaderAt, size int64) (*zip.Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return zr, nil
}
