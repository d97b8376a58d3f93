package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/envcarve/internal/container"
	osutils "github.com/ostafen/envcarve/pkg/util/os"
)

// ErrNoFiles is reported when a container yields no records.
var ErrNoFiles = errors.New("no files found")

// FileNames returns one relative file name per record, each staying inside
// the output directory. Names that would escape it are reduced to their base,
// unusable names fall back to the record index and duplicates get a numeric
// suffix before the extension.
func FileNames(recs []container.Record) []string {
	names := make([]string, len(recs))
	taken := make(map[string]bool, len(recs))

	for i, rec := range recs {
		name := localName(rec.FileName())
		if name == "" {
			name = fmt.Sprintf("%s%03d", container.FallbackPrefix, i)
		}

		candidate := name
		for n := 1; taken[candidate]; n++ {
			ext := filepath.Ext(name)
			candidate = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
		}

		taken[candidate] = true
		names[i] = candidate
	}
	return names
}

func localName(name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsLocal(name) {
		return filepath.Clean(name)
	}

	base := filepath.Base(name)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	if !filepath.IsLocal(base) {
		return ""
	}
	return base
}

// WriteFiles writes every record below dir, creating it when needed.
// onWrite, if not nil, is called after each file is written.
func WriteFiles(dir string, recs []container.Record, onWrite func(path string, n int)) error {
	if _, err := osutils.EnsureDir(dir, false); err != nil {
		return err
	}

	for i, name := range FileNames(recs) {
		path := filepath.Join(dir, name)

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("cannot create directory for file %q: %w", name, err)
		}
		if err := os.WriteFile(path, recs[i].Content, 0644); err != nil {
			return fmt.Errorf("failed to write file %q: %w", name, err)
		}

		if onWrite != nil {
			onWrite(path, recs[i].Size())
		}
	}
	return nil
}
