package filter

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/ostafen/envcarve/internal/container"
)

// Filter matches names against a set of glob patterns.
// A Filter without patterns matches everything.
type Filter struct {
	patterns []string
	globs    []glob.Glob
}

// New compiles patterns. '/' is a separator, so "*" does not cross directories.
func New(patterns ...string) (*Filter, error) {
	f := &Filter{patterns: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Patterns returns the source patterns.
func (f *Filter) Patterns() []string {
	return f.patterns
}

// Match reports whether name matches any pattern.
func (f *Filter) Match(name string) bool {
	if len(f.globs) == 0 {
		return true
	}
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Records returns the records whose file name matches, preserving order.
func (f *Filter) Records(recs []container.Record) []container.Record {
	if len(f.globs) == 0 {
		return recs
	}

	out := make([]container.Record, 0, len(recs))
	for _, rec := range recs {
		if f.Match(rec.FileName()) {
			out = append(out, rec)
		}
	}
	return out
}
