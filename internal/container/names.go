package container

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// FallbackPrefix starts every generated record name.
const FallbackPrefix = "block-"

// NameGenerator produces names for records whose header has no FILENAME.
// index is the position of the segment within the buffer.
type NameGenerator interface {
	Next(index int) string
}

// NameFunc adapts a function to NameGenerator.
type NameFunc func(index int) string

func (f NameFunc) Next(index int) string { return f(index) }

type randomNames struct{}

// RandomNames returns a generator yielding "block-" followed by 12 hex
// characters taken from a random UUID.
func RandomNames() NameGenerator {
	return randomNames{}
}

func (randomNames) Next(int) string {
	id := uuid.New()
	return FallbackPrefix + hex.EncodeToString(id[10:16])
}

type seededNames struct {
	rng *rand.Rand
}

// SeededNames returns a deterministic generator. Two generators created with
// the same seed produce the same sequence. Not safe for concurrent use.
func SeededNames(seed uint64) NameGenerator {
	return &seededNames{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *seededNames) Next(int) string {
	return fmt.Sprintf("%s%012x", FallbackPrefix, g.rng.Uint64()&0xffffffffffff)
}

// IndexNames returns a generator naming records after their segment index,
// e.g. "block-007".
func IndexNames() NameGenerator {
	return NameFunc(func(index int) string {
		return fmt.Sprintf("%s%03d", FallbackPrefix, index)
	})
}

// ParseNameScheme maps "random" or "index" to a generator.
func ParseNameScheme(scheme string) (NameGenerator, error) {
	switch strings.ToLower(scheme) {
	case "", "random":
		return RandomNames(), nil
	case "index":
		return IndexNames(), nil
	}
	return nil, fmt.Errorf("unknown name scheme %q", scheme)
}
