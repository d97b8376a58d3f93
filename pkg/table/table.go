// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package table

// TableSize is the number of slots in the marker array, one per uint16 hash.
const TableSize = 1 << 16

// PrefixTable maps short byte keys to values and answers the question
// "which stored keys are a prefix of this byte slice?" without allocating.
//
// Every prefix of every stored key is hashed into a 65536-entry marker array.
// A walk over candidate data stops at the first byte whose running hash has
// no marker, so scanning a position that cannot start any key costs a single
// array lookup. Hash collisions are resolved by the exact lookup in elems.
type PrefixTable[T any] struct {
	table [TableSize]byte
	elems map[string]T

	maxKeyLen int
}

const (
	// none: no stored key has a prefix hashing here.
	none = iota
	// presentMarker: some stored key has a proper prefix hashing here.
	presentMarker
	// elemMarker: a complete stored key hashes here.
	elemMarker
)

// New returns an empty PrefixTable.
func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func hashStep(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert stores v under key, replacing any previous value.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	var h uint16
	for _, b := range key {
		h = hashStep(h, b)
		t.table[h] = max(t.table[h], presentMarker)
	}
	t.table[h] = elemMarker
	t.elems[string(key)] = v
	t.maxKeyLen = max(t.maxKeyLen, len(key))
}

// Get returns the value stored under key.
func (t *PrefixTable[T]) Get(key []byte) (T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk calls onMatch for every stored key that is a prefix of data, shortest
// first, until onMatch returns true or no longer key can match.
func (t *PrefixTable[T]) Walk(data []byte, onMatch func(T) bool) {
	var h uint16
	for i, b := range data {
		h = hashStep(h, b)

		switch t.table[h] {
		case none:
			return
		case elemMarker:
			if v, ok := t.elems[string(data[:i+1])]; ok && onMatch(v) {
				return
			}
		}

		if i+1 >= t.maxKeyLen {
			return
		}
	}
}

// Match returns the value of the shortest stored key that is a prefix of data.
func (t *PrefixTable[T]) Match(data []byte) (T, bool) {
	var (
		res   T
		found bool
	)
	t.Walk(data, func(v T) bool {
		res, found = v, true
		return true
	})
	return res, found
}

// Size returns the number of stored keys.
func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}

// MaxKeyLen returns the length of the longest stored key.
func (t *PrefixTable[T]) MaxKeyLen() int {
	return t.maxKeyLen
}
