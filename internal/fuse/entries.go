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
package fuse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/extract"
)

// Entry is one file exposed by the mounted directory.
type Entry struct {
	Name  string
	Inode uint64
	Data  []byte
}

// Entries lays out recs as a flat directory: nested names have their
// separators replaced by '_' and clashes get a numeric suffix.
func Entries(recs []container.Record) []Entry {
	entries := make([]Entry, len(recs))
	taken := make(map[string]bool, len(recs))

	for i, name := range extract.FileNames(recs) {
		flat := strings.ReplaceAll(filepath.ToSlash(name), "/", "_")

		candidate := flat
		for n := 1; taken[candidate]; n++ {
			ext := filepath.Ext(flat)
			candidate = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(flat, ext), n, ext)
		}
		taken[candidate] = true

		entries[i] = Entry{
			Name: candidate,
			// Inode 1 is the root directory.
			Inode: uint64(i) + 2,
			Data:  recs[i].Content,
		}
	}
	return entries
}
