//go:build linux

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
	"context"
	"os"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// RecordFS is a read-only filesystem exposing the records of a container
// as files of its root directory.
type RecordFS struct {
	entries []Entry
	byName  map[string]int
	mtime   time.Time
}

// NewRecordFS builds a filesystem over entries. Entry data is served as is.
func NewRecordFS(entries []Entry, mtime time.Time) *RecordFS {
	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		byName[e.Name] = i
	}
	return &RecordFS{
		entries: entries,
		byName:  byName,
		mtime:   mtime,
	}
}

func (rfs *RecordFS) Root() (fs.Node, error) {
	return &Dir{fs: rfs}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs *RecordFS
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = 1
	a.Mode = os.ModeDir | 0555
	a.Mtime = d.fs.mtime
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	idx, ok := d.fs.byName[name]
	if !ok {
		return nil, fuse.ENOENT
	}
	return &File{entry: d.fs.entries[idx], mtime: d.fs.mtime}, nil
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirents := make([]fuse.Dirent, len(d.fs.entries))
	for i, e := range d.fs.entries {
		dirents[i] = fuse.Dirent{
			Inode: e.Inode,
			Name:  e.Name,
			Type:  fuse.DT_File,
		}
	}
	return dirents, nil
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	entry Entry
	mtime time.Time
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.entry.Inode
	a.Mode = 0444
	a.Size = uint64(len(f.entry.Data))
	a.Mtime = f.mtime
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	data := f.entry.Data
	if req.Offset >= int64(len(data)) {
		resp.Data = []byte{}
		return nil
	}

	end := min(req.Offset+int64(req.Size), int64(len(data)))
	resp.Data = data[req.Offset:end]
	return nil
}
