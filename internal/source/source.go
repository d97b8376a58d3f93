package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ostafen/envcarve/internal/mmap"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrTooLarge is returned when an input exceeds the configured limit.
var ErrTooLarge = errors.New("input too large")

// Buffer holds a whole container in memory.
type Buffer struct {
	data []byte
	mf   *mmap.MmapFile
}

// Bytes returns the container content. The slice must not be used after Close.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Mapped reports whether the content is memory-mapped.
func (b *Buffer) Mapped() bool {
	return b.mf != nil
}

// Close releases the mapping, if any.
func (b *Buffer) Close() error {
	b.data = nil
	if b.mf == nil {
		return nil
	}
	err := b.mf.Close()
	b.mf = nil
	return err
}

// Load materializes the container at path. Regular non-empty files are
// memory-mapped; standard input and other files are read in full. A limit
// of 0 means no limit.
func Load(path string, limit uint64) (*Buffer, error) {
	if path == Stdin {
		return readAll(os.Stdin, limit)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit > 0 && uint64(info.Size()) > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, path, info.Size(), limit)
	}

	if info.Mode().IsRegular() && info.Size() > 0 {
		mf, err := mmap.NewMmapFile(path)
		if err == nil {
			return &Buffer{data: mf.Data, mf: mf}, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readAll(f, limit)
}

func readAll(r io.Reader, limit uint64) (*Buffer, error) {
	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && uint64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	return &Buffer{data: data}, nil
}
