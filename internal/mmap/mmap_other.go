//go:build !unix

package mmap

import (
	"errors"
	"os"
)

// ErrUnsupported is returned on platforms without mmap support.
var ErrUnsupported = errors.New("mmap is not supported on this platform")

type MmapFile struct {
	Data []byte
	File *os.File
}

func NewMmapFile(filePath string) (*MmapFile, error) {
	return nil, ErrUnsupported
}

func (mf *MmapFile) Close() error {
	return nil
}
