//go:build !linux

package fuse

import (
	"errors"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/logger"
)

func Mount(mountpoint string, recs []container.Record, log *logger.Logger) error {
	return errors.New("FUSE mount is only supported on Linux")
}
