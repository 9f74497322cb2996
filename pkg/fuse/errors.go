package fuse

import (
	"errors"
	"log/slog"
	"syscall"

	"bazil.org/fuse"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// errReadOnly rejects every mutating call, whatever its target.
var errReadOnly = fuse.Errno(syscall.EROFS)

// errno maps resolution and query failures onto POSIX errors. Anything not
// in the taxonomy is a store failure and surfaces as EIO.
func errno(err error) error {
	switch {
	case errors.Is(err, sqlutils.ErrNotFound):
		return fuse.ENOENT
	case errors.Is(err, sqlutils.ErrInvalidKey):
		return fuse.Errno(syscall.EINVAL)
	case errors.Is(err, sqlutils.ErrNotDir):
		return fuse.Errno(syscall.ENOTDIR)
	case errors.Is(err, sqlutils.ErrIsDir):
		return fuse.Errno(syscall.EISDIR)
	default:
		slog.Error("store error", "err", err)
		return fuse.Errno(syscall.EIO)
	}
}
