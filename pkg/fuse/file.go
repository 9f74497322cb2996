package fuse

import (
	"context"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/jmoiron/sqlx"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// FileHandle is an open field file. It holds no state beyond the path:
// every read re-resolves and re-fetches, so reads always see the current
// database value.
type FileHandle struct {
	db   *sqlx.DB
	path string
}

var _ fs.Handle = (*FileHandle)(nil)

var _ = fs.NodeOpener(&File{})

// Open validates that the path still resolves to a field file. No handle
// state is retained.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, res *fuse.OpenResponse) (fs.Handle, error) {
	loc, err := sqlutils.Resolve(f.db, Backend, f.path)
	if err != nil {
		return nil, errno(err)
	}
	if loc.Kind != sqlutils.KindFieldFile {
		return nil, errno(sqlutils.ErrIsDir)
	}

	return &FileHandle{f.db, f.path}, nil
}

var _ = fs.HandleReader(&FileHandle{})

// Read fetches the whole field value and returns the requested slice,
// clamped to the value's length. Each read executes the query again; there
// is no caching across reads of the same file.
func (fh *FileHandle) Read(ctx context.Context, req *fuse.ReadRequest, res *fuse.ReadResponse) error {
	loc, err := sqlutils.Resolve(fh.db, Backend, fh.path)
	if err != nil {
		return errno(err)
	}
	if loc.Kind != sqlutils.KindFieldFile {
		return errno(sqlutils.ErrIsDir)
	}

	data, err := Backend.FetchField(fh.db, loc.Table, loc.Key, loc.Column)
	if err != nil {
		return errno(err)
	}

	offset := req.Offset
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	end := offset + int64(req.Size)
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	res.Data = data[offset:end]

	return nil
}

var _ = fs.HandleWriter(&FileHandle{})

// Write fails: the tree is read-only.
func (fh *FileHandle) Write(ctx context.Context, req *fuse.WriteRequest, res *fuse.WriteResponse) error {
	return errReadOnly
}

var _ fs.HandleReleaser = (*FileHandle)(nil)

// Release has nothing to release.
func (fh *FileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}
