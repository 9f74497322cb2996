package fuse

import (
	"context"
	"os"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

var _ fs.Node = (*Dir)(nil)
var _ fs.Node = (*File)(nil)

// dirSize is the conventional size reported for every directory.
const dirSize = 4096

// setCommonAttr fills the fields shared by every node. Valid stays zero so
// the kernel re-asks instead of caching stale attributes.
func setCommonAttr(attr *fuse.Attr) {
	attr.Valid = 0
	attr.Uid = uint32(os.Getuid())
	attr.Gid = uint32(os.Getgid())
	attr.Ctime = mountTime
	attr.Mtime = mountTime
	attr.Atime = mountTime
}

// Attr synthesizes directory attributes: traversable and listable, never
// writable.
func (d *Dir) Attr(ctx context.Context, attr *fuse.Attr) error {
	if _, err := sqlutils.Resolve(d.db, Backend, d.path); err != nil {
		return errno(err)
	}

	setCommonAttr(attr)
	attr.Mode = os.ModeDir | 0o555
	attr.Nlink = 2
	attr.Size = dirSize

	return nil
}

// Attr synthesizes file attributes. Size is the byte length of the field's
// rendered value, so even an attribute-only request executes the field
// query: the size cannot be known without the data.
func (f *File) Attr(ctx context.Context, attr *fuse.Attr) error {
	loc, err := sqlutils.Resolve(f.db, Backend, f.path)
	if err != nil {
		return errno(err)
	}
	if loc.Kind != sqlutils.KindFieldFile {
		return fuse.ENOENT
	}

	data, err := Backend.FetchField(f.db, loc.Table, loc.Key, loc.Column)
	if err != nil {
		return errno(err)
	}

	setCommonAttr(attr)
	attr.Mode = 0o444
	attr.Nlink = 1
	attr.Size = uint64(len(data))

	return nil
}

var _ fs.NodeSetattrer = (*Dir)(nil)
var _ fs.NodeSetattrer = (*File)(nil)

// Setattr fails: attributes are synthesized, not stored.
func (d *Dir) Setattr(ctx context.Context, req *fuse.SetattrRequest, res *fuse.SetattrResponse) error {
	return errReadOnly
}

// Setattr fails: attributes are synthesized, not stored.
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, res *fuse.SetattrResponse) error {
	return errReadOnly
}
