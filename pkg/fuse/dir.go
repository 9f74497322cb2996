package fuse

import (
	"context"
	"path"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// directory read
var _ = fs.HandleReadDirAller(&Dir{})

// ReadDirAll enumerates the directory from the database in one eager pass:
// table names under the root, encoded row keys under a table, column names
// under a row.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	loc, err := sqlutils.Resolve(d.db, Backend, d.path)
	if err != nil {
		return nil, errno(err)
	}

	entries, err := sqlutils.ListEntries(d.db, Backend, loc)
	if err != nil {
		return nil, errno(err)
	}

	// Rows list their columns as files; everything else lists directories.
	childType := fuse.DT_Dir
	if loc.Kind == sqlutils.KindRowDir {
		childType = fuse.DT_File
	}

	ret := make([]fuse.Dirent, len(entries))
	for i, name := range entries {
		ret[i] = fuse.Dirent{Name: name, Type: childType}
	}

	return ret, nil
}

// directory lookup
var _ = fs.NodeRequestLookuper(&Dir{})

// Lookup resolves one name under d against the live schema and data.
func (d *Dir) Lookup(ctx context.Context, req *fuse.LookupRequest, res *fuse.LookupResponse) (fs.Node, error) {
	childPath := path.Join(d.path, req.Name)

	loc, err := sqlutils.Resolve(d.db, Backend, childPath)
	if err != nil {
		return nil, errno(err)
	}

	if loc.Kind == sqlutils.KindFieldFile {
		return &File{d.db, childPath}, nil
	}
	return &Dir{d.db, childPath}, nil
}

// Every mutating call fails with a read-only violation, independent of the
// target path.

var _ = fs.NodeMkdirer(&Dir{})

func (d *Dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	return nil, errReadOnly
}

var _ = fs.NodeCreater(&Dir{})

func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, res *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	return nil, nil, errReadOnly
}

var _ = fs.NodeRemover(&Dir{})

func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	return errReadOnly
}

var _ fs.NodeRenamer = (*Dir)(nil)

func (d *Dir) Rename(ctx context.Context, req *fuse.RenameRequest, newDir fs.Node) error {
	return errReadOnly
}
