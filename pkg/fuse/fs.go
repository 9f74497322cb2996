// Package fuse serves a relational database as a read-only directory tree:
// one directory per table, one subdirectory per row (named by its encoded
// primary key), one file per column. Nodes carry nothing but a path; every
// kernel call re-resolves that path against the live database through the
// sqlutils.SQLBackend interface, so the tree always reflects current state.
package fuse

import (
	"time"

	"bazil.org/fuse/fs"
	"github.com/jmoiron/sqlx"

	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// Backend must be set by the caller package before mounting.
var Backend sqlutils.SQLBackend = sqlutils.SQLiteBackend{}

// mountTime stamps every synthesized attribute; the database carries no
// timestamp metadata of its own.
var mountTime = time.Now()

// FS represents the mounted database.
type FS struct {
	db *sqlx.DB
}

var _ fs.FS = (*FS)(nil)

// Root returns the root directory, which lists the tables.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{f.db, "/"}, nil
}

// Dir is a directory node: the root, a table, or a row.
type Dir struct {
	db   *sqlx.DB
	path string
}

// File is a field file node: one column of one row.
type File struct {
	db   *sqlx.DB
	path string
}
