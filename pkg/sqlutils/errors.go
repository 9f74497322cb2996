package sqlutils

import "errors"

var (
	// ErrNotFound occurs when a path segment names a table, row or column
	// that does not exist in the database.
	ErrNotFound = errors.New("no such table, row or column")

	// ErrInvalidKey occurs when a key segment does not decode to the same
	// number of components as the table's primary key.
	ErrInvalidKey = errors.New("key does not match primary key arity")

	// ErrNoPrimaryKey occurs when a table declares no primary key. Such
	// tables cannot be addressed by path and are excluded from listings.
	ErrNoPrimaryKey = errors.New("table has no primary key")

	// ErrNotDir occurs when a directory operation targets a field file.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir occurs when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")
)
