package sqlutils

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LocatorKind tags the four things a path can mean.
type LocatorKind int

const (
	KindRoot LocatorKind = iota
	KindTableDir
	KindRowDir
	KindFieldFile
)

// Locator is the resolved meaning of a filesystem path: the root, a table
// directory, a row directory, or a single field served as a file. A Locator
// is valid only for the call that resolved it; nothing about it is cached,
// so the same path may resolve differently once the database changes.
type Locator struct {
	Kind   LocatorKind
	Table  Table    // set for table, row and field locators
	Key    []string // decoded primary-key components, set for row and field locators
	Column Column   // set for field locators
}

// splitPath splits a slash-separated path into its segments. The root path
// ("" or "/") has zero segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Resolve classifies a path against the live schema, validating every
// segment as it descends:
//
//	/                     root
//	/table                table directory, if the table exists and has a primary key
//	/table/key            row directory, if key decodes and the row exists
//	/table/key/column     field file, if the column is declared
//
// Unknown segments fail with ErrNotFound, a key of the wrong arity with
// ErrInvalidKey, and anything deeper than three segments with ErrNotFound.
func Resolve(db *sqlx.DB, b SQLBackend, path string) (Locator, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return Locator{Kind: KindRoot}, nil
	}
	if len(segments) > 3 {
		return Locator{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	table, err := b.DescribeTable(db, segments[0])
	if err != nil {
		return Locator{}, err
	}
	pk := table.PrimaryKey()
	if len(pk) == 0 {
		// Not addressable without a key; hidden from the hierarchy.
		return Locator{}, fmt.Errorf("%s: %w", table.Name, ErrNotFound)
	}
	loc := Locator{Kind: KindTableDir, Table: table}
	if len(segments) == 1 {
		return loc, nil
	}

	key, err := DecodeKey(segments[1], len(pk))
	if err != nil {
		return Locator{}, fmt.Errorf("%s: %w", segments[1], err)
	}
	exists, err := b.RowExists(db, table, key)
	if err != nil {
		return Locator{}, err
	}
	if !exists {
		return Locator{}, fmt.Errorf("%s/%s: %w", table.Name, segments[1], ErrNotFound)
	}
	loc.Kind = KindRowDir
	loc.Key = key
	if len(segments) == 2 {
		return loc, nil
	}

	column, ok := table.Column(segments[2])
	if !ok {
		return Locator{}, fmt.Errorf("%s.%s: %w", table.Name, segments[2], ErrNotFound)
	}
	loc.Kind = KindFieldFile
	loc.Column = column

	return loc, nil
}

// ListEntries enumerates a directory locator: table names under the root
// (tables without a primary key are skipped), encoded row keys under a
// table, column names under a row. The listing is built eagerly in one
// pass; there is no paging.
func ListEntries(db *sqlx.DB, b SQLBackend, loc Locator) ([]string, error) {
	switch loc.Kind {
	case KindRoot:
		names, err := b.ListTables(db)
		if err != nil {
			return nil, err
		}
		var entries []string
		for _, name := range names {
			table, err := b.DescribeTable(db, name)
			if err != nil {
				// Dropped between the catalog query and here.
				continue
			}
			if len(table.PrimaryKey()) > 0 {
				entries = append(entries, name)
			}
		}
		return entries, nil

	case KindTableDir:
		return b.ListRowKeys(db, loc.Table)

	case KindRowDir:
		entries := make([]string, len(loc.Table.Columns))
		for i, c := range loc.Table.Columns {
			entries[i] = c.Name
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("%s/%s: %w", loc.Table.Name, loc.Column.Name, ErrNotDir)
	}
}
