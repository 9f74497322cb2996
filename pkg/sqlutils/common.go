// Package sqlutils discovers relational schema shape and runs the minimal
// queries needed to present tables, rows and columns as a directory tree.
// Backend-specific catalog access sits behind the SQLBackend interface;
// everything that can be expressed portably lives on defaultBackend.
package sqlutils

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
)

// AvailableBackends maps the --backend flag values to implementations.
var AvailableBackends = map[string]SQLBackend{
	"sqlite":   SQLiteBackend{},
	"mysql":    MySQLBackend{},
	"postgres": PostgresBackend{},
}

// SQLBackend is the per-driver surface of the filesystem: catalog
// introspection plus the row-level queries the path hierarchy is built
// from. Implementations must not memoize anything; every call re-queries
// the database so that external writes are visible immediately.
type SQLBackend interface {
	OpenDB(dsn string) (*sqlx.DB, error)

	// ListTables returns the names of all base tables in the catalog.
	ListTables(db *sqlx.DB) ([]string, error)
	// DescribeTable returns the column layout of a table, or ErrNotFound
	// if the catalog has no such table.
	DescribeTable(db *sqlx.DB, name string) (Table, error)

	// ListRowKeys returns every primary key in the table, each encoded as
	// one path segment.
	ListRowKeys(db *sqlx.DB, table Table) ([]string, error)
	// RowExists reports whether a row with the decoded key exists.
	RowExists(db *sqlx.DB, table Table, key []string) (bool, error)
	// FetchField returns the file content backing one column of one row.
	FetchField(db *sqlx.DB, table Table, key []string, column Column) ([]byte, error)
}

// defaultBackend implements the queries that work on any driver through
// sqlx's Rebind. Table and column identifiers are interpolated into the
// query text unquoted; key values always bind as parameters. Identifier
// sanitization is an explicit non-goal carried from the source design; a
// malformed identifier surfaces as a store error.
type defaultBackend struct{}

// logQuery logs a statement with collapsed whitespace and its bind args.
func logQuery(query string, args ...any) {
	slog.Debug("query", "sql", strings.Join(strings.Fields(query), " "), "args", args)
}

// pkPredicate builds the "a = ? AND b = ?" clause for a primary key.
func pkPredicate(pk []Column) string {
	preds := make([]string, len(pk))
	for i, c := range pk {
		preds[i] = c.Name + " = ?"
	}
	return strings.Join(preds, " AND ")
}

// ListRowKeys selects all primary-key columns of the table and materializes
// the whole result set in one pass. There is no paging: a table with
// hundreds of thousands of rows may blow the caller's timeout before this
// returns. That failure mode is carried from the source design.
func (d defaultBackend) ListRowKeys(db *sqlx.DB, table Table) ([]string, error) {
	pk := table.PrimaryKey()
	if len(pk) == 0 {
		return nil, fmt.Errorf("%s: %w", table.Name, ErrNoPrimaryKey)
	}

	cols := make([]string, len(pk))
	for i, c := range pk {
		cols[i] = c.Name
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table.Name)
	logQuery(query)

	rows, err := db.Queryx(query)
	if err != nil {
		return nil, fmt.Errorf("listing keys of %s: %w", table.Name, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		tuple, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("listing keys of %s: %w", table.Name, err)
		}
		keys = append(keys, EncodeKey(tuple))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing keys of %s: %w", table.Name, err)
	}

	return keys, nil
}

// RowExists runs a single parameterized existence query.
func (d defaultBackend) RowExists(db *sqlx.DB, table Table, key []string) (bool, error) {
	pk := table.PrimaryKey()
	if len(pk) != len(key) {
		return false, ErrInvalidKey
	}

	query := db.Rebind(fmt.Sprintf(
		"SELECT 1 FROM %s WHERE %s LIMIT 1", table.Name, pkPredicate(pk)))
	args := bindKey(key)
	logQuery(query, args...)

	var one int
	err := db.QueryRow(query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking row in %s: %w", table.Name, err)
	}

	return true, nil
}

// FetchField runs a single-column, single-row select and renders the value
// per the column's affinity.
func (d defaultBackend) FetchField(db *sqlx.DB, table Table, key []string, column Column) ([]byte, error) {
	pk := table.PrimaryKey()
	if len(pk) != len(key) {
		return nil, ErrInvalidKey
	}

	query := db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s", column.Name, table.Name, pkPredicate(pk)))
	args := bindKey(key)
	logQuery(query, args...)

	var value any
	err := db.QueryRow(query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", table.Name, column.Name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s.%s: %w", table.Name, column.Name, err)
	}

	return renderValue(value, column.Affinity), nil
}

func bindKey(key []string) []any {
	args := make([]any, len(key))
	for i, k := range key {
		args[i] = k
	}
	return args
}
