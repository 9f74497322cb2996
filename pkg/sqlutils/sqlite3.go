package sqlutils

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend introspects through sqlite_master and the table_info
// pragma.
type SQLiteBackend struct{ defaultBackend }

var _ SQLBackend = (*SQLiteBackend)(nil)

// OpenDB opens the database file. The pool is capped at one connection:
// every filesystem call serializes on it, which is the concurrency-safe
// rendition of the source's single shared connection.
func (s SQLiteBackend) OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	return db, nil
}

func (s SQLiteBackend) ListTables(db *sqlx.DB) ([]string, error) {
	query := "SELECT name FROM sqlite_master WHERE type = 'table'"
	logQuery(query)

	var names []string
	if err := db.Select(&names, query); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	return names, nil
}

// DescribeTable queries the table_info pragma. The table name goes into
// the pragma text as-is; the pragma yields zero rows for an unknown table,
// which maps to ErrNotFound.
func (s SQLiteBackend) DescribeTable(db *sqlx.DB, name string) (Table, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", name)
	logQuery(query)

	rows, err := db.Queryx(query)
	if err != nil {
		return Table{}, fmt.Errorf("describing %s: %w", name, err)
	}
	defer rows.Close()

	table := Table{Name: name}
	for rows.Next() {
		var info struct {
			CID     int     `db:"cid"`
			Name    string  `db:"name"`
			Type    string  `db:"type"`
			NotNull int     `db:"notnull"`
			Default *string `db:"dflt_value"`
			PK      int     `db:"pk"`
		}
		if err := rows.StructScan(&info); err != nil {
			return Table{}, fmt.Errorf("describing %s: %w", name, err)
		}

		table.Columns = append(table.Columns, Column{
			Name:      info.Name,
			Affinity:  sqliteAffinity(info.Type),
			PKOrdinal: info.PK,
		})
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("describing %s: %w", name, err)
	}

	if len(table.Columns) == 0 {
		return Table{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return table, nil
}

// sqliteAffinity applies SQLite's declared-type affinity rules, collapsed
// onto the four categories the filesystem distinguishes.
func sqliteAffinity(decl string) Affinity {
	d := strings.ToUpper(decl)
	switch {
	case strings.Contains(d, "INT"):
		return AffinityNumeric
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return AffinityText
	case strings.Contains(d, "BLOB"), d == "":
		return AffinityBlob
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"),
		strings.Contains(d, "NUM"), strings.Contains(d, "DEC"):
		return AffinityNumeric
	default:
		return AffinityUnknown
	}
}
