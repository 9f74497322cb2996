package sqlutils

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresBackend introspects through information_schema on the public
// schema.
type PostgresBackend struct{ defaultBackend }

var _ SQLBackend = (*PostgresBackend)(nil)

func (p PostgresBackend) OpenDB(dsn string) (*sqlx.DB, error) {
	return sqlx.Open("postgres", "postgres://"+dsn+"?sslmode=disable")
}

func (p PostgresBackend) ListTables(db *sqlx.DB) ([]string, error) {
	query := `
        SELECT table_name FROM information_schema.tables
        WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`
	logQuery(query)

	var names []string
	if err := db.Select(&names, query); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	return names, nil
}

func (p PostgresBackend) DescribeTable(db *sqlx.DB, name string) (Table, error) {
	query := db.Rebind(`
        SELECT c.column_name, c.data_type, COALESCE(k.ordinal_position, 0)
        FROM information_schema.columns c
        LEFT JOIN (
            SELECT k.column_name, k.ordinal_position
            FROM information_schema.table_constraints t
            JOIN information_schema.key_column_usage k
                ON k.constraint_name = t.constraint_name
                AND k.table_schema = t.table_schema
                AND k.table_name = t.table_name
            WHERE t.table_schema = 'public'
                AND t.table_name = ?
                AND t.constraint_type = 'PRIMARY KEY'
        ) k ON k.column_name = c.column_name
        WHERE c.table_schema = 'public' AND c.table_name = ?
        ORDER BY c.ordinal_position`)
	logQuery(query, name, name)

	rows, err := db.Query(query, name, name)
	if err != nil {
		return Table{}, fmt.Errorf("describing %s: %w", name, err)
	}
	defer rows.Close()

	table := Table{Name: name}
	for rows.Next() {
		var colName, dataType string
		var pkOrdinal int
		if err := rows.Scan(&colName, &dataType, &pkOrdinal); err != nil {
			return Table{}, fmt.Errorf("describing %s: %w", name, err)
		}

		table.Columns = append(table.Columns, Column{
			Name:      colName,
			Affinity:  postgresAffinity(dataType),
			PKOrdinal: pkOrdinal,
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

func postgresAffinity(dataType string) Affinity {
	switch dataType {
	case "bytea":
		return AffinityBlob
	case "character", "character varying", "text", "uuid", "json", "jsonb":
		return AffinityText
	case "smallint", "integer", "bigint", "numeric", "real", "double precision", "boolean":
		return AffinityNumeric
	default:
		return AffinityUnknown
	}
}
