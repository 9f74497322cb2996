package sqlutils

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// MySQLBackend introspects through information_schema on the schema named
// in the DSN.
type MySQLBackend struct{ defaultBackend }

var _ SQLBackend = (*MySQLBackend)(nil)

func (m MySQLBackend) OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	return db, nil
}

func (m MySQLBackend) ListTables(db *sqlx.DB) ([]string, error) {
	query := `
        SELECT table_name FROM information_schema.tables
        WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'`
	logQuery(query)

	var names []string
	if err := db.Select(&names, query); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	return names, nil
}

func (m MySQLBackend) DescribeTable(db *sqlx.DB, name string) (Table, error) {
	query := db.Rebind(`
        SELECT c.column_name, c.data_type, COALESCE(k.ordinal_position, 0)
        FROM information_schema.columns c
        LEFT JOIN information_schema.key_column_usage k
            ON k.table_schema = c.table_schema
            AND k.table_name = c.table_name
            AND k.column_name = c.column_name
            AND k.constraint_name = 'PRIMARY'
        WHERE c.table_schema = DATABASE() AND c.table_name = ?
        ORDER BY c.ordinal_position`)
	logQuery(query, name)

	rows, err := db.Query(query, name)
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
			Affinity:  mysqlAffinity(dataType),
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

func mysqlAffinity(dataType string) Affinity {
	switch dataType {
	case "blob", "tinyblob", "mediumblob", "longblob", "binary", "varbinary":
		return AffinityBlob
	case "char", "varchar", "text", "tinytext", "mediumtext", "longtext", "enum", "set", "json":
		return AffinityText
	case "tinyint", "smallint", "mediumint", "int", "bigint",
		"decimal", "numeric", "float", "double", "bit", "year":
		return AffinityNumeric
	default:
		return AffinityUnknown
	}
}
