package sqlutils

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// The fixture mirrors a small source-code database: repositories keyed by
// (owner, name), file contents keyed by hash, and a join table with a
// four-column key. scratch has no primary key and must stay invisible.
const fixtureSchema = `
	CREATE TABLE repository (
		owner TEXT NOT NULL,
		name TEXT NOT NULL,
		stars INTEGER,
		PRIMARY KEY (owner, name)
	);
	CREATE TABLE source_file (
		hash TEXT PRIMARY KEY,
		source BLOB,
		lines INTEGER,
		ratio REAL,
		license TEXT
	);
	CREATE TABLE repository_source (
		owner TEXT NOT NULL,
		name TEXT NOT NULL,
		hash TEXT NOT NULL,
		path TEXT NOT NULL,
		PRIMARY KEY (owner, name, hash, path)
	);
	CREATE TABLE scratch (note TEXT);
`

const fixtureHash = "98c2d421177751858e7d8166a4cf443e"

// fixtureBlob is 9567 bytes covering every byte value, so a verbatim
// round trip through the blob path is distinguishable from a UTF-8 one.
func fixtureBlob() []byte {
	b := make([]byte, 9567)
	for i := range b {
		b[i] = byte(i % 256)
	}
	return b
}

func openFixtureDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := SQLiteBackend{}.OpenDB(filepath.Join(t.TempDir(), "fixture.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)

	for _, stmt := range []struct {
		query string
		args  []any
	}{
		{"INSERT INTO repository VALUES (?, ?, ?)", []any{"eddieantonio", "blobfs", 27}},
		{"INSERT INTO repository VALUES (?, ?, ?)", []any{"alice", "o2", nil}},
		{"INSERT INTO source_file VALUES (?, ?, ?, ?, ?)", []any{fixtureHash, fixtureBlob(), 311, 0.25, "GPL-3.0"}},
		{"INSERT INTO source_file VALUES (?, ?, ?, ?, ?)", []any{"deadbeef", []byte("package main\n"), 1, nil, nil}},
		{"INSERT INTO repository_source VALUES (?, ?, ?, ?)", []any{"eddieantonio", "blobfs", fixtureHash, "blobfs.py"}},
		{"INSERT INTO scratch VALUES (?)", []any{"invisible"}},
	} {
		_, err := db.Exec(stmt.query, stmt.args...)
		require.NoError(t, err)
	}

	return db
}
