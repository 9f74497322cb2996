package sqlutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	db := openFixtureDB(t)

	for _, path := range []string{"/", ""} {
		loc, err := Resolve(db, SQLiteBackend{}, path)
		require.NoError(t, err)
		assert.Equal(t, KindRoot, loc.Kind)
	}
}

func TestResolveTableDir(t *testing.T) {
	db := openFixtureDB(t)

	loc, err := Resolve(db, SQLiteBackend{}, "/repository")
	require.NoError(t, err)
	assert.Equal(t, KindTableDir, loc.Kind)
	assert.Equal(t, "repository", loc.Table.Name)
}

func TestResolveUnknownTable(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/no_such_table")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTableWithoutPrimaryKeyHidden(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/scratch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveRowDir(t *testing.T) {
	db := openFixtureDB(t)

	loc, err := Resolve(db, SQLiteBackend{}, "/repository/eddieantonio,blobfs")
	require.NoError(t, err)
	assert.Equal(t, KindRowDir, loc.Kind)
	assert.Equal(t, []string{"eddieantonio", "blobfs"}, loc.Key)
}

func TestResolveRowWrongArity(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/repository/eddieantonio")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestResolveMissingRow(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/repository/nobody,nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveFieldFile(t *testing.T) {
	db := openFixtureDB(t)

	loc, err := Resolve(db, SQLiteBackend{}, "/source_file/"+fixtureHash+"/source")
	require.NoError(t, err)
	assert.Equal(t, KindFieldFile, loc.Kind)
	assert.Equal(t, "source", loc.Column.Name)
	assert.Equal(t, AffinityBlob, loc.Column.Affinity)
}

func TestResolveUnknownColumn(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/source_file/"+fixtureHash+"/nonexistent_column")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTooDeep(t *testing.T) {
	db := openFixtureDB(t)

	_, err := Resolve(db, SQLiteBackend{}, "/source_file/"+fixtureHash+"/source/deeper")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEntriesRootSkipsKeylessTables(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	entries, err := ListEntries(db, b, Locator{Kind: KindRoot})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"repository", "source_file", "repository_source"}, entries)
}

func TestListEntriesTableDir(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	loc, err := Resolve(db, b, "/source_file")
	require.NoError(t, err)

	entries, err := ListEntries(db, b, loc)
	require.NoError(t, err)
	assert.Contains(t, entries, fixtureHash)
}

func TestListEntriesRowDir(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	loc, err := Resolve(db, b, "/source_file/"+fixtureHash)
	require.NoError(t, err)

	entries, err := ListEntries(db, b, loc)
	require.NoError(t, err)
	assert.Equal(t, []string{"hash", "source", "lines", "ratio", "license"}, entries)
}

func TestListEntriesFieldFileNotDir(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	loc, err := Resolve(db, b, "/source_file/"+fixtureHash+"/source")
	require.NoError(t, err)

	_, err = ListEntries(db, b, loc)
	assert.ErrorIs(t, err, ErrNotDir)
}

// The resolver consults the live database on every call: a table created
// after one resolution is visible to the next.
func TestResolveSeesLiveSchema(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	_, err := Resolve(db, b, "/latecomer")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.Exec("CREATE TABLE latecomer (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	loc, err := Resolve(db, b, "/latecomer")
	require.NoError(t, err)
	assert.Equal(t, KindTableDir, loc.Kind)
}
