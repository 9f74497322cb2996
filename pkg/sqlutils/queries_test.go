package sqlutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRowKeys(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "repository")
	require.NoError(t, err)

	keys, err := b.ListRowKeys(db, table)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"eddieantonio,blobfs", "alice,o2"}, keys)
}

func TestListRowKeysSingleColumn(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)

	keys, err := b.ListRowKeys(db, table)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fixtureHash, "deadbeef"}, keys)
}

func TestListRowKeysNoPrimaryKey(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "scratch")
	require.NoError(t, err)

	_, err = b.ListRowKeys(db, table)
	assert.ErrorIs(t, err, ErrNoPrimaryKey)
}

func TestRowExists(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "repository")
	require.NoError(t, err)

	exists, err := b.RowExists(db, table, []string{"eddieantonio", "blobfs"})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = b.RowExists(db, table, []string{"eddieantonio", "nope"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRowExistsWrongArity(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "repository")
	require.NoError(t, err)

	_, err = b.RowExists(db, table, []string{"only-one"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestFetchFieldBlobVerbatim(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)
	source, ok := table.Column("source")
	require.True(t, ok)

	data, err := b.FetchField(db, table, []string{fixtureHash}, source)
	require.NoError(t, err)
	assert.Equal(t, fixtureBlob(), data)
	assert.Len(t, data, 9567)
}

func TestFetchFieldTextAndNumeric(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)

	cases := map[string]string{
		"license": "GPL-3.0",
		"lines":   "311",
		"ratio":   "0.25",
		"hash":    fixtureHash,
	}
	for name, expect := range cases {
		column, ok := table.Column(name)
		require.True(t, ok)

		data, err := b.FetchField(db, table, []string{fixtureHash}, column)
		require.NoError(t, err)
		assert.Equal(t, expect, string(data), "column %s", name)
	}
}

func TestFetchFieldNullIsEmpty(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)
	license, ok := table.Column("license")
	require.True(t, ok)

	data, err := b.FetchField(db, table, []string{"deadbeef"}, license)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFetchFieldMissingRow(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)
	source, ok := table.Column("source")
	require.True(t, ok)

	_, err = b.FetchField(db, table, []string{"0000"}, source)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Identifiers are interpolated unsanitized; a bad one is a store error,
// not a quiet miss.
func TestFetchFieldMalformedIdentifier(t *testing.T) {
	db := openFixtureDB(t)
	b := SQLiteBackend{}

	table, err := b.DescribeTable(db, "source_file")
	require.NoError(t, err)

	_, err = b.FetchField(db, table, []string{fixtureHash}, Column{Name: "no such column"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
