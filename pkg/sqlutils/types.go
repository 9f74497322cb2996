package sqlutils

import "sort"

// Affinity is the declared storage category of a column. It decides how a
// fetched value is rendered into file content: blob columns are served
// verbatim, everything else is served as UTF-8 text.
type Affinity int

const (
	AffinityUnknown Affinity = iota
	AffinityText
	AffinityNumeric
	AffinityBlob
)

func (a Affinity) String() string {
	switch a {
	case AffinityText:
		return "text"
	case AffinityNumeric:
		return "numeric"
	case AffinityBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Column describes one column of a table.
//
// PKOrdinal is the column's 1-based position within the composite primary
// key, or 0 if the column is not part of the key.
type Column struct {
	Name      string
	Affinity  Affinity
	PKOrdinal int
}

// Table describes one table: its name and columns in declaration order.
// Tables are re-discovered from the database catalog on every use and are
// never cached between filesystem calls.
type Table struct {
	Name    string
	Columns []Column
}

// PrimaryKey returns the primary-key columns in key-ordinal order. An empty
// result means the table has no declared primary key and is not
// representable in the filesystem hierarchy.
func (t Table) PrimaryKey() []Column {
	var pk []Column
	for _, c := range t.Columns {
		if c.PKOrdinal > 0 {
			pk = append(pk, c)
		}
	}
	sort.Slice(pk, func(i, j int) bool { return pk[i].PKOrdinal < pk[j].PKOrdinal })
	return pk
}

// Column returns the declared column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
