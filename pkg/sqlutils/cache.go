package sqlutils

import (
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// cachingBackend memoizes the two introspection calls for a bounded time.
// Row-level queries always pass through: only schema shape is cached, and
// only when the operator opts in. With the cache active, a table created or
// altered externally may take up to the TTL to show up.
type cachingBackend struct {
	SQLBackend

	ttl time.Duration

	mu        sync.Mutex
	tables    []string
	tablesAt  time.Time
	described map[string]describedEntry
}

type describedEntry struct {
	table Table
	at    time.Time
}

// NewCachingBackend wraps b with a TTL-bounded schema cache. A TTL of zero
// or less returns b unchanged, which is the default no-cache mode: every
// call reflects the current database state.
func NewCachingBackend(b SQLBackend, ttl time.Duration) SQLBackend {
	if ttl <= 0 {
		return b
	}
	return &cachingBackend{
		SQLBackend: b,
		ttl:        ttl,
		described:  make(map[string]describedEntry),
	}
}

func (c *cachingBackend) ListTables(db *sqlx.DB) ([]string, error) {
	c.mu.Lock()
	if c.tables != nil && time.Since(c.tablesAt) < c.ttl {
		tables := c.tables
		c.mu.Unlock()
		return tables, nil
	}
	c.mu.Unlock()

	tables, err := c.SQLBackend.ListTables(db)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tables = tables
	c.tablesAt = time.Now()
	c.mu.Unlock()

	return tables, nil
}

func (c *cachingBackend) DescribeTable(db *sqlx.DB, name string) (Table, error) {
	c.mu.Lock()
	if entry, ok := c.described[name]; ok && time.Since(entry.at) < c.ttl {
		c.mu.Unlock()
		return entry.table, nil
	}
	c.mu.Unlock()

	table, err := c.SQLBackend.DescribeTable(db, name)
	if err != nil {
		return Table{}, err
	}

	c.mu.Lock()
	c.described[name] = describedEntry{table: table, at: time.Now()}
	c.mu.Unlock()

	return table, nil
}
