package fuse

import (
	"fmt"
	"log/slog"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/jmoiron/sqlx"
)

// openDB opens the DB and checks it answers a catalog query, so a bad DSN
// fails before anything is mounted. Caller package must set the Backend.
func openDB(dsn string) (*sqlx.DB, error) {
	db, err := Backend.OpenDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := Backend.ListTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not usable: %w", err)
	}

	return db, nil
}

// MountFS mounts the database read-only at mountpoint and serves until
// unmounted. The connection pool opened here is the only state shared
// across filesystem calls.
func MountFS(dsn, mountpoint string) error {
	db, err := openDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := fuse.Mount(mountpoint,
		fuse.FSName("blobfs"),
		fuse.Subtype("blobfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	slog.Info("mounted", "dsn", dsn, "mountpoint", mountpoint)

	filesys := &FS{db}
	if err = fs.Serve(c, filesys); err != nil {
		return err
	}

	<-c.Ready
	if err = c.MountError; err != nil {
		return err
	}

	return nil
}
