package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/rlm-dev/rlm/internal/rlmerr"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the single transactional embedded index. It owns one *sql.DB;
// callers do not share the connection across goroutines for writes — the
// Indexer holds it for the duration of a run, query handlers borrow it for
// reads via WAL snapshots.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the store at path and applies schema migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	// The store holds a single writer; cap the pool so WAL readers don't
	// contend with each other for a connection that doesn't exist.
	db.SetMaxOpenConns(1)

	if err := tune(db); err != nil {
		db.Close()
		return nil, err
	}

	if needsMigration(db) {
		log.Printf("rlm: schema migration required, dropping stale index tables at %s", path)
		if err := dropAll(db); err != nil {
			db.Close()
			return nil, rlmerr.Database(err)
		}
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, rlmerr.Database(err)
	}

	return &Store{db: db, path: path}, nil
}

// OpenExisting opens the store without creating it; returns IndexNotFound if
// the backing file is absent.
func OpenExisting(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, rlmerr.IndexNotFound()
		}
		return nil, rlmerr.IO(err)
	}
	return Open(path)
}

func tune(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64 MiB
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying *sql.DB for packages that need raw SQL access
// (the query surface does this for read-only projections).
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the filesystem path backing the store.
func (s *Store) Path() string { return s.path }
