package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables, indexes, the FTS5 projection, and its
// sync triggers. Safe to call on an already-current database: every
// statement is idempotent (IF NOT EXISTS).
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		createFilesTable,
		createChunksTable,
		createRefsTable,
	}
	statements = append(statements, chunkIndexes()...)

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	// FTS5 virtual tables and their triggers must be created outside the
	// transaction that created the backing table.
	if _, err := db.Exec(createChunksFTSTable); err != nil {
		return fmt.Errorf("failed to create chunks_fts: %w", err)
	}
	for i, trigger := range ftsTriggers() {
		if _, err := db.Exec(trigger); err != nil {
			return fmt.Errorf("failed to create FTS trigger %d: %w", i, err)
		}
	}

	return nil
}

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
    id INTEGER PRIMARY KEY,
    path TEXT UNIQUE NOT NULL,
    hash TEXT NOT NULL,
    lang TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    parse_quality TEXT NOT NULL DEFAULT 'complete',
    indexed_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
)`

const createChunksTable = `
CREATE TABLE IF NOT EXISTS chunks (
    id INTEGER PRIMARY KEY,
    file_id INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    start_line INTEGER NOT NULL,
    end_line INTEGER NOT NULL,
    start_byte INTEGER NOT NULL,
    end_byte INTEGER NOT NULL,
    kind TEXT NOT NULL,
    ident TEXT NOT NULL,
    parent TEXT,
    signature TEXT,
    visibility TEXT,
    ui_ctx TEXT,
    doc_comment TEXT,
    attributes TEXT,
    content TEXT NOT NULL
)`

const createRefsTable = `
CREATE TABLE IF NOT EXISTS refs (
    id INTEGER PRIMARY KEY,
    chunk_id INTEGER NOT NULL REFERENCES chunks(id) ON DELETE CASCADE,
    target_ident TEXT NOT NULL,
    ref_kind TEXT NOT NULL,
    line INTEGER NOT NULL,
    col INTEGER NOT NULL
)`

const createChunksFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
    ident, signature, doc_comment, content,
    content='chunks', content_rowid='id'
)`

func chunkIndexes() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_chunks_file_id ON chunks(file_id)",
		"CREATE INDEX IF NOT EXISTS idx_chunks_ident ON chunks(ident)",
		"CREATE INDEX IF NOT EXISTS idx_chunks_parent ON chunks(parent)",
		"CREATE INDEX IF NOT EXISTS idx_chunks_kind ON chunks(kind)",
		"CREATE INDEX IF NOT EXISTS idx_chunks_file_kind ON chunks(file_id, kind)",
		"CREATE INDEX IF NOT EXISTS idx_refs_target ON refs(target_ident)",
		"CREATE INDEX IF NOT EXISTS idx_refs_chunk_id ON refs(chunk_id)",
	}
}

// ftsTriggers keeps chunks_fts synchronized with chunks on every mutation.
// Update is modeled as delete-then-insert, matching fts5's external-content
// contentless-sync idiom.
func ftsTriggers() []string {
	return []string{
		`CREATE TRIGGER IF NOT EXISTS chunks_ai AFTER INSERT ON chunks BEGIN
			INSERT INTO chunks_fts(rowid, ident, signature, doc_comment, content)
			VALUES (new.id, new.ident, COALESCE(new.signature, ''), COALESCE(new.doc_comment, ''), new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS chunks_ad AFTER DELETE ON chunks BEGIN
			INSERT INTO chunks_fts(chunks_fts, rowid, ident, signature, doc_comment, content)
			VALUES ('delete', old.id, old.ident, COALESCE(old.signature, ''), COALESCE(old.doc_comment, ''), old.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS chunks_au AFTER UPDATE ON chunks BEGIN
			INSERT INTO chunks_fts(chunks_fts, rowid, ident, signature, doc_comment, content)
			VALUES ('delete', old.id, old.ident, COALESCE(old.signature, ''), COALESCE(old.doc_comment, ''), old.content);
			INSERT INTO chunks_fts(rowid, ident, signature, doc_comment, content)
			VALUES (new.id, new.ident, COALESCE(new.signature, ''), COALESCE(new.doc_comment, ''), new.content);
		END`,
	}
}

// needsMigration reports whether an existing database predates the current
// schema (missing doc_comment / parse_quality columns). A brand-new,
// tableless database does not need migration — CreateSchema just creates it.
func needsMigration(db *sql.DB) bool {
	tablesExist := probe(db, "SELECT id FROM files LIMIT 0")
	if !tablesExist {
		return false
	}
	hasDocComment := probe(db, "SELECT doc_comment FROM chunks LIMIT 0")
	hasParseQuality := probe(db, "SELECT parse_quality FROM files LIMIT 0")
	return !hasDocComment || !hasParseQuality
}

func probe(db *sql.DB, query string) bool {
	rows, err := db.Query(query)
	if err != nil {
		return false
	}
	rows.Close()
	return true
}

// dropAll destroys the index tables ahead of a migration. The index is a
// cache, reproducible from source, so this is an intentional one-shot,
// lossy operation — the caller is expected to reindex afterward.
func dropAll(db *sql.DB) error {
	statements := []string{
		"DROP TRIGGER IF EXISTS chunks_ai",
		"DROP TRIGGER IF EXISTS chunks_ad",
		"DROP TRIGGER IF EXISTS chunks_au",
		"DROP TABLE IF EXISTS chunks_fts",
		"DROP TABLE IF EXISTS refs",
		"DROP TABLE IF EXISTS chunks",
		"DROP TABLE IF EXISTS files",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to drop during migration (%s): %w", stmt, err)
		}
	}
	return nil
}
