package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// GetFileByPath returns the file record for path, or nil if not indexed.
func (s *Store) GetFileByPath(path string) (*File, error) {
	row := s.db.QueryRow(
		`SELECT id, path, hash, lang, size_bytes, parse_quality, indexed_at
		 FROM files WHERE path = ?`, path)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return f, nil
}

// GetFileByID returns the file record for id, or nil if absent.
func (s *Store) GetFileByID(id int64) (*File, error) {
	row := s.db.QueryRow(
		`SELECT id, path, hash, lang, size_bytes, parse_quality, indexed_at
		 FROM files WHERE id = ?`, id)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return f, nil
}

// AllFiles returns every indexed file, ordered by path.
func (s *Store) AllFiles() ([]File, error) {
	rows, err := s.db.Query(
		`SELECT id, path, hash, lang, size_bytes, parse_quality, indexed_at
		 FROM files ORDER BY path`)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.Path, &f.Hash, &f.Lang, &f.SizeBytes, &f.ParseQuality, &f.IndexedAt); err != nil {
			return nil, rlmerr.Database(err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFile(row *sql.Row) (*File, error) {
	var f File
	err := row.Scan(&f.ID, &f.Path, &f.Hash, &f.Lang, &f.SizeBytes, &f.ParseQuality, &f.IndexedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RefInput is a reference staged for insertion, pointing at its owning
// chunk by position in the chunks slice passed to ReindexFile (the DB id
// doesn't exist yet when the parser produces references).
type RefInput struct {
	ChunkIndex  int
	TargetIdent string
	RefKind     RefKind
	Line        int
	Col         int
}

// ReindexFile atomically replaces a file's chunks and references with a new
// version: delete old chunks (cascading to refs), insert the new file row,
// insert the new chunks, insert the new refs. Readers observe either the
// old or the new version, never a mix.
func (s *Store) ReindexFile(f File, chunks []Chunk, refs []RefInput) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, rlmerr.Database(err)
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRow(`SELECT id FROM files WHERE path = ?`, f.Path).Scan(&fileID)
	if err == nil {
		if _, err := tx.Exec(`DELETE FROM chunks WHERE file_id = ?`, fileID); err != nil {
			return 0, rlmerr.Database(fmt.Errorf("clearing old chunks: %w", err))
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, rlmerr.Database(err)
	}

	now := f.IndexedAt
	if now == "" {
		now = time.Now().UTC().Format(time.RFC3339Nano)
	}

	res, err := tx.Exec(
		`INSERT INTO files (path, hash, lang, size_bytes, parse_quality, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   hash=excluded.hash, lang=excluded.lang, size_bytes=excluded.size_bytes,
		   parse_quality=excluded.parse_quality, indexed_at=excluded.indexed_at`,
		f.Path, f.Hash, f.Lang, f.SizeBytes, f.ParseQuality, now)
	if err != nil {
		return 0, rlmerr.Database(fmt.Errorf("upserting file: %w", err))
	}

	if fileID == 0 {
		fileID, err = res.LastInsertId()
		if err != nil {
			return 0, rlmerr.Database(err)
		}
		if fileID == 0 {
			// UPSERT path: row existed under a different rowid churn; re-fetch.
			if err := tx.QueryRow(`SELECT id FROM files WHERE path = ?`, f.Path).Scan(&fileID); err != nil {
				return 0, rlmerr.Database(err)
			}
		}
	}

	chunkIDs := make([]int64, len(chunks))
	for i, c := range chunks {
		r, err := tx.Exec(
			`INSERT INTO chunks (file_id, start_line, end_line, start_byte, end_byte,
			   kind, ident, parent, signature, visibility, ui_ctx, doc_comment, attributes, content)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, c.StartLine, c.EndLine, c.StartByte, c.EndByte,
			c.Kind, c.Ident, nullable(c.Parent), nullable(c.Signature), nullable(c.Visibility),
			nullable(c.UIContext), nullable(c.DocComment), nullable(c.Attributes), c.Content)
		if err != nil {
			return 0, rlmerr.Database(fmt.Errorf("inserting chunk %s: %w", c.Ident, err))
		}
		id, err := r.LastInsertId()
		if err != nil {
			return 0, rlmerr.Database(err)
		}
		chunkIDs[i] = id
	}

	for _, r := range refs {
		if r.ChunkIndex < 0 || r.ChunkIndex >= len(chunkIDs) {
			return 0, rlmerr.Database(fmt.Errorf("reference %s points at out-of-range chunk index %d", r.TargetIdent, r.ChunkIndex))
		}
		chunkID := chunkIDs[r.ChunkIndex]
		if _, err := tx.Exec(
			`INSERT INTO refs (chunk_id, target_ident, ref_kind, line, col) VALUES (?, ?, ?, ?, ?)`,
			chunkID, r.TargetIdent, r.RefKind, r.Line, r.Col); err != nil {
			return 0, rlmerr.Database(fmt.Errorf("inserting ref %s: %w", r.TargetIdent, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, rlmerr.Database(err)
	}
	return fileID, nil
}

// DeleteFile removes a file record, cascading to its chunks and their refs.
func (s *Store) DeleteFile(path string) error {
	_, err := s.db.Exec(`DELETE FROM files WHERE path = ?`, path)
	if err != nil {
		return rlmerr.Database(err)
	}
	return nil
}

func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
