package store

import (
	"database/sql"

	"github.com/rlm-dev/rlm/internal/rlmerr"
)

const chunkColumns = `id, file_id, start_line, end_line, start_byte, end_byte,
	kind, ident, parent, signature, visibility, ui_ctx, doc_comment, attributes, content`

func scanChunk(row rowScanner) (Chunk, error) {
	var c Chunk
	var parent, sig, vis, ui, doc, attrs sql.NullString
	err := row.Scan(&c.ID, &c.FileID, &c.StartLine, &c.EndLine, &c.StartByte, &c.EndByte,
		&c.Kind, &c.Ident, &parent, &sig, &vis, &ui, &doc, &attrs, &c.Content)
	if err != nil {
		return Chunk{}, err
	}
	c.Parent = parent.String
	c.Signature = sig.String
	c.Visibility = vis.String
	c.UIContext = ui.String
	c.DocComment = doc.String
	c.Attributes = attrs.String
	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ChunksForFile returns every chunk belonging to fileID, ordered by
// position in the file.
func (s *Store) ChunksForFile(fileID int64) ([]Chunk, error) {
	rows, err := s.db.Query(`SELECT `+chunkColumns+` FROM chunks WHERE file_id = ? ORDER BY start_line`, fileID)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectChunks(rows)
}

// ChunksByIdent returns every chunk across the project carrying ident.
func (s *Store) ChunksByIdent(ident string) ([]Chunk, error) {
	rows, err := s.db.Query(`SELECT `+chunkColumns+` FROM chunks WHERE ident = ?`, ident)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectChunks(rows)
}

// ChunksByParent returns every chunk whose parent equals container.
func (s *Store) ChunksByParent(container string) ([]Chunk, error) {
	rows, err := s.db.Query(`SELECT `+chunkColumns+` FROM chunks WHERE parent = ?`, container)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectChunks(rows)
}

// ChunksByKind returns every chunk of the given kind, optionally scoped to
// one file (fileID == 0 means unscoped).
func (s *Store) ChunksByKind(kind ChunkKind, fileID int64) ([]Chunk, error) {
	var rows *sql.Rows
	var err error
	if fileID != 0 {
		rows, err = s.db.Query(`SELECT `+chunkColumns+` FROM chunks WHERE kind = ? AND file_id = ?`, kind, fileID)
	} else {
		rows, err = s.db.Query(`SELECT `+chunkColumns+` FROM chunks WHERE kind = ?`, kind)
	}
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectChunks(rows)
}

// ChunkByID returns a single chunk, or nil if absent.
func (s *Store) ChunkByID(id int64) (*Chunk, error) {
	row := s.db.QueryRow(`SELECT `+chunkColumns+` FROM chunks WHERE id = ?`, id)
	c, err := scanChunk(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return &c, nil
}

func collectChunks(rows *sql.Rows) ([]Chunk, error) {
	defer rows.Close()
	var out []Chunk
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, rlmerr.Database(err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SearchFTS runs a pre-sanitized FTS5 match query and returns the matching
// chunks ranked by relevance, capped at limit.
func (s *Store) SearchFTS(ftsQuery string, limit int) ([]Chunk, error) {
	rows, err := s.db.Query(
		`SELECT `+chunkColumnsAliased()+`
		 FROM chunks_fts f JOIN chunks c ON c.id = f.rowid
		 WHERE chunks_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectChunks(rows)
}

func chunkColumnsAliased() string {
	return "c.id, c.file_id, c.start_line, c.end_line, c.start_byte, c.end_byte, c.kind, c.ident, c.parent, c.signature, c.visibility, c.ui_ctx, c.doc_comment, c.attributes, c.content"
}

// IdentChunk is a lightweight projection of a named chunk's identity and
// location, joined with its owning file's path. Built for secondary
// in-memory indexes (fuzzy symbol search) that would otherwise need to
// reload every chunk's full content just to read its ident.
type IdentChunk struct {
	ChunkID int64
	Ident   string
	Kind    ChunkKind
	File    string
}

// AllIdentChunks returns every named chunk across the project paired with
// its file path, ordered by file then position.
func (s *Store) AllIdentChunks() ([]IdentChunk, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.ident, c.kind, f.path
		FROM chunks c JOIN files f ON f.id = c.file_id
		WHERE c.ident != ''
		ORDER BY f.path, c.start_line`)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	defer rows.Close()

	var out []IdentChunk
	for rows.Next() {
		var ic IdentChunk
		if err := rows.Scan(&ic.ChunkID, &ic.Ident, &ic.Kind, &ic.File); err != nil {
			return nil, rlmerr.Database(err)
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}
