package store

import (
	"database/sql"

	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// RefsByTarget returns every reference mentioning targetIdent.
func (s *Store) RefsByTarget(targetIdent string) ([]Reference, error) {
	rows, err := s.db.Query(
		`SELECT id, chunk_id, target_ident, ref_kind, line, col
		 FROM refs WHERE target_ident = ? ORDER BY line`, targetIdent)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectRefs(rows)
}

// RefsForChunk returns every reference owned by chunkID.
func (s *Store) RefsForChunk(chunkID int64) ([]Reference, error) {
	rows, err := s.db.Query(
		`SELECT id, chunk_id, target_ident, ref_kind, line, col
		 FROM refs WHERE chunk_id = ? ORDER BY line`, chunkID)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	return collectRefs(rows)
}

func collectRefs(rows *sql.Rows) ([]Reference, error) {
	defer rows.Close()
	var out []Reference
	for rows.Next() {
		var r Reference
		if err := rows.Scan(&r.ID, &r.ChunkID, &r.TargetIdent, &r.RefKind, &r.Line, &r.Col); err != nil {
			return nil, rlmerr.Database(err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
