package store

import "github.com/rlm-dev/rlm/internal/rlmerr"

// CallEdge is one caller-calls-callee pair, joining a call reference back
// to the ident of the chunk that owns it.
type CallEdge struct {
	Caller string
	Callee string
}

// CallEdges returns every call-kind reference in the index as a
// caller/callee ident pair, for building an in-memory call graph.
func (s *Store) CallEdges() ([]CallEdge, error) {
	rows, err := s.db.Query(
		`SELECT chunks.ident, refs.target_ident
		 FROM refs JOIN chunks ON chunks.id = refs.chunk_id
		 WHERE refs.ref_kind = ? AND chunks.ident != ''`, RefCall)
	if err != nil {
		return nil, rlmerr.Database(err)
	}
	defer rows.Close()

	var out []CallEdge
	for rows.Next() {
		var e CallEdge
		if err := rows.Scan(&e.Caller, &e.Callee); err != nil {
			return nil, rlmerr.Database(err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
