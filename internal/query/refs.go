package query

import "github.com/rlm-dev/rlm/internal/store"

// RefResult is a reference joined to its owning chunk, for display.
type RefResult struct {
	Reference store.Reference
	Chunk     store.Chunk
}

// Refs returns every reference mentioning symbol, joined to its owning
// chunk, ordered by line.
func Refs(s *store.Store, symbol string) ([]RefResult, error) {
	refs, err := s.RefsByTarget(symbol)
	if err != nil {
		return nil, err
	}
	out := make([]RefResult, 0, len(refs))
	chunkCache := map[int64]*store.Chunk{}
	for _, r := range refs {
		c, ok := chunkCache[r.ChunkID]
		if !ok {
			fetched, err := s.ChunkByID(r.ChunkID)
			if err != nil {
				return nil, err
			}
			chunkCache[r.ChunkID] = fetched
			c = fetched
		}
		if c == nil {
			continue // chunk since deleted out from under a stale ref row; tolerate stale reads
		}
		out = append(out, RefResult{Reference: r, Chunk: *c})
	}
	return out, nil
}
