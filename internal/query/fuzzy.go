package query

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/rlm-dev/rlm/internal/store"
)

// FuzzyResult is one approximate-name match against the symbol index.
type FuzzyResult struct {
	Ident string
	Kind  store.ChunkKind
	File  string
	Score float64
}

type identDoc struct {
	Ident string `json:"ident"`
	Kind  string `json:"kind"`
	File  string `json:"file"`
}

// buildIdentMapping maps identDoc.Ident with the standard analyzer — the
// field bleve's fuzzy query edit-distance matching runs against.
func buildIdentMapping() *mapping.IndexMappingImpl {
	identField := bleve.NewTextFieldMapping()
	identField.Analyzer = "standard"

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("ident", identField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// FuzzySymbol finds chunks whose identifier approximately matches rawQuery
// (tolerant of typos and partial names), the complement to Search's exact
// FTS5 content match. The symbol set is small enough that an in-memory
// bleve index is rebuilt fresh on every call rather than kept live — no
// invalidation bookkeeping required.
func FuzzySymbol(s *store.Store, rawQuery string, limit int) ([]FuzzyResult, error) {
	if rawQuery == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	idents, err := s.AllIdentChunks()
	if err != nil {
		return nil, err
	}
	if len(idents) == 0 {
		return nil, nil
	}

	index, err := bleve.NewMemOnly(buildIdentMapping())
	if err != nil {
		return nil, fmt.Errorf("build fuzzy symbol index: %w", err)
	}
	defer index.Close()

	batch := index.NewBatch()
	byID := make(map[string]store.IdentChunk, len(idents))
	for i, ic := range idents {
		id := fmt.Sprintf("%d", i)
		byID[id] = ic
		if err := batch.Index(id, identDoc{Ident: ic.Ident, Kind: string(ic.Kind), File: ic.File}); err != nil {
			return nil, fmt.Errorf("index symbol %q: %w", ic.Ident, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("batch fuzzy index: %w", err)
	}

	fq := bleve.NewFuzzyQuery(rawQuery)
	fq.Fuzziness = 2
	req := bleve.NewSearchRequest(fq)
	req.Size = limit

	res, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search: %w", err)
	}

	out := make([]FuzzyResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ic := byID[hit.ID]
		out = append(out, FuzzyResult{Ident: ic.Ident, Kind: ic.Kind, File: ic.File, Score: hit.Score})
	}
	return out, nil
}
