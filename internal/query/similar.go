package query

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/philippgille/chromem-go"

	"github.com/rlm-dev/rlm/internal/store"
)

// embeddingDims is the width of the lexical-hash embedding below.
const embeddingDims = 64

// SimilarResult is one chunk judged similar to an anchor chunk.
type SimilarResult struct {
	ChunkID int64
	Ident   string
	File    string
	Score   float32
}

// hashEmbed turns text into a deterministic, fixed-width vector: every
// trigram hashes into one of embeddingDims buckets and accumulates a
// count there, then the vector is L2-normalized. It needs no model, no
// network call, and no GPU — trading semantic accuracy for a
// zero-dependency similarity signal that still exercises chromem-go's
// real vector storage and cosine-similarity query path end to end.
func hashEmbed(text string) []float32 {
	vec := make([]float32, embeddingDims)
	runes := []rune(text)
	if len(runes) < 3 {
		return vec
	}
	for i := 0; i+3 <= len(runes); i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(string(runes[i : i+3])))
		vec[h.Sum32()%uint32(embeddingDims)]++
	}
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return vec
	}
	norm := math.Sqrt(sumSq)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// Similar finds the chunks whose content is lexically closest to
// anchorChunkID's, ranked by cosine similarity over hashEmbed vectors.
// The comparison set is rebuilt into a fresh in-memory chromem-go
// collection on every call, the same no-persistent-index tradeoff
// FuzzySymbol makes for its bleve index — the project's chunk count
// keeps a full rebuild cheap enough not to warrant cache invalidation
// plumbing.
func Similar(ctx context.Context, s *store.Store, anchorChunkID int64, limit int) ([]SimilarResult, error) {
	if limit <= 0 {
		limit = 10
	}

	anchor, err := s.ChunkByID(anchorChunkID)
	if err != nil {
		return nil, err
	}
	if anchor == nil || anchor.Content == "" {
		return nil, nil
	}

	idents, err := s.AllIdentChunks()
	if err != nil {
		return nil, err
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection("rlm-similar", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create similarity collection: %w", err)
	}

	byID := make(map[string]store.IdentChunk, len(idents))
	for _, ic := range idents {
		if ic.ChunkID == anchorChunkID {
			continue
		}
		chunk, err := s.ChunkByID(ic.ChunkID)
		if err != nil {
			return nil, err
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		id := fmt.Sprintf("%d", ic.ChunkID)
		byID[id] = ic
		doc := chromem.Document{ID: id, Content: chunk.Content, Embedding: hashEmbed(chunk.Content)}
		if err := collection.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("index chunk %d into similarity set: %w", ic.ChunkID, err)
		}
	}

	if collection.Count() == 0 {
		return nil, nil
	}
	if limit > collection.Count() {
		limit = collection.Count()
	}

	results, err := collection.QueryEmbedding(ctx, hashEmbed(anchor.Content), limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	out := make([]SimilarResult, 0, len(results))
	for _, r := range results {
		ic := byID[r.ID]
		out = append(out, SimilarResult{ChunkID: ic.ChunkID, Ident: ic.Ident, File: ic.File, Score: r.Similarity})
	}
	return out, nil
}
