package query

import (
	"sort"
	"strings"

	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// FileSummary is one file's contribution to a Tree listing: its path, its
// language, and how many chunks of each kind it carries.
type FileSummary struct {
	Path      string
	Lang      string
	ChunkCount int
	Kinds     map[store.ChunkKind]int
}

// Tree lists every indexed file under dirPrefix (empty = whole project),
// summarized by chunk counts — the directory-level aggregate over chunks.
func Tree(s *store.Store, dirPrefix string) ([]FileSummary, error) {
	files, err := s.AllFiles()
	if err != nil {
		return nil, err
	}
	prefix := normalizePrefix(dirPrefix)

	var out []FileSummary
	for _, f := range files {
		if prefix != "" && !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		chunks, err := s.ChunksForFile(f.ID)
		if err != nil {
			return nil, err
		}
		fs := FileSummary{Path: f.Path, Lang: f.Lang, ChunkCount: len(chunks), Kinds: map[store.ChunkKind]int{}}
		for _, c := range chunks {
			fs.Kinds[c.Kind]++
		}
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Map returns every chunk in a single file, ordered by position — the
// file-level symbol map.
func Map(s *store.Store, path string) ([]store.Chunk, error) {
	f, err := s.GetFileByPath(path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, rlmerr.FileNotFound(path)
	}
	return s.ChunksForFile(f.ID)
}

// Peek returns the single chunk named ident within path, or SymbolNotFound.
func Peek(s *store.Store, path, ident string) (*store.Chunk, error) {
	chunks, err := Map(s, path)
	if err != nil {
		return nil, err
	}
	for i := range chunks {
		if chunks[i].Ident == ident {
			return &chunks[i], nil
		}
	}
	return nil, rlmerr.SymbolNotFound(ident)
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return p + "/"
}
