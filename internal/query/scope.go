package query

import (
	"sort"

	"github.com/rlm-dev/rlm/internal/store"
)

// Scope returns the chunks of path whose line range brackets line,
// innermost (smallest range) first — answering "what am I inside of".
func Scope(s *store.Store, path string, line int) ([]store.Chunk, error) {
	chunks, err := Map(s, path)
	if err != nil {
		return nil, err
	}

	var inScope []store.Chunk
	for _, c := range chunks {
		if c.Ident == store.ImportsIdent {
			continue // the synthetic aggregate has no meaningful line bracket
		}
		if c.StartLine <= line && line <= c.EndLine {
			inScope = append(inScope, c)
		}
	}

	sort.Slice(inScope, func(i, j int) bool {
		return (inScope[i].EndLine - inScope[i].StartLine) < (inScope[j].EndLine - inScope[j].StartLine)
	})
	return inScope, nil
}
