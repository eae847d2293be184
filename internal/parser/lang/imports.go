package lang

import (
	"sort"
	"strings"

	"github.com/rlm-dev/rlm/internal/store"
)

// importEntry is one physical import statement, captured language-agnostic
// across the two tree-sitter binding families.
type importEntry struct {
	startByte, endByte int
	startLine, endLine int
	text               string
}

// buildImportsChunk aggregates every import statement in a file into the
// single synthetic _imports chunk the store model exempts from byte-exact
// reconstruction (its range need not be contiguous — it just spans first
// import to last). Returns nil when the file has no imports.
func buildImportsChunk(entries []importEntry) *store.Chunk {
	if len(entries) == 0 {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].startByte < entries[j].startByte })

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = strings.TrimSpace(e.text)
	}

	return &store.Chunk{
		StartLine: entries[0].startLine,
		EndLine:   entries[len(entries)-1].endLine,
		StartByte: entries[0].startByte,
		EndByte:   entries[len(entries)-1].endByte,
		Kind:      store.KindImports,
		Ident:     store.ImportsIdent,
		Content:   strings.Join(lines, "\n"),
	}
}
