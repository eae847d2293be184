package edit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rlm-dev/rlm/internal/langmap"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// ReplaceDiff describes a pending replacement without having written it.
type ReplaceDiff struct {
	File      string
	Symbol    string
	OldCode   string
	NewCode   string
	StartLine int
	EndLine   int
}

// ReplaceSymbol rewrites the chunk carrying ident in filePath to newCode,
// validating the whole resulting file before it touches disk.
func ReplaceSymbol(s *store.Store, guard *Guard, filePath, ident, newCode string) (string, error) {
	f, err := s.GetFileByPath(filePath)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", rlmerr.FileNotFound(filePath)
	}

	chunks, err := s.ChunksForFile(f.ID)
	if err != nil {
		return "", err
	}
	chunk := findByIdent(chunks, ident)
	if chunk == nil {
		return "", rlmerr.SymbolNotFound(ident)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", rlmerr.FileNotFound(filePath)
	}
	source := string(data)

	start, end := chunk.StartByte, chunk.EndByte
	if start > len(source) || end > len(source) || start > end {
		return "", rlmerr.EditConflict()
	}

	var b strings.Builder
	b.Grow(len(source) - (end - start) + len(newCode))
	b.WriteString(source[:start])
	b.WriteString(newCode)
	b.WriteString(source[end:])
	modified := b.String()

	lang := langmap.ExtToLang(extOf(filePath))
	if err := guard.ValidateAndWrite(lang, modified, filePath); err != nil {
		return "", err
	}
	return modified, nil
}

// PreviewReplace computes the diff a ReplaceSymbol call would produce,
// without touching disk.
func PreviewReplace(s *store.Store, filePath, ident, newCode string) (*ReplaceDiff, error) {
	f, err := s.GetFileByPath(filePath)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, rlmerr.FileNotFound(filePath)
	}

	chunks, err := s.ChunksForFile(f.ID)
	if err != nil {
		return nil, err
	}
	chunk := findByIdent(chunks, ident)
	if chunk == nil {
		return nil, rlmerr.SymbolNotFound(ident)
	}

	return &ReplaceDiff{
		File: filePath, Symbol: ident,
		OldCode: chunk.Content, NewCode: newCode,
		StartLine: chunk.StartLine, EndLine: chunk.EndLine,
	}, nil
}

func findByIdent(chunks []store.Chunk, ident string) *store.Chunk {
	for i := range chunks {
		if chunks[i].Ident == ident {
			return &chunks[i]
		}
	}
	return nil
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimPrefix(ext, ".")
}
