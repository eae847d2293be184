package query

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rlm-dev/rlm/internal/hash"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// DiffResult reports whether a file (or a symbol within it) has drifted
// from what the index has on record.
type DiffResult struct {
	Path       string
	Changed    bool
	StoredHash string
	DiskHash   string
	Symbol     string // set only when a symbol-scoped diff was requested
	Stored     string // indexed content, symbol diffs only
	Current    string // current on-disk slice at the stored line range, symbol diffs only
}

// Diff compares a file's current disk hash against its stored hash. When
// symbol is non-empty, it additionally compares the chunk's indexed
// content against the file's current bytes at the chunk's stored line
// range, ignoring leading/trailing whitespace.
func Diff(s *store.Store, root, path, symbol string) (*DiffResult, error) {
	f, err := s.GetFileByPath(path)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, rlmerr.FileNotFound(path)
	}

	abs := filepath.Join(root, filepath.FromSlash(path))
	diskHash, err := hash.File(abs)
	if err != nil {
		return nil, rlmerr.FileNotFound(path)
	}

	result := &DiffResult{
		Path: path, StoredHash: f.Hash, DiskHash: diskHash,
		Changed: diskHash != f.Hash,
	}
	if symbol == "" {
		return result, nil
	}
	result.Symbol = symbol

	chunk, err := Peek(s, path, symbol)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, rlmerr.FileNotFound(path)
	}
	lines := strings.Split(string(data), "\n")

	start, end := chunk.StartLine-1, chunk.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	var current string
	if start < end {
		current = strings.Join(lines[start:end], "\n")
	}

	result.Stored = chunk.Content
	result.Current = current
	if strings.TrimSpace(current) != strings.TrimSpace(chunk.Content) {
		result.Changed = true
	}
	return result, nil
}
