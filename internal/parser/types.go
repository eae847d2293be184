// Package parser routes source files to a language-specific parser and
// normalizes the result into store chunks and references.
package parser

import "github.com/rlm-dev/rlm/internal/store"

// ParseResult is the outcome of a quality-aware parse: the chunks extracted
// plus whether the parse was complete, partial (syntax errors tolerated by
// tree-sitter's error recovery), or unknown.
type ParseResult struct {
	Chunks  []store.Chunk
	Quality store.ParseQuality
}

// CodeParser extracts structural chunks and cross-references from a source
// file in a language with a real grammar or heuristic structural parser.
type CodeParser interface {
	Lang() string
	ParseChunks(source []byte) ([]store.Chunk, error)
	ParseChunksAndRefs(source []byte) ([]store.Chunk, []store.RefInput, error)
	ExtractRefs(source []byte, chunks []store.Chunk) ([]store.RefInput, error)
	ValidateSyntax(source []byte) bool
	ParseWithQuality(source []byte) (ParseResult, error)
}

// TextParser extracts chunks from a non-code file (docs, config, data).
// Text parsers never produce references.
type TextParser interface {
	Lang() string
	ParseChunks(source []byte) ([]store.Chunk, error)
}
