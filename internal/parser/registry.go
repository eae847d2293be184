package parser

import (
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// Registry routes a language identifier to its CodeParser or TextParser.
// It is built once at startup from every language the indexer recognizes.
type Registry struct {
	codeParsers map[string]CodeParser
	textParsers map[string]TextParser
}

// NewRegistry builds a Registry from pre-constructed parser sets, so callers
// (internal/parser/lang and internal/parser/text) own their own
// construction and dependency wiring.
func NewRegistry(codeParsers map[string]CodeParser, textParsers map[string]TextParser) *Registry {
	return &Registry{codeParsers: codeParsers, textParsers: textParsers}
}

// Supports reports whether lang has any parser registered.
func (r *Registry) Supports(lang string) bool {
	if _, ok := r.codeParsers[lang]; ok {
		return true
	}
	_, ok := r.textParsers[lang]
	return ok
}

// IsCodeLanguage reports whether lang is parsed structurally (AST or
// heuristic-structural), as opposed to treated as opaque text.
func (r *Registry) IsCodeLanguage(lang string) bool {
	_, ok := r.codeParsers[lang]
	return ok
}

// Parse extracts chunks for lang, dispatching to whichever parser family
// owns it.
func (r *Registry) Parse(lang string, source []byte) ([]store.Chunk, error) {
	if p, ok := r.codeParsers[lang]; ok {
		return p.ParseChunks(source)
	}
	if p, ok := r.textParsers[lang]; ok {
		return p.ParseChunks(source)
	}
	return nil, rlmerr.UnsupportedLanguage(lang)
}

// ParseAndExtract extracts chunks and references in one pass. Text
// languages have no references.
func (r *Registry) ParseAndExtract(lang string, source []byte) ([]store.Chunk, []store.RefInput, error) {
	if p, ok := r.codeParsers[lang]; ok {
		return p.ParseChunksAndRefs(source)
	}
	if p, ok := r.textParsers[lang]; ok {
		chunks, err := p.ParseChunks(source)
		return chunks, nil, err
	}
	return nil, nil, rlmerr.UnsupportedLanguage(lang)
}

// ExtractRefs extracts references given already-parsed chunks. Text
// languages always return an empty slice.
func (r *Registry) ExtractRefs(lang string, source []byte, chunks []store.Chunk) ([]store.RefInput, error) {
	if p, ok := r.codeParsers[lang]; ok {
		return p.ExtractRefs(source, chunks)
	}
	return nil, nil
}

// ValidateSyntax reports whether source is syntactically valid for lang.
// Non-code languages always validate.
func (r *Registry) ValidateSyntax(lang string, source []byte) bool {
	if p, ok := r.codeParsers[lang]; ok {
		return p.ValidateSyntax(source)
	}
	return true
}

// ParseWithQuality extracts chunks for lang along with whether the parse
// was complete, partial, or (for text languages) unknown/not applicable.
func (r *Registry) ParseWithQuality(lang string, source []byte) (ParseResult, error) {
	if p, ok := r.codeParsers[lang]; ok {
		return p.ParseWithQuality(source)
	}
	if p, ok := r.textParsers[lang]; ok {
		chunks, err := p.ParseChunks(source)
		if err != nil {
			return ParseResult{}, err
		}
		return ParseResult{Chunks: chunks, Quality: store.QualityUnknown}, nil
	}
	return ParseResult{}, rlmerr.UnsupportedLanguage(lang)
}
