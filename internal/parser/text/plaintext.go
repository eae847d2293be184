package text

import "github.com/rlm-dev/rlm/internal/store"

// PlaintextParser is the fallback for every text language without a
// dedicated semantic parser (bash, sql, xml, rst, txt, ini, cpp, ...): the
// whole file becomes one searchable chunk.
type PlaintextParser struct {
	lang string
}

func NewPlaintextParser(lang string) *PlaintextParser { return &PlaintextParser{lang: lang} }

func (p *PlaintextParser) Lang() string { return p.lang }

func (p *PlaintextParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	return plaintextChunk(source), nil
}
