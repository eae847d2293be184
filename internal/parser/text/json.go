package text

import (
	"strings"

	"github.com/buger/jsonparser"

	"github.com/rlm-dev/rlm/internal/store"
)

// JSONParser emits one chunk per top-level key, locating where each value
// ends with jsonparser's zero-allocation scanner rather than decoding into
// a generic interface{} tree (which keeps no positions); those offsets give
// each chunk's start and end lines. Chunks carry no byte range.
type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Lang() string { return "json" }

func (p *JSONParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	var chunks []store.Chunk
	err := jsonparser.ObjectEach(source, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		start := offsetToLine(source, offset-len(value))
		end := offsetToLine(source, offset)
		chunks = append(chunks, store.Chunk{
			StartLine: start, EndLine: end,
			Kind: store.KindConfigKey, Ident: string(key),
			Content: string(value),
		})
		return nil
	})
	if err != nil {
		return plaintextChunk(source), nil
	}
	if len(chunks) == 0 && len(strings.TrimSpace(string(source))) > 0 {
		return plaintextChunk(source), nil
	}
	return chunks, nil
}
