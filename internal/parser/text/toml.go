package text

import (
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/rlm-dev/rlm/internal/store"
)

// TOMLParser emits one chunk per top-level table header or key-value pair.
// Chunk boundaries come from a line scan rather than the decoded document,
// since go-toml's stable API returns an unordered map and line positions
// aren't part of its result; the decode step is still used to reject
// documents that don't actually parse as TOML.
type TOMLParser struct{}

func NewTOMLParser() *TOMLParser { return &TOMLParser{} }

func (p *TOMLParser) Lang() string { return "toml" }

var (
	tomlTableRe = regexp.MustCompile(`^\s*\[\[?([^\]]+)\]\]?\s*$`)
	tomlKeyRe   = regexp.MustCompile(`^\s*([A-Za-z0-9_\-\."']+)\s*=`)
)

func (p *TOMLParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	var probe map[string]interface{}
	if err := toml.Unmarshal(source, &probe); err != nil {
		return plaintextChunk(source), nil
	}

	lines := strings.Split(string(source), "\n")
	var chunks []store.Chunk
	var currentTable string

	for i, line := range lines {
		if m := tomlTableRe.FindStringSubmatch(line); m != nil {
			currentTable = strings.TrimSpace(m[1])
			chunks = append(chunks, store.Chunk{
				StartLine: i + 1, EndLine: i + 1,
				Kind: store.KindConfigKey, Ident: currentTable,
				Content: line,
			})
			continue
		}
		if m := tomlKeyRe.FindStringSubmatch(line); m != nil {
			ident := strings.Trim(m[1], `"'`)
			if currentTable != "" {
				ident = currentTable + "." + ident
			}
			chunks = append(chunks, store.Chunk{
				StartLine: i + 1, EndLine: i + 1,
				Kind: store.KindConfigKey, Ident: ident,
				Content: line,
			})
		}
	}
	return chunks, nil
}
