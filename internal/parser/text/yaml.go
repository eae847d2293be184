package text

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rlm-dev/rlm/internal/store"
)

// YAMLParser emits one chunk per top-level mapping key, so a config value
// can be found and edited without re-reading the whole document.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

func (p *YAMLParser) Lang() string { return "yaml" }

func (p *YAMLParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return plaintextChunk(source), nil
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return plaintextChunk(source), nil
	}

	lines := strings.Split(string(source), "\n")
	root := doc.Content[0]
	var chunks []store.Chunk
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		start := keyNode.Line
		end := endLineOf(valNode)
		if end < start {
			end = start
		}
		chunks = append(chunks, store.Chunk{
			StartLine: start, EndLine: end,
			Kind: store.KindConfigKey, Ident: keyNode.Value,
			Content: strings.Join(lines[start-1:minInt(end, len(lines))], "\n"),
		})
	}
	return chunks, nil
}

func endLineOf(n *yaml.Node) int {
	best := n.Line
	for _, c := range n.Content {
		if l := endLineOf(c); l > best {
			best = l
		}
	}
	return best
}

func plaintextChunk(source []byte) []store.Chunk {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil
	}
	lines := strings.Split(string(source), "\n")
	return []store.Chunk{{
		StartLine: 1, EndLine: len(lines),
		Kind: store.KindPlainText, Content: string(source),
	}}
}
