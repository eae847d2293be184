package text

import "github.com/rlm-dev/rlm/internal/parser"

// TextParsers builds one instance of every text-language parser, keyed by
// language identifier.
func TextParsers() map[string]parser.TextParser {
	plain := func(lang string) parser.TextParser { return NewPlaintextParser(lang) }
	return map[string]parser.TextParser{
		"markdown":   NewMarkdownParser(),
		"pdf":        NewPDFParser(),
		"yaml":       NewYAMLParser(),
		"toml":       NewTOMLParser(),
		"json":       NewJSONParser(),
		"bash":       plain("bash"),
		"sql":        plain("sql"),
		"xml":        plain("xml"),
		"plaintext":  plain("plaintext"),
		"cpp":        plain("cpp"),
	}
}
