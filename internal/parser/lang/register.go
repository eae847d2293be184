package lang

import "github.com/rlm-dev/rlm/internal/parser"

// CodeParsers builds one instance of every structural code parser, keyed by
// language identifier.
func CodeParsers() map[string]parser.CodeParser {
	return map[string]parser.CodeParser{
		"rust":       NewRustParser(),
		"java":       NewJavaParser(),
		"python":     NewPythonParser(),
		"php":        NewPHPParser(),
		"c":          NewCParser(),
		"ruby":       NewRubyParser(),
		"go":         NewGoParser(),
		"javascript": NewJavaScriptParser(),
		"typescript": NewTypeScriptParser(),
		"tsx":        NewTSXParser(),
		"csharp":     NewCSharpParser(),
		"html":       NewHTMLParser(),
		"css":        NewCSSParser(),
	}
}
