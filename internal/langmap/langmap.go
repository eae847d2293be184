// Package langmap maps file extensions to language identifiers and derives
// the UI-context hint used by the query surface.
package langmap

import "strings"

var supportedExts = map[string]bool{
	"rs": true, "go": true, "java": true, "cs": true, "py": true, "php": true,
	"js": true, "ts": true, "tsx": true, "jsx": true,
	"c": true, "cpp": true, "h": true, "hpp": true,
	"md": true, "markdown": true, "pdf": true, "json": true,
	"html": true, "css": true, "sh": true, "bash": true,
	"yaml": true, "yml": true, "toml": true, "sql": true,
	// C#/.NET ecosystem
	"xml": true, "csproj": true, "fsproj": true, "vbproj": true,
	"sln": true, "props": true, "targets": true,
	// Java/Kotlin ecosystem
	"gradle": true, "kts": true, "properties": true,
	// Python/config ecosystem
	"pyi": true, "cfg": true, "ini": true,
	// Schema/IDL
	"proto": true, "graphql": true, "gql": true,
	// Text documentation
	"txt": true, "rst": true,
	// Infrastructure as Code
	"tf": true, "hcl": true,
	// Ruby, beyond the distilled extension table: the grammar ships in the
	// dependency set, so it gets a real parser rather than sitting unused.
	"rb": true,
}

var extToLang = map[string]string{
	"rs": "rust",
	"go": "go",
	"java": "java",
	"cs": "csharp",
	"py": "python",
	"php": "php",
	"js": "javascript", "jsx": "javascript",
	"ts": "typescript",
	"tsx": "tsx",
	"c": "c", "h": "c",
	"cpp": "cpp", "hpp": "cpp", "cc": "cpp", "cxx": "cpp",
	"md": "markdown", "markdown": "markdown",
	"pdf":  "pdf",
	"json": "json",
	"html": "html", "htm": "html",
	"css":  "css",
	"sh":   "bash", "bash": "bash",
	"yaml": "yaml", "yml": "yaml",
	"toml": "toml",
	"sql":  "sql",
	"xml": "xml", "csproj": "xml", "fsproj": "xml", "vbproj": "xml", "props": "xml", "targets": "xml",
	"sln":        "plaintext",
	"gradle":     "plaintext",
	"kts":        "plaintext",
	"properties": "plaintext",
	"pyi":        "python",
	"cfg":        "plaintext", "ini": "plaintext",
	"proto": "plaintext",
	"graphql": "plaintext", "gql": "plaintext",
	"txt": "plaintext", "rst": "plaintext",
	"tf": "plaintext", "hcl": "plaintext",
	"rb": "ruby",
}

// codeLanguages are languages that own a real AST/code parser, as opposed to
// a text-mode parser (markdown, json, yaml, plaintext, pdf...).
var codeLanguages = map[string]bool{
	"rust": true, "go": true, "java": true, "csharp": true, "python": true,
	"php": true, "javascript": true, "typescript": true, "tsx": true,
	"c": true, "html": true, "css": true, "ruby": true,
	// cpp has no grammar binding anywhere in the dependency set (only C's),
	// so it is indexed as text, same as the original distillation.
}

// IsSupportedExtension reports whether ext (lowercase, without dot) is
// recognized for indexing at all.
func IsSupportedExtension(ext string) bool {
	return supportedExts[strings.ToLower(ext)]
}

// ExtToLang maps a file extension to its language identifier. Unknown
// extensions map to "unknown".
func ExtToLang(ext string) string {
	if lang, ok := extToLang[strings.ToLower(ext)]; ok {
		return lang
	}
	return "unknown"
}

// IsCodeLanguage reports whether lang has a structural (AST-based or
// pattern-based) code parser, rather than being handled as plain text.
func IsCodeLanguage(lang string) bool {
	return codeLanguages[lang]
}

// DetectUIContext classifies a frontend file path by directory convention
// or extension, for the ui_ctx chunk column. Returns "" when no UI context
// applies.
func DetectUIContext(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "/pages/"), strings.Contains(lower, "/app/"):
		return "page"
	case strings.Contains(lower, "/components/"):
		return "component"
	case strings.Contains(lower, "/screens/"):
		return "screen"
	case strings.Contains(lower, "/layouts/"):
		return "layout"
	case strings.HasSuffix(lower, ".tsx"), strings.HasSuffix(lower, ".jsx"), strings.HasSuffix(lower, ".vue"):
		return "ui"
	default:
		return ""
	}
}
