package lang

import (
	"regexp"
	"strings"
	"unicode"
)

// extractSignature derives the declaration preamble of content (a chunk's
// full source text) up to its body-open token, collapsed to a single
// trimmed line, per language family:
//   - Ruby has no body-open punctuation; the signature is its first line.
//   - Python's body opens at the top-level colon following the parameter
//     list and optional return-type annotation.
//   - Every brace-bodied language cuts at the first top-level '{'.
//   - Bodiless declarations (trait/interface method stubs) cut at the
//     first top-level ';' instead.
func extractSignature(content, lang string) string {
	if lang == "ruby" {
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			return strings.TrimSpace(content[:i])
		}
		return strings.TrimSpace(content)
	}

	depth := 0
	braceCut, semiCut, colonCut := -1, -1, -1
	for i, r := range content {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '{':
			if depth == 0 && braceCut == -1 {
				braceCut = i
			}
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 && semiCut == -1 {
				semiCut = i
			}
		case ':':
			if depth == 0 && colonCut == -1 {
				colonCut = i
			}
		}
		if braceCut >= 0 {
			break
		}
	}

	var cut int
	switch {
	case lang == "python" && colonCut >= 0:
		cut = colonCut
	case braceCut >= 0:
		cut = braceCut
	case semiCut >= 0:
		cut = semiCut
	default:
		cut = len(content)
	}

	return strings.TrimSpace(strings.Join(strings.Fields(content[:cut]), " "))
}

var rustVisibilityRe = regexp.MustCompile(`^pub(\([^)]*\))?`)

// modifierKeywords are non-visibility declaration modifiers that may
// precede a visibility keyword (Java/PHP) without being one themselves.
var modifierKeywords = map[string]bool{
	"static": true, "final": true, "abstract": true, "synchronized": true,
	"native": true, "default": true, "transient": true, "volatile": true,
	"strictfp": true, "readonly": true, "sealed": true,
}

// leadingVisibilityKeyword scans the leading modifier words of a trimmed
// declaration for a public/private/protected keyword, skipping annotation
// words (those starting with @) and stopping at the first other word that is
// neither a visibility keyword nor a known modifier (i.e. the start of the
// return type or declared name).
func leadingVisibilityKeyword(trimmed string) string {
	for _, w := range strings.Fields(trimmed) {
		switch w {
		case "public", "private", "protected":
			return w
		}
		if strings.HasPrefix(w, "@") {
			continue
		}
		if !modifierKeywords[w] {
			return ""
		}
	}
	return ""
}

// extractVisibility derives the language-specific visibility string for a
// chunk from its own declaration text (content), its identifier, and its
// parent node's grammar kind (used to detect a wrapping `export` in
// JS/TS). Returns "" when the language has no visibility keyword present.
func extractVisibility(lang, content, ident, parentKind string) string {
	trimmed := strings.TrimSpace(content)
	switch lang {
	case "rust":
		if m := rustVisibilityRe.FindString(trimmed); m != "" {
			return strings.Join(strings.Fields(m), " ")
		}
		return ""
	case "java", "php":
		return leadingVisibilityKeyword(trimmed)
	case "go":
		if ident == "" {
			return ""
		}
		if unicode.IsUpper([]rune(ident)[0]) {
			return "exported"
		}
		return "unexported"
	case "javascript", "typescript", "tsx":
		switch parentKind {
		case "export_statement", "export_default_declaration", "export_clause":
			return "export"
		}
		return ""
	default:
		return ""
	}
}

// joinAttributes concatenates two verbatim attribute blocks (e.g. one found
// among a node's preceding siblings, one found nested inside it), skipping
// whichever side is empty.
func joinAttributes(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
