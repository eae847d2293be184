package lang

import (
	"regexp"
	"strings"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/store"
)

// NewCSharpParser builds a heuristic C# structural parser: class/interface/
// struct/enum/method declarations recognized by line pattern.
func NewCSharpParser() parser.CodeParser {
	return &csharpParser{}
}

// NewHTMLParser builds a heuristic HTML structural parser: one single-line
// chunk per line that contains an opening tag, named after the first tag on
// that line. Element extents and nesting are not tracked.
func NewHTMLParser() parser.CodeParser {
	return &markupParser{lang: "html", tagRe: regexp.MustCompile(`<(\w+)[^>]*>`)}
}

// NewCSSParser builds a heuristic CSS structural parser: one chunk per rule
// block.
func NewCSSParser() parser.CodeParser {
	return &markupParser{lang: "css", tagRe: regexp.MustCompile(`([^\{\}]+)\{`)}
}

type csharpParser struct{}

var csharpDeclRe = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|sealed|abstract|partial|\s)*\s*(class|interface|struct|enum)\s+(\w+)`)
var csharpMethodRe = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|virtual|override|async|\s)*\s*[\w<>\[\],\.]+\s+(\w+)\s*\([^;]*\)\s*\{?\s*$`)

func (p *csharpParser) Lang() string { return "csharp" }

func (p *csharpParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	lines := strings.Split(string(source), "\n")
	offsets := lineByteOffsets(lines)
	var chunks []store.Chunk
	var parent string
	var depth, parentDepth int

	for i, line := range lines {
		if m := csharpDeclRe.FindStringSubmatch(line); m != nil {
			kind := store.KindClass
			switch m[1] {
			case "interface":
				kind = store.KindInterface
			case "enum":
				kind = store.KindEnum
			case "struct":
				kind = store.KindType
			}
			end := matchingBraceLine(lines, i)
			startByte, endByte := byteRangeForLines(lines, offsets, i, end)
			content := string(source[startByte:endByte])
			chunks = append(chunks, store.Chunk{
				StartLine: i + 1, EndLine: end + 1,
				StartByte: startByte, EndByte: endByte,
				Kind: kind, Ident: m[2],
				Signature:  extractSignature(content, "csharp"),
				Visibility: leadingVisibilityKeyword(strings.TrimSpace(line)),
				Attributes: csharpPrecedingAttributes(lines, i),
				Content:    content,
			})
			parent = m[2]
			parentDepth = depth
		} else if m := csharpMethodRe.FindStringSubmatch(line); m != nil && parent != "" {
			end := matchingBraceLine(lines, i)
			if end > i {
				p := parent
				if depth > parentDepth+1 {
					p = "" // nested local function, not a direct member
				}
				startByte, endByte := byteRangeForLines(lines, offsets, i, end)
				content := string(source[startByte:endByte])
				chunks = append(chunks, store.Chunk{
					StartLine: i + 1, EndLine: end + 1,
					StartByte: startByte, EndByte: endByte,
					Kind: store.KindMethod, Ident: m[1], Parent: p,
					Signature:  extractSignature(content, "csharp"),
					Visibility: leadingVisibilityKeyword(strings.TrimSpace(line)),
					Attributes: csharpPrecedingAttributes(lines, i),
					Content:    content,
				})
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
	}
	return chunks, nil
}

func (p *csharpParser) ParseChunksAndRefs(source []byte) ([]store.Chunk, []store.RefInput, error) {
	chunks, err := p.ParseChunks(source)
	if err != nil {
		return nil, nil, err
	}
	chunks = appendCSharpImportsChunk(source, chunks)
	return chunks, p.usingRefs(source, chunks), nil
}

var csharpAttributeRe = regexp.MustCompile(`^\s*\[[^\]]*\]\s*$`)

// csharpPrecedingAttributes collects the contiguous run of `[Attr]` lines
// immediately above declLine (no blank line in between), in source order —
// the line-oriented mirror of the tree-sitter parsers' sibling-attribute
// walk.
func csharpPrecedingAttributes(lines []string, declLine int) string {
	var attrs []string
	for i := declLine - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			break
		}
		if !csharpAttributeRe.MatchString(lines[i]) {
			break
		}
		attrs = append(attrs, strings.TrimSpace(lines[i]))
	}
	reverseStrings(attrs)
	return strings.Join(attrs, "\n")
}

var csharpUsingRe = regexp.MustCompile(`^\s*using\s+([\w\.]+)\s*;`)

// appendCSharpImportsChunk aggregates every file-scope using directive into
// the synthetic _imports chunk, the same convention the grammar-backed
// parsers follow.
func appendCSharpImportsChunk(source []byte, chunks []store.Chunk) []store.Chunk {
	lines := strings.Split(string(source), "\n")
	offsets := lineByteOffsets(lines)
	var entries []importEntry
	for i, line := range lines {
		if m := csharpUsingRe.FindStringSubmatch(line); m != nil {
			startByte, endByte := byteRangeForLines(lines, offsets, i, i)
			entries = append(entries, importEntry{
				startLine: i + 1, endLine: i + 1,
				startByte: startByte, endByte: endByte,
				text: strings.TrimSpace(m[0]),
			})
		}
	}
	if imports := buildImportsChunk(entries); imports != nil {
		chunks = append(chunks, *imports)
	}
	return chunks
}

func (p *csharpParser) usingRefs(source []byte, chunks []store.Chunk) []store.RefInput {
	var refs []store.RefInput
	importsIdx := -1
	for i, c := range chunks {
		if c.Ident == store.ImportsIdent {
			importsIdx = i
			break
		}
	}
	for i, line := range strings.Split(string(source), "\n") {
		if m := csharpUsingRe.FindStringSubmatch(line); m != nil {
			idx := lineOwningChunk(chunks, i+1)
			if idx < 0 {
				idx = importsIdx
			}
			refs = append(refs, store.RefInput{
				ChunkIndex:  idx,
				TargetIdent: m[1], RefKind: store.RefImport, Line: i + 1,
			})
		}
	}
	filtered := refs[:0]
	for _, r := range refs {
		if r.ChunkIndex >= 0 {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (p *csharpParser) ExtractRefs(source []byte, chunks []store.Chunk) ([]store.RefInput, error) {
	return p.usingRefs(source, chunks), nil
}

func (p *csharpParser) ValidateSyntax(source []byte) bool {
	return strings.Count(string(source), "{") == strings.Count(string(source), "}")
}

func (p *csharpParser) ParseWithQuality(source []byte) (parser.ParseResult, error) {
	chunks, err := p.ParseChunks(source)
	if err != nil {
		return parser.ParseResult{}, err
	}
	return parser.ParseResult{Chunks: chunks, Quality: store.QualityPartial}, nil
}

// markupParser handles HTML and CSS line by line. CSS: one chunk per line
// that opens a rule, running to the line of its matching closing brace;
// nested rules get chunks of their own. HTML: one single-line chunk per line
// with an opening tag. No parent structure, no references.
type markupParser struct {
	lang  string
	tagRe *regexp.Regexp
}

func (p *markupParser) Lang() string { return p.lang }

func (p *markupParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	lines := strings.Split(string(source), "\n")
	offsets := lineByteOffsets(lines)
	var chunks []store.Chunk
	for i, line := range lines {
		m := p.tagRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ident := strings.TrimSpace(m[1])
		end := i
		if p.lang == "css" {
			end = matchingBraceLine(lines, i)
		}
		startByte, endByte := byteRangeForLines(lines, offsets, i, end)
		content := string(source[startByte:endByte])
		chunks = append(chunks, store.Chunk{
			StartLine: i + 1, EndLine: end + 1,
			StartByte: startByte, EndByte: endByte,
			Kind: store.KindSection, Ident: ident,
			Signature: extractSignature(content, p.lang),
			Content:   content,
		})
	}
	return chunks, nil
}

func (p *markupParser) ParseChunksAndRefs(source []byte) ([]store.Chunk, []store.RefInput, error) {
	chunks, err := p.ParseChunks(source)
	return chunks, nil, err
}

func (p *markupParser) ExtractRefs(source []byte, chunks []store.Chunk) ([]store.RefInput, error) {
	return nil, nil
}

func (p *markupParser) ValidateSyntax(source []byte) bool { return true }

func (p *markupParser) ParseWithQuality(source []byte) (parser.ParseResult, error) {
	chunks, err := p.ParseChunks(source)
	if err != nil {
		return parser.ParseResult{}, err
	}
	return parser.ParseResult{Chunks: chunks, Quality: store.QualityPartial}, nil
}

// matchingBraceLine returns the 0-indexed line containing the brace that
// closes the block opened on or after startLine. Returns startLine if no
// brace opened at or after startLine is closed before the end of the file.
func matchingBraceLine(lines []string, startLine int) int {
	depth := 0
	seenOpen := false
	for i := startLine; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
				if seenOpen && depth == 0 {
					return i
				}
			}
		}
	}
	return startLine
}

// lineByteOffsets returns, for each element of lines (as produced by
// strings.Split(source, "\n")), the byte offset in source where that line
// begins.
func lineByteOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	pos := 0
	for i, l := range lines {
		offsets[i] = pos
		pos += len(l) + 1 // the "\n" split on, re-added when joining
	}
	return offsets
}

// byteRangeForLines returns the exact [start, end) byte range in source
// spanned by 0-indexed lines startLine..endLine inclusive — chosen so that
// source[start:end] is byte-identical to strings.Join(lines[startLine:endLine+1], "\n").
func byteRangeForLines(lines []string, offsets []int, startLine, endLine int) (int, int) {
	start := offsets[startLine]
	end := offsets[endLine] + len(lines[endLine])
	return start, end
}

func lineOwningChunk(chunks []store.Chunk, line int) int {
	for i, c := range chunks {
		if c.StartLine <= line && line <= c.EndLine {
			return i
		}
	}
	return -1
}
