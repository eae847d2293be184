package lang

import (
	"strings"
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// gtsParser implements parser.CodeParser on top of
// github.com/tree-sitter/go-tree-sitter, the teacher's own grammar binding
// family.
type gtsParser struct {
	language *sitter.Language
	spec     spec
}

func newGTSParser(grammar unsafe.Pointer, spec spec) *gtsParser {
	return &gtsParser{language: sitter.NewLanguage(grammar), spec: spec}
}

// NewRustParser builds the Rust code parser.
func NewRustParser() parser.CodeParser { return newGTSParser(rust.Language(), rustSpec) }

// NewJavaParser builds the Java code parser.
func NewJavaParser() parser.CodeParser { return newGTSParser(java.Language(), javaSpec) }

// NewPythonParser builds the Python code parser.
func NewPythonParser() parser.CodeParser { return newGTSParser(python.Language(), pythonSpec) }

// NewPHPParser builds the PHP code parser.
func NewPHPParser() parser.CodeParser { return newGTSParser(php.LanguagePHP(), phpSpec) }

// NewCParser builds the C code parser.
func NewCParser() parser.CodeParser { return newGTSParser(c.Language(), cSpec) }

// NewRubyParser builds the Ruby code parser.
func NewRubyParser() parser.CodeParser { return newGTSParser(ruby.Language(), rubySpec) }

func (p *gtsParser) Lang() string { return p.spec.lang }

func (p *gtsParser) parseTree(source []byte) (*sitter.Tree, error) {
	ts := sitter.NewParser()
	defer ts.Close()
	ts.SetLanguage(p.language)
	tree := ts.Parse(source, nil)
	if tree == nil {
		return nil, rlmerr.Parse(p.spec.lang, "tree-sitter returned no tree")
	}
	return tree, nil
}

func (p *gtsParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	chunks, _, err := p.ParseChunksAndRefs(source)
	return chunks, err
}

func (p *gtsParser) ParseChunksAndRefs(source []byte) ([]store.Chunk, []store.RefInput, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	chunks := p.extractChunks(tree.RootNode(), source)
	chunks = p.appendImportsChunk(tree.RootNode(), source, chunks)
	refs := p.extractRefsFromTree(tree.RootNode(), source, chunks)
	return chunks, refs, nil
}

func (p *gtsParser) ExtractRefs(source []byte, chunks []store.Chunk) ([]store.RefInput, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return p.extractRefsFromTree(tree.RootNode(), source, chunks), nil
}

func (p *gtsParser) ValidateSyntax(source []byte) bool {
	tree, err := p.parseTree(source)
	if err != nil {
		return false
	}
	defer tree.Close()
	return !tree.RootNode().HasError()
}

func (p *gtsParser) ParseWithQuality(source []byte) (parser.ParseResult, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return parser.ParseResult{}, err
	}
	defer tree.Close()

	chunks := p.extractChunks(tree.RootNode(), source)
	chunks = p.appendImportsChunk(tree.RootNode(), source, chunks)
	quality := store.QualityComplete
	if tree.RootNode().HasError() {
		quality = store.QualityPartial
	}
	return parser.ParseResult{Chunks: chunks, Quality: quality}, nil
}

// appendImportsChunk walks the tree for import-kind nodes and, if any
// exist, appends the synthetic _imports chunk aggregating them.
func (p *gtsParser) appendImportsChunk(root *sitter.Node, source []byte, chunks []store.Chunk) []store.Chunk {
	var entries []importEntry
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if p.isRequireImport(n, source) {
			entries = append(entries, importEntry{
				startByte: int(n.StartByte()), endByte: int(n.EndByte()),
				startLine: int(n.StartPosition().Row) + 1, endLine: int(n.EndPosition().Row) + 1,
				text: string(source[n.StartByte():n.EndByte()]),
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)))
		}
	}
	walk(root)
	if imports := buildImportsChunk(entries); imports != nil {
		chunks = append(chunks, *imports)
	}
	return chunks
}

// extractChunks walks the tree once, emitting one chunk per node kind the
// language spec declares interesting. Containers (classes, interfaces,
// enums, Go type blocks) become the Parent of nested function/method/field
// chunks.
func (p *gtsParser) extractChunks(root *sitter.Node, source []byte) []store.Chunk {
	var chunks []store.Chunk
	var parentStack []string

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		kind, ok := p.spec.kindOf(n.Kind())
		if ok {
			ident := gtsFieldText(n, p.spec.nameField, source)
			startLine := int(n.StartPosition().Row) + 1
			endLine := int(n.EndPosition().Row) + 1
			parent := ""
			if len(parentStack) > 0 {
				parent = parentStack[len(parentStack)-1]
			}
			content := string(source[n.StartByte():n.EndByte()])
			doc, attrs := gtsPrecedingDocAndAttrs(n, source, p.spec)
			attrs = joinAttributes(attrs, gtsNestedAttributes(n, source, p.spec))
			parentKind := ""
			if par := n.Parent(); par != nil {
				parentKind = par.Kind()
			}
			chunks = append(chunks, store.Chunk{
				StartLine:  startLine,
				EndLine:    endLine,
				StartByte:  int(n.StartByte()),
				EndByte:    int(n.EndByte()),
				Kind:       kind,
				Ident:      ident,
				Parent:     parent,
				Signature:  extractSignature(content, p.spec.lang),
				Visibility: extractVisibility(p.spec.lang, content, ident, parentKind),
				DocComment: doc,
				Attributes: attrs,
				Content:    content,
			})
			if p.spec.isContainer(kind) && ident != "" {
				parentStack = append(parentStack, ident)
				defer func() { parentStack = parentStack[:len(parentStack)-1] }()
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)))
		}
	}
	walk(root)
	return chunks
}

// extractRefsFromTree maps each import/call node onto the chunk whose byte
// range contains it.
func (p *gtsParser) extractRefsFromTree(root *sitter.Node, source []byte, chunks []store.Chunk) []store.RefInput {
	var refs []store.RefInput

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch {
		case p.isRequireImport(n, source):
			idx := chunkIndexContaining(chunks, int(n.StartByte()))
			if idx >= 0 {
				refs = append(refs, store.RefInput{
					ChunkIndex:  idx,
					TargetIdent: strings.TrimSpace(string(source[n.StartByte():n.EndByte()])),
					RefKind:     store.RefImport,
					Line:        int(n.StartPosition().Row) + 1,
					Col:         int(n.StartPosition().Column) + 1,
				})
			}
		case p.spec.isCall(n.Kind()):
			callee := gtsFieldText(n, p.spec.calleeField, source)
			if callee != "" {
				idx := chunkIndexContaining(chunks, int(n.StartByte()))
				if idx >= 0 {
					refs = append(refs, store.RefInput{
						ChunkIndex:  idx,
						TargetIdent: callee,
						RefKind:     store.RefCall,
						Line:        int(n.StartPosition().Row) + 1,
						Col:         int(n.StartPosition().Column) + 1,
					})
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)))
		}
	}
	walk(root)
	return refs
}

// isRequireImport reports whether n is an import node. For most grammars
// this is just the spec's declared import node kind; Ruby has no distinct
// import syntax, so its "require"/"require_relative" calls are recognized
// by callee name among the same "call" nodes used for ordinary calls.
func (p *gtsParser) isRequireImport(n *sitter.Node, source []byte) bool {
	if !p.spec.isImport(n.Kind()) {
		return false
	}
	if p.spec.lang != "ruby" {
		return true
	}
	callee := gtsFieldText(n, p.spec.calleeField, source)
	return callee == "require" || callee == "require_relative"
}

func gtsFieldText(n *sitter.Node, field string, source []byte) string {
	if field == "" {
		return ""
	}
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}

// gtsPrecedingDocAndAttrs walks n's preceding siblings backward, collecting
// a contiguous run of comment and attribute nodes immediately above the
// declaration (e.g. a doc comment followed by `#[derive(...)]`). The walk
// stops at the first sibling that is neither a comment nor an attribute, or
// at a blank-line gap between two collected nodes — per spec.md §4.4 item 4,
// a doc comment block ends at the first blank line separating it from the
// declaration (or from the next comment line above it).
func gtsPrecedingDocAndAttrs(n *sitter.Node, source []byte, spec spec) (doc, attrs string) {
	parent := n.Parent()
	if parent == nil {
		return "", ""
	}
	idx := -1
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(uint(i)) == n {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return "", ""
	}

	var comments, attributes []string
	nextLine := int(n.StartPosition().Row) + 1
	for i := idx - 1; i >= 0; i-- {
		sib := parent.Child(uint(i))
		if sib == nil {
			break
		}
		isComment := spec.isComment(sib.Kind())
		isAttr := spec.isAttribute(sib.Kind())
		if !isComment && !isAttr {
			break
		}
		if int(sib.EndPosition().Row)+1 < nextLine-1 {
			break // blank line between this node and the one below it
		}
		text := string(source[sib.StartByte():sib.EndByte()])
		if isComment {
			comments = append(comments, text)
		} else {
			attributes = append(attributes, text)
		}
		nextLine = int(sib.StartPosition().Row) + 1
	}
	reverseStrings(comments)
	reverseStrings(attributes)
	return strings.Join(comments, "\n"), strings.Join(attributes, "\n")
}

// gtsNestedAttributes handles grammars (Java annotations, some TSX
// decorators) where attribute nodes are children of the declaration node
// itself rather than preceding siblings — directly, or one level down
// inside a `modifiers` child.
func gtsNestedAttributes(n *sitter.Node, source []byte, spec spec) string {
	var parts []string
	var scan func(x *sitter.Node, depth int)
	scan = func(x *sitter.Node, depth int) {
		if x == nil || depth > 1 {
			return
		}
		for i := 0; i < int(x.ChildCount()); i++ {
			c := x.Child(uint(i))
			if c == nil {
				continue
			}
			if spec.isAttribute(c.Kind()) {
				parts = append(parts, string(source[c.StartByte():c.EndByte()]))
			} else if c.Kind() == "modifiers" {
				scan(c, depth+1)
			}
		}
	}
	scan(n, 0)
	return strings.Join(parts, "\n")
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func chunkIndexContaining(chunks []store.Chunk, byteOffset int) int {
	best := -1
	bestSpan := -1
	for i, c := range chunks {
		if c.StartByte <= byteOffset && byteOffset < c.EndByte {
			span := c.EndByte - c.StartByte
			if best == -1 || span < bestSpan {
				best = i
				bestSpan = span
			}
		}
	}
	return best
}
