package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// smkParser implements parser.CodeParser on top of
// github.com/smacker/go-tree-sitter, used for the languages the teacher's
// own grammar family has no binding for.
type smkParser struct {
	language *sitter.Language
	spec     spec
}

// NewGoParser builds the Go code parser.
func NewGoParser() parser.CodeParser { return &smkParser{language: golang.GetLanguage(), spec: goSpec} }

// NewJavaScriptParser builds the JavaScript code parser (also handles JSX).
func NewJavaScriptParser() parser.CodeParser {
	return &smkParser{language: javascript.GetLanguage(), spec: javascriptSpec}
}

// NewTypeScriptParser builds the TypeScript code parser.
func NewTypeScriptParser() parser.CodeParser {
	return &smkParser{language: typescript.GetLanguage(), spec: typescriptSpec}
}

// NewTSXParser builds the TSX code parser.
func NewTSXParser() parser.CodeParser {
	return &smkParser{language: tsx.GetLanguage(), spec: tsxSpec}
}

func (p *smkParser) Lang() string { return p.spec.lang }

func (p *smkParser) parseTree(source []byte) (*sitter.Tree, error) {
	ts := sitter.NewParser()
	ts.SetLanguage(p.language)
	tree, err := ts.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, rlmerr.Parse(p.spec.lang, err.Error())
	}
	if tree == nil {
		return nil, rlmerr.Parse(p.spec.lang, "tree-sitter returned no tree")
	}
	return tree, nil
}

func (p *smkParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	chunks, _, err := p.ParseChunksAndRefs(source)
	return chunks, err
}

func (p *smkParser) ParseChunksAndRefs(source []byte) ([]store.Chunk, []store.RefInput, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return nil, nil, err
	}

	chunks := p.extractChunks(tree.RootNode(), source)
	chunks = p.appendImportsChunk(tree.RootNode(), source, chunks)
	refs := p.extractRefsFromTree(tree.RootNode(), source, chunks)
	return chunks, refs, nil
}

func (p *smkParser) ExtractRefs(source []byte, chunks []store.Chunk) ([]store.RefInput, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return nil, err
	}
	return p.extractRefsFromTree(tree.RootNode(), source, chunks), nil
}

func (p *smkParser) ValidateSyntax(source []byte) bool {
	tree, err := p.parseTree(source)
	if err != nil {
		return false
	}
	return !tree.RootNode().HasError()
}

func (p *smkParser) ParseWithQuality(source []byte) (parser.ParseResult, error) {
	tree, err := p.parseTree(source)
	if err != nil {
		return parser.ParseResult{}, err
	}
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
func (p *smkParser) appendImportsChunk(root *sitter.Node, source []byte, chunks []store.Chunk) []store.Chunk {
	var entries []importEntry
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if p.spec.isImport(n.Type()) {
			entries = append(entries, importEntry{
				startByte: int(n.StartByte()), endByte: int(n.EndByte()),
				startLine: int(n.StartPoint().Row) + 1, endLine: int(n.EndPoint().Row) + 1,
				text: n.Content(source),
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	if imports := buildImportsChunk(entries); imports != nil {
		chunks = append(chunks, *imports)
	}
	return chunks
}

func (p *smkParser) extractChunks(root *sitter.Node, source []byte) []store.Chunk {
	var chunks []store.Chunk
	var parentStack []string

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		kind, ok := p.spec.kindOf(n.Type())
		if ok {
			ident := smkFieldText(n, p.spec.nameField, source)
			startLine := int(n.StartPoint().Row) + 1
			endLine := int(n.EndPoint().Row) + 1
			parent := ""
			if len(parentStack) > 0 {
				parent = parentStack[len(parentStack)-1]
			}
			content := n.Content(source)
			doc, attrs := smkPrecedingDocAndAttrs(n, source, p.spec)
			attrs = joinAttributes(attrs, smkNestedAttributes(n, source, p.spec))
			parentKind := ""
			if par := n.Parent(); par != nil {
				parentKind = par.Type()
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
			walk(n.Child(i))
		}
	}
	walk(root)
	return chunks
}

func (p *smkParser) extractRefsFromTree(root *sitter.Node, source []byte, chunks []store.Chunk) []store.RefInput {
	var refs []store.RefInput

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch {
		case p.spec.isImport(n.Type()):
			idx := chunkIndexContaining(chunks, int(n.StartByte()))
			if idx >= 0 {
				refs = append(refs, store.RefInput{
					ChunkIndex:  idx,
					TargetIdent: strings.TrimSpace(n.Content(source)),
					RefKind:     store.RefImport,
					Line:        int(n.StartPoint().Row) + 1,
					Col:         int(n.StartPoint().Column) + 1,
				})
			}
		case p.spec.isCall(n.Type()):
			callee := smkFieldText(n, p.spec.calleeField, source)
			if callee != "" {
				idx := chunkIndexContaining(chunks, int(n.StartByte()))
				if idx >= 0 {
					refs = append(refs, store.RefInput{
						ChunkIndex:  idx,
						TargetIdent: callee,
						RefKind:     store.RefCall,
						Line:        int(n.StartPoint().Row) + 1,
						Col:         int(n.StartPoint().Column) + 1,
					})
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return refs
}

func smkFieldText(n *sitter.Node, field string, source []byte) string {
	if field == "" {
		return ""
	}
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(source)
}

// smkPrecedingDocAndAttrs is the smacker-binding mirror of
// gtsPrecedingDocAndAttrs: it walks preceding siblings backward, collecting
// a contiguous run of comment and attribute nodes (stopping at the first
// non-comment/non-attribute sibling or a blank-line gap) and returns the
// doc comment and attribute blocks in source order.
func smkPrecedingDocAndAttrs(n *sitter.Node, source []byte, spec spec) (doc, attrs string) {
	parent := n.Parent()
	if parent == nil {
		return "", ""
	}
	idx := -1
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(i) == n {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return "", ""
	}

	var comments, attributes []string
	nextLine := int(n.StartPoint().Row) + 1
	for i := idx - 1; i >= 0; i-- {
		sib := parent.Child(i)
		if sib == nil {
			break
		}
		isComment := spec.isComment(sib.Type())
		isAttr := spec.isAttribute(sib.Type())
		if !isComment && !isAttr {
			break
		}
		if int(sib.EndPoint().Row)+1 < nextLine-1 {
			break // blank line between this node and the one below it
		}
		text := sib.Content(source)
		if isComment {
			comments = append(comments, text)
		} else {
			attributes = append(attributes, text)
		}
		nextLine = int(sib.StartPoint().Row) + 1
	}
	reverseStrings(comments)
	reverseStrings(attributes)
	return strings.Join(comments, "\n"), strings.Join(attributes, "\n")
}

// smkNestedAttributes mirrors gtsNestedAttributes for the smacker binding
// family: attribute nodes that are children of the declaration itself (or
// one level down inside a `modifiers` child) rather than preceding
// siblings.
func smkNestedAttributes(n *sitter.Node, source []byte, spec spec) string {
	var parts []string
	var scan func(x *sitter.Node, depth int)
	scan = func(x *sitter.Node, depth int) {
		if x == nil || depth > 1 {
			return
		}
		for i := 0; i < int(x.ChildCount()); i++ {
			c := x.Child(i)
			if c == nil {
				continue
			}
			if spec.isAttribute(c.Type()) {
				parts = append(parts, c.Content(source))
			} else if c.Type() == "modifiers" {
				scan(c, depth+1)
			}
		}
	}
	scan(n, 0)
	return strings.Join(parts, "\n")
}
