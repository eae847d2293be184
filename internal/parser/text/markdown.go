// Package text implements TextParser for every non-code language rlm
// indexes: markdown, structured config, and plain documents.
package text

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rlm-dev/rlm/internal/store"
)

// MarkdownParser chunks a document by heading: each heading starts a new
// section chunk running until the next heading of equal or lesser depth.
type MarkdownParser struct{}

func NewMarkdownParser() *MarkdownParser { return &MarkdownParser{} }

func (p *MarkdownParser) Lang() string { return "markdown" }

func (p *MarkdownParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	lines := strings.Split(string(source), "\n")

	type heading struct {
		level int
		title string
		line  int
	}
	var headings []heading

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var title strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				title.Write(t.Segment.Value(source))
			}
		}
		lineNum := lineOfOffset(source, nodeOffset(h, source))
		headings = append(headings, heading{level: h.Level, title: title.String(), line: lineNum})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if len(headings) == 0 {
		if strings.TrimSpace(string(source)) == "" {
			return nil, nil
		}
		return []store.Chunk{{
			StartLine: 1, EndLine: len(lines),
			Kind: store.KindSection, Ident: "",
			Content: string(source),
		}}, nil
	}

	var chunks []store.Chunk
	for i, h := range headings {
		end := len(lines)
		for j := i + 1; j < len(headings); j++ {
			if headings[j].level <= h.level {
				end = headings[j].line - 1
				break
			}
		}
		chunks = append(chunks, store.Chunk{
			StartLine: h.line, EndLine: end,
			Kind: store.KindSection, Ident: h.title,
			Content: strings.Join(lines[h.line-1:minInt(end, len(lines))], "\n"),
		})
	}
	return chunks, nil
}

func nodeOffset(n ast.Node, source []byte) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := nodeOffset(c, source); off >= 0 {
			return off
		}
	}
	return -1
}

func lineOfOffset(source []byte, offset int) int {
	if offset < 0 {
		return 1
	}
	return strings.Count(string(source[:offset]), "\n") + 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
