package text

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/rlm-dev/rlm/internal/store"
)

// PDFParser extracts plain text page by page, emitting one chunk per page
// so a reference to "page 3" resolves to a real, independently readable
// chunk.
type PDFParser struct{}

func NewPDFParser() *PDFParser { return &PDFParser{} }

func (p *PDFParser) Lang() string { return "pdf" }

func (p *PDFParser) ParseChunks(source []byte) ([]store.Chunk, error) {
	r, err := pdf.NewReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, err
	}

	var chunks []store.Chunk
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		chunks = append(chunks, store.Chunk{
			StartLine: i, EndLine: i,
			Kind:    store.KindSection,
			Ident:   fmt.Sprintf("page %d", i),
			Content: text,
		})
	}
	return chunks, nil
}
