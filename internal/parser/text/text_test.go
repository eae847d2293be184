package text

import "testing"

func TestMarkdownParserChunksByHeading(t *testing.T) {
	src := []byte("# Title\n\nIntro text.\n\n## Sub\n\nMore text.\n")
	p := NewMarkdownParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 section chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Ident != "Title" || chunks[1].Ident != "Sub" {
		t.Errorf("unexpected headings: %+v", chunks)
	}
}

func TestYAMLParserChunksTopLevelKeys(t *testing.T) {
	src := []byte("name: rlm\nversion: 1\nnested:\n  a: 1\n  b: 2\n")
	p := NewYAMLParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idents := map[string]bool{}
	for _, c := range chunks {
		idents[c.Ident] = true
	}
	for _, want := range []string{"name", "version", "nested"} {
		if !idents[want] {
			t.Errorf("expected key %q among chunks, got %+v", want, chunks)
		}
	}
}

func TestJSONParserChunksTopLevelKeys(t *testing.T) {
	src := []byte(`{"a": 1, "b": {"c": 2}}`)
	p := NewJSONParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 top-level chunks, got %d: %+v", len(chunks), chunks)
	}
}

func TestTOMLParserChunksTablesAndKeys(t *testing.T) {
	src := []byte("title = \"rlm\"\n\n[server]\nport = 8080\n")
	p := NewTOMLParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
}

func TestPlaintextParserReturnsWholeFile(t *testing.T) {
	p := NewPlaintextParser("plaintext")
	chunks, err := p.ParseChunks([]byte("hello world\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}
