package lang

import (
	"strings"
	"testing"

	"github.com/rlm-dev/rlm/internal/store"
)

func TestGoParserExtractsFunctionChunk(t *testing.T) {
	src := []byte("package main\n\nfunc Hello() {\n\tprintln(\"hi\")\n}\n")
	p := NewGoParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, c := range chunks {
		if c.Ident == "Hello" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a chunk named Hello, got %+v", chunks)
	}
}

func TestGoParserValidateSyntax(t *testing.T) {
	p := NewGoParser()
	if !p.ValidateSyntax([]byte("package main\nfunc main() {}\n")) {
		t.Error("expected valid Go source to validate")
	}
}

func TestPythonParserExtractsFunctionAndClass(t *testing.T) {
	src := []byte("class Greeter:\n    def hello(self):\n        pass\n")
	p := NewPythonParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawClass, sawMethod bool
	for _, c := range chunks {
		if c.Ident == "Greeter" {
			sawClass = true
		}
		if c.Ident == "hello" {
			sawMethod = true
		}
	}
	if !sawClass || !sawMethod {
		t.Errorf("expected Greeter class and hello function, got %+v", chunks)
	}
}

func TestRustParserExtractsStructAndFn(t *testing.T) {
	src := []byte("struct Point { x: i32, y: i32 }\n\nfn distance() -> i32 { 0 }\n")
	p := NewRustParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
}

func TestCSharpFallbackExtractsClass(t *testing.T) {
	src := []byte("public class Widget\n{\n    public void Spin()\n    {\n    }\n}\n")
	p := NewCSharpParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawClass bool
	for _, c := range chunks {
		if c.Ident == "Widget" {
			sawClass = true
		}
	}
	if !sawClass {
		t.Errorf("expected Widget class chunk, got %+v", chunks)
	}
}

func TestCSharpValidateSyntaxDetectsUnbalancedBraces(t *testing.T) {
	p := NewCSharpParser()
	if p.ValidateSyntax([]byte("public class Widget {")) {
		t.Error("expected unbalanced braces to fail validation")
	}
}

func TestRustParserByteExactReconstruction(t *testing.T) {
	src := []byte("use std::fmt;\n\npub fn hello(name: &str) -> String {\n    format!(\"Hello, {}\", name)\n}\n")
	p := NewRustParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range chunks {
		if c.Ident == store.ImportsIdent {
			continue // exempt from byte-exact reconstruction
		}
		got := string(src[c.StartByte:c.EndByte])
		if got != c.Content {
			t.Errorf("chunk %q: byte range does not reconstruct content: got %q want %q", c.Ident, got, c.Content)
		}
	}
}

func TestRustParserEmitsImportsChunkAndRef(t *testing.T) {
	src := []byte("use std::fmt;\nuse std::io;\n\nfn main() {}\n")
	p := NewRustParser()
	chunks, refs, err := p.ParseChunksAndRefs(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var importsChunk *store.Chunk
	for i := range chunks {
		if chunks[i].Ident == store.ImportsIdent {
			importsChunk = &chunks[i]
		}
	}
	if importsChunk == nil {
		t.Fatal("expected a synthetic _imports chunk")
	}
	if !strings.Contains(importsChunk.Content, "std::fmt") || !strings.Contains(importsChunk.Content, "std::io") {
		t.Errorf("expected _imports content to aggregate both use lines, got %q", importsChunk.Content)
	}

	var sawImportRef bool
	for _, r := range refs {
		if r.RefKind == store.RefImport {
			sawImportRef = true
			if r.ChunkIndex < 0 || chunks[r.ChunkIndex].Ident != store.ImportsIdent {
				t.Errorf("expected import ref to be tagged to _imports chunk, got chunk index %d", r.ChunkIndex)
			}
		}
	}
	if !sawImportRef {
		t.Error("expected at least one import reference")
	}
}

func TestGoParserCRLFLineNumbersMatchLF(t *testing.T) {
	lf := []byte("package main\n\nfunc Hello() {\n\tprintln(\"hi\")\n}\n")
	crlf := []byte(strings.ReplaceAll(string(lf), "\n", "\r\n"))

	p := NewGoParser()
	lfChunks, err := p.ParseChunks(lf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	crlfChunks, err := p.ParseChunks(crlf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lfChunks) != len(crlfChunks) {
		t.Fatalf("expected same chunk count, got %d vs %d", len(lfChunks), len(crlfChunks))
	}
	for i := range lfChunks {
		if lfChunks[i].Ident != crlfChunks[i].Ident || lfChunks[i].StartLine != crlfChunks[i].StartLine || lfChunks[i].EndLine != crlfChunks[i].EndLine {
			t.Errorf("LF/CRLF mismatch at %d: %+v vs %+v", i, lfChunks[i], crlfChunks[i])
		}
	}
}

func TestRustParserExtractsSignatureAndVisibility(t *testing.T) {
	src := []byte(`pub fn hello(name: &str) -> String { format!("Hello, {}", name) }` + "\n")
	p := NewRustParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var hello *store.Chunk
	for i := range chunks {
		if chunks[i].Ident == "hello" {
			hello = &chunks[i]
		}
	}
	if hello == nil {
		t.Fatalf("expected a chunk named hello, got %+v", chunks)
	}
	if hello.Kind != store.KindFunction {
		t.Errorf("expected kind=Function, got %q", hello.Kind)
	}
	if hello.Visibility != "pub" {
		t.Errorf("expected visibility=pub, got %q", hello.Visibility)
	}
	if !strings.Contains(hello.Signature, "pub fn hello") {
		t.Errorf("expected signature to contain %q, got %q", "pub fn hello", hello.Signature)
	}
	got := string(src[hello.StartByte:hello.EndByte])
	if got != hello.Content {
		t.Errorf("byte range does not reconstruct content: got %q want %q", got, hello.Content)
	}
}

func TestRustParserCollectsMultiLineDocCommentAndAttribute(t *testing.T) {
	src := []byte("/// Says hello.\n/// Second line.\n#[inline]\npub fn hello() {}\n")
	p := NewRustParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var hello *store.Chunk
	for i := range chunks {
		if chunks[i].Ident == "hello" {
			hello = &chunks[i]
		}
	}
	if hello == nil {
		t.Fatalf("expected a chunk named hello, got %+v", chunks)
	}
	if !strings.Contains(hello.DocComment, "Says hello.") || !strings.Contains(hello.DocComment, "Second line.") {
		t.Errorf("expected doc comment to carry both lines, got %q", hello.DocComment)
	}
	if !strings.Contains(hello.Attributes, "#[inline]") {
		t.Errorf("expected attributes to contain #[inline], got %q", hello.Attributes)
	}
}

func TestJavaParserExtractsVisibilityAndAnnotation(t *testing.T) {
	src := []byte("public class Greeter {\n    @Override\n    public String greet() { return \"hi\"; }\n}\n")
	p := NewJavaParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var greet *store.Chunk
	for i := range chunks {
		if chunks[i].Ident == "greet" {
			greet = &chunks[i]
		}
	}
	if greet == nil {
		t.Fatalf("expected a chunk named greet, got %+v", chunks)
	}
	if greet.Visibility != "public" {
		t.Errorf("expected visibility=public, got %q", greet.Visibility)
	}
	if !strings.Contains(greet.Attributes, "@Override") {
		t.Errorf("expected attributes to contain @Override, got %q", greet.Attributes)
	}
}

func TestGoParserExportedVisibilityByCasing(t *testing.T) {
	src := []byte("package main\n\nfunc Hello() {}\n\nfunc helper() {}\n")
	p := NewGoParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range chunks {
		switch c.Ident {
		case "Hello":
			if c.Visibility != "exported" {
				t.Errorf("expected Hello visibility=exported, got %q", c.Visibility)
			}
		case "helper":
			if c.Visibility != "unexported" {
				t.Errorf("expected helper visibility=unexported, got %q", c.Visibility)
			}
		}
	}
}

func TestCSharpFallbackExtractsVisibilityAndAttribute(t *testing.T) {
	src := []byte("[Obsolete]\npublic class Widget\n{\n    public void Spin()\n    {\n    }\n}\n")
	p := NewCSharpParser()
	chunks, err := p.ParseChunks(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var widget *store.Chunk
	for i := range chunks {
		if chunks[i].Ident == "Widget" {
			widget = &chunks[i]
		}
	}
	if widget == nil {
		t.Fatalf("expected a chunk named Widget, got %+v", chunks)
	}
	if widget.Visibility != "public" {
		t.Errorf("expected visibility=public, got %q", widget.Visibility)
	}
	if !strings.Contains(widget.Attributes, "[Obsolete]") {
		t.Errorf("expected attributes to contain [Obsolete], got %q", widget.Attributes)
	}
	if !strings.Contains(widget.Signature, "public class Widget") {
		t.Errorf("expected signature to contain %q, got %q", "public class Widget", widget.Signature)
	}
}

func TestCSharpFallbackByteExactReconstruction(t *testing.T) {
	src := []byte("using System;\n\npublic class Widget\n{\n    public void Spin()\n    {\n    }\n}\n")
	p := NewCSharpParser()
	chunks, _, err := p.ParseChunksAndRefs(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range chunks {
		if c.Ident == store.ImportsIdent {
			continue
		}
		got := string(src[c.StartByte:c.EndByte])
		if got != c.Content {
			t.Errorf("chunk %q: byte range does not reconstruct content: got %q want %q", c.Ident, got, c.Content)
		}
	}
}
