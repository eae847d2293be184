package edit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlm-dev/rlm/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreviewReplaceReturnsExistingContent(t *testing.T) {
	s := openTestStore(t)
	f := store.File{Path: "main.go", Hash: "h", Lang: "go", ParseQuality: store.QualityComplete}
	chunks := []store.Chunk{{
		StartLine: 1, EndLine: 1, StartByte: 0, EndByte: 13,
		Kind: store.KindFunction, Ident: "main", Content: "func main(){}",
	}}
	if _, err := s.ReindexFile(f, chunks, nil); err != nil {
		t.Fatal(err)
	}

	diff, err := PreviewReplace(s, "main.go", "main", "func main() { println() }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.OldCode != "func main(){}" {
		t.Errorf("expected old code to match indexed content, got %q", diff.OldCode)
	}
}

func TestPreviewReplaceMissingSymbol(t *testing.T) {
	s := openTestStore(t)
	f := store.File{Path: "main.go", Hash: "h", Lang: "go", ParseQuality: store.QualityComplete}
	if _, err := s.ReindexFile(f, nil, nil); err != nil {
		t.Fatal(err)
	}
	_, err := PreviewReplace(s, "main.go", "missing", "x")
	if err == nil {
		t.Error("expected an error for a missing symbol")
	}
}

func TestReplaceSymbolWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	source := "package main\n\nfunc Hello() {\n\tprintln(\"hi\")\n}\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	s := openTestStore(t)
	start := len("package main\n\n")
	end := len(source) - 1 // trailing newline excluded
	f := store.File{Path: path, Hash: "h", Lang: "go", ParseQuality: store.QualityComplete}
	chunks := []store.Chunk{{
		StartLine: 3, EndLine: 5, StartByte: start, EndByte: end,
		Kind: store.KindFunction, Ident: "Hello", Content: source[start:end],
	}}
	if _, err := s.ReindexFile(f, chunks, nil); err != nil {
		t.Fatal(err)
	}

	guard := NewGuard(testRegistry())
	newCode := "func Hello() {\n\tprintln(\"bye\")\n}"
	modified, err := ReplaceSymbol(s, guard, path, "Hello", newCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != modified {
		t.Errorf("expected file on disk to match returned content")
	}
	if !contains(modified, "bye") {
		t.Errorf("expected replacement to take effect, got %q", modified)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
