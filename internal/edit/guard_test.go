package edit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
)

func testRegistry() *parser.Registry {
	return parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
}

func TestGuardValidateRejectsBrokenGo(t *testing.T) {
	g := NewGuard(testRegistry())
	err := g.Validate("go", "package main\nfunc main() {")
	if err == nil {
		t.Error("expected broken Go source to fail validation")
	}
}

func TestGuardValidateAcceptsValidGo(t *testing.T) {
	g := NewGuard(testRegistry())
	if err := g.Validate("go", "package main\nfunc main() {}\n"); err != nil {
		t.Errorf("expected valid Go source to pass: %v", err)
	}
}

func TestGuardValidateAlwaysPassesForText(t *testing.T) {
	g := NewGuard(testRegistry())
	if err := g.Validate("markdown", "anything at all"); err != nil {
		t.Errorf("expected markdown to always validate: %v", err)
	}
}

func TestGuardValidateAndWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGuard(testRegistry())
	if err := g.ValidateAndWrite("go", "package main\nfunc main() {}\n", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp file, got %v", entries)
	}
}

func TestGuardValidateAndWriteRejectsBrokenSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGuard(testRegistry())
	err := g.ValidateAndWrite("go", "package main\nfunc main() {", path)
	if err == nil {
		t.Fatal("expected broken source to be rejected")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "package main\n" {
		t.Errorf("expected original file untouched, got %q", data)
	}
}
