package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
	"github.com/rlm-dev/rlm/internal/store"
)

func testIndexer(t *testing.T, root string) *Indexer {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	registry := parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
	return New(root, registry, s)
}

func TestRunIndexesSupportedFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := testIndexer(t, root)
	stats, err := ix.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Indexed != 2 {
		t.Errorf("expected 2 indexed files, got %+v", stats)
	}

	f, err := ix.Store.GetFileByPath("main.go")
	if err != nil {
		t.Fatal(err)
	}
	if f == nil {
		t.Fatal("expected main.go to be indexed")
	}
	chunks, err := ix.Store.ChunksForFile(f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Error("expected at least one chunk for main.go")
	}
}

func TestRunSkipsUnchangedFilesOnSecondPass(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := testIndexer(t, root)
	if _, err := ix.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	stats, err := ix.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 {
		t.Errorf("expected the unchanged file to be skipped on the second pass, got %+v", stats)
	}
}

func TestRunPrunesDeletedFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "gone.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := testIndexer(t, root)
	if _, err := ix.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	f, err := ix.Store.GetFileByPath("gone.go")
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("expected deleted file to be pruned from the store")
	}
}

func TestReindexOneHandlesDeletion(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := testIndexer(t, root)
	if _, err := ix.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := ix.ReindexOne(context.Background(), path); err != nil {
		t.Fatal(err)
	}

	f, err := ix.Store.GetFileByPath("main.go")
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("expected ReindexOne to remove the file record after deletion")
	}
}
