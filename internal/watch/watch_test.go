package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
	"github.com/rlm-dev/rlm/internal/store"
)

func newTestIndexer(t *testing.T, root string) *indexer.Indexer {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	registry := parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
	return indexer.New(root, registry, s)
}

func TestWatcher_ReindexesChangedFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	ix := newTestIndexer(t, root)
	w := New(root, ix)
	w.DebounceTime = 50 * time.Millisecond

	done := make(chan error, 1)
	w.OnReindex(func(p string, err error) { done <- err })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(50 * time.Millisecond) // let the watch set up before writing
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reindex")
	}

	f, err := ix.Store.GetFileByPath("main.go")
	require.NoError(t, err)
	require.NotNil(t, f)
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	ix := newTestIndexer(t, root)
	w := New(root, ix)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}
}
