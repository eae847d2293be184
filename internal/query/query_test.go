package query

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
	"github.com/rlm-dev/rlm/internal/store"
)

func newTestIndex(t *testing.T, files map[string]string) (*indexer.Indexer, *store.Store, string) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	s, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	registry := parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
	ix := indexer.New(root, registry, s)
	_, err = ix.Run(context.Background())
	require.NoError(t, err)

	return ix, s, root
}

const callgraphSrc = `fn helper() -> i32 { 42 }
fn main() { let x = helper(); }
`

func TestCallgraph(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	cg, err := Callgraph(s, "helper")
	require.NoError(t, err)
	require.Contains(t, cg.Callers, "main")

	cgMain, err := Callgraph(s, "main")
	require.NoError(t, err)
	require.Contains(t, cgMain.Callees, "helper")
}

func TestRefs(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	refs, err := Refs(s, "helper")
	require.NoError(t, err)
	require.NotEmpty(t, refs)
	require.Equal(t, 2, refs[0].Reference.Line)
}

func TestSearch_EmptyAfterSanitize(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	results, err := Search(s, "!!!...", 10)
	require.NoError(t, err)
	require.Nil(t, results)
}

func TestSearch_FindsIdent(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	results, err := Search(s, "helper", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
}

func TestScope_InnermostFirst(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	chunks, err := Scope(s, "lib.rs", 2)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	require.Equal(t, "main", chunks[0].Ident)
}

func TestDiff_WrongRootIsError(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	d, err := Diff(s, t.TempDir(), "lib.rs", "")
	require.Error(t, err) // wrong root: file not found on disk at that root

	_ = d
}

func TestDiff_SymbolMatchesOnDisk(t *testing.T) {
	ix, s, root := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})
	_ = ix

	d, err := Diff(s, root, "lib.rs", "main")
	require.NoError(t, err)
	require.False(t, d.Changed)
}

func TestVerify_DetectsNewAndMissing(t *testing.T) {
	ix, s, root := newTestIndex(t, map[string]string{"lib.rs": callgraphSrc})

	require.NoError(t, os.Remove(filepath.Join(root, "lib.rs")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.rs"), []byte("fn x() {}\n"), 0o644))

	report, err := Verify(context.Background(), ix, false)
	require.NoError(t, err)
	require.Contains(t, report.MissingOnDisk, "lib.rs")
	require.Contains(t, report.NewOnDisk, "new.rs")

	f, err := s.GetFileByPath("lib.rs")
	require.NoError(t, err)
	require.NotNil(t, f) // row still present until a fix run deletes it
}

func TestTreeAndMap(t *testing.T) {
	_, s, _ := newTestIndex(t, map[string]string{
		"a/lib.rs": callgraphSrc,
		"b/lib.rs": callgraphSrc,
	})

	all, err := Tree(s, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	scopedToA, err := Tree(s, "a")
	require.NoError(t, err)
	require.Len(t, scopedToA, 1)
	require.Equal(t, "a/lib.rs", scopedToA[0].Path)

	chunks, err := Map(s, "a/lib.rs")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	chunk, err := Peek(s, "a/lib.rs", "main")
	require.NoError(t, err)
	require.Equal(t, "main", chunk.Ident)
}
