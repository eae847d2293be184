package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTest(t)
	files, err := s.AllFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSchemaIsIdempotent(t *testing.T) {
	s := openTest(t)
	require.NoError(t, CreateSchema(s.DB()))
	require.NoError(t, CreateSchema(s.DB()))
}

func TestOpenExistingMissingIsIndexNotFound(t *testing.T) {
	_, err := OpenExisting(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
}

func TestReindexFileRoundTrip(t *testing.T) {
	s := openTest(t)

	f := File{Path: "a.go", Hash: "h1", Lang: "go", SizeBytes: 10, ParseQuality: QualityComplete}
	chunks := []Chunk{{
		StartLine: 1, EndLine: 1, StartByte: 0, EndByte: 10,
		Kind: KindFunction, Ident: "main", Content: "func main(){}",
	}}
	refs := []RefInput{{ChunkIndex: 0, TargetIdent: "fmt", RefKind: RefImport, Line: 1, Col: 1}}

	fileID, err := s.ReindexFile(f, chunks, refs)
	require.NoError(t, err)
	assert.NotZero(t, fileID)

	got, err := s.GetFileByPath("a.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h1", got.Hash)

	gotChunks, err := s.ChunksForFile(fileID)
	require.NoError(t, err)
	require.Len(t, gotChunks, 1)
	assert.Equal(t, "main", gotChunks[0].Ident)

	gotRefs, err := s.RefsForChunk(gotChunks[0].ID)
	require.NoError(t, err)
	require.Len(t, gotRefs, 1)
	assert.Equal(t, "fmt", gotRefs[0].TargetIdent)
}

func TestReindexFileReplacesOldChunks(t *testing.T) {
	s := openTest(t)

	f := File{Path: "a.go", Hash: "h1", Lang: "go", SizeBytes: 10, ParseQuality: QualityComplete}
	c1 := []Chunk{{StartLine: 1, EndLine: 1, Kind: KindFunction, Ident: "old", Content: "x"}}
	fileID, err := s.ReindexFile(f, c1, nil)
	require.NoError(t, err)

	f.Hash = "h2"
	c2 := []Chunk{{StartLine: 1, EndLine: 1, Kind: KindFunction, Ident: "new", Content: "y"}}
	_, err = s.ReindexFile(f, c2, nil)
	require.NoError(t, err)

	gotChunks, err := s.ChunksForFile(fileID)
	require.NoError(t, err)
	require.Len(t, gotChunks, 1)
	assert.Equal(t, "new", gotChunks[0].Ident)
}

func TestDeleteFileCascades(t *testing.T) {
	s := openTest(t)

	f := File{Path: "a.go", Hash: "h1", Lang: "go", SizeBytes: 10, ParseQuality: QualityComplete}
	chunks := []Chunk{{StartLine: 1, EndLine: 1, Kind: KindFunction, Ident: "main", Content: "x"}}
	fileID, err := s.ReindexFile(f, chunks, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteFile("a.go"))

	gotChunks, err := s.ChunksForFile(fileID)
	require.NoError(t, err)
	assert.Empty(t, gotChunks)
}

func TestSearchFTSFindsInsertedChunk(t *testing.T) {
	s := openTest(t)

	f := File{Path: "a.go", Hash: "h1", Lang: "go", SizeBytes: 10, ParseQuality: QualityComplete}
	chunks := []Chunk{{StartLine: 1, EndLine: 1, Kind: KindFunction, Ident: "hello", Content: "func hello() {}"}}
	_, err := s.ReindexFile(f, chunks, nil)
	require.NoError(t, err)

	results, err := s.SearchFTS(`"hello"`, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hello", results[0].Ident)
}

func TestSearchFTSSyncsOnDelete(t *testing.T) {
	s := openTest(t)

	f := File{Path: "a.go", Hash: "h1", Lang: "go", SizeBytes: 10, ParseQuality: QualityComplete}
	chunks := []Chunk{{StartLine: 1, EndLine: 1, Kind: KindFunction, Ident: "hello", Content: "func hello() {}"}}
	_, err := s.ReindexFile(f, chunks, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteFile("a.go"))

	results, err := s.SearchFTS(`"hello"`, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
