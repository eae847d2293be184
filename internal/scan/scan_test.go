package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestScanFindsSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "README.unknownext", "nothing")

	s := New(root)
	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
	assert.NotEmpty(t, files[0].Hash)
}

func TestScanHonorsBlockedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/index.go", "package pkg\n")
	writeFile(t, root, "src/main.go", "package main\n")

	s := New(root)
	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/main.go", files[0].Path)
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored/\n*.log\n")
	writeFile(t, root, "ignored/skip.go", "package skip\n")
	writeFile(t, root, "keep.go", "package keep\n")
	writeFile(t, root, "debug.log", "text")

	s := New(root)
	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.go", files[0].Path)
}

func TestScanRespectsMaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.go", "package big\n// filler\n")

	s := New(root)
	s.MaxFileSize = 5
	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanAllReportsSkipReasons(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "notes.unknownext", "text")

	s := New(root)
	discovered, err := s.ScanAll(context.Background())
	require.NoError(t, err)

	byPath := map[string]Discovered{}
	for _, d := range discovered {
		byPath[d.Path] = d
	}
	assert.True(t, byPath["main.go"].Supported)
	assert.Equal(t, SkipUnsupportedExt, byPath["notes.unknownext"].SkipReason)
}

func TestScanExcludesStoreDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".rlm/index.db", "binary")
	writeFile(t, root, "main.go", "package main\n")

	s := New(root)
	s.StoreDirName = ".rlm"
	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}
