package hash

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
)

func TestBytesDeterministic(t *testing.T) {
	h1 := Bytes([]byte("hello world"))
	h2 := Bytes([]byte("hello world"))
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestBytesDifferentForDifferentInput(t *testing.T) {
	assert.NotEqual(t, Bytes([]byte("hello")), Bytes([]byte("world")))
}

func TestFileMatchesBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("test content"), 0o644))

	got, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, Bytes([]byte("test content")), got)
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
