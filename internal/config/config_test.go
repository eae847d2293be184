package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoad_NoConfigFile_UsesDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	require.Equal(t, ".rlm", cfg.Storage.DirName)
	require.Equal(t, 3, cfg.Chunking.ImpactDepth)
	require.Contains(t, cfg.Scan.Ignore, "vendor/**")
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".rlm"), 0o755))
	yml := "chunking:\n  impact_depth: 5\nstorage:\n  dir_name: \".custom\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".rlm", "config.yml"), []byte(yml), 0o644))

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Chunking.ImpactDepth)
	require.Equal(t, ".custom", cfg.Storage.DirName)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".rlm"), 0o755))
	yml := "chunking:\n  impact_depth: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".rlm", "config.yml"), []byte(yml), 0o644))

	t.Setenv("RLM_CHUNKING_IMPACT_DEPTH", "7")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Chunking.ImpactDepth)
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	cfg := Default()
	cfg.Chunking.ImpactDepth = 0
	require.ErrorIs(t, Validate(cfg), ErrInvalidImpactDepth)

	cfg = Default()
	cfg.Storage.DirName = ""
	require.ErrorIs(t, Validate(cfg), ErrEmptyDirName)

	cfg = Default()
	cfg.Scan.MaxFileSize = -1
	require.Error(t, Validate(cfg))
}
