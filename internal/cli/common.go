package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rlm-dev/rlm/internal/config"
	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// readAll reads r fully, wrapping any failure as an rlmerr.IO.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, rlmerr.IO(err)
	}
	return data, nil
}

// absRootDir resolves the --root flag to an absolute path.
func absRootDir() (string, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", rlmerr.IO(err)
	}
	return abs, nil
}

// loadProjectConfig loads (and validates) the project config for root,
// falling back to defaults if no .rlm/config.yml exists.
func loadProjectConfig(root string) (*config.Config, error) {
	return config.NewLoader(root).Load()
}

// storePath returns the SQLite file location for a project root and config.
func storePath(root string, cfg *config.Config) string {
	return filepath.Join(root, cfg.Storage.DirName, "index.db")
}

// newRegistry builds the parser registry used across every command.
func newRegistry() *parser.Registry {
	return parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
}

// openIndexer wires an Indexer for root using the project's config: scanner
// excludes, storage location, and the progress reporter appropriate for the
// --quiet flag.
func openIndexer(root string) (*indexer.Indexer, *config.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, rlmerr.IO(err)
	}

	cfg, err := loadProjectConfig(absRoot)
	if err != nil {
		return nil, nil, err
	}

	s, err := indexer.EnsureStore(storePath(absRoot, cfg))
	if err != nil {
		return nil, nil, err
	}

	ix := indexer.New(absRoot, newRegistry(), s)
	ix.Scanner.MaxFileSize = cfg.Scan.MaxFileSize
	ix.Scanner.StoreDirName = cfg.Storage.DirName
	ix.Scanner.ExtraIgnore = cfg.Scan.Ignore
	if quiet {
		ix.Progress = indexer.NoOpProgressReporter{}
	} else {
		ix.Progress = NewCLIProgressReporter(quiet)
	}
	return ix, cfg, nil
}

// openExistingStore opens the store for root without building an Indexer,
// for read-only query commands. It fails with IndexNotFound if no store
// file exists yet.
func openExistingStore(root string) (*store.Store, *config.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, rlmerr.IO(err)
	}
	cfg, err := loadProjectConfig(absRoot)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.OpenExisting(storePath(absRoot, cfg))
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// printResult renders v as JSON when --json is set, otherwise delegates to
// human, which is responsible for writing a readable rendering to stdout.
func printResult(v any, human func()) {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			fail(rlmerr.JSON(err))
		}
		return
	}
	human()
}

// fail prints err to stderr and exits non-zero. Every command's RunE should
// route failures through this so messages stay consistent.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
