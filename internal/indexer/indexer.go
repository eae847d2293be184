// Package indexer walks a project, dispatches each file to the right
// parser, and writes the resulting chunks and references into the store.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rlm-dev/rlm/internal/hash"
	"github.com/rlm-dev/rlm/internal/langmap"
	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/query"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/scan"
	"github.com/rlm-dev/rlm/internal/store"
)

// Stats summarizes the outcome of a single run. RunID identifies the run
// in logs independent of wall-clock time, so two runs started in the same
// second are still distinguishable.
type Stats struct {
	RunID    string
	Scanned  int
	Indexed  int
	Skipped  int
	Failed   int
	Chunks   int
	Duration time.Duration
}

// Indexer wires a Scanner, a parser Registry, and a Store together.
type Indexer struct {
	Root     string
	Scanner  *scan.Scanner
	Registry *parser.Registry
	Store    *store.Store
	Progress ProgressReporter
}

// New builds an Indexer rooted at root, backed by s, using registry to
// dispatch parsing. A NoOpProgressReporter is installed by default.
func New(root string, registry *parser.Registry, s *store.Store) *Indexer {
	return &Indexer{
		Root:     root,
		Scanner:  scan.New(root),
		Registry: registry,
		Store:    s,
		Progress: NoOpProgressReporter{},
	}
}

// Run scans the project and reindexes every file whose content hash has
// changed since the last run (or that isn't indexed yet). Files that no
// longer exist on disk but remain in the store are removed.
func (ix *Indexer) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	ix.Progress.OnScanStart()

	files, err := ix.Scanner.Scan(ctx)
	if err != nil {
		return Stats{}, err
	}
	ix.Progress.OnScanComplete(len(files))

	stats := Stats{RunID: uuid.New().String(), Scanned: len(files)}
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		seen[f.Path] = true
		ix.Progress.OnFileStart(f.Path)

		n, skipped, err := ix.indexOne(f)
		switch {
		case err != nil:
			stats.Failed++
			ix.Progress.OnFileFailed(f.Path, err)
		case skipped != "":
			stats.Skipped++
			ix.Progress.OnFileSkipped(f.Path, skipped)
		default:
			stats.Indexed++
			stats.Chunks += n
			ix.Progress.OnFileIndexed(f.Path, n)
		}
	}

	if err := ix.pruneDeleted(seen); err != nil {
		return stats, err
	}
	query.InvalidateGraphCache()

	stats.Duration = time.Since(start)
	ix.Progress.OnComplete(stats)
	return stats, nil
}

// indexOne indexes a single discovered file, returning the chunk count, a
// skip reason (empty if indexed), or an error.
func (ix *Indexer) indexOne(f scan.File) (int, string, error) {
	existing, err := ix.Store.GetFileByPath(f.Path)
	if err != nil {
		return 0, "", err
	}
	if existing != nil && existing.Hash == f.Hash {
		return 0, "unchanged", nil
	}

	source, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return 0, string(scan.SkipIOError), nil
	}
	if !utf8.Valid(source) {
		return 0, string(scan.SkipNonUTF8), nil
	}

	lang := langmap.ExtToLang(f.Ext)
	if lang == "unknown" || !ix.Registry.Supports(lang) {
		return 0, string(scan.SkipUnsupportedLanguage), nil
	}

	quality := store.QualityComplete
	var chunks []store.Chunk
	var refs []store.RefInput

	if ix.Registry.IsCodeLanguage(lang) {
		result, err := ix.Registry.ParseWithQuality(lang, source)
		if err != nil {
			return 0, "", rlmerr.Parse(f.Path, err.Error())
		}
		chunks = result.Chunks
		quality = result.Quality
		refs, err = ix.Registry.ExtractRefs(lang, source, chunks)
		if err != nil {
			return 0, "", rlmerr.Parse(f.Path, err.Error())
		}
	} else {
		chunks, err = ix.Registry.Parse(lang, source)
		if err != nil {
			return 0, "", rlmerr.Parse(f.Path, err.Error())
		}
		quality = store.QualityUnknown
	}

	uiCtx := langmap.DetectUIContext(f.Path)
	if uiCtx != "" {
		for i := range chunks {
			if chunks[i].UIContext == "" {
				chunks[i].UIContext = uiCtx
			}
		}
	}

	record := store.File{
		Path: f.Path, Hash: f.Hash, Lang: lang,
		SizeBytes: f.Size, ParseQuality: quality,
	}
	if _, err := ix.Store.ReindexFile(record, chunks, refs); err != nil {
		return 0, "", err
	}
	return len(chunks), "", nil
}

// pruneDeleted removes store entries for files no longer present on disk.
func (ix *Indexer) pruneDeleted(seen map[string]bool) error {
	indexed, err := ix.Store.AllFiles()
	if err != nil {
		return err
	}
	for _, f := range indexed {
		if !seen[f.Path] {
			if err := ix.Store.DeleteFile(f.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReindexOne re-reads and reindexes the single file at absPath (an absolute
// path; a relative one is opened against the working directory), used by
// watch mode to react to individual file events.
func (ix *Indexer) ReindexOne(ctx context.Context, absPath string) error {
	rel, err := filepath.Rel(ix.Root, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			err := ix.Store.DeleteFile(rel)
			query.InvalidateGraphCache()
			return err
		}
		return rlmerr.IO(err)
	}

	ext := strings.TrimPrefix(filepath.Ext(absPath), ".")
	if !langmap.IsSupportedExtension(ext) {
		return nil
	}

	h, err := hash.File(absPath)
	if err != nil {
		return rlmerr.IO(err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return rlmerr.IO(err)
	}

	f := scan.File{Path: rel, AbsPath: absPath, Hash: h, Size: info.Size(), Ext: ext}
	_, _, err = ix.indexOne(f)
	query.InvalidateGraphCache()
	return err
}

// EnsureStore opens (creating if absent) the store at storePath.
func EnsureStore(storePath string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
		return nil, rlmerr.IO(err)
	}
	return store.Open(storePath)
}

// Summary renders stats as a human-readable line, mirroring the CLI's
// one-line completion message.
func (s Stats) Summary() string {
	return fmt.Sprintf("run %s: scanned %d, indexed %d, skipped %d, failed %d, %d chunks in %s",
		s.RunID, s.Scanned, s.Indexed, s.Skipped, s.Failed, s.Chunks, s.Duration.Round(time.Millisecond))
}
