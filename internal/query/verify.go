package query

import (
	"context"
	"path/filepath"

	"github.com/rlm-dev/rlm/internal/hash"
	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/scan"
	"github.com/rlm-dev/rlm/internal/store"
)

// VerifyReport cross-checks the index against the filesystem.
type VerifyReport struct {
	MissingOnDisk  []string // indexed, absent on disk
	NewOnDisk      []string // on disk, not yet indexed
	HashMismatched []string // indexed, but disk content no longer matches
	Fixed          bool
}

// Verify scans ix.Root, diffs it against the store's file table, and
// reports the three drift categories. When fix is true, it deletes index
// rows for files missing on disk, then runs a full indexing pass to pick
// up new and changed files — it never edits a user's file.
func Verify(ctx context.Context, ix *indexer.Indexer, fix bool) (VerifyReport, error) {
	var report VerifyReport
	s := ix.Store
	root := ix.Root

	scanner := scan.New(root)
	discovered, err := scanner.ScanAll(ctx)
	if err != nil {
		return report, err
	}
	onDisk := make(map[string]scan.Discovered, len(discovered))
	for _, d := range discovered {
		if d.Supported {
			onDisk[d.Path] = d
		}
	}

	indexed, err := s.AllFiles()
	if err != nil {
		return report, err
	}
	indexedPaths := make(map[string]store.File, len(indexed))
	for _, f := range indexed {
		indexedPaths[f.Path] = f
	}

	for path, f := range indexedPaths {
		if _, stillOnDisk := onDisk[path]; !stillOnDisk {
			report.MissingOnDisk = append(report.MissingOnDisk, path)
			continue
		}
		abs := filepath.Join(root, filepath.FromSlash(path))
		diskHash, err := hash.File(abs)
		if err != nil {
			report.MissingOnDisk = append(report.MissingOnDisk, path)
			continue
		}
		if diskHash != f.Hash {
			report.HashMismatched = append(report.HashMismatched, path)
		}
	}
	for path := range onDisk {
		if _, ok := indexedPaths[path]; !ok {
			report.NewOnDisk = append(report.NewOnDisk, path)
		}
	}

	if fix {
		for _, path := range report.MissingOnDisk {
			if err := s.DeleteFile(path); err != nil {
				return report, err
			}
		}
		if _, err := ix.Run(ctx); err != nil {
			return report, err
		}
		report.Fixed = true
	}

	return report, nil
}
