// Package scan walks a project tree in parallel, applying ignore rules and
// a size cap, and classifies each file as indexable or not.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/rlm-dev/rlm/internal/hash"
	"github.com/rlm-dev/rlm/internal/langmap"
)

// SkipReason explains why a discovered file was not indexed.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipUnsupportedExt      SkipReason = "unsupported_extension"
	SkipTooLarge            SkipReason = "too_large"
	SkipNonUTF8             SkipReason = "non_utf8"
	SkipIOError             SkipReason = "io_error"
	SkipUnsupportedLanguage SkipReason = "unsupported_language"
	SkipUnchanged           SkipReason = "unchanged"
)

// blockedDirs are hard-excluded regardless of ignore files.
var blockedDirs = map[string]bool{
	"node_modules": true, "target": true, ".git": true, "vendor": true,
	"dist": true, "build": true, "__pycache__": true, ".venv": true, "venv": true,
}

// File is an indexable discovery: it passed every filter in Scan.
type File struct {
	Path     string // relative, forward-slash normalized
	AbsPath  string
	Hash     string
	Size     int64
	Ext      string
}

// Discovered is a full-tree discovery, used by ScanAll.
type Discovered struct {
	Path       string
	Ext        string
	Size       int64
	Supported  bool
	SkipReason SkipReason
}

// Scanner walks rootDir respecting the repo's own .gitignore/.git/info/exclude
// (not global excludes), skipping dotfile directories, the fixed block-list,
// and symlinks, honoring an optional max file size.
type Scanner struct {
	RootDir      string
	MaxFileSize  int64    // bytes; 0 = unlimited
	StoreDirName string   // e.g. ".rlm" — always excluded in addition to blockedDirs
	ExtraIgnore  []string // additional glob patterns from config, applied on top of gitignore rules
}

// New builds a Scanner for rootDir with no size limit and no extra excluded
// directory.
func New(rootDir string) *Scanner {
	return &Scanner{RootDir: rootDir}
}

// Scan returns the indexable subset: known extensions, within size limit.
func (s *Scanner) Scan(ctx context.Context) ([]File, error) {
	candidates, err := s.walk()
	if err != nil {
		return nil, err
	}

	var filtered []string
	for _, p := range candidates {
		ext := extOf(p)
		if !langmap.IsSupportedExtension(ext) {
			continue
		}
		filtered = append(filtered, p)
	}

	results := make([]File, len(filtered))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range filtered {
		i, p := i, p
		g.Go(func() error {
			info, err := os.Stat(p)
			if err != nil {
				return nil // per-file errors become skips, never abort the scan
			}
			size := info.Size()
			if s.MaxFileSize > 0 && size > s.MaxFileSize {
				return nil
			}
			h, err := hash.File(p)
			if err != nil {
				return nil
			}
			rel, _ := filepath.Rel(s.RootDir, p)
			results[i] = File{
				Path:    filepath.ToSlash(rel),
				AbsPath: p,
				Hash:    h,
				Size:    size,
				Ext:     extOf(p),
			}
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, r := range results {
		if r.Path != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// ScanAll returns every discovered file (no extension filter), tagged with a
// skip reason where applicable. It is the data source for `files` and
// `verify`.
func (s *Scanner) ScanAll(ctx context.Context) ([]Discovered, error) {
	candidates, err := s.walk()
	if err != nil {
		return nil, err
	}

	results := make([]Discovered, len(candidates))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range candidates {
		i, p := i, p
		g.Go(func() error {
			info, err := os.Stat(p)
			if err != nil {
				results[i] = Discovered{Path: filepath.ToSlash(relOrSelf(s.RootDir, p)), SkipReason: SkipIOError}
				return nil
			}
			rel := filepath.ToSlash(relOrSelf(s.RootDir, p))
			ext := extOf(p)
			size := info.Size()

			switch {
			case s.MaxFileSize > 0 && size > s.MaxFileSize:
				results[i] = Discovered{Path: rel, Ext: ext, Size: size, SkipReason: SkipTooLarge}
			case !langmap.IsSupportedExtension(ext):
				results[i] = Discovered{Path: rel, Ext: ext, Size: size, SkipReason: SkipUnsupportedExt}
			default:
				results[i] = Discovered{Path: rel, Ext: ext, Size: size, Supported: true}
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func relOrSelf(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}

// walk returns absolute paths of every regular file under RootDir, honoring
// gitignore rules, the dotfile/block-list exclusions, and never following
// symlinks.
func (s *Scanner) walk() ([]string, error) {
	matcher := loadGitignore(s.RootDir)
	extra := compileGlobs(s.ExtraIgnore)
	storeDir := s.StoreDirName

	var out []string
	err := filepath.WalkDir(s.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // per-entry errors become skips
		}
		if path == s.RootDir {
			return nil
		}
		rel, relErr := filepath.Rel(s.RootDir, path)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if blockedDirs[name] || (storeDir != "" && name == storeDir) {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(relSlash) {
				return filepath.SkipDir
			}
			if matchesAny(extra, relSlash) {
				return filepath.SkipDir
			}
			return nil
		}

		// Never follow symlinks (loop prevention).
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(relSlash) {
			return nil
		}
		if matchesAny(extra, relSlash) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// compileGlobs compiles config-supplied ignore patterns, silently dropping
// any that fail to parse — a malformed pattern in .rlm/config.yml should
// never abort a scan.
func compileGlobs(patterns []string) []glob.Glob {
	var out []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesAny(globs []glob.Glob, relSlash string) bool {
	for _, g := range globs {
		if g.Match(relSlash) {
			return true
		}
	}
	return false
}

// loadGitignore compiles the repo's own .gitignore (and .git/info/exclude,
// when present) — local excludes only, never global/user-level ignore files.
func loadGitignore(root string) *gitignore.GitIgnore {
	var lines []string
	for _, rel := range []string{".gitignore", filepath.Join(".git", "info", "exclude")} {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	if len(lines) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(lines...)
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
