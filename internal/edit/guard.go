// Package edit implements the syntax-safe write path: validate modified
// source against its language's parser before anything touches disk, then
// write atomically.
package edit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// Guard validates source before allowing a write. There is no bypass: every
// write in this package goes through Validate first.
type Guard struct {
	registry *parser.Registry
}

func NewGuard(registry *parser.Registry) *Guard {
	return &Guard{registry: registry}
}

// Validate checks that source is syntactically valid for lang. Non-code
// languages (markdown, json, ...) always pass.
func (g *Guard) Validate(lang, source string) error {
	if !g.registry.IsCodeLanguage(lang) {
		return nil
	}
	if g.registry.ValidateSyntax(lang, []byte(source)) {
		return nil
	}
	return rlmerr.SyntaxGuard(fmt.Sprintf("%s: modified code has parse errors", lang))
}

// ValidateAndWrite validates source, then writes it to path atomically: a
// temp file in the same directory, then a rename. The temp file is removed
// if the rename fails.
func (g *Guard) ValidateAndWrite(lang, source string, path string) error {
	if err := g.Validate(lang, source); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".rlm_tmp_%d_%d", os.Getpid(), time.Now().UnixNano()))

	if err := os.WriteFile(tmp, []byte(source), 0o644); err != nil {
		return rlmerr.IO(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return rlmerr.IO(err)
	}
	return nil
}
