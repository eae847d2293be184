// Package rlmerr defines the error taxonomy shared by every core package.
// Callers distinguish kinds with errors.As, never by matching message text.
package rlmerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so CLI/MCP callers can map it to an exit code or
// a tool-error code without parsing message text.
type Kind int

const (
	KindOther Kind = iota
	KindIndexNotFound
	KindFileNotFound
	KindSymbolNotFound
	KindSectionNotFound
	KindParse
	KindSyntaxGuard
	KindUnsupportedLanguage
	KindEditConflict
	KindNoContainer
	KindDatabase
	KindIO
	KindJSON
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindIndexNotFound:
		return "index_not_found"
	case KindFileNotFound:
		return "file_not_found"
	case KindSymbolNotFound:
		return "symbol_not_found"
	case KindSectionNotFound:
		return "section_not_found"
	case KindParse:
		return "parse"
	case KindSyntaxGuard:
		return "syntax_guard"
	case KindUnsupportedLanguage:
		return "unsupported_language"
	case KindEditConflict:
		return "edit_conflict"
	case KindNoContainer:
		return "no_container"
	case KindDatabase:
		return "database"
	case KindIO:
		return "io"
	case KindJSON:
		return "json"
	case KindConfig:
		return "config"
	default:
		return "other"
	}
}

// Error is the single error type returned from core packages. It carries a
// Kind for programmatic dispatch and wraps an underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func new_(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Msg: msg, Err: cause}
}

// IndexNotFound reports that no store exists under the project root.
func IndexNotFound() *Error {
	return new_(KindIndexNotFound, "index not found: run `rlm index` first", nil)
}

// FileNotFound reports a path missing on disk or in the index.
func FileNotFound(path string) *Error {
	return new_(KindFileNotFound, fmt.Sprintf("file not found: %s", path), nil)
}

// SymbolNotFound reports that no chunk carries the given identifier.
func SymbolNotFound(ident string) *Error {
	return new_(KindSymbolNotFound, fmt.Sprintf("symbol not found: %s", ident), nil)
}

// SectionNotFound reports a missing Markdown heading.
func SectionNotFound(heading string) *Error {
	return new_(KindSectionNotFound, fmt.Sprintf("section not found: %s", heading), nil)
}

// Parse reports that a parser produced no usable tree.
func Parse(path, detail string) *Error {
	return new_(KindParse, fmt.Sprintf("parse error in %s: %s", path, detail), nil)
}

// SyntaxGuard reports that the syntax guard rejected a write.
func SyntaxGuard(detail string) *Error {
	return new_(KindSyntaxGuard, fmt.Sprintf("syntax guard rejected: %s", detail), nil)
}

// UnsupportedLanguage reports that no parser is registered for ext.
func UnsupportedLanguage(ext string) *Error {
	return new_(KindUnsupportedLanguage, fmt.Sprintf("unsupported language: %s", ext), nil)
}

// EditConflict reports that a chunk's byte range no longer lies inside the
// current file bytes, i.e. the file mutated since indexing.
func EditConflict() *Error {
	return new_(KindEditConflict, "edit conflict: file changed on disk", nil)
}

// NoContainer reports that an insertion needs a container that is absent.
func NoContainer() *Error {
	return new_(KindNoContainer, "no parent container found for insertion", nil)
}

// Database wraps a storage-layer failure.
func Database(cause error) *Error {
	return new_(KindDatabase, "database error", cause)
}

// IO wraps a filesystem failure.
func IO(cause error) *Error {
	return new_(KindIO, "io error", cause)
}

// JSON wraps a marshal/unmarshal failure.
func JSON(cause error) *Error {
	return new_(KindJSON, "json error", cause)
}

// Config wraps a configuration-loading failure.
func Config(detail string) *Error {
	return new_(KindConfig, fmt.Sprintf("config error: %s", detail), nil)
}

// Other wraps anything that doesn't fit a named kind.
func Other(msg string) *Error {
	return new_(KindOther, msg, nil)
}

// Is reports whether err (or any error it wraps) has the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
