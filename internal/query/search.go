// Package query implements the thin, read-only projections over the store
// that the CLI and MCP surfaces expose: search, tree/map/peek, refs,
// callgraph, impact, scope, diff, and verify.
package query

import (
	"regexp"
	"strings"

	"github.com/rlm-dev/rlm/internal/store"
)

// sanitizeRe strips everything except alphanumerics, whitespace, underscore
// and hyphen before a user query reaches FTS5 — it must never see raw
// punctuation that would be interpreted as query syntax.
var sanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9_\-\s]`)

// SanitizeFTSQuery turns free user text into a safe FTS5 MATCH expression:
// strip disallowed characters, split on whitespace, quote each term, OR
// them together. A query that sanitizes to nothing returns "".
func SanitizeFTSQuery(raw string) string {
	cleaned := sanitizeRe.ReplaceAllString(raw, " ")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, " OR ")
}

// Search runs a free-text query against the chunk FTS index. An empty
// result after sanitization is a valid, error-free empty result set.
func Search(s *store.Store, rawQuery string, limit int) ([]store.Chunk, error) {
	ftsQuery := SanitizeFTSQuery(rawQuery)
	if ftsQuery == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.SearchFTS(ftsQuery, limit)
}
