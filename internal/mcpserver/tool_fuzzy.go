package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// fuzzyHit is the JSON shape returned by rlm_fuzzy_symbol.
type fuzzyHit struct {
	Ident string  `json:"ident"`
	Kind  string  `json:"kind"`
	File  string  `json:"file"`
	Score float64 `json:"score"`
}

// addFuzzySymbolTool registers rlm_fuzzy_symbol, an approximate-name
// lookup over every indexed identifier — the complement to rlm_search's
// exact full-text content match, for clients that only have a
// misremembered or partial symbol name to go on.
func addFuzzySymbolTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_fuzzy_symbol",
		mcp.WithDescription("Approximate (typo-tolerant) search over indexed symbol names, not file content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Symbol name to search for")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 20)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := argsOf(request)
		if errResult != nil {
			return errResult, nil
		}
		q, errResult := requireString(args, "query")
		if errResult != nil {
			return errResult, nil
		}
		limit := optionalInt(args, "limit", 20)

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		matches, err := query.FuzzySymbol(st, q, limit)
		if err != nil {
			return toolError(err)
		}

		hits := make([]fuzzyHit, 0, len(matches))
		for _, m := range matches {
			hits = append(hits, fuzzyHit{Ident: m.Ident, Kind: string(m.Kind), File: m.File, Score: m.Score})
		}
		return marshalResult(hits)
	})
}
