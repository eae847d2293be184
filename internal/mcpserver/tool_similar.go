package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// similarHit is the JSON shape returned by rlm_similar.
type similarHit struct {
	ChunkID int64   `json:"chunk_id"`
	Ident   string  `json:"ident"`
	File    string  `json:"file"`
	Score   float64 `json:"score"`
}

// addSimilarTool registers rlm_similar, a lexical-similarity lookup that
// surfaces chunks whose content resembles a given anchor chunk — useful
// for "find other places like this one" before a refactor.
func addSimilarTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_similar",
		mcp.WithDescription("Finds chunks whose content is similar to a given chunk's content."),
		mcp.WithNumber("chunk_id", mcp.Required(), mcp.Description("Anchor chunk ID to compare against")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 10)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := argsOf(request)
		if errResult != nil {
			return errResult, nil
		}
		chunkID, errResult := requireInt64(args, "chunk_id")
		if errResult != nil {
			return errResult, nil
		}
		limit := optionalInt(args, "limit", 10)

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		matches, err := query.Similar(ctx, st, chunkID, limit)
		if err != nil {
			return toolError(err)
		}

		hits := make([]similarHit, 0, len(matches))
		for _, m := range matches {
			hits = append(hits, similarHit{ChunkID: m.ChunkID, Ident: m.Ident, File: m.File, Score: float64(m.Score)})
		}
		return marshalResult(hits)
	})
}
