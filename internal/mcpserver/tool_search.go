package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// searchHit is the JSON shape returned by rlm_search: a chunk plus the file
// path it lives in, since clients see paths, not internal file IDs.
type searchHit struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Kind      string `json:"kind"`
	Ident     string `json:"ident"`
	Content   string `json:"content"`
}

// addSearchTool registers rlm_search, a full-text search over indexed
// chunks. Parameters grounded on original_source/src/mcp/tools.rs's
// SearchParams.
func addSearchTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_search",
		mcp.WithDescription("Full-text search over indexed code chunks (functions, classes, etc). Returns matching chunks with their file location."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
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

		chunks, err := query.Search(st, q, limit)
		if err != nil {
			return toolError(err)
		}

		hits := make([]searchHit, 0, len(chunks))
		for _, c := range chunks {
			path := "?"
			if f, err := st.GetFileByID(c.FileID); err == nil && f != nil {
				path = f.Path
			}
			hits = append(hits, searchHit{
				Path: path, StartLine: c.StartLine, EndLine: c.EndLine,
				Kind: string(c.Kind), Ident: c.Ident, Content: c.Content,
			})
		}
		return marshalResult(hits)
	})
}
