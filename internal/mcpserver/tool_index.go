package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// addIndexTool registers rlm_index, which builds or refreshes the symbol
// index for root. Parameters grounded on original_source/src/mcp/tools.rs's
// IndexParams.
func addIndexTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_index",
		mcp.WithDescription("Build or refresh the symbol index for the project. Run this before any other rlm tool if the index has never been built."),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, _, err := openIndexer(root)
		if err != nil {
			return toolError(err)
		}
		defer ix.Store.Close()

		stats, err := ix.Run(ctx)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(stats)
	})
}
