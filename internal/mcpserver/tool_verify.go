package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// addVerifyTool registers rlm_verify, cross-checking the index against the
// filesystem. Parameters grounded on original_source/src/mcp/tools.rs's
// VerifyParams.
func addVerifyTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_verify",
		mcp.WithDescription("Cross-check the index against the filesystem: files missing on disk, new files not yet indexed, and hash mismatches."),
		mcp.WithBoolean("fix", mcp.Description("Auto-fix recoverable issues: delete missing entries, reindex new/changed files (default: false)")),
		mcp.WithDestructiveHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := argsOf(request)
		fix, _ := args["fix"].(bool)

		ix, _, err := openIndexer(root)
		if err != nil {
			return toolError(err)
		}
		defer ix.Store.Close()

		report, err := query.Verify(ctx, ix, fix)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(report)
	})
}
