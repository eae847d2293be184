package mcpserver

import (
	"context"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// addDiffTool registers rlm_diff, comparing a file (or one symbol within
// it) against what the index last saw. Parameters grounded on
// original_source/src/mcp/tools.rs's DiffParams.
func addDiffTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_diff",
		mcp.WithDescription("Compare a file, or a single symbol within it, against its last indexed content. Use before editing to see if the index is stale."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
		mcp.WithString("symbol", mcp.Description("Optional symbol name to scope the diff to")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := argsOf(request)
		if errResult != nil {
			return errResult, nil
		}
		path, errResult := requireString(args, "path")
		if errResult != nil {
			return errResult, nil
		}
		symbol, _ := args["symbol"].(string)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			return toolError(rlmerr.IO(err))
		}

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		result, err := query.Diff(st, absRoot, path, symbol)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(result)
	})
}
