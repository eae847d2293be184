package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// addScopeTool registers rlm_scope, listing the chunks that bracket a line,
// innermost first. Parameters grounded on original_source/src/mcp/tools.rs's
// ScopeParams.
func addScopeTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_scope",
		mcp.WithDescription("List the chunks of a file whose line range contains a given line, innermost first."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Line number to inspect")),
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
		line := optionalInt(args, "line", 0)
		if line <= 0 {
			return toolError(rlmerr.Other("line parameter is required"))
		}

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		chunks, err := query.Scope(st, path, line)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(chunks)
	})
}
