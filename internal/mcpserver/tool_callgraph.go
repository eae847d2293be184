package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// addCallgraphTool registers rlm_callgraph, showing a symbol's direct
// callers and callees. Parameters grounded on
// original_source/src/mcp/tools.rs's CallgraphParams.
func addCallgraphTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_callgraph",
		mcp.WithDescription("Show a symbol's direct callers and callees, one hop in each direction."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol name to build the call graph for")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := argsOf(request)
		if errResult != nil {
			return errResult, nil
		}
		symbol, errResult := requireString(args, "symbol")
		if errResult != nil {
			return errResult, nil
		}

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		cg, err := query.Callgraph(st, symbol)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(cg)
	})
}

// addImpactTool registers rlm_impact, the transitive closure of a symbol's
// callers out to a bounded depth. Parameters grounded on
// original_source/src/mcp/tools.rs's ImpactParams.
func addImpactTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_impact",
		mcp.WithDescription("Show everything that transitively calls a symbol, within a bounded number of hops — use to judge the blast radius of a change."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol name to analyze")),
		mcp.WithNumber("depth", mcp.Description("BFS hop bound (default: the project's configured impact depth)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := argsOf(request)
		if errResult != nil {
			return errResult, nil
		}
		symbol, errResult := requireString(args, "symbol")
		if errResult != nil {
			return errResult, nil
		}

		st, cfg, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		depth := optionalInt(args, "depth", 0)
		if depth <= 0 {
			depth = cfg.Chunking.ImpactDepth
		}

		result, err := query.Impact(st, symbol, depth)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(result)
	})
}
