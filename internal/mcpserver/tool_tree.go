package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// addTreeTool registers rlm_tree, which lists indexed files under a
// directory summarized by chunk kind. Parameters grounded on
// original_source/src/mcp/tools.rs's PeekParams/MapParams path-prefix shape.
func addTreeTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_tree",
		mcp.WithDescription("List indexed files under a directory, each summarized by language and chunk count."),
		mcp.WithString("path", mcp.Description("Directory prefix filter (default: project root)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := argsOf(request)
		prefix, _ := args["path"].(string)

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		summaries, err := query.Tree(st, prefix)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(summaries)
	})
}

// addMapTool registers rlm_map, which lists every chunk in a single file.
func addMapTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_map",
		mcp.WithDescription("List every chunk (function, class, section, ...) in a single file, with line ranges."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
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

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		chunks, err := query.Map(st, path)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(chunks)
	})
}

// addPeekTool registers rlm_peek, which returns a single chunk's full
// content by file and symbol name.
func addPeekTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_peek",
		mcp.WithDescription("Read a single symbol's full source text from a file, without reading the whole file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol name to read")),
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
		symbol, errResult := requireString(args, "symbol")
		if errResult != nil {
			return errResult, nil
		}

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		chunk, err := query.Peek(st, path, symbol)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(chunk)
	})
}
