package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/edit"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// addReplaceTool registers rlm_replace, which rewrites a symbol's body
// behind the syntax guard. Parameters grounded on
// original_source/src/mcp/tools.rs's ReplaceParams.
func addReplaceTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_replace",
		mcp.WithDescription("Replace a symbol's body in a file. The result is reparsed before anything touches disk; a syntax error leaves the file untouched. Set preview=true to see the diff without writing."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol name to replace")),
		mcp.WithString("code", mcp.Required(), mcp.Description("New code to replace the symbol's body with")),
		mcp.WithBoolean("preview", mcp.Description("Preview the change without writing (default: false)")),
		mcp.WithDestructiveHintAnnotation(true),
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
		code, errResult := requireString(args, "code")
		if errResult != nil {
			return errResult, nil
		}
		preview, _ := args["preview"].(bool)

		st, _, err := openExistingStore(root)
		if err != nil {
			return toolError(err)
		}
		defer st.Close()

		if preview {
			diff, err := edit.PreviewReplace(st, path, symbol, code)
			if err != nil {
				return toolError(err)
			}
			return marshalResult(diff)
		}

		guard := edit.NewGuard(newRegistry())
		modified, err := edit.ReplaceSymbol(st, guard, path, symbol, code)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(map[string]any{
			"path": path, "symbol": symbol, "bytes_written": len(modified),
		})
	})
}

// addInsertTool registers rlm_insert, which adds code at a fixed position
// in a file behind the syntax guard. Parameters grounded on
// original_source/src/mcp/tools.rs's InsertParams (position encodes 'top',
// 'bottom', 'before:N', 'after:N' as a single string there, and the same
// single string is taken here and parsed by parseInsertPosition).
func addInsertTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_insert",
		mcp.WithDescription("Insert code into a file at a fixed position. The result is reparsed before anything touches disk; a syntax error leaves the file untouched. The position parameter is required."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the file")),
		mcp.WithString("code", mcp.Required(), mcp.Description("Code to insert")),
		mcp.WithString("position", mcp.Required(), mcp.Description("One of: 'top', 'bottom', 'before:N', 'after:N' where N is a 1-based line number")),
		mcp.WithDestructiveHintAnnotation(true),
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
		code, errResult := requireString(args, "code")
		if errResult != nil {
			return errResult, nil
		}
		positionStr, errResult := requireString(args, "position")
		if errResult != nil {
			return errResult, nil
		}

		pos, err := parseInsertPosition(positionStr)
		if err != nil {
			return toolError(err)
		}

		guard := edit.NewGuard(newRegistry())
		modified, err := edit.InsertCode(guard, path, pos, code)
		if err != nil {
			return toolError(err)
		}
		return marshalResult(map[string]any{"path": path, "bytes_written": len(modified)})
	})
}

// parseInsertPosition translates the 'top' | 'bottom' | 'before:N' | 'after:N'
// wire encoding used by original_source/src/mcp/tools.rs's InsertParams into
// an edit.InsertPosition.
func parseInsertPosition(raw string) (edit.InsertPosition, error) {
	switch {
	case raw == "top":
		return edit.AtTop(), nil
	case raw == "bottom":
		return edit.AtBottom(), nil
	case len(raw) > len("before:") && raw[:len("before:")] == "before:":
		n, err := atoiStrict(raw[len("before:"):])
		if err != nil {
			return edit.InsertPosition{}, rlmerr.Other("position: invalid line number in " + raw)
		}
		return edit.Before(n), nil
	case len(raw) > len("after:") && raw[:len("after:")] == "after:":
		n, err := atoiStrict(raw[len("after:"):])
		if err != nil {
			return edit.InsertPosition{}, rlmerr.Other("position: invalid line number in " + raw)
		}
		return edit.After(n), nil
	default:
		return edit.InsertPosition{}, rlmerr.Other("position must be 'top', 'bottom', 'before:N', or 'after:N'")
	}
}
