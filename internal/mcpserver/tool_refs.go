package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/query"
)

// refHit is rlm_refs's per-result JSON shape: a reference plus the file
// path and enclosing chunk it occurs in.
type refHit struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	RefKind   string `json:"ref_kind"`
	InChunk   string `json:"in_chunk"`
	ChunkKind string `json:"chunk_kind"`
}

// addRefsTool registers rlm_refs, which finds every reference to a symbol.
// Parameters grounded on original_source/src/mcp/tools.rs's RefsParams.
func addRefsTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_refs",
		mcp.WithDescription("Find every usage/call site of a symbol across the indexed project."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol name to find references for")),
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

		refs, err := query.Refs(st, symbol)
		if err != nil {
			return toolError(err)
		}

		hits := make([]refHit, 0, len(refs))
		for _, r := range refs {
			path := "?"
			if f, err := st.GetFileByID(r.Chunk.FileID); err == nil && f != nil {
				path = f.Path
			}
			hits = append(hits, refHit{
				Path: path, Line: r.Reference.Line, RefKind: string(r.Reference.RefKind),
				InChunk: r.Chunk.Ident, ChunkKind: string(r.Chunk.Kind),
			})
		}
		return marshalResult(hits)
	})
}
