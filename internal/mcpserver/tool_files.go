package mcpserver

import (
	"context"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/scan"
)

// addFilesTool registers rlm_files, listing every file under the project
// root with its skip reason, if any. Grounded on the teacher's
// cortex_files tool shape (AddCortexFilesTool in
// _examples/mvp-joe-project-cortex/internal/mcp/files_tool.go), simplified
// to rlm's scanner-level discovery rather than a SQL-query surface.
func addFilesTool(s *server.MCPServer, root string) {
	tool := mcp.NewTool(
		"rlm_files",
		mcp.WithDescription("List every file under the project, noting whether it was indexed or skipped (and why)."),
		mcp.WithString("path", mcp.Description("Filter by path prefix (e.g. 'src/')")),
		mcp.WithBoolean("skipped_only", mcp.Description("Only show files that were skipped")),
		mcp.WithBoolean("indexed_only", mcp.Description("Only show files that were indexed")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := argsOf(request)
		pathFilter, _ := args["path"].(string)
		skippedOnly, _ := args["skipped_only"].(bool)
		indexedOnly, _ := args["indexed_only"].(bool)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			return toolError(rlmerr.IO(err))
		}
		cfg, err := loadConfig(absRoot)
		if err != nil {
			return toolError(err)
		}

		scanner := scan.New(absRoot)
		scanner.MaxFileSize = cfg.Scan.MaxFileSize
		scanner.StoreDirName = cfg.Storage.DirName
		scanner.ExtraIgnore = cfg.Scan.Ignore

		discovered, err := scanner.ScanAll(ctx)
		if err != nil {
			return toolError(err)
		}

		filtered := discovered[:0:0]
		for _, d := range discovered {
			if pathFilter != "" && !hasPrefix(d.Path, pathFilter) {
				continue
			}
			if skippedOnly && d.SkipReason == "" {
				continue
			}
			if indexedOnly && d.SkipReason != "" {
				continue
			}
			filtered = append(filtered, d)
		}
		return marshalResult(filtered)
	})
}

func hasPrefix(path, prefix string) bool {
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}
