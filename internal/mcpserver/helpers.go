// Package mcpserver exposes the query and edit surface as MCP tools, one
// per operation, so coding agents can drive rlm the same way the CLI does.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rlm-dev/rlm/internal/config"
	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/parser"
	"github.com/rlm-dev/rlm/internal/parser/lang"
	"github.com/rlm-dev/rlm/internal/parser/text"
	"github.com/rlm-dev/rlm/internal/rlmerr"
	"github.com/rlm-dev/rlm/internal/store"
)

// newRegistry builds the parser registry used across every tool handler.
func newRegistry() *parser.Registry {
	return parser.NewRegistry(lang.CodeParsers(), text.TextParsers())
}

// loadConfig loads (and validates) the project config for root, falling
// back to defaults if no .rlm/config.yml exists.
func loadConfig(root string) (*config.Config, error) {
	return config.NewLoader(root).Load()
}

// storePath returns the SQLite file location for a project root and config.
func storePath(root string, cfg *config.Config) string {
	return filepath.Join(root, cfg.Storage.DirName, "index.db")
}

// openIndexer wires an Indexer for root using the project's config. The
// indexer's progress reporter is a no-op: MCP tool calls are one-shot RPCs,
// not long-running terminal sessions.
func openIndexer(root string) (*indexer.Indexer, *config.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, rlmerr.IO(err)
	}
	cfg, err := loadConfig(absRoot)
	if err != nil {
		return nil, nil, err
	}
	s, err := indexer.EnsureStore(storePath(absRoot, cfg))
	if err != nil {
		return nil, nil, err
	}
	ix := indexer.New(absRoot, newRegistry(), s)
	ix.Scanner.MaxFileSize = cfg.Scan.MaxFileSize
	ix.Scanner.StoreDirName = cfg.Storage.DirName
	ix.Scanner.ExtraIgnore = cfg.Scan.Ignore
	ix.Progress = indexer.NoOpProgressReporter{}
	return ix, cfg, nil
}

// openExistingStore opens the store for root without building an Indexer,
// for read-only query tools. It fails with IndexNotFound if no index has
// been built yet.
func openExistingStore(root string) (*store.Store, *config.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, rlmerr.IO(err)
	}
	cfg, err := loadConfig(absRoot)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.OpenExisting(storePath(absRoot, cfg))
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// atoiStrict parses a 1-based line number out of an insert position suffix.
func atoiStrict(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n, nil
}

// toolError renders err as a tool-level failure rather than a transport
// error, so MCP clients see the message instead of a dropped connection.
func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// argsOf validates and extracts the arguments map from an MCP tool request.
func argsOf(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return argsMap, nil
}

// requireString extracts a required string argument.
func requireString(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", key))
	}
	return v, nil
}

// optionalInt extracts an optional numeric argument, falling back to def.
func optionalInt(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

// requireInt64 extracts a required numeric argument as an int64 (chunk IDs
// are SQLite INTEGER PRIMARY KEYs, which JSON transports as float64).
func requireInt64(args map[string]interface{}, key string) (int64, *mcp.CallToolResult) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", key))
	}
	return int64(v), nil
}

// marshalResult marshals response to JSON and wraps it as a tool result.
func marshalResult(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
