package mcpserver

// Server wraps a mark3labs/mcp-go server with every rlm query and edit
// operation registered as a tool, so coding agents can drive the index the
// same way the CLI does, over stdio.

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
)

// Server manages the MCP server lifecycle for a single project root.
type Server struct {
	root string
	mcp  *server.MCPServer
}

// NewServer creates an MCP server rooted at root with every tool registered.
// root is resolved once at startup; every tool call operates against it.
func NewServer(root string) (*Server, error) {
	mcpServer := server.NewMCPServer(
		"rlm-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{root: root, mcp: mcpServer}

	addIndexTool(mcpServer, root)
	addSearchTool(mcpServer, root)
	addFuzzySymbolTool(mcpServer, root)
	addSimilarTool(mcpServer, root)
	addTreeTool(mcpServer, root)
	addMapTool(mcpServer, root)
	addPeekTool(mcpServer, root)
	addRefsTool(mcpServer, root)
	addCallgraphTool(mcpServer, root)
	addImpactTool(mcpServer, root)
	addScopeTool(mcpServer, root)
	addDiffTool(mcpServer, root)
	addVerifyTool(mcpServer, root)
	addReplaceTool(mcpServer, root)
	addInsertTool(mcpServer, root)
	addFilesTool(mcpServer, root)

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("rlm-mcp: serving tools on stdio for root %s", s.root)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("rlm-mcp: received shutdown signal, stopping")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases server resources. Each tool call opens and closes its own
// store handle, so there is nothing long-lived to release here; it exists
// for lifecycle symmetry with Serve.
func (s *Server) Close() error {
	return nil
}
