// Command rlm-mcp exposes the rlm query and edit surface as an MCP server
// over stdio, so coding agents can search, navigate, and surgically edit a
// source tree the same way the rlm CLI does.
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/rlm-dev/rlm/internal/mcpserver"
)

func main() {
	root := flag.String("root", ".", "project root to serve")
	flag.Parse()

	absRoot, err := filepath.Abs(*root)
	if err != nil {
		log.Fatalf("rlm-mcp: %v", err)
	}

	s, err := mcpserver.NewServer(absRoot)
	if err != nil {
		log.Fatalf("rlm-mcp: %v", err)
	}
	defer s.Close()

	if err := s.Serve(context.Background()); err != nil {
		log.Fatalf("rlm-mcp: %v", err)
	}
}
