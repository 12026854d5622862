// Package mcp implements the Model Context Protocol server, exposing wkctx
// context management to LLMs. This enables AI assistants to switch, rebuild,
// and inspect workspace contexts through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/wkctx/wkctx/internal/version"
	"github.com/wkctx/wkctx/internal/workbench"
)

// Serve starts the MCP server over stdio. Stdio transport keeps the server
// compatible with Claude Desktop and other MCP clients; all logging goes to
// stderr since stdout is reserved for JSON-RPC messages.
func Serve(wb *workbench.Workbench) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{wb: wb}

	s := server.NewMCPServer(
		"wkctx",
		version.Short(),
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("wkctx MCP server ready", "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the workbench.
// Tool calls arrive one at a time over stdio, which satisfies the
// controller's single-flight expectation.
type handlers struct {
	wb *workbench.Workbench
}
