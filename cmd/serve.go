/*
Copyright © 2026 The wkctx authors
*/

// serve.go implements the "wkctx serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio. It opens the workbench once and keeps
// the controllers alive for the lifetime of the session, so context state
// persists across tool calls without re-reading the active marker.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM
integration. Exposes context listing, switching, loading, resetting,
and drift reporting as MCP tools.`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return err
	}
	defer wb.Close()
	return mcp.Serve(wb)
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
