// tools.go implements the MCP tools for context management. The tools
// mirror the CLI commands by driving the same workbench controllers, so a
// user switching between CLI and MCP usage sees consistent behaviour.
//
// Errors return MCP tool error results rather than Go errors: the LLM
// receives actionable feedback it can parse and potentially retry, instead
// of the whole tool call failing at the protocol level.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/naming"
)

// demoParam is shared by every tool: all of them can target either catalog.
func demoParam() mcp.ToolOption {
	return mcp.WithBoolean("demo", mcp.Description("Operate on the demo catalog instead of the lesson catalog"))
}

func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("wkctx_list",
			mcp.WithDescription("List the contexts available in the catalog"),
			demoParam(),
		),
		h.listContexts,
	)

	s.AddTool(
		mcp.NewTool("wkctx_status",
			mcp.WithDescription("Show the current context and its ready/loading/error state"),
			demoParam(),
		),
		h.status,
	)

	s.AddTool(
		mcp.NewTool("wkctx_use",
			mcp.WithDescription("Activate a context, reusing its existing database when possible"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Context name")),
			demoParam(),
		),
		h.useContext,
	)

	s.AddTool(
		mcp.NewTool("wkctx_load",
			mcp.WithDescription("Rebuild a context from scratch: recreate its database, reapply schema and seed data"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Context name")),
			demoParam(),
		),
		h.loadContext,
	)

	s.AddTool(
		mcp.NewTool("wkctx_reset",
			mcp.WithDescription("Rebuild the currently active context from its definition"),
			demoParam(),
		),
		h.resetContext,
	)

	s.AddTool(
		mcp.NewTool("wkctx_clear",
			mcp.WithDescription("Deactivate the current context without touching its database"),
			demoParam(),
		),
		h.clearContext,
	)

	s.AddTool(
		mcp.NewTool("wkctx_drift",
			mcp.WithDescription("Report schema drift between a context's database and its catalog definition"),
			mcp.WithString("name", mcp.Description("Context name (default: the current context)")),
			demoParam(),
		),
		h.driftReport,
	)
}

type contextInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Current bool   `json:"current"`
	Built   bool   `json:"built"`
}

func (h *handlers) listContexts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)
	cat := h.wb.Catalog(demo)

	var out []contextInfo
	for _, name := range cat.Names() {
		def, _ := cat.Get(name)
		built, err := h.wb.Engine.DatabaseExists(ctx, naming.PhysicalName(name))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out = append(out, contextInfo{
			Name:    name,
			Title:   def.Title,
			Current: ctrl.IsLoaded(name),
			Built:   built,
		})
	}
	return jsonResult(out)
}

func (h *handlers) status(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)

	return jsonResult(map[string]any{
		"status":          ctrl.Status(),
		"last_loaded_at":  ctrl.LastLoadedAt(),
		"active_database": h.wb.Engine.ActiveDatabase(),
	})
}

func (h *handlers) useContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)

	l := log.Event("mcp:wkctx_use", "switch").Context(name)
	err = ctrl.SwitchOrLoad(ctx, name)
	l.Database(naming.PhysicalName(name)).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ctrl.Status())
}

func (h *handlers) loadContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)

	// Force a rebuild even when the name is already current.
	l := log.Event("mcp:wkctx_load", "load").Context(name)
	if ctrl.IsLoaded(name) {
		err = ctrl.Reset(ctx)
	} else {
		err = ctrl.Load(ctx, name)
	}
	l.Database(naming.PhysicalName(name)).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ctrl.Status())
}

func (h *handlers) resetContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)

	l := log.Event("mcp:wkctx_reset", "reset").Context(ctrl.Current())
	err := ctrl.Reset(ctx)
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ctrl.Status())
}

func (h *handlers) clearContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	demo := getBool(req, "demo", false)
	ctrl := h.wb.Controller(demo)

	l := log.Event("mcp:wkctx_clear", "clear").Context(ctrl.Current())
	ctrl.Clear()
	l.Write(nil)
	return jsonResult(ctrl.Status())
}

func (h *handlers) driftReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	demo := getBool(req, "demo", false)
	name := getString(req, "name", "")

	r, err := h.wb.DriftReport(ctx, demo, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"in_sync": r.InSync(),
		"report":  r.Format(false),
	})
}

// getString extracts a string parameter, returning the default when the
// parameter is missing. Optional parameters should never fail a tool call.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map. JSON
// booleans decode as Go bool values, so a type assertion suffices; the
// default covers an LLM passing "true" as a string or omitting the field.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// jsonResult serialises a value as indented JSON wrapped in an MCP text
// result. LLMs parse structured output more reliably when it is formatted
// for readability.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
