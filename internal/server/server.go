// Package server exposes the capture, session, and script-execution surface
// as MCP tools so agents can drive the desktop without shell overhead.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/script"
	"github.com/mj1618/uidrive/internal/store"
	"github.com/mj1618/uidrive/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the store, provider, and engine.
type Server struct {
	store    *store.Store
	provider *platform.Provider
	engine   *script.Engine

	// Desktop automation is not reentrant; tool calls that touch the
	// provider are serialized.
	providerMu sync.Mutex

	mcp *mcpserver.MCPServer
}

// New creates an MCP server with all uidrive tools registered.
func New(st *store.Store, provider *platform.Provider) *Server {
	s := &Server{
		store:    st,
		provider: provider,
		engine:   script.NewEngine(st, provider),
	}
	s.mcp = mcpserver.NewMCPServer("uidrive", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("see",
			mcp.WithDescription("Capture a snapshot of on-screen UI elements into a session. Returns the session id and the addressable element map."),
			mcp.WithString("app", mcp.Description("Application to capture (frontmost window)")),
			mcp.WithString("window", mcp.Description("Window title fragment")),
			mcp.WithNumber("pid", mcp.Description("Process ID to capture")),
			mcp.WithString("session", mcp.Description("Reuse an existing session id")),
		),
		s.handleSee,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_script",
			mcp.WithDescription("Execute an automation script (JSON or YAML document with ordered steps) against the most recent or a named session."),
			mcp.WithString("script", mcp.Description("The script document"), mcp.Required()),
			mcp.WithString("session", mcp.Description("Pin the run to this session id")),
			mcp.WithBoolean("fail-fast", mcp.Description("Stop at the first failing step (default true)")),
			mcp.WithBoolean("verbose", mcp.Description("Include step comments in the results")),
		),
		s.handleRunScript,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_sessions",
			mcp.WithDescription("List persisted capture sessions with size, screenshot count, and liveness."),
		),
		s.handleListSessions,
	)

	s.mcp.AddTool(
		mcp.NewTool("clean_sessions",
			mcp.WithDescription("Delete sessions older than a number of days (all sessions when days is 0)."),
			mcp.WithNumber("days", mcp.Description("Age threshold in days; 0 deletes everything")),
		),
		s.handleCleanSessions,
	)

	s.mcp.AddTool(
		mcp.NewTool("clipboard_read",
			mcp.WithDescription("Read the current system clipboard text."),
		),
		s.handleClipboardRead,
	)

	s.mcp.AddTool(
		mcp.NewTool("clipboard_write",
			mcp.WithDescription("Write text to the system clipboard."),
			mcp.WithString("text", mcp.Description("Text to write"), mcp.Required()),
		),
		s.handleClipboardWrite,
	)
}
