package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/script"
)

// toYAML serializes a result for an MCP text response.
func toYAML(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal result: %v", err)
	}
	return string(b)
}

func (s *Server) handleSee(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	sessionID, snap, err := s.engine.Capture(script.CaptureOptions{
		SessionID: script.StringParam(params, "session", ""),
		App:       script.StringParam(params, "app", ""),
		Window:    script.StringParam(params, "window", ""),
		PID:       script.IntParam(params, "pid", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type seeResult struct {
		Session  string                     `yaml:"session"`
		App      string                     `yaml:"app,omitempty"`
		Window   string                     `yaml:"window,omitempty"`
		Elements map[string]model.UIElement `yaml:"elements"`
	}
	return mcp.NewToolResultText(toYAML(seeResult{
		Session:  sessionID,
		App:      snap.ApplicationName,
		Window:   snap.WindowTitle,
		Elements: snap.Elements,
	})), nil
}

func (s *Server) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	doc := script.StringParam(params, "script", "")
	if doc == "" {
		return mcp.NewToolResultError("missing required argument \"script\""), nil
	}

	sc, err := script.Load([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result := s.engine.Execute(ctx, sc, script.Options{
		FailFast: script.BoolParam(params, "fail-fast", true),
		Verbose:  script.BoolParam(params, "verbose", false),
		Session:  script.StringParam(params, "session", ""),
	})
	if !result.OK {
		return mcp.NewToolResultError(toYAML(result)), nil
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleListSessions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(infos)), nil
}

func (s *Server) handleCleanSessions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := script.IntParam(request.GetArguments(), "days", 0)

	var removed int
	var err error
	if days <= 0 {
		removed, err = s.store.DeleteAll()
	} else {
		removed, err = s.store.DeleteOlderThan(days)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed: %d\n", removed)), nil
}

func (s *Server) handleClipboardRead(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.provider.Clipboard == nil {
		return mcp.NewToolResultError("clipboard not available on this platform"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	payload, err := s.provider.Clipboard.Get()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(payload.Text()), nil
}

func (s *Server) handleClipboardWrite(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.provider.Clipboard == nil {
		return mcp.NewToolResultError("clipboard not available on this platform"), nil
	}
	text := script.StringParam(request.GetArguments(), "text", "")

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if err := s.provider.Clipboard.Set(model.TextPayload(text)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("ok\n"), nil
}
