package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/replay-cli/internal/engine"
	"github.com/mj1618/replay-cli/internal/platform"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server exposing playback tools.
type mcpServer struct {
	mcp *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// PreviewResult is the response of the preview tool: the parsed script
// rendered back in canonical form with resolved timestamps.
type PreviewResult struct {
	OK     bool     `yaml:"ok"              json:"ok"`
	Script string   `yaml:"script"          json:"script"`
	Groups int      `yaml:"groups"          json:"groups"`
	Lines  []string `yaml:"lines,omitempty" json:"lines,omitempty"`
}

// newMCPServer creates and configures an MCP server with the replay tools.
func newMCPServer() *mcpServer {
	s := &mcpServer{}
	s.mcp = mcpserver.NewMCPServer(
		"replay-cli",
		"1.0.0",
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
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

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("play",
			mcp.WithDescription("Play a .replay input-automation script. Actions fire at their scripted millisecond offsets; the call returns when every action, including glided pointer moves, has completed."),
			mcp.WithString("path", mcp.Description("Path to the .replay script file"), mcp.Required()),
			mcp.WithBoolean("dry_run", mcp.Description("Describe actions instead of sending input events")),
			mcp.WithBoolean("verbose", mcp.Description("Include a per-action log in the response")),
		),
		s.handlePlay,
	)

	s.mcp.AddTool(
		mcp.NewTool("preview",
			mcp.WithDescription("Parse a .replay script and return its instruction groups with resolved timestamps, without executing anything."),
			mcp.WithString("path", mcp.Description("Path to the .replay script file"), mcp.Required()),
		),
		s.handlePreview,
	)
}

func (s *mcpServer) handlePlay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	dryRun := boolParam(params, "dry_run", false)
	verbose := boolParam(params, "verbose", false)

	queue, err := loadScript(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sink platform.Sink = platform.Discard{}
	if !dryRun {
		sink, err = platform.NewSink()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to initialize input injection: %v", err)), nil
		}
	}

	// Log lines are captured into the response; stdout belongs to the
	// stdio transport.
	var log bytes.Buffer
	eng := engine.New(sink, engine.Options{
		Execute: !dryRun,
		Log:     dryRun || verbose,
	})
	eng.SetOutput(&log)
	res := eng.Run(queue)

	result := PlayResult{
		OK:      len(res.Faults) == 0,
		Script:  path,
		DryRun:  dryRun,
		Groups:  res.Groups,
		Actions: res.Actions,
		Glides:  res.Glides,
		Elapsed: res.Elapsed.Round(time.Millisecond).String(),
		Faults:  res.Faults,
	}
	b, err := yaml.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := string(b)
	if log.Len() > 0 {
		text += "log: |\n" + indentLog(log.String())
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) handlePreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")

	queue, err := loadScript(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines := make([]string, len(queue))
	for i, g := range queue {
		lines[i] = g.String()
	}
	b, err := yaml.Marshal(PreviewResult{
		OK:     true,
		Script: path,
		Groups: len(queue),
		Lines:  lines,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func indentLog(s string) string {
	var b bytes.Buffer
	for _, line := range bytes.Split([]byte(s), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		b.WriteString("  ")
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Parameter extraction helpers for tool argument maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
