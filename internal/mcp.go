package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the summarize pipeline as MCP tools
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		appName+"-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("summarize_video",
		mcp.WithDescription("Download a video's audio, transcribe it with OpenAI Whisper and summarize the transcript (PAID). Transcripts above the configured token limit are not summarized."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
	), s.handleSummarize)

	s.mcpServer.AddTool(mcp.NewTool("transcribe_video",
		mcp.WithDescription("Download a video's audio and transcribe it with OpenAI Whisper (PAID)."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
	), s.handleTranscribe)

	s.mcpServer.AddTool(mcp.NewTool("count_tokens",
		mcp.WithDescription("Count the model tokens of a text with the configured model's tokenizer (FREE)."),
		mcp.WithString("text",
			mcp.Description("Text to count"),
			mcp.Required(),
		),
	), s.handleCountTokens)
}

func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arg, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	result, err := s.app.Run(ctx, ParseArg(arg))
	if err != nil {
		return mcp.NewToolResultErrorFromErr(MsgFetchFailed, err), nil
	}

	var buf strings.Builder
	if result.Title != "" {
		fmt.Fprintf(&buf, "Title: %s\n", result.Title)
	}
	fmt.Fprintf(&buf, "Tokens: %s\n\n", result.Tokens())
	buf.WriteString(result.Summary)

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *MCPServer) handleTranscribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arg, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	transcript, err := s.app.Transcript(ctx, ParseArg(arg))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to transcribe video", err), nil
	}

	return mcp.NewToolResultText(transcript), nil
}

func (s *MCPServer) handleCountTokens(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required and must be a string"), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%d", s.app.CountTokens(text))), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	}

	return server.ServeStdio(s.mcpServer)
}
