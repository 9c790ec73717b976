package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing the summarizer as tools",
	Long: `Run a Model Context Protocol (MCP) server with three tools:
- summarize_video: transcribe and summarize a video (paid)
- transcribe_video: transcribe a video (paid)
- count_tokens: count model tokens of a text

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  ytsum mcp

  # Run MCP server with HTTP transport on port 8080
  ytsum mcp --transport=http --port=8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		if err := internal.ApplyOpenAIFlags(cmd, config); err != nil {
			return err
		}

		// stdout belongs to the protocol on stdio
		if transport != "http" {
			config.LogFile = true
			config.Quiet = true
		}

		app, log, closeLog, err := newApp()
		if err != nil {
			return err
		}
		defer closeLog()

		internal.InstallYtDlp(cmd.Context())

		log.Info().Str("transport", transport).Int("port", port).Msg("starting MCP server")
		return internal.NewMCPServer(app, version).Start(cmd.Context(), transport, port)
	},
}

func init() {
	internal.AddOpenAIFlags(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
