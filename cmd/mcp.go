package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidx/tempo/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server exposes tools to inspect and control the timer and
communicates via stdio. The engine stays live for the lifetime of the
server, so phases complete and chain while it runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio. Press Ctrl+C to stop.")

		ctx := setupSignalHandler()

		server := mcp.NewServer(app.engine, app.settings)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
