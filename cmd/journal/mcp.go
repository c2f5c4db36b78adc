package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/app"
	"github.com/pkordes/travel-journal/backend/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the journal MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes trips, steps,
place search, share links and AI guidance as MCP tools via STDIO.

The server uses the same configuration and state store as the API server.

Example:
  journal mcp
  STORE_BACKEND=sqlite journal mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		srv := mcpserver.New(app.Version, a.Journal, a.Assistant, a.Places)
		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			return err
		}
		return nil
	},
}
