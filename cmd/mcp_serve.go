package cmd

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/mcptools"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes directory tools
over stdio transport. This allows MCP clients like Claude Desktop to search
the business directory.

Available tools:
  - filter_businesses: Filter by name text, business category and county
  - list_facet_options: List the selectable category and county values
  - get_business: Full registration details of one business

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "bizdirctl": {
        "command": "/path/to/bizdirctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Directory is already initialized in PersistentPreRunE
	if dir == nil {
		return cmd.Help()
	}

	fcfg, err := finderConfig(appConfig)
	if err != nil {
		return err
	}
	server := mcptools.CreateMCPServer(dir, fcfg)

	// stdout is reserved for the MCP protocol; logs go to stderr or the log file
	slog.Info("starting bizdirctl MCP server (stdio transport)",
		slog.String("backend", appConfig.Backend),
		slog.String("data_dir", appConfig.DataDir),
	)

	// This blocks until the transport is closed
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
