package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

// NewDirectoryMCPServer creates an in-memory MCP server exposing directory tools.
// Returns the server and a client transport for connecting to it.
func NewDirectoryMCPServer(dir directory.Directory, cfg finder.Config) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(dir, cfg)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered directory tools.
func CreateMCPServer(dir directory.Directory, cfg finder.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bizdirctl",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_businesses",
		Description: "Filter registered businesses by name text, business category and county",
	}, FilterHandler(dir, cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_facet_options",
		Description: "List the selectable business category and county values",
	}, FacetOptionsHandler(dir, cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_business",
		Description: "Get the full registration details of one business",
	}, GetBusinessHandler(dir, cfg))

	return server
}
