package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

// FilterHandler returns the handler function for the filter_businesses MCP tool.
func FilterHandler(dir directory.Directory, cfg finder.Config) func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
		h := finder.NewHeadless(cfg, dir)
		err := h.Apply(ctx, finder.Request{
			SearchText:    input.SearchText,
			Categories:    input.Categories,
			Counties:      input.Counties,
			AllCategories: input.AllCategories,
			AllCounties:   input.AllCounties,
		})
		if err != nil {
			return nil, FilterOutput{}, err
		}

		records := h.Results()
		out := FilterOutput{Count: len(records), Businesses: []BusinessResult{}}
		if input.Limit > 0 && len(records) > input.Limit {
			records = records[:input.Limit]
		}
		for _, s := range records {
			out.Businesses = append(out.Businesses, toResult(s))
		}
		return nil, out, nil
	}
}
