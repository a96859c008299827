package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

const maxDescriptionLen = 2000

// GetBusinessHandler returns the handler function for the get_business MCP tool.
func GetBusinessHandler(dir directory.Directory, cfg finder.Config) func(ctx context.Context, req *mcp.CallToolRequest, input GetBusinessInput) (*mcp.CallToolResult, GetBusinessOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetBusinessInput) (*mcp.CallToolResult, GetBusinessOutput, error) {
		r, err := dir.GetRecord(ctx, input.ID)
		if err != nil {
			return nil, GetBusinessOutput{}, err
		}

		h := finder.NewHeadless(cfg, dir)
		h.OpenRecord(r.ID)
		target, _ := h.LastTarget()

		row := toResult(r.Summary)
		return nil, GetBusinessOutput{
			ID:          row.ID,
			Name:        row.Name,
			Categories:  row.Categories,
			County:      row.County,
			City:        row.City,
			Phone:       row.Phone,
			Website:     row.Website,
			Email:       r.Email,
			Address:     r.Address,
			Contact:     r.Contact,
			Description: truncate(r.Description, maxDescriptionLen),
			Link:        link(target),
			UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
		}, nil
	}
}
