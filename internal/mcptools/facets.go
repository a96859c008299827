package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

// FacetOptionsHandler returns the handler function for the list_facet_options MCP tool.
func FacetOptionsHandler(dir directory.Directory, cfg finder.Config) func(ctx context.Context, req *mcp.CallToolRequest, input FacetOptionsInput) (*mcp.CallToolResult, FacetOptionsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FacetOptionsInput) (*mcp.CallToolResult, FacetOptionsOutput, error) {
		kinds := facet.Kinds
		if input.Facet != "" {
			k, err := facet.ParseKind(input.Facet)
			if err != nil {
				return nil, FacetOptionsOutput{}, err
			}
			kinds = []facet.Kind{k}
		}

		h := finder.NewHeadless(cfg, dir)
		if err := h.Run(ctx, h.LoadOptions()); err != nil {
			return nil, FacetOptionsOutput{}, err
		}

		failures := map[string]string{}
		for _, n := range h.Notifications() {
			failures[n.Title] = n.Message
		}
		if msg, ok := failures[finder.TitleRecordTypeFailed]; ok {
			return nil, FacetOptionsOutput{}, fmt.Errorf("%s: %s", finder.TitleRecordTypeFailed, msg)
		}

		out := FacetOptionsOutput{Facets: []FacetResult{}}
		out.RecordTypeID, _ = h.RecordTypeID()
		for _, k := range kinds {
			res := FacetResult{Facet: k.String(), Field: k.Field(), Options: []OptionValue{}}
			for _, o := range h.Options(k) {
				res.Options = append(res.Options, OptionValue{Label: o.Label, Value: o.Value})
			}
			if msg, ok := failures[k.LoadErrorTitle()]; ok {
				res.Error = msg
			}
			out.Facets = append(out.Facets, res)
		}
		return nil, out, nil
	}
}
