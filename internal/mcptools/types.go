package mcptools

// FilterInput is the input schema for the filter_businesses MCP tool.
type FilterInput struct {
	SearchText    string   `json:"search_text,omitempty" jsonschema-description:"Text the business name must contain (case-insensitive)"`
	Categories    []string `json:"categories,omitempty" jsonschema-description:"Business category values; a business matches if it has any of them"`
	Counties      []string `json:"counties,omitempty" jsonschema-description:"County values; a business matches if it is in any of them"`
	AllCategories bool     `json:"all_categories,omitempty" jsonschema-description:"Select every category option instead of the categories list"`
	AllCounties   bool     `json:"all_counties,omitempty" jsonschema-description:"Select every county option instead of the counties list"`
	Limit         int      `json:"limit,omitempty" jsonschema-description:"Maximum number of results to return"`
}

// FilterOutput is the output schema for the filter_businesses MCP tool.
type FilterOutput struct {
	Count      int              `json:"count"`
	Businesses []BusinessResult `json:"businesses"`
}

// BusinessResult is the common row format for business-related MCP tools.
type BusinessResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	County     string   `json:"county"`
	City       string   `json:"city,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
}

// FacetOptionsInput is the input schema for the list_facet_options MCP tool.
type FacetOptionsInput struct {
	Facet string `json:"facet,omitempty" jsonschema-description:"Restrict to one facet: category or county"`
}

// FacetOptionsOutput is the output schema for the list_facet_options MCP tool.
type FacetOptionsOutput struct {
	RecordTypeID string        `json:"record_type_id,omitempty"`
	Facets       []FacetResult `json:"facets"`
}

// FacetResult lists one facet's options, or the reason they could not be loaded.
type FacetResult struct {
	Facet   string        `json:"facet"`
	Field   string        `json:"field"`
	Options []OptionValue `json:"options"`
	Error   string        `json:"error,omitempty"`
}

// OptionValue is a selectable facet value.
type OptionValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GetBusinessInput is the input schema for the get_business MCP tool.
type GetBusinessInput struct {
	ID string `json:"id" jsonschema-description:"Record ID of the business"`
}

// GetBusinessOutput is the output schema for the get_business MCP tool.
type GetBusinessOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"categories"`
	County      string   `json:"county"`
	City        string   `json:"city,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link"`
	UpdatedAt   string   `json:"updated_at"`
}
