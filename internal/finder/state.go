package finder

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/facet"
)

// FilterState is the set of filter inputs the next query is built from.
type FilterState struct {
	SearchText string   `json:"searchText"`
	Categories []string `json:"selectedCategories"`
	Counties   []string `json:"selectedCounties"`
}

func newFilterState() FilterState {
	return FilterState{Categories: []string{}, Counties: []string{}}
}

func (s FilterState) clone() FilterState {
	return FilterState{
		SearchText: s.SearchText,
		Categories: cloneValues(s.Categories),
		Counties:   cloneValues(s.Counties),
	}
}

// cloneValues copies a selection; the result is never nil.
func cloneValues(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// State returns a copy of the current filter state.
func (c *Component) State() FilterState { return c.state.clone() }

// SearchText returns the current search text.
func (c *Component) SearchText() string { return c.state.SearchText }

// Categories returns a copy of the selected category values.
func (c *Component) Categories() []string { return cloneValues(c.state.Categories) }

// Counties returns a copy of the selected county values.
func (c *Component) Counties() []string { return cloneValues(c.state.Counties) }

// Selection returns a copy of the selected values of a facet.
func (c *Component) Selection(kind facet.Kind) []string {
	return cloneValues(*c.selection(kind))
}

// Selected reports whether value is part of a facet's selection.
func (c *Component) Selected(kind facet.Kind, value string) bool {
	for _, v := range *c.selection(kind) {
		if v == value {
			return true
		}
	}
	return false
}

func (c *Component) selection(kind facet.Kind) *[]string {
	if kind == facet.County {
		return &c.state.Counties
	}
	return &c.state.Categories
}

// SetSearchText replaces the search text and re-queries. Any string,
// including the empty string, is accepted.
func (c *Component) SetSearchText(text string) tea.Cmd {
	c.state.SearchText = text
	return c.dispatchQuery()
}

// SetCategories replaces the category selection and re-queries.
func (c *Component) SetCategories(values []string) tea.Cmd {
	return c.SetSelection(facet.Category, values)
}

// SetCounties replaces the county selection and re-queries.
func (c *Component) SetCounties(values []string) tea.Cmd {
	return c.SetSelection(facet.County, values)
}

// SelectAllCategories selects every loaded category option and re-queries.
func (c *Component) SelectAllCategories() tea.Cmd { return c.SelectAll(facet.Category) }

// SelectAllCounties selects every loaded county option and re-queries.
func (c *Component) SelectAllCounties() tea.Cmd { return c.SelectAll(facet.County) }

// ClearCategories empties the category selection and re-queries.
func (c *Component) ClearCategories() tea.Cmd { return c.Clear(facet.Category) }

// ClearCounties empties the county selection and re-queries.
func (c *Component) ClearCounties() tea.Cmd { return c.Clear(facet.County) }

// SetSelection replaces a facet's selection and re-queries.
func (c *Component) SetSelection(kind facet.Kind, values []string) tea.Cmd {
	*c.selection(kind) = cloneValues(values)
	return c.dispatchQuery()
}

// SelectAll sets a facet's selection to every value in its option list, in
// option order, and re-queries. With no options loaded the selection becomes
// empty.
func (c *Component) SelectAll(kind facet.Kind) tea.Cmd {
	*c.selection(kind) = facet.Values(c.facets[kind].options)
	return c.dispatchQuery()
}

// Clear empties a facet's selection and re-queries.
func (c *Component) Clear(kind facet.Kind) tea.Cmd {
	*c.selection(kind) = []string{}
	return c.dispatchQuery()
}

// Toggle adds value to a facet's selection, or removes it if present, and
// re-queries.
func (c *Component) Toggle(kind facet.Kind, value string) tea.Cmd {
	sel := c.selection(kind)
	next := make([]string, 0, len(*sel)+1)
	removed := false
	for _, v := range *sel {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}
	*sel = next
	return c.dispatchQuery()
}

// Refresh re-queries with the current filters unchanged.
func (c *Component) Refresh() tea.Cmd {
	return c.dispatchQuery()
}
