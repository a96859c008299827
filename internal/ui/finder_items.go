package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// resultItem implements list.Item for a record summary. The record ID rides
// along so selection never depends on rendered text.
type resultItem struct {
	summary       record.Summary
	categoryLabel string
}

func (r resultItem) Title() string { return r.summary.Name }

func (r resultItem) Description() string {
	parts := make([]string, 0, 3)
	if r.categoryLabel != "" {
		parts = append(parts, r.categoryLabel)
	}
	if r.summary.County != "" {
		parts = append(parts, strings.ReplaceAll(r.summary.County, "_", " ")+" County")
	}
	if r.summary.City != "" {
		parts = append(parts, r.summary.City)
	}
	return strings.Join(parts, " · ")
}

func (r resultItem) FilterValue() string { return r.summary.Name }

// optionItem implements list.Item for a facet option.
type optionItem struct {
	option   facet.Option
	selected bool
}

func (o optionItem) Title() string {
	marker := "○"
	if o.selected {
		marker = "●"
	}
	return fmt.Sprintf("%s %s", marker, o.option.Label)
}

func (o optionItem) Description() string { return o.option.Value }
func (o optionItem) FilterValue() string { return o.option.Label }

func resultItems(records []record.Summary, categories []facet.Option) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		labels := make([]string, len(r.Categories))
		for j, c := range r.Categories {
			labels[j] = facet.LabelFor(categories, c)
		}
		items[i] = resultItem{summary: r, categoryLabel: strings.Join(labels, ", ")}
	}
	return items
}

func optionItems(opts []facet.Option, isSelected func(string) bool) []list.Item {
	items := make([]list.Item, len(opts))
	for i, o := range opts {
		items[i] = optionItem{option: o, selected: isSelected(o.Value)}
	}
	return items
}
