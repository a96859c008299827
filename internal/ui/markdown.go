package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/utahvbr/bizdirctl/internal/record"
)

type rendererKey struct {
	width int
	style string
}

// renderers caches one glamour renderer per width/style pair.
var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width: width, style: style}

	renderersMu.Lock()
	defer renderersMu.Unlock()

	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// RenderMarkdown renders Markdown for the terminal using the given glamour
// style. The content is returned unchanged if rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RecordMarkdown builds the Markdown document shown on a record's detail page.
func RecordMarkdown(r record.Record, categoryLabel func(string) string) string {
	if categoryLabel == nil {
		categoryLabel = func(v string) string { return v }
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)

	if len(r.Categories) > 0 {
		labels := make([]string, len(r.Categories))
		for i, c := range r.Categories {
			labels[i] = categoryLabel(c)
		}
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(labels, " · "))
	}

	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}

	b.WriteString("## Contact\n\n")
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", label, value)
		}
	}
	row("County", strings.ReplaceAll(r.County, "_", " "))
	row("City", r.City)
	row("Address", r.Address)
	row("Contact", r.Contact)
	row("Phone", r.Phone)
	row("Email", r.Email)
	row("Website", r.Website)

	if !r.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "\nRegistered %s, last updated %s.\n",
			r.CreatedAt.Local().Format("2006-01-02"),
			r.UpdatedAt.Local().Format("2006-01-02"))
	}

	return b.String()
}
