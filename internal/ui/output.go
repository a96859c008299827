package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatRecordList formats filter results as one line per business.
func FormatRecordList(w io.Writer, records []record.Summary) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No businesses match the current filters.")
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s  %-32s  %-14s  %s\n",
			r.ID,
			truncate(r.Name, 32),
			strings.ReplaceAll(r.County, "_", " "),
			strings.Join(r.Categories, ", "),
		)
	}
}

// FormatRecordIDs writes one record ID per line.
func FormatRecordIDs(w io.Writer, records []record.Summary) {
	for _, r := range records {
		fmt.Fprintln(w, r.ID)
	}
}

// FormatRecordFull formats a record's detail page with a metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatRecordFull(w io.Writer, r record.Record, markdownStyle string) {
	fmt.Fprintf(w, "Record: %s\n", r.ID)
	fmt.Fprintf(w, "Registered: %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Modified: %s\n", r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(w)

	// The pager re-wraps if the terminal is narrower.
	fmt.Fprintln(w, RenderMarkdown(RecordMarkdown(r, nil), 80, markdownStyle))
}

// FormatFacetOptions prints a facet's options, marking the selected values.
func FormatFacetOptions(w io.Writer, kind facet.Kind, opts []facet.Option, selected []string) {
	fmt.Fprintf(w, "%s (%d)\n", kind.Label(), len(opts))
	if len(opts) == 0 {
		fmt.Fprintln(w, "  (no options)")
		return
	}
	isSelected := make(map[string]bool, len(selected))
	for _, v := range selected {
		isSelected[v] = true
	}
	for _, o := range opts {
		marker := "○"
		if isSelected[o.Value] {
			marker = "●"
		}
		fmt.Fprintf(w, "  %s %-28s %s\n", marker, o.Label, o.Value)
	}
}

// FacetListing is the JSON representation of a facet's option list.
type FacetListing struct {
	Facet   string         `json:"facet"`
	Field   string         `json:"field"`
	Options []facet.Option `json:"options"`
	Error   string         `json:"error,omitempty"`
}

// SearchResult is the JSON representation of a filter query and its results.
type SearchResult struct {
	SearchText string           `json:"searchText"`
	Categories []string         `json:"selectedCategories"`
	Counties   []string         `json:"selectedCounties"`
	Count      int              `json:"count"`
	Records    []record.Summary `json:"records"`
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
