package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/record"
)

func TestFormatRecordList(t *testing.T) {
	var buf bytes.Buffer
	FormatRecordList(&buf, []record.Summary{
		{ID: "bakery000001", Name: "Alpine Bakery", County: "Salt_Lake", Categories: []string{"Retail", "Food"}},
		{ID: "builder00001", Name: "Beehive Builders and General Contracting of Northern Utah", County: "Utah"},
	})
	out := buf.String()

	if !strings.Contains(out, "bakery000001  Alpine Bakery") {
		t.Errorf("missing first row:\n%s", out)
	}
	if !strings.Contains(out, "Salt Lake") {
		t.Errorf("expected county label with spaces:\n%s", out)
	}
	if !strings.Contains(out, "Retail, Food") {
		t.Errorf("expected joined categories:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("expected long name to be truncated:\n%s", out)
	}
}

func TestFormatRecordListEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatRecordList(&buf, nil)
	if !strings.Contains(buf.String(), "No businesses") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatRecordIDs(t *testing.T) {
	var buf bytes.Buffer
	FormatRecordIDs(&buf, []record.Summary{{ID: "a00000000001"}, {ID: "b00000000002"}})
	if buf.String() != "a00000000001\nb00000000002\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatRecordFull(t *testing.T) {
	now := time.Now()
	var buf bytes.Buffer
	FormatRecordFull(&buf, record.Record{
		Summary:     record.Summary{ID: "bakery000001", Name: "Alpine Bakery"},
		Description: "Fresh sourdough.",
		CreatedAt:   now,
		UpdatedAt:   now,
	}, "notty")
	out := stripANSI(buf.String())

	if !strings.HasPrefix(out, "Record: bakery000001\n") {
		t.Errorf("expected record header, got:\n%s", out)
	}
	if !strings.Contains(out, "Alpine Bakery") || !strings.Contains(out, "Fresh sourdough.") {
		t.Errorf("expected rendered body, got:\n%s", out)
	}
}

func TestFormatFacetOptions(t *testing.T) {
	var buf bytes.Buffer
	FormatFacetOptions(&buf, facet.County, []facet.Option{
		{Label: "Salt Lake", Value: "Salt_Lake"},
		{Label: "Utah", Value: "Utah"},
	}, []string{"Utah"})
	out := buf.String()

	if !strings.HasPrefix(out, "County (2)\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "○ Salt Lake") || !strings.Contains(out, "● Utah") {
		t.Errorf("expected selection markers:\n%s", out)
	}
}

func TestFormatJSONSearchResult(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON(&buf, SearchResult{
		Categories: []string{},
		Counties:   []string{"Utah"},
		Records:    []record.Summary{},
	})
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["searchText"] != "" {
		t.Errorf("expected empty searchText, got %v", got["searchText"])
	}
	if _, ok := got["selectedCategories"].([]any); !ok {
		t.Errorf("expected selectedCategories to be an array, got %T", got["selectedCategories"])
	}
}
