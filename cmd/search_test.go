package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/record"
	"github.com/utahvbr/bizdirctl/internal/ui"
)

func searchJSON(t *testing.T, req finder.Request) ui.SearchResult {
	t.Helper()
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if err := runSearch(context.Background(), &buf, finder.Config{}, req, false); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	var res ui.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, buf.String())
	}
	return res
}

func TestSearchUnfilteredReturnsEverything(t *testing.T) {
	seededEnv(t, 25)

	res := searchJSON(t, finder.Request{})
	if res.Count != 25 || len(res.Records) != 25 {
		t.Fatalf("expected 25 records, got count=%d len=%d", res.Count, len(res.Records))
	}
	if res.Categories == nil || len(res.Categories) != 0 {
		t.Errorf("expected empty category selection, got %v", res.Categories)
	}

	names := make([]string, len(res.Records))
	for i, r := range res.Records {
		names[i] = strings.ToLower(r.Name)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("records not sorted by name: %v", names)
	}
}

func TestSearchByCounty(t *testing.T) {
	seededEnv(t, 40)

	res := searchJSON(t, finder.Request{Counties: []string{"Utah", "Davis"}})
	if res.Count == 0 {
		t.Fatal("expected some businesses in Utah or Davis county")
	}
	for _, r := range res.Records {
		if r.County != "Utah" && r.County != "Davis" {
			t.Errorf("%s is in %s", r.Name, r.County)
		}
	}
	if strings.Join(res.Counties, ",") != "Utah,Davis" {
		t.Errorf("unexpected county selection %v", res.Counties)
	}
}

func TestSearchAllCategoriesMatchesEveryCategorisedRecord(t *testing.T) {
	seededEnv(t, 20)

	res := searchJSON(t, finder.Request{AllCategories: true})
	if res.Count != 20 {
		t.Errorf("expected all 20 records, got %d", res.Count)
	}
	if len(res.Categories) != len(seedCategories) {
		t.Errorf("expected %d selected categories, got %d", len(seedCategories), len(res.Categories))
	}
}

func TestSearchTextIsCaseInsensitive(t *testing.T) {
	s := setupTestEnv(t)
	for _, r := range []record.Record{
		{Summary: record.Summary{ID: "beehive00001", Name: "Beehive Builders", County: "Utah"}},
		{Summary: record.Summary{ID: "canyon000001", Name: "Canyon Hardware", County: "Utah"}},
	} {
		if err := s.CreateRecord(r); err != nil {
			t.Fatalf("CreateRecord: %v", err)
		}
	}

	res := searchJSON(t, finder.Request{SearchText: "BEE"})
	if res.Count != 1 || res.Records[0].ID != "beehive00001" {
		t.Errorf("expected only Beehive Builders, got %+v", res.Records)
	}
}

func TestSearchIDOnly(t *testing.T) {
	seededEnv(t, 5)

	var buf bytes.Buffer
	if err := runSearch(context.Background(), &buf, finder.Config{}, finder.Request{}, true); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 IDs, got %d", len(lines))
	}
	for _, id := range lines {
		if err := record.ValidateID(id); err != nil {
			t.Errorf("bad ID line %q: %v", id, err)
		}
	}
}

func TestSearchTextOutput(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := runSearch(context.Background(), &buf, finder.Config{}, finder.Request{}, false); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	if !strings.Contains(buf.String(), "No businesses match") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

// failingDirectory wraps a store and fails every filter query.
type failingDirectory struct {
	directory.Directory
}

func (failingDirectory) FilterRecords(ctx context.Context, q directory.Query) ([]record.Summary, error) {
	return nil, errors.New("connection reset")
}

func TestSearchReportsQueryFailure(t *testing.T) {
	s := setupTestEnv(t)
	dir = failingDirectory{Directory: s}

	var buf bytes.Buffer
	err := runSearch(context.Background(), &buf, finder.Config{}, finder.Request{SearchText: "x"}, false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), finder.TitleQueryFailed) {
		t.Errorf("expected %q in %q", finder.TitleQueryFailed, err.Error())
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
