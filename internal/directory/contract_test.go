package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/directory/markdown"
	"github.com/utahvbr/bizdirctl/internal/directory/sqlite"
	"github.com/utahvbr/bizdirctl/internal/record"
)

type storeFactory func(t *testing.T) directory.Store

func markdownFactory(t *testing.T) directory.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating markdown store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) directory.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := sqlite.New(dir)
	if err != nil {
		t.Fatalf("creating sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeRecord(t *testing.T, name, county string, categories ...string) record.Record {
	t.Helper()
	id, err := record.NewID()
	if err != nil {
		t.Fatalf("generating ID: %v", err)
	}
	if categories == nil {
		categories = []string{}
	}
	now := time.Now().UTC().Truncate(time.Second)
	return record.Record{
		Summary: record.Summary{
			ID:         id,
			Name:       name,
			Categories: categories,
			County:     county,
			City:       "Provo",
		},
		Description: "A business called " + name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func mustCreate(t *testing.T, s directory.Store, rs ...record.Record) {
	t.Helper()
	for _, r := range rs {
		if err := s.CreateRecord(r); err != nil {
			t.Fatalf("CreateRecord %s: %v", r.Name, err)
		}
	}
}

func names(rs []record.Summary) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func runContractTests(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name, func(t *testing.T) {
		t.Run("Create and Get", func(t *testing.T) {
			s := factory(t)
			r := makeRecord(t, "Wasatch Hardware", "Utah", "Retail", "Construction")
			r.Phone = "801-555-0100"
			mustCreate(t, s, r)

			got, err := s.GetRecord(ctx, r.ID)
			if err != nil {
				t.Fatalf("GetRecord: %v", err)
			}
			if got.Name != r.Name {
				t.Errorf("name = %q, want %q", got.Name, r.Name)
			}
			if !equalStrings(got.Categories, r.Categories) {
				t.Errorf("categories = %v, want %v", got.Categories, r.Categories)
			}
			if got.Phone != r.Phone {
				t.Errorf("phone = %q, want %q", got.Phone, r.Phone)
			}
			if got.Description != r.Description {
				t.Errorf("description = %q, want %q", got.Description, r.Description)
			}
			if !got.CreatedAt.Equal(r.CreatedAt) {
				t.Errorf("created_at = %v, want %v", got.CreatedAt, r.CreatedAt)
			}
		})

		t.Run("Create empty name", func(t *testing.T) {
			s := factory(t)
			r := makeRecord(t, "   ", "Utah")
			err := s.CreateRecord(r)
			if !errors.Is(err, directory.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})

		t.Run("Create invalid ID", func(t *testing.T) {
			s := factory(t)
			r := makeRecord(t, "Bad ID Co", "Utah")
			r.ID = "short"
			err := s.CreateRecord(r)
			if !errors.Is(err, directory.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})

		t.Run("Get not found", func(t *testing.T) {
			s := factory(t)
			_, err := s.GetRecord(ctx, "nonexist0000")
			if !errors.Is(err, directory.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Filter empty", func(t *testing.T) {
			s := factory(t)
			got, err := s.FilterRecords(ctx, directory.Query{})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil result, got %v", got)
			}
		})

		t.Run("Filter order", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "zion outfitters", "Washington"),
				makeRecord(t, "Alpine Bakery", "Utah"),
				makeRecord(t, "Moab Rafting", "Grand"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			want := []string{"Alpine Bakery", "Moab Rafting", "zion outfitters"}
			if !equalStrings(names(got), want) {
				t.Errorf("order = %v, want %v", names(got), want)
			}
		})

		t.Run("Filter search text", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "Alpine Bakery", "Utah"),
				makeRecord(t, "Moab Rafting", "Grand"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{SearchText: "  BAKERY "})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			if !equalStrings(names(got), []string{"Alpine Bakery"}) {
				t.Errorf("got %v", names(got))
			}
		})

		t.Run("Filter search text is literal", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "100% Juice", "Utah"),
				makeRecord(t, "Juice Bar", "Utah"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{SearchText: "100%"})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			if !equalStrings(names(got), []string{"100% Juice"}) {
				t.Errorf("got %v", names(got))
			}
		})

		t.Run("Filter categories any-of", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "A Retail", "Utah", "Retail"),
				makeRecord(t, "B Builder", "Utah", "Construction"),
				makeRecord(t, "C Consult", "Utah", "Professional_Services"),
				makeRecord(t, "D Both", "Utah", "Retail", "Construction"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{Categories: []string{"Retail", "Construction"}})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			want := []string{"A Retail", "B Builder", "D Both"}
			if !equalStrings(names(got), want) {
				t.Errorf("got %v, want %v", names(got), want)
			}
		})

		t.Run("Filter counties", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "A", "Utah", "Retail"),
				makeRecord(t, "B", "Salt_Lake", "Retail"),
				makeRecord(t, "C", "Cache", "Retail"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{Counties: []string{"Utah", "Cache"}})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			if !equalStrings(names(got), []string{"A", "C"}) {
				t.Errorf("got %v", names(got))
			}
		})

		t.Run("Filter combined", func(t *testing.T) {
			s := factory(t)
			mustCreate(t, s,
				makeRecord(t, "Provo Retail", "Utah", "Retail"),
				makeRecord(t, "Provo Builder", "Utah", "Construction"),
				makeRecord(t, "Ogden Retail", "Weber", "Retail"),
			)
			got, err := s.FilterRecords(ctx, directory.Query{
				SearchText: "retail",
				Categories: []string{"Retail"},
				Counties:   []string{"Utah"},
			})
			if err != nil {
				t.Fatalf("FilterRecords: %v", err)
			}
			if !equalStrings(names(got), []string{"Provo Retail"}) {
				t.Errorf("got %v", names(got))
			}
		})

		t.Run("Object info round trip", func(t *testing.T) {
			s := factory(t)
			info := directory.ObjectInfo{
				APIName:             "Account",
				DefaultRecordTypeID: "012000000000000AAA",
				RecordTypeInfos: map[string]directory.RecordTypeInfo{
					"012000000000000AAA": {RecordTypeID: "012000000000000AAA", Name: "Master", Available: true, Master: true},
					"0125f000000BizRAA":  {RecordTypeID: "0125f000000BizRAA", Name: "Business Registration", Available: true},
				},
			}
			if err := s.PutObjectInfo(info); err != nil {
				t.Fatalf("PutObjectInfo: %v", err)
			}
			got, err := s.ObjectInfo(ctx, "Account")
			if err != nil {
				t.Fatalf("ObjectInfo: %v", err)
			}
			if got.DefaultRecordTypeID != info.DefaultRecordTypeID {
				t.Errorf("default = %q, want %q", got.DefaultRecordTypeID, info.DefaultRecordTypeID)
			}
			id, ok := directory.ResolveRecordTypeID(got, "Business Registration")
			if !ok || id != "0125f000000BizRAA" {
				t.Errorf("resolved = %q, %v", id, ok)
			}
			if !got.RecordTypeInfos["012000000000000AAA"].Master {
				t.Error("expected master record type to keep its flag")
			}
		})

		t.Run("Object info not found", func(t *testing.T) {
			s := factory(t)
			_, err := s.ObjectInfo(ctx, "Contact")
			if !errors.Is(err, directory.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Picklist preserves order", func(t *testing.T) {
			s := factory(t)
			p := directory.Picklist{
				Field:        "COUNTY__c",
				RecordTypeID: "0125f000000BizRAA",
				Values: []directory.PicklistValue{
					{Label: "Utah", Value: "Utah"},
					{Label: "Beaver", Value: "Beaver"},
					{Label: "Salt Lake", Value: "Salt_Lake"},
				},
			}
			if err := s.PutPicklist(p); err != nil {
				t.Fatalf("PutPicklist: %v", err)
			}
			got, err := s.PicklistValues(ctx, directory.PicklistRequest{Field: "COUNTY__c", RecordTypeID: "0125f000000BizRAA"})
			if err != nil {
				t.Fatalf("PicklistValues: %v", err)
			}
			if len(got.Values) != 3 {
				t.Fatalf("expected 3 values, got %d", len(got.Values))
			}
			for i := range p.Values {
				if got.Values[i] != p.Values[i] {
					t.Errorf("value[%d] = %+v, want %+v", i, got.Values[i], p.Values[i])
				}
			}
		})

		t.Run("Picklist replace", func(t *testing.T) {
			s := factory(t)
			req := directory.PicklistRequest{Field: "Business_Category__c", RecordTypeID: "0125f000000BizRAA"}
			first := directory.Picklist{Field: req.Field, RecordTypeID: req.RecordTypeID, Values: []directory.PicklistValue{{Label: "Retail", Value: "Retail"}, {Label: "Mining", Value: "Mining"}}}
			second := directory.Picklist{Field: req.Field, RecordTypeID: req.RecordTypeID, Values: []directory.PicklistValue{{Label: "Retail", Value: "Retail"}}}
			if err := s.PutPicklist(first); err != nil {
				t.Fatalf("PutPicklist: %v", err)
			}
			if err := s.PutPicklist(second); err != nil {
				t.Fatalf("PutPicklist: %v", err)
			}
			got, err := s.PicklistValues(ctx, req)
			if err != nil {
				t.Fatalf("PicklistValues: %v", err)
			}
			if len(got.Values) != 1 {
				t.Errorf("expected 1 value after replace, got %d", len(got.Values))
			}
		})

		t.Run("Picklist scoped by record type", func(t *testing.T) {
			s := factory(t)
			p := directory.Picklist{Field: "COUNTY__c", RecordTypeID: "0125f000000BizRAA", Values: []directory.PicklistValue{{Label: "Utah", Value: "Utah"}}}
			if err := s.PutPicklist(p); err != nil {
				t.Fatalf("PutPicklist: %v", err)
			}
			_, err := s.PicklistValues(ctx, directory.PicklistRequest{Field: "COUNTY__c", RecordTypeID: "012000000000000AAA"})
			if !errors.Is(err, directory.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})
	})
}

func TestMarkdownContract(t *testing.T) {
	runContractTests(t, "markdown", markdownFactory)
}

func TestSQLiteContract(t *testing.T) {
	runContractTests(t, "sqlite", sqliteFactory)
}
