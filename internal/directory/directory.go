package directory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/utahvbr/bizdirctl/internal/record"
)

// Sentinel errors for directory operations.
var (
	ErrNotFound    = errors.New("record not found")
	ErrStorage     = errors.New("storage error")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("directory service unavailable")
)

// Query is the filter request sent to the query service. Empty selections
// place no constraint on the corresponding field.
type Query struct {
	SearchText string   `json:"searchKey" schema:"q,omitempty"`
	Categories []string `json:"filterBusinessCategories" schema:"category,omitempty"`
	Counties   []string `json:"filterCounties" schema:"county,omitempty"`
}

// PicklistRequest identifies the option list for one field, optionally
// narrowed to a record type.
type PicklistRequest struct {
	Field        string
	RecordTypeID string
}

// PicklistValue is a single enumerated option as returned by the provider.
type PicklistValue struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Picklist is the ordered option list for a field.
type Picklist struct {
	Field        string          `json:"field" yaml:"field"`
	RecordTypeID string          `json:"recordTypeId" yaml:"record_type_id"`
	Values       []PicklistValue `json:"values" yaml:"values"`
}

// RecordTypeInfo describes one record type of an object.
type RecordTypeInfo struct {
	RecordTypeID string `json:"recordTypeId" yaml:"record_type_id"`
	Name         string `json:"name" yaml:"name"`
	Available    bool   `json:"available" yaml:"available"`
	Master       bool   `json:"master" yaml:"master"`
}

// ObjectInfo is the object metadata used to resolve record-type qualifiers.
type ObjectInfo struct {
	APIName             string                    `json:"apiName" yaml:"api_name"`
	DefaultRecordTypeID string                    `json:"defaultRecordTypeId" yaml:"default_record_type_id"`
	RecordTypeInfos     map[string]RecordTypeInfo `json:"recordTypeInfos" yaml:"record_type_infos"`
}

// QueryService runs filter queries against the directory.
type QueryService interface {
	FilterRecords(ctx context.Context, q Query) ([]record.Summary, error)
}

// MetadataProvider returns picklist option lists.
type MetadataProvider interface {
	PicklistValues(ctx context.Context, req PicklistRequest) (Picklist, error)
}

// ObjectInfoProvider returns object metadata.
type ObjectInfoProvider interface {
	ObjectInfo(ctx context.Context, objectAPIName string) (ObjectInfo, error)
}

// RecordResolver loads a single record for its detail page.
type RecordResolver interface {
	GetRecord(ctx context.Context, id string) (record.Record, error)
}

// Directory is everything the finder consumes from a backend.
type Directory interface {
	QueryService
	MetadataProvider
	ObjectInfoProvider
	RecordResolver
	Close() error
}

// Store is a local, writable directory backend.
type Store interface {
	Directory

	CreateRecord(r record.Record) error
	PutObjectInfo(info ObjectInfo) error
	PutPicklist(p Picklist) error
}

// ResolveRecordTypeID returns the ID of the record type whose name matches.
func ResolveRecordTypeID(info ObjectInfo, name string) (string, bool) {
	for id, rti := range info.RecordTypeInfos {
		if rti.Name == name {
			if rti.RecordTypeID != "" {
				return rti.RecordTypeID, true
			}
			return id, true
		}
	}
	return "", false
}

// Normalize returns a copy of q with trimmed search text and non-nil
// selections.
func (q Query) Normalize() Query {
	out := Query{
		SearchText: strings.TrimSpace(q.SearchText),
		Categories: append([]string{}, q.Categories...),
		Counties:   append([]string{}, q.Counties...),
	}
	return out
}

// Matches applies the directory's filter semantics to a single record:
// case-insensitive name/description substring match, any-of category match
// and county membership.
func (q Query) Matches(r record.Record) bool {
	if text := strings.ToLower(strings.TrimSpace(q.SearchText)); text != "" {
		if !strings.Contains(strings.ToLower(r.Name), text) &&
			!strings.Contains(strings.ToLower(r.Description), text) {
			return false
		}
	}
	if len(q.Categories) > 0 {
		found := false
		for _, c := range q.Categories {
			if r.HasCategory(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(q.Counties) > 0 {
		found := false
		for _, c := range q.Counties {
			if r.County == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// messager is implemented by errors that carry a user-facing message.
type messager interface {
	UserMessage() string
}

// FailureMessage extracts the user-facing message from a failure.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var m messager
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}

// SortSummaries orders records the way every backend returns them: by
// case-folded name, then ID.
func SortSummaries(rs []record.Summary) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := strings.ToLower(rs[i].Name), strings.ToLower(rs[j].Name)
		if a != b {
			return a < b
		}
		return rs[i].ID < rs[j].ID
	})
}

// PicklistKey identifies a picklist within a local backend.
func PicklistKey(recordTypeID, field string) string {
	return recordTypeID + "/" + field
}
