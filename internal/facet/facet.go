// Package facet describes the multi-select filter attributes of the
// directory and converts picklist metadata into ordered option lists.
package facet

import (
	"fmt"
	"strings"

	"github.com/utahvbr/bizdirctl/internal/directory"
)

// Picklist field identifiers on the record object.
const (
	FieldBusinessCategory = "Business_Category__c"
	FieldCounty           = "COUNTY__c"
)

// Kind identifies one of the two facets.
type Kind int

const (
	Category Kind = iota
	County
)

// Kinds lists every facet in display order.
var Kinds = []Kind{Category, County}

// Field returns the picklist field identifier backing the facet.
func (k Kind) Field() string {
	if k == County {
		return FieldCounty
	}
	return FieldBusinessCategory
}

// Label returns the human readable facet name.
func (k Kind) Label() string {
	if k == County {
		return "County"
	}
	return "Business Category"
}

// LoadErrorTitle is the notification title used when the facet's options
// fail to load.
func (k Kind) LoadErrorTitle() string {
	if k == County {
		return "Error loading county options"
	}
	return "Error loading business category options"
}

func (k Kind) String() string {
	if k == County {
		return "county"
	}
	return "category"
}

// ParseKind accepts a facet name ("category", "county") or its field
// identifier.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories", strings.ToLower(FieldBusinessCategory):
		return Category, nil
	case "county", "counties", strings.ToLower(FieldCounty):
		return County, nil
	}
	return Category, fmt.Errorf("%w: unknown facet %q (use category or county)", directory.ErrValidation, s)
}

// Option is one selectable facet value.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FromPicklist converts picklist values into options, preserving the order
// in which the provider returned them.
func FromPicklist(p directory.Picklist) []Option {
	opts := make([]Option, 0, len(p.Values))
	for _, v := range p.Values {
		opts = append(opts, Option{Label: v.Label, Value: v.Value})
	}
	return opts
}

// Values returns the option values in option order.
func Values(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

// LabelFor returns the label of the option with the given value, or the
// value itself when no option matches.
func LabelFor(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
