package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// ObjectAPIName is the object type every directory record belongs to.
const ObjectAPIName = "Account"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9]{12,18}$`)

// Summary is the row shape returned by the query service.
type Summary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	County     string   `json:"county"`
	City       string   `json:"city,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Email      string   `json:"email,omitempty"`
	Website    string   `json:"website,omitempty"`
}

// Record is a full business registration as shown on its detail page.
type Record struct {
	Summary
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewID generates a new nanoid for a record.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID looks like a record identifier. Both local
// nanoids and 15/18 character remote identifiers are accepted.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid record ID: %q (must be 12-18 alphanumeric characters)", id)
	}
	return nil
}

// ValidateName checks whether a business name is non-empty.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("business name must not be empty")
	}
	return nil
}

// HasCategory reports whether the record is tagged with the given category value.
func (s Summary) HasCategory(value string) bool {
	for _, c := range s.Categories {
		if c == value {
			return true
		}
	}
	return false
}

// Preview returns a truncated single-line preview of the description.
func (r *Record) Preview(maxLen int) string {
	content := strings.ReplaceAll(r.Description, "\n", " ")
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen-3] + "..."
}
