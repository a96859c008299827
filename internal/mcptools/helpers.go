package mcptools

import (
	"fmt"

	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/record"
)

func toResult(s record.Summary) BusinessResult {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return BusinessResult{
		ID:         s.ID,
		Name:       s.Name,
		Categories: categories,
		County:     s.County,
		City:       s.City,
		Phone:      s.Phone,
		Website:    s.Website,
	}
}

// link renders a navigation target the way the detail page is addressed.
func link(t finder.Target) string {
	return fmt.Sprintf("/%s/%s/%s/%s", t.Kind, t.ObjectAPIName, t.RecordID, t.Action)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
