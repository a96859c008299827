package finder

import "github.com/utahvbr/bizdirctl/internal/record"

// Navigation target kinds and actions.
const (
	TargetRecordPage = "standard__recordPage"
	ActionView       = "view"
)

// Target describes a page to navigate to.
type Target struct {
	Kind          string `json:"type"`
	ObjectAPIName string `json:"objectApiName"`
	RecordID      string `json:"recordId"`
	Action        string `json:"actionName"`
}

// Navigator performs page transitions. NavigateTo is fire-and-forget.
type Navigator interface {
	NavigateTo(target Target)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(Target)

func (f NavigatorFunc) NavigateTo(t Target) { f(t) }

// RecordPage returns the detail page target for a record.
func RecordPage(recordID string) Target {
	return Target{
		Kind:          TargetRecordPage,
		ObjectAPIName: record.ObjectAPIName,
		RecordID:      recordID,
		Action:        ActionView,
	}
}

// OpenRecord asks the navigator to open the record's detail page.
func (c *Component) OpenRecord(recordID string) {
	t := RecordPage(recordID)
	t.ObjectAPIName = c.cfg.ObjectAPIName
	c.deps.Navigator.NavigateTo(t)
}
