package finder

import "log/slog"

// Severity of a notification.
type Severity string

const SeverityError Severity = "error"

// Titles of the notifications raised by the component. The facet load
// titles come from facet.Kind.LoadErrorTitle.
const (
	TitleQueryFailed      = "Unable to apply filter"
	TitleRecordTypeFailed = "Error loading record type"
)

// Notification is a user-visible message.
type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// logNotifier is used when no sink is configured.
type logNotifier struct{}

func (logNotifier) Notify(n Notification) {
	slog.Error(n.Title, slog.String("message", n.Message))
}

func (c *Component) notifyError(title, message string) {
	c.deps.Notifier.Notify(Notification{Title: title, Message: message, Severity: SeverityError})
}
