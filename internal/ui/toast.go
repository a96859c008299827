package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

// DefaultToastTTL is how long an error toast stays on screen.
const DefaultToastTTL = 6 * time.Second

// inbox collects notifications and navigation requests raised by the finder
// component while the model is handling a message. It is drained at the end
// of every Update.
type inbox struct {
	notes  []finder.Notification
	target *finder.Target
}

func (b *inbox) Notify(n finder.Notification) {
	b.notes = append(b.notes, n)
}

func (b *inbox) NavigateTo(t finder.Target) {
	b.target = &t
}

type toast struct {
	id   int
	note finder.Notification
}

type toastExpiredMsg struct {
	id int
}

// pushToast shows a notification and schedules its dismissal. With a
// non-positive TTL toasts stay until dismissed with a key.
func (m *finderModel) pushToast(n finder.Notification) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, note: n})

	// Keep the stack short; the oldest toast gives way.
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}

	if m.cfg.ToastTTL <= 0 {
		return nil
	}
	return tea.Tick(m.cfg.ToastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *finderModel) dismissToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

const maxToasts = 3

func (m finderModel) toastView(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}
	var out string
	for i, t := range m.toasts {
		title := m.cfg.Theme.DangerStyle().Bold(true).Render(t.note.Title)
		body := title
		if t.note.Message != "" {
			body += "\n" + t.note.Message
		}
		if i > 0 {
			out += "\n"
		}
		out += m.cfg.Theme.ToastStyle().Width(max(width-2, 10)).Render(body)
	}
	return out
}
