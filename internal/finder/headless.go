package finder

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"golang.org/x/sync/errgroup"
)

// Headless drives a Component without a Bubble Tea program. It is used by the
// command-line and MCP surfaces, which apply a filter and read the result
// once the component has settled.
type Headless struct {
	*Component

	mu     sync.Mutex
	notes  []Notification
	target *Target
}

// NewHeadless wires a component to dir and captures its notifications and
// navigation requests.
func NewHeadless(cfg Config, dir directory.Directory) *Headless {
	h := &Headless{}
	h.Component = New(cfg, Deps{
		Query:     dir,
		Metadata:  dir,
		Objects:   dir,
		Navigator: NavigatorFunc(h.navigate),
		Notifier:  NotifierFunc(h.notify),
	})
	return h
}

func (h *Headless) notify(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notes = append(h.notes, n)
}

func (h *Headless) navigate(t Target) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.target = &t
}

// Run executes cmd and every command that follows from it until the
// component is idle. Commands issued together run concurrently; their
// messages are delivered to Update one at a time, in issue order.
func (h *Headless) Run(ctx context.Context, cmd tea.Cmd) error {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgs := make([]tea.Msg, len(pending))
		g, _ := errgroup.WithContext(ctx)
		for i, c := range pending {
			if c == nil {
				continue
			}
			g.Go(func() error {
				msgs[i] = c()
				return nil
			})
		}
		_ = g.Wait()

		pending = nil
		for _, msg := range msgs {
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				pending = append(pending, msg...)
			default:
				if next := h.Update(msg); next != nil {
					pending = append(pending, next)
				}
			}
		}
	}
	return nil
}

// Start runs Init to completion.
func (h *Headless) Start(ctx context.Context) error {
	return h.Run(ctx, h.Init())
}

// Notifications returns the notifications raised so far.
func (h *Headless) Notifications() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.notes))
	copy(out, h.notes)
	return out
}

// TakeNotifications returns and clears the notifications raised so far.
func (h *Headless) TakeNotifications() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.notes
	h.notes = nil
	return out
}

// LastTarget returns the most recent navigation request.
func (h *Headless) LastTarget() (Target, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.target == nil {
		return Target{}, false
	}
	return *h.target, true
}

// Request is a filter applied in one go. The All flags take precedence over
// the explicit value lists.
type Request struct {
	SearchText    string
	Categories    []string
	Counties      []string
	AllCategories bool
	AllCounties   bool
}

// Apply starts the component if needed and pushes each non-empty part of
// req through the matching mutation. It fails with the query error when the
// last query did not produce the displayed results.
func (h *Headless) Apply(ctx context.Context, req Request) error {
	if !h.Initialized() {
		if err := h.Start(ctx); err != nil {
			return err
		}
	}

	var steps []tea.Cmd
	if req.SearchText != "" {
		steps = append(steps, h.SetSearchText(req.SearchText))
	}
	switch {
	case req.AllCategories:
		steps = append(steps, h.SelectAllCategories())
	case len(req.Categories) > 0:
		steps = append(steps, h.SetCategories(req.Categories))
	}
	switch {
	case req.AllCounties:
		steps = append(steps, h.SelectAllCounties())
	case len(req.Counties) > 0:
		steps = append(steps, h.SetCounties(req.Counties))
	}
	if err := h.Run(ctx, tea.Batch(steps...)); err != nil {
		return err
	}

	if h.Current() {
		return nil
	}
	if h.lastErr != nil {
		return h.lastErr
	}
	return errors.New(TitleQueryFailed)
}
