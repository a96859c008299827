package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// TitleRecordFailed is the toast title used when a detail page cannot load.
const TitleRecordFailed = "Error loading record"

const (
	defaultDetailCacheSize = 64
	detailTimeout          = 15 * time.Second
)

// detailCache keeps recently opened records keyed by ID.
type detailCache = lru.Cache[string, record.Record]

func newDetailCache(size int) *detailCache {
	if size <= 0 {
		size = defaultDetailCacheSize
	}
	c, err := lru.New[string, record.Record](size)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return c
}

type detailLoadedMsg struct {
	target finder.Target
	record record.Record
	err    error
}

// openTarget resolves a navigation target into the detail screen. Cached
// records render immediately; others are fetched through the resolver.
func (m *finderModel) openTarget(t finder.Target) tea.Cmd {
	if t.Kind != finder.TargetRecordPage || t.RecordID == "" {
		slog.Warn("unsupported navigation target",
			slog.String("type", t.Kind),
			slog.String("record_id", t.RecordID))
		return nil
	}

	m.screen = screenDetail
	m.detailTarget = t
	if r, ok := m.details.Get(t.RecordID); ok {
		m.showDetail(r)
		return nil
	}

	m.detailLoading = true
	m.detail.SetContent("")
	resolver := m.records
	return func() tea.Msg {
		if resolver == nil {
			return detailLoadedMsg{target: t, err: fmt.Errorf("%w: no record resolver", directory.ErrUnavailable)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()
		r, err := resolver.GetRecord(ctx, t.RecordID)
		return detailLoadedMsg{target: t, record: r, err: err}
	}
}

func (m *finderModel) handleDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Debug("record load failed",
			slog.String("record_id", msg.target.RecordID),
			slog.String("error", msg.err.Error()))
		if m.screen == screenDetail && m.detailTarget.RecordID == msg.target.RecordID {
			m.screen = screenResults
			m.detailLoading = false
		}
		return m.pushToast(finder.Notification{
			Title:    TitleRecordFailed,
			Message:  directory.FailureMessage(msg.err),
			Severity: finder.SeverityError,
		})
	}

	m.details.Add(msg.record.ID, msg.record)
	// A later navigation may have replaced the page; the record stays cached.
	if m.screen == screenDetail && m.detailTarget.RecordID == msg.target.RecordID {
		m.showDetail(msg.record)
	}
	return nil
}

func (m *finderModel) showDetail(r record.Record) {
	m.detailLoading = false
	m.detailRecord = r
	m.renderDetail()
	m.detail.GotoTop()
}

func (m *finderModel) renderDetail() {
	opts := m.comp.CategoryOptions()
	md := RecordMarkdown(m.detailRecord, func(v string) string {
		return facet.LabelFor(opts, v)
	})
	m.detail.SetContent(RenderMarkdown(md, m.contentWidth(), m.cfg.Theme.MarkdownStyle))
}

func (m finderModel) detailView(cw int) string {
	theme := m.cfg.Theme
	title := "Loading record..."
	if !m.detailLoading {
		title = m.detailRecord.Name
	}
	header := theme.HeaderStyle().Width(cw).Render(title)
	meta := theme.HelpStyle().Width(cw).Render(fmt.Sprintf("%s / %s / %s",
		m.detailTarget.ObjectAPIName, m.detailTarget.RecordID, m.detailTarget.Action))

	body := m.detail.View()
	if m.detailLoading {
		body = m.spinner.View() + " fetching " + m.detailTarget.RecordID
	}
	footer := theme.HelpStyle().Width(cw).Render("↑/↓ scroll • esc back • q quit")
	return strings.Join([]string{header, meta, "", theme.ViewPaneStyle().Width(cw).Render(body), footer}, "\n")
}
