package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// finderScreen represents the current screen state.
type finderScreen int

const (
	screenResults finderScreen = iota
	screenFacet
	screenDetail
)

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth        int           // maximum content width (0 = no limit)
	Theme           Theme         // resolved theme
	DetailCacheSize int           // recently opened records kept in memory
	ToastTTL        time.Duration // 0 keeps toasts until dismissed
}

type finderModel struct {
	cfg     TUIConfig
	comp    *finder.Component
	records directory.RecordResolver
	inbox   *inbox
	details *detailCache

	screen finderScreen

	// Results screen
	search       textinput.Model
	searching    bool
	results      list.Model
	shownVersion uint64
	spinner      spinner.Model

	// Facet picker
	facetKind facet.Kind
	facetList list.Model

	// Detail page
	detail        viewport.Model
	detailTarget  finder.Target
	detailRecord  record.Record
	detailLoading bool

	toasts      []toast
	nextToastID int
	helpActive  bool

	width  int
	height int
	ready  bool
}

// newFinderModel wires a finder component to dir, routing its notifications
// into toasts and its navigation requests into the detail page.
func newFinderModel(dir directory.Directory, fcfg finder.Config, cfg TUIConfig) finderModel {
	box := &inbox{}
	comp := finder.New(fcfg, finder.Deps{
		Query:     dir,
		Metadata:  dir,
		Objects:   dir,
		Navigator: box,
		Notifier:  box,
	})

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "business name or description"
	search.CharLimit = 120
	search.Cursor.SetMode(cursor.CursorStatic)
	search.PromptStyle = cfg.Theme.AccentStyle()
	search.TextStyle = cfg.Theme.ViewPaneStyle()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = cfg.Theme.AccentStyle()

	results := cfg.Theme.NewList(nil, 0, 0)
	results.Title = "Businesses"
	results.SetFilteringEnabled(false)
	results.SetShowStatusBar(false)

	facetList := cfg.Theme.NewList(nil, 0, 0)
	facetList.SetFilteringEnabled(false)

	return finderModel{
		cfg:       cfg,
		comp:      comp,
		records:   dir,
		inbox:     box,
		details:   newDetailCache(cfg.DetailCacheSize),
		search:    search,
		results:   results,
		spinner:   sp,
		facetList: facetList,
		detail:    viewport.New(0, 0),
	}
}

func (m finderModel) Init() tea.Cmd {
	return tea.Batch(m.comp.Init(), m.spinner.Tick)
}

func (m finderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.screen == screenDetail && !m.detailLoading {
			m.layout()
			m.renderDetail()
		}

	case finder.QueryResultMsg, finder.ObjectInfoMsg, finder.PicklistMsg:
		cmds = append(cmds, m.comp.Update(msg))

	case detailLoadedMsg:
		cmds = append(cmds, m.handleDetailLoaded(msg))

	case toastExpiredMsg:
		m.dismissToast(msg.id)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	cmds = append(cmds, m.drainInbox())
	m.syncResults()
	if m.screen == screenFacet {
		m.syncFacetList()
	}
	m.layout()

	return m, tea.Batch(cmds...)
}

func (m *finderModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.helpActive {
		m.helpActive = false
		return nil
	}
	switch m.screen {
	case screenFacet:
		return m.updateFacet(msg)
	case screenDetail:
		return m.updateDetail(msg)
	default:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateResults(msg)
	}
}

func (m *finderModel) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.helpActive = true
		return nil
	case "/":
		m.searching = true
		m.search.Focus()
		return nil
	case "esc":
		if len(m.toasts) > 0 {
			m.toasts = nil
			return nil
		}
		if m.search.Value() != "" {
			m.search.SetValue("")
			return m.comp.SetSearchText("")
		}
		return nil
	case "c":
		m.openFacet(facet.Category)
		return nil
	case "o":
		m.openFacet(facet.County)
		return nil
	case "r":
		return m.comp.Refresh()
	case "enter":
		if item, ok := m.results.SelectedItem().(resultItem); ok {
			m.comp.OpenRecord(item.summary.ID)
		}
		return nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func (m *finderModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		m.searching = false
		m.search.Blur()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		return tea.Batch(cmd, m.comp.SetSearchText(after))
	}
	return cmd
}

func (m *finderModel) openFacet(kind facet.Kind) {
	m.screen = screenFacet
	m.facetKind = kind
	m.facetList.Title = kind.Label()
	m.facetList.ResetSelected()
	m.syncFacetList()
}

func (m *finderModel) updateFacet(msg tea.KeyMsg) tea.Cmd {
	kind := m.facetKind
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.helpActive = true
		return nil
	case "esc", "backspace":
		m.screen = screenResults
		return nil
	case "tab":
		next := facet.County
		if kind == facet.County {
			next = facet.Category
		}
		m.openFacet(next)
		return nil
	case " ", "enter", "x":
		if item, ok := m.facetList.SelectedItem().(optionItem); ok {
			return m.comp.Toggle(kind, item.option.Value)
		}
		return nil
	case "a":
		return m.comp.SelectAll(kind)
	case "n":
		return m.comp.Clear(kind)
	}

	var cmd tea.Cmd
	m.facetList, cmd = m.facetList.Update(msg)
	return cmd
}

func (m *finderModel) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		m.screen = screenResults
		m.detailLoading = false
		return nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

// drainInbox turns notifications raised during this Update into toasts and
// follows the latest navigation request.
func (m *finderModel) drainInbox() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range m.inbox.notes {
		slog.Debug("notification", slog.String("title", n.Title), slog.String("message", n.Message))
		cmds = append(cmds, m.pushToast(n))
	}
	m.inbox.notes = nil

	if t := m.inbox.target; t != nil {
		m.inbox.target = nil
		cmds = append(cmds, m.openTarget(*t))
	}
	return tea.Batch(cmds...)
}

// syncResults rebuilds the results list when the component replaced its
// result set.
func (m *finderModel) syncResults() {
	if v := m.comp.ResultsVersion(); v != m.shownVersion {
		m.shownVersion = v
		m.results.SetItems(resultItems(m.comp.Results(), m.comp.CategoryOptions()))
		m.results.ResetSelected()
	}
}

func (m *finderModel) syncFacetList() {
	kind := m.facetKind
	idx := m.facetList.Index()
	m.facetList.SetItems(optionItems(m.comp.Options(kind), func(v string) bool {
		return m.comp.Selected(kind, v)
	}))
	if n := len(m.facetList.Items()); idx < n {
		m.facetList.Select(idx)
	}
}

// layout sizes the lists and viewport to the current window.
func (m *finderModel) layout() {
	if !m.ready {
		return
	}
	cw := m.contentWidth()
	toastLines := 0
	if len(m.toasts) > 0 {
		toastLines = countLines(m.toastView(cw))
	}

	// header + search + filters + footer
	m.results.SetSize(cw, max(m.height-4-toastLines, 3))
	// footer
	m.facetList.SetSize(cw, max(m.height-1-toastLines, 3))
	m.search.Width = max(cw-len(m.search.Prompt)-1, 10)
	// header + meta + blank + footer
	m.detail.Width = cw
	m.detail.Height = max(m.height-4-toastLines, 1)
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m *finderModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

// Target returns the detail page currently shown, if any.
func (m finderModel) Target() (finder.Target, bool) {
	return m.detailTarget, m.screen == screenDetail
}

func (m finderModel) resultCount() string {
	n := len(m.results.Items())
	if n == 1 {
		return "1 business"
	}
	return fmt.Sprintf("%d businesses", n)
}

// RunTUI launches the interactive finder against dir.
func RunTUI(dir directory.Directory, fcfg finder.Config, cfg TUIConfig) error {
	m := newFinderModel(dir, fcfg, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
