package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/utahvbr/bizdirctl/internal/facet"
)

func (m finderModel) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}
	theme := m.cfg.Theme

	if m.helpActive {
		return theme.ClearLineEnds(m.helpOverlay())
	}

	cw := m.contentWidth()
	var result string
	switch m.screen {
	case screenFacet:
		result = m.facetView(cw)
	case screenDetail:
		result = m.detailView(cw)
	default:
		result = m.resultsView(cw)
	}

	if toasts := m.toastView(cw); toasts != "" {
		result += "\n" + toasts
	}
	return theme.PaintScreen(result, m.width, m.height, cw)
}

func (m finderModel) resultsView(cw int) string {
	theme := m.cfg.Theme

	status := m.resultCount()
	if m.comp.Loading() {
		status = m.spinner.View() + " " + status
	}
	header := theme.HeaderStyle().Width(cw).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, "Utah Business Directory    ", status))

	search := m.search.View()
	if !m.searching && m.search.Value() == "" {
		search = theme.HelpStyle().Render("/ to search by name or description")
	}

	footer := theme.HelpStyle().Width(cw).Render("/ search  c categories  o counties  enter open  r refresh  ? help  q quit")

	return strings.Join([]string{
		header,
		search,
		m.filterSummary(cw),
		m.results.View(),
		footer,
	}, "\n")
}

// filterSummary renders the active facet selections on one line.
func (m finderModel) filterSummary(cw int) string {
	theme := m.cfg.Theme
	var parts []string
	for _, kind := range facet.Kinds {
		selected := m.comp.Selection(kind)
		label := theme.HelpStyle().Render(kind.Label() + ":")
		switch {
		case len(selected) == 0:
			parts = append(parts, label+" "+theme.HelpStyle().Render("any"))
		case len(selected) > 3:
			parts = append(parts, label+" "+theme.ChipStyle().Render(fmt.Sprintf("%d selected", len(selected))))
		default:
			opts := m.comp.Options(kind)
			chips := make([]string, len(selected))
			for i, v := range selected {
				chips[i] = theme.ChipStyle().Render(facet.LabelFor(opts, v))
			}
			parts = append(parts, label+" "+strings.Join(chips, " "))
		}
	}
	return lipgloss.NewStyle().MaxWidth(cw).Render(strings.Join(parts, "   "))
}

func (m finderModel) facetView(cw int) string {
	theme := m.cfg.Theme
	kind := m.facetKind

	var body string
	switch {
	case !m.comp.OptionsLoaded(kind):
		body = theme.HelpStyle().Width(cw).Render(m.spinner.View() + " loading " + strings.ToLower(kind.Label()) + " options")
	case len(m.comp.Options(kind)) == 0:
		body = theme.HelpStyle().Width(cw).Render("No " + strings.ToLower(kind.Label()) + " options available.")
	default:
		body = m.facetList.View()
	}

	footer := theme.HelpStyle().Width(cw).Render("space toggle  a all  n none  tab switch facet  esc back")
	return body + "\n" + footer
}

func (m finderModel) helpOverlay() string {
	help := m.cfg.Theme.BorderStyle().
		Padding(1, 2).
		Width(48).
		Render(`Results
  /          edit search text
  esc        clear search / dismiss toasts
  ↑/↓        move selection
  enter      open business detail page
  r          re-run the current query

Facets
  c / o      pick categories / counties
  space      toggle option
  a / n      select all / none
  tab        switch facet

  q          quit     ? close help`)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help,
		lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
}
