package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/utahvbr/bizdirctl/internal/config"
)

func TestResolveThemeDefaultDark(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})

	if string(theme.Primary) == "" {
		t.Error("expected primary color to be set")
	}
	if theme.MarkdownStyle != "dark" {
		t.Errorf("expected markdown_style 'dark', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeOverrides(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{
		Preset:        "default-light",
		Primary:       "#FF0000",
		Danger:        "#00FF00",
		MarkdownStyle: "notty",
	})

	if string(theme.Primary) != "#FF0000" {
		t.Errorf("expected primary '#FF0000', got %q", string(theme.Primary))
	}
	if string(theme.Danger) != "#00FF00" {
		t.Errorf("expected danger '#00FF00', got %q", string(theme.Danger))
	}
	if theme.Accent != presets["default-light"].Accent {
		t.Errorf("expected accent to stay at preset value, got %q", string(theme.Accent))
	}
	if theme.MarkdownStyle != "notty" {
		t.Errorf("expected markdown_style 'notty', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeUnknownPresetFallsBack(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "nonexistent"})
	if theme != presets["default-dark"] {
		t.Errorf("expected fallback to default-dark, got %+v", theme)
	}
}

func TestResolveThemeAllPresets(t *testing.T) {
	for _, name := range PresetNames() {
		theme := ResolveTheme(config.ThemeConfig{Preset: name})
		if theme.MarkdownStyle != "dark" && theme.MarkdownStyle != "light" {
			t.Errorf("preset %s: unexpected markdown style %q", name, theme.MarkdownStyle)
		}
		if string(theme.Background) == "" {
			t.Errorf("preset %s: missing background", name)
		}
	}
}

func TestPaintScreenFillsTerminal(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "dracula"})
	out := theme.PaintScreen("one\ntwo", 40, 6, 20)
	lines := strings.Split(out, "\n")

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	first := stripANSI(lines[0])
	if !strings.HasPrefix(first, strings.Repeat(" ", 10)+"one") {
		t.Errorf("expected content centered with 10 columns of padding, got %q", first)
	}
	for i, line := range lines {
		if w := lipgloss.Width(stripANSI(line)); w < 40 {
			t.Errorf("line %d: expected width 40, got %d", i, w)
		}
	}
}

func TestPaintScreenTruncatesTallContent(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})
	out := theme.PaintScreen(strings.Repeat("x\n", 10), 10, 4, 0)
	if n := countLines(out); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
}

func TestNewListUsesThemeStyles(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "gruvbox-dark"})
	l := theme.NewList(nil, 40, 10)

	if l.Styles.Title.GetForeground() != theme.Primary {
		t.Errorf("expected title foreground %v, got %v", theme.Primary, l.Styles.Title.GetForeground())
	}
	if l.ShowHelp() {
		t.Error("expected list help to be hidden")
	}
}
