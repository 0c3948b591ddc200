package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/moodlog/pkg/theme"
)

const (
	toastDuration = 3 * time.Second
	panelPadding  = 2
)

// styles is the set of lipgloss styles derived from one palette. It is
// rebuilt whenever the theme toggles.
type styles struct {
	title        lipgloss.Style
	subtitle     lipgloss.Style
	text         lipgloss.Style
	muted        lipgloss.Style
	selected     lipgloss.Style
	dangerSelect lipgloss.Style
	danger       lipgloss.Style
	toast        lipgloss.Style
	card         lipgloss.Style
	selectedCard lipgloss.Style
	footer       lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).
			Foreground(p.Accent).
			Background(p.Selected).
			Padding(0, 2).Align(lipgloss.Center),
		subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		text:     lipgloss.NewStyle().Foreground(p.Foreground),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		selected: lipgloss.NewStyle().
			Foreground(p.Selected).
			Background(p.Success),
		dangerSelect: lipgloss.NewStyle().
			Foreground(p.Selected).
			Background(p.Danger),
		danger: lipgloss.NewStyle().Foreground(p.Danger),
		toast:  lipgloss.NewStyle().Bold(true).Foreground(p.Success),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		selectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// truncate shortens s to width runes, marking the cut with "..".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-2]) + ".."
}
