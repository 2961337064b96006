package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
	selected lipgloss.Style
	invalid  lipgloss.Style
	playing  lipgloss.Style
	gap      lipgloss.Style
}

func themeStyles(theme string) styles {
	if theme == "high-contrast" {
		return styles{
			title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
			invalid:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			playing:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			gap:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("81")),
		invalid:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		playing:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		gap:      lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	state := m.styles.muted.Render("■ stopped")
	if m.animating {
		state = m.styles.playing.Render("▶ playing")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		m.styles.title.Render(m.cfg.Title),
		state,
		m.styles.muted.Render(fmt.Sprintf("%d times, %d enabled", len(m.times), m.enabledN)),
	)

	b.WriteString(m.renderStrip())
	b.WriteString("\n\n")
	b.WriteString(m.renderSelection())
	b.WriteString("\n\n")
	b.WriteString(m.styles.muted.Render("←/→ step  home/end first/last  +/- " +
		fmt.Sprintf("%d%s", m.cfg.StepAmount, m.cfg.StepUnit) + "  space play/pause  q quit"))
	return b.String()
}

// renderStrip draws one marker per merged time, wrapped to the window width.
func (m Model) renderStrip() string {
	if len(m.times) == 0 {
		return m.styles.muted.Render("(no times yet)")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, ts := range m.times {
		cell := m.marker(ts)
		cellWidth := 2
		if m.cfg.ShowGaps && m.gapAfter[ts] {
			cell += m.styles.gap.Render("┊ ")
			cellWidth += 2
		}
		if lineWidth+cellWidth > width && lineWidth > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteString(cell)
		lineWidth += cellWidth
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}

func (m Model) marker(ts time.Time) string {
	symbol := "○"
	style := m.styles.disabled
	if m.enabled[ts] {
		symbol = "●"
		style = m.styles.enabled
	}
	if m.hasSelected && ts.Equal(m.selected) {
		style = m.styles.selected
	}
	return style.Render(symbol) + " "
}

func (m Model) renderSelection() string {
	if !m.hasSelected {
		return m.styles.muted.Render("no time selected")
	}
	label := m.selected.Format(m.cfg.TimeFormat)
	if !m.valid {
		return m.styles.invalid.Render(label + " (not an enabled time)")
	}
	return m.styles.title.Render(label)
}
