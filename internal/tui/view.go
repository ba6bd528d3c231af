package tui

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/bodymind/internal/chart"
	"codeberg.org/mutker/bodymind/internal/dashboard"
	"github.com/charmbracelet/lipgloss"
)

const sparkCell = 4

func (m Model) View() string {
	sidebar := m.renderSidebar()

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCards(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderTrend(), m.renderInterpretation()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	status := statusOKStyle.Render(m.status)
	if m.statusErr {
		status = statusErrStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, status, m.help.View(m.keys))
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(brandStyle.Render("● " + dashboard.Brand))
	b.WriteString("  ")
	b.WriteString(chipStyle.Render(dashboard.BrandChip))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("PROFILES"))
	b.WriteString("\n")

	for _, p := range m.view.Profiles {
		style := profileStyle
		if p.ID == m.view.Active.ID {
			style = activeProfileStyle
		}
		b.WriteString(style.Render(p.Name))
		b.WriteString("\n")
		b.WriteString(tagStyle.Render("  " + p.Tag))
		b.WriteString("\n")
	}

	note := panelStyle.Width(24).Render(
		titleStyle.Render(dashboard.QuickNoteTitle) + "  " + captionStyle.Render(dashboard.QuickNoteChip) + "\n" +
			captionStyle.Render(dashboard.QuickNote),
	)
	b.WriteString("\n")
	b.WriteString(note)

	return sidebarStyle.Render(b.String())
}

func (m Model) renderHeader() string {
	chips := make([]string, len(dashboard.HeaderChips))
	for i, c := range dashboard.HeaderChips {
		chips[i] = chipStyle.Render(c)
	}

	title := titleStyle.Render("Body & mind for ") + nameStyle.Render(m.view.Active.Name)
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("OVERVIEW"),
		lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", lipgloss.JoinHorizontal(lipgloss.Center, chips...)),
	)
}

func (m Model) renderCards() string {
	cards := make([]string, len(m.view.Cards))
	for i, c := range m.view.Cards {
		hint := positiveStyle
		if c.HintTone == dashboard.ToneWarning {
			hint = warningStyle
		}

		body := lipgloss.JoinVertical(lipgloss.Left,
			sectionStyle.Render(strings.ToUpper(c.Title))+"  "+captionStyle.Render(c.Chip),
			valueStyle.Render(c.Display),
			captionStyle.Render(c.Caption),
			m.inputs[i].View(),
			hint.Render(c.Hint),
			captionStyle.Render(c.HintNote),
		)

		style := cardStyle
		if i == m.focus {
			style = focusedCardStyle
		}
		cards[i] = style.Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderTrend() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("TREND") + "  " + captionStyle.Render(dashboard.ChartChip) + "\n")
	b.WriteString(titleStyle.Render(dashboard.ChartTitle) + "\n\n")

	nameWidth := 0
	for _, d := range m.view.Datasets {
		nameWidth = max(nameWidth, len(d.Name))
	}

	for _, d := range m.view.Datasets {
		color := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", d.Color.R, d.Color.G, d.Color.B))
		line := lipgloss.NewStyle().Foreground(color).Render(chart.Sparkline(d.Values, sparkCell))
		b.WriteString(fmt.Sprintf("%-*s %s\n", nameWidth, d.Name, line))
	}

	labels := make([]string, len(m.view.Labels))
	for i, l := range m.view.Labels {
		labels[i] = fmt.Sprintf("%-*s", sparkCell, truncate(l, sparkCell))
	}
	b.WriteString(fmt.Sprintf("%-*s %s", nameWidth, "", captionStyle.Render(strings.Join(labels, ""))))

	return panelStyle.Render(b.String())
}

func (m Model) renderInterpretation() string {
	body := sectionStyle.Render(strings.ToUpper(dashboard.InterpretationTitle)) + "  " +
		captionStyle.Render(dashboard.InterpretationChip) + "\n\n" +
		dashboard.Interpretation + "\n\n" +
		captionStyle.Render(dashboard.InterpretationNote)

	return panelStyle.Width(40).Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
