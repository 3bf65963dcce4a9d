package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func (m Model) View() string {
	left := m.reposView()
	right := m.releasesView()

	leftStyle, rightStyle := styleFocusedPane, styleBlurredPane
	if m.focus == focusList {
		leftStyle, rightStyle = styleBlurredPane, styleFocusedPane
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftStyle.Render(left), rightStyle.Render(right))

	var b strings.Builder
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(styleDim.Render("⏎ add/select  tab switch pane  ↑/↓ navigate  esc quit"))
	return b.String()
}

func (m Model) reposView() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Repositories"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.state.Repos))
	for _, r := range m.state.Repos {
		rows = append(rows, []string{
			r.ID.String(),
			strconv.Itoa(r.Watchers),
			strconv.Itoa(r.Stargazers),
			strconv.Itoa(r.Forks),
			strconv.Itoa(r.OpenIssues),
			strconv.Itoa(r.OpenPullRequests),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("Name", "Watchers", "Stars", "Forks", "Issues", "Pull requests").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.focus == focusList && row == m.cursor {
				return styleSelected
			}
			return styleCell
		})
	b.WriteString(t.Render())
	return b.String()
}

func (m Model) releasesView() string {
	var b strings.Builder
	if m.state.Selected == nil {
		b.WriteString(styleTitle.Render("No releases"))
		return b.String()
	}
	b.WriteString(styleTitle.Render(fmt.Sprintf("Releases for repo '%s'", m.state.Selected.ID)))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.state.Releases))
	for _, r := range m.state.Releases {
		rows = append(rows, []string{r.DisplayName(), r.TagName, strconv.Itoa(r.Downloads())})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("Name", "Tag name", "Downloads").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		})
	b.WriteString(t.Render())
	return b.String()
}

func (m Model) statusView() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return styleError.Render("✗ " + m.status)
	case m.busy:
		return styleDim.Render("… " + m.status)
	default:
		return styleSuccess.Render("✓ " + m.status)
	}
}
