package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mikanfactory/jopen/internal/model"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	list := m.ctrl.List()

	if m.loading && list.Len() == 0 {
		return header + "\n\n  Loading..."
	}

	if m.err != nil {
		return header + "\n\n  Error: " + m.err.Error()
	}

	if overlay := m.ctrl.Overlay(); overlay.Visible {
		return zone.Scan(m.renderOverlay(overlay))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		listPaneStyle.Width(m.listWidth).Render(m.renderList()),
		detailPaneStyle.Render(m.detail.View()),
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return zone.Scan(b.String())
}

func (m Model) renderHeader() string {
	title := "Branches"
	if m.repoDir != "" {
		title += " " + repoStyle.Render(m.repoDir)
	}
	for _, entry := range m.ctrl.List().Entries() {
		if entry.Branch.IsCurrent {
			title += " " + currentMarkStyle.Render("on "+entry.Branch.CheckoutName())
			break
		}
	}
	return titleStyle.Render(title)
}

func (m Model) renderList() string {
	list := m.ctrl.List()
	if list.Len() == 0 {
		return detailDimStyle.Render("  No branches")
	}

	rows := make([]string, 0, list.Len())
	for i, entry := range list.Entries() {
		rows = append(rows, zone.Mark(ZoneID(i), renderBranch(entry, i == list.Index(), m.listWidth)))
	}
	return strings.Join(rows, "\n")
}

func renderBranch(entry model.BranchEntry, selected bool, width int) string {
	name := entry.Branch.CheckoutName()

	var mark string
	if entry.Branch.IsCurrent {
		mark = currentMarkStyle.Render(model.CurrentMarker) + " "
	}

	var badge string
	if entry.IssueKey != "" {
		badge = " " + issueKeyStyle.Render(entry.IssueKey)
	}

	cursor := "   "
	style := branchStyle
	if selected {
		cursor = "> "
		style = branchSelectedStyle
	}

	maxNameLen := width - lipgloss.Width(cursor) - lipgloss.Width(mark) - lipgloss.Width(badge) - 1
	if maxNameLen > 0 && lipgloss.Width(name) > maxNameLen {
		name = truncate(name, maxNameLen)
	}

	if selected {
		return style.Render(cursor+mark+name) + badge
	}
	return style.Render(mark+name) + badge
}

func (m Model) renderOverlay(overlay model.Overlay) string {
	width := min(max(m.width-10, 20), 80)
	box := overlayStyle.Width(width).Render(
		overlayTitleStyle.Render("Checkout failed") + "\n\n" +
			overlay.Message + "\n\n" +
			detailDimStyle.Render("any key: dismiss  e: hide  q: quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// truncate cuts s to at most maxLen terminal cells.
func truncate(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "…")
}
