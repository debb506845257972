package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTabActive = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	styleTabIdle   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	styleFaint     = lipgloss.NewStyle().Faint(true)
	styleStatus    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

const browseHelp = "a add  A root  r rename  d remove  space check  z fold  c archive  v archived  / filter  tab view  q quit"

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.lst.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) renderTabs() string {
	names := [3]string{"Roots", "Dates", "Archived"}
	parts := make([]string, 0, len(names))
	for i, name := range names {
		if tab(i) == m.tab {
			parts = append(parts, styleTabActive.Render(name))
		} else {
			parts = append(parts, styleTabIdle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) renderFooter() string {
	switch m.mode {
	case modeAddRoot:
		return "new root: " + m.input.View()
	case modeAddChild:
		return fmt.Sprintf("new child of (%d): %s", m.target, m.input.View())
	case modeRename:
		return fmt.Sprintf("rename (%d): %s", m.target, m.input.View())
	case modeConfirmRemove:
		title := ""
		if m.g.Live(m.target) {
			title = m.g.Nodes[m.target].Title
		}
		return fmt.Sprintf("remove %q: [k]eep children  [s]ubtree too  [esc] cancel", title)
	}
	if m.status != "" {
		return styleStatus.Render(m.status)
	}
	return styleFaint.Render(browseHelp)
}
