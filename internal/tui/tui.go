// Package tui is the interactive view over a knot graph: tabbed lists
// for roots, dates and archived nodes, collapsible trees, and inline
// editing. The caller owns loading and saving; Run reports whether the
// graph was changed.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"knot-cli/internal/config"
	"knot-cli/internal/graph"
)

func Run(g *graph.Graph, cfg *config.Config) (bool, error) {
	m := newModel(g, cfg)
	fm, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	if final, ok := fm.(model); ok {
		return final.changed, nil
	}
	return m.changed, nil
}
