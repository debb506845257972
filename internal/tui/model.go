package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"knot-cli/internal/config"
	"knot-cli/internal/display"
	"knot-cli/internal/graph"
)

type tab int

const (
	tabRoots tab = iota
	tabDates
	tabArchived
)

type mode int

const (
	modeBrowse mode = iota
	modeAddRoot
	modeAddChild
	modeRename
	modeConfirmRemove
)

type model struct {
	g   *graph.Graph
	cfg *config.Config

	tab          tab
	mode         mode
	lst          list.Model
	input        textinput.Model
	rows         []row
	collapsed    map[int]bool
	showArchived bool

	// target is the handle a pending add, rename or remove applies to.
	target  int
	status  string
	changed bool
	width   int
	height  int

	r      *display.Renderer
	glyphs glyphSet

	armMid       string
	armLast      string
	armMultiMid  string
	armMultiLast string
}

func newModel(g *graph.Graph, cfg *config.Config) model {
	m := model{
		g:         g,
		cfg:       cfg,
		collapsed: map[int]bool{},
		r:         display.New(io.Discard, cfg),
		glyphs:    glyphPreference(),
	}

	arm := func(ic config.Icon) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ic.Color)).Render(ic.Value)
	}
	icons := cfg.Display.Icons
	m.armMid = arm(icons.Arm)
	m.armLast = arm(icons.ArmLast)
	m.armMultiMid = arm(icons.ArmMultiparent)
	m.armMultiLast = arm(icons.ArmMultiparentLast)

	m.lst = newList()
	m.input = textinput.New()
	m.input.Prompt = ""
	m.rebuild(-1)
	return m
}

func newList() list.Model {
	l := list.New([]list.Item{}, newRowDelegate(), 0, 0)
	// The model draws its own header and footer.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("node", "nodes")
	// ESC backs out of things; only q and ctrl+c quit.
	l.KeyMap.Quit.SetKeys("q")
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

// starts are the walk entry points of the active tab.
func (m *model) starts() []int {
	switch m.tab {
	case tabDates:
		return dateStarts(m.g)
	case tabArchived:
		return archivedStarts(m.g)
	}
	return m.g.Roots
}

// rebuild reflattens the active tab and pushes fresh rows into the
// list, keeping the selection on keep when that handle is still
// visible.
func (m *model) rebuild(keep int) {
	include := m.showArchived || m.tab == tabArchived
	m.rows = flatten(m.g, m.starts(), m.collapsed, include)

	items := make([]list.Item, len(m.rows))
	for i := range m.rows {
		m.rows[i].text = m.renderRow(m.rows[i])
		m.rows[i].filter = m.filterValue(m.rows[i].handle)
		items[i] = m.rows[i]
	}
	m.lst.SetItems(items)

	if keep >= 0 {
		for i, r := range m.rows {
			if r.handle == keep && !r.revisit {
				m.lst.Select(i)
				return
			}
		}
	}
	if m.lst.Index() >= len(items) && len(items) > 0 {
		m.lst.Select(len(items) - 1)
	}
}

func (m *model) renderRow(r row) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.depth))
	switch {
	case r.revisit && r.last:
		b.WriteString(m.armMultiLast)
	case r.revisit:
		b.WriteString(m.armMultiMid)
	case r.depth > 0 && r.last:
		b.WriteString(m.armLast)
	case r.depth > 0:
		b.WriteString(m.armMid)
	}
	switch {
	case r.revisit:
		b.WriteString("  ")
	case r.hasChildren && r.collapsed:
		b.WriteString(m.glyphs.twistyCollapsed() + " ")
	case r.hasChildren:
		b.WriteString(m.glyphs.twistyExpanded() + " ")
	default:
		b.WriteString("  ")
	}
	b.WriteString(m.r.NodeLine(m.g.Nodes[r.handle]))
	return b.String()
}

func (m *model) filterValue(handle int) string {
	n := m.g.Nodes[handle]
	if n.Title != "" {
		return n.Title
	}
	return n.Date
}

// selected returns the row under the cursor, honoring any active
// filter.
func (m *model) selected() (row, bool) {
	it := m.lst.SelectedItem()
	if it == nil {
		return row{}, false
	}
	r, ok := it.(row)
	return r, ok
}

func (m *model) openInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}
