package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"knot-cli/internal/graph"
)

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listH := msg.Height - 2
		if listH < 1 {
			listH = 1
		}
		m.lst.SetSize(msg.Width, listH)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAddRoot, modeAddChild, modeRename:
			return m.updateInput(msg)
		case modeConfirmRemove:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	var cmd tea.Cmd
	m.lst, cmd = m.lst.Update(msg)
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed the list owns the keys.
	if m.lst.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.lst, cmd = m.lst.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setTab((m.tab + 1) % 3)
		return m, nil
	case "1":
		m.setTab(tabRoots)
		return m, nil
	case "2":
		m.setTab(tabDates)
		return m, nil
	case "3":
		m.setTab(tabArchived)
		return m, nil
	case "v":
		m.showArchived = !m.showArchived
		m.rebuild(m.selectedHandle())
		return m, nil
	case "z":
		if r, ok := m.selected(); ok && r.hasChildren && !r.revisit {
			m.collapsed[r.handle] = !m.collapsed[r.handle]
			m.rebuild(r.handle)
		}
		return m, nil
	case " ", "x":
		if r, ok := m.selected(); ok {
			m.toggleState(r.handle)
		}
		return m, nil
	case "c":
		if r, ok := m.selected(); ok {
			m.toggleArchived(r.handle)
		}
		return m, nil
	case "a":
		if r, ok := m.selected(); ok && !r.revisit {
			m.mode = modeAddChild
			m.target = r.handle
			m.openInput("")
		} else {
			m.status = "select a parent first"
		}
		return m, nil
	case "A":
		m.mode = modeAddRoot
		m.openInput("")
		return m, nil
	case "r":
		if r, ok := m.selected(); ok {
			m.mode = modeRename
			m.target = r.handle
			m.openInput(m.g.Nodes[r.handle].Title)
		}
		return m, nil
	case "d":
		if r, ok := m.selected(); ok {
			m.mode = modeConfirmRemove
			m.target = r.handle
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.lst, cmd = m.lst.Update(msg)
	return m, cmd
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		mode := m.mode
		title := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		m.commitInput(mode, title)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) commitInput(mode mode, title string) {
	switch mode {
	case modeAddRoot:
		h := m.g.InsertRoot(title, false)
		m.changed = true
		m.tab = tabRoots
		m.rebuild(h)
	case modeAddChild:
		h, err := m.g.InsertChild(title, m.target, false)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.collapsed[m.target] = false
		m.changed = true
		m.rebuild(h)
	case modeRename:
		if err := m.g.Rename(m.target, title); err != nil {
			m.status = err.Error()
			return
		}
		m.changed = true
		m.rebuild(m.target)
	}
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k":
		if err := m.g.Remove(m.target); err != nil {
			m.status = err.Error()
		} else {
			m.changed = true
		}
	case "s":
		if err := m.g.RemoveRecursive(m.target); err != nil {
			m.status = err.Error()
		} else {
			m.changed = true
		}
	case "esc", "n", "q":
	default:
		return m, nil
	}
	m.mode = modeBrowse
	m.rebuild(-1)
	return m, nil
}

func (m *model) selectedHandle() int {
	if r, ok := m.selected(); ok {
		return r.handle
	}
	return -1
}

func (m *model) setTab(t tab) {
	m.tab = t
	m.rebuild(-1)
	if len(m.rows) > 0 {
		m.lst.Select(0)
	}
}

func (m *model) toggleState(h int) {
	n := m.g.Nodes[h]
	if n == nil || n.Kind != graph.KindTask {
		m.status = "no checkbox on this node"
		return
	}
	next := graph.StateDone
	if n.State == graph.StateDone {
		next = graph.StateNone
	}
	if err := m.g.SetState(h, next, true); err != nil {
		m.status = err.Error()
		return
	}
	m.changed = true
	m.rebuild(h)
}

func (m *model) toggleArchived(h int) {
	if err := m.g.SetArchived(h, !m.g.Nodes[h].Meta.Archived); err != nil {
		m.status = err.Error()
		return
	}
	m.changed = true
	m.rebuild(h)
}
