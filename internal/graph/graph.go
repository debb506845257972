package graph

import "fmt"

// Graph owns the node arena plus the derived indices every mutation
// keeps in sync: the root list, the archived list, and the date and
// alias tables. A nil slot is a tombstone left behind by removal;
// tombstones are reclaimed only by Clean, which is also the only
// operation that renumbers handles.
type Graph struct {
	Nodes    []*Node        `yaml:"nodes" json:"nodes"`
	Roots    []int          `yaml:"roots" json:"roots"`
	Archived []int          `yaml:"archived" json:"archived"`
	Dates    map[string]int `yaml:"dates" json:"dates"`
	Aliases  map[string]int `yaml:"aliases" json:"aliases"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes:    []*Node{},
		Roots:    []int{},
		Archived: []int{},
		Dates:    map[string]int{},
		Aliases:  map[string]int{},
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	count := 0
	for _, n := range g.Nodes {
		if n != nil {
			count++
		}
	}
	return count
}

func (g *Graph) RootCount() int  { return len(g.Roots) }
func (g *Graph) AliasCount() int { return len(g.Aliases) }
func (g *Graph) DateCount() int  { return len(g.Dates) }

// Node returns the live node at handle.
func (g *Graph) Node(handle int) (*Node, error) {
	if !g.Live(handle) {
		return nil, &InvalidHandleError{Handle: handle}
	}
	return g.Nodes[handle], nil
}

// Live reports whether handle addresses a live node.
func (g *Graph) Live(handle int) bool {
	return handle >= 0 && handle < len(g.Nodes) && g.Nodes[handle] != nil
}

// mustNode is for walks over adjacency the graph itself maintains; a
// dead handle there means a corrupted invariant, not bad input.
func (g *Graph) mustNode(handle int) *Node {
	n := g.Nodes[handle]
	if n == nil {
		panic(fmt.Sprintf("graph: adjacency references dead handle %d", handle))
	}
	return n
}

// InsertRoot appends a parentless node and registers it as a root.
func (g *Graph) InsertRoot(title string, pseudo bool) int {
	idx := len(g.Nodes)
	kind := KindTask
	if pseudo {
		kind = KindPseudo
	}
	g.Nodes = append(g.Nodes, newNode(title, idx, kind))
	g.Roots = append(g.Roots, idx)
	return idx
}

// InsertDate appends a date node and registers its canonical
// YYYY-MM-DD key in the date table. The caller validates the key
// beforehand (see CanonicalDate and ParseDateExtended).
func (g *Graph) InsertDate(title, date string) int {
	idx := len(g.Nodes)
	n := newNode(title, idx, KindDate)
	n.Date = date
	g.Nodes = append(g.Nodes, n)
	g.Dates[date] = idx
	return idx
}

// insertChildUnchecked appends the node and links it under parent
// without recomputing any states.
func (g *Graph) insertChildUnchecked(title string, parent int, pseudo bool) int {
	idx := len(g.Nodes)
	kind := KindTask
	if pseudo {
		kind = KindPseudo
	}
	g.Nodes = append(g.Nodes, newNode(title, idx, kind))
	g.linkUnchecked(parent, idx)
	return idx
}

// InsertChild appends a new node under parent. Unless the node is
// pseudo, the chain above the parent is recomputed so a fresh child
// immediately shows in completion states.
func (g *Graph) InsertChild(title string, parent int, pseudo bool) (int, error) {
	if _, err := g.Node(parent); err != nil {
		return 0, err
	}
	idx := g.insertChildUnchecked(title, parent, pseudo)
	if !pseudo {
		g.recomputeParents([]int{parent})
	}
	return idx, nil
}

// linkUnchecked adds both half-edges and unroots the child.
func (g *Graph) linkUnchecked(from, to int) {
	fromNode := g.mustNode(from)
	toNode := g.mustNode(to)
	fromNode.Meta.Children = append(fromNode.Meta.Children, to)
	toNode.Meta.Parents = append(toNode.Meta.Parents, from)
	g.Roots = removeHandle(g.Roots, to)
}

// Link makes to a child of from. Adjacency lists are ordered sets, so
// linking an existing edge is a no-op. The chain above the child is
// recomputed afterwards.
func (g *Graph) Link(from, to int) error {
	fromNode, err := g.Node(from)
	if err != nil {
		return err
	}
	toNode, err := g.Node(to)
	if err != nil {
		return err
	}
	if containsHandle(fromNode.Meta.Children, to) {
		return nil
	}
	g.linkUnchecked(from, to)
	g.recomputeParents(cloneHandles(toNode.Meta.Parents))
	return nil
}

// unlinkUnchecked removes both half-edges and re-roots the child if it
// lost its last parent. Date nodes are addressed through the date
// table and never join the root list.
func (g *Graph) unlinkUnchecked(from, to int) {
	fromNode := g.mustNode(from)
	toNode := g.mustNode(to)
	fromNode.Meta.Children = removeHandle(fromNode.Meta.Children, to)
	toNode.Meta.Parents = removeHandle(toNode.Meta.Parents, from)
	if len(toNode.Meta.Parents) == 0 && toNode.Kind != KindDate {
		g.Roots = append(g.Roots, to)
	}
}

// Unlink removes the edge between from and to, if present, and
// recomputes the child's former parent chain, the unlinked side
// included.
func (g *Graph) Unlink(from, to int) error {
	fromNode, err := g.Node(from)
	if err != nil {
		return err
	}
	toNode, err := g.Node(to)
	if err != nil {
		return err
	}
	if !containsHandle(fromNode.Meta.Children, to) {
		return nil
	}
	parents := cloneHandles(toNode.Meta.Parents)
	g.unlinkUnchecked(from, to)
	g.recomputeParents(parents)
	return nil
}

// CleanParents detaches the node from every parent and re-roots it.
// Move runs this before re-linking.
func (g *Graph) CleanParents(handle int) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	parents := cloneHandles(n.Meta.Parents)
	for _, p := range parents {
		pn := g.mustNode(p)
		pn.Meta.Children = removeHandle(pn.Meta.Children, handle)
	}
	n.Meta.Parents = []int{}
	if n.Kind != KindDate && !containsHandle(g.Roots, handle) {
		g.Roots = append(g.Roots, handle)
	}
	g.recomputeParents(parents)
	return nil
}

// Remove tombstones a single node. Children that lose their last
// parent are promoted to roots, the alias and date registrations are
// dropped, and the chain above the former parents is recomputed.
func (g *Graph) Remove(handle int) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	g.Roots = removeHandle(g.Roots, handle)
	if n.Meta.Alias != "" {
		delete(g.Aliases, n.Meta.Alias)
	}
	if n.Kind == KindDate {
		delete(g.Dates, n.Date)
	}
	if n.Meta.Archived {
		g.Archived = removeHandle(g.Archived, handle)
	}

	parents := cloneHandles(n.Meta.Parents)
	for _, p := range parents {
		pn := g.mustNode(p)
		pn.Meta.Children = removeHandle(pn.Meta.Children, handle)
	}
	g.recomputeParents(parents)

	for _, c := range cloneHandles(n.Meta.Children) {
		cn := g.mustNode(c)
		cn.Meta.Parents = removeHandle(cn.Meta.Parents, handle)
		if len(cn.Meta.Parents) == 0 && cn.Kind != KindDate {
			g.Roots = append(g.Roots, c)
		}
	}

	g.Nodes[handle] = nil
	return nil
}

// RemoveRecursive tombstones the node and everything reachable below
// it, depth-first. Shared descendants go too, regardless of parents
// outside the subtree; handles tombstoned earlier in the same walk are
// skipped.
func (g *Graph) RemoveRecursive(handle int) error {
	if _, err := g.Node(handle); err != nil {
		return err
	}
	g.Roots = removeHandle(g.Roots, handle)
	g.removeRecursive(handle)
	return nil
}

func (g *Graph) removeRecursive(handle int) {
	n := g.mustNode(handle)

	parents := cloneHandles(n.Meta.Parents)
	for _, p := range parents {
		if !g.Live(p) {
			continue
		}
		pn := g.Nodes[p]
		pn.Meta.Children = removeHandle(pn.Meta.Children, handle)
	}
	g.recomputeParents(parents)

	for _, c := range cloneHandles(n.Meta.Children) {
		if !g.Live(c) {
			continue
		}
		cn := g.Nodes[c]
		cn.Meta.Parents = removeHandle(cn.Meta.Parents, handle)
		g.removeRecursive(c)
	}

	if n.Meta.Alias != "" {
		delete(g.Aliases, n.Meta.Alias)
	}
	if n.Kind == KindDate {
		delete(g.Dates, n.Date)
	}
	if n.Meta.Archived {
		g.Archived = removeHandle(g.Archived, handle)
	}
	g.Nodes[handle] = nil
}

// Rename replaces the node's title.
func (g *Graph) Rename(handle int, title string) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	n.Title = title
	return nil
}

// SetArchived flips the archived flag and keeps the archived index in
// sync.
func (g *Graph) SetArchived(handle int, archived bool) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	if n.Meta.Archived != archived {
		if archived {
			g.Archived = append(g.Archived, handle)
		} else {
			g.Archived = removeHandle(g.Archived, handle)
		}
	}
	n.Meta.Archived = archived
	return nil
}

// SetAlias points alias at the node, overwriting any existing entry
// for the same string. A previous holder keeps its stale local field
// until the next Clean resyncs the table; the table entry is what
// resolution consults.
func (g *Graph) SetAlias(handle int, alias string) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	g.Aliases[alias] = handle
	n.Meta.Alias = alias
	return nil
}

// UnsetAlias clears the node's alias, if any.
func (g *Graph) UnsetAlias(handle int) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	if n.Meta.Alias == "" {
		return nil
	}
	delete(g.Aliases, n.Meta.Alias)
	n.Meta.Alias = ""
	return nil
}

// ReorderChild moves child delta positions inside parent's child
// list, negative toward the front. The move clamps at either end.
func (g *Graph) ReorderChild(parent, child, delta int) error {
	pn, err := g.Node(parent)
	if err != nil {
		return err
	}
	if _, err := g.Node(child); err != nil {
		return err
	}
	pos := -1
	for i, h := range pn.Meta.Children {
		if h == child {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("node %d is not a child of %d", child, parent)
	}
	target := pos + delta
	if target < 0 {
		target = 0
	}
	if last := len(pn.Meta.Children) - 1; target > last {
		target = last
	}
	children := pn.Meta.Children
	h := children[pos]
	children = append(children[:pos], children[pos+1:]...)
	children = append(children, 0)
	copy(children[target+1:], children[target:])
	children[target] = h
	pn.Meta.Children = children
	return nil
}

// Copy duplicates a single node as a new child of to: title, pseudo
// flag, and for task nodes the completion state, which is copied with
// propagation so the target chain stays consistent.
func (g *Graph) Copy(from, to int) (int, error) {
	src, err := g.Node(from)
	if err != nil {
		return 0, err
	}
	title := src.Title
	pseudo := src.Kind == KindPseudo
	isTask := src.Kind == KindTask
	state := src.State
	idx, err := g.InsertChild(title, to, pseudo)
	if err != nil {
		return 0, err
	}
	if isTask {
		if err := g.SetState(idx, state, true); err != nil {
			return 0, err
		}
	}
	return idx, nil
}

// CopyRecurse duplicates the whole subtree under from as a new
// subtree below to.
func (g *Graph) CopyRecurse(from, to int) error {
	idx, err := g.Copy(from, to)
	if err != nil {
		return err
	}
	for _, c := range cloneHandles(g.mustNode(from).Meta.Children) {
		if err := g.CopyRecurse(c, idx); err != nil {
			return err
		}
	}
	return nil
}

// Move detaches the node from all its parents and re-links it under
// the new parent.
func (g *Graph) Move(from, to int) error {
	if err := g.CleanParents(from); err != nil {
		return err
	}
	return g.Link(to, from)
}
