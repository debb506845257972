package graph

import "fmt"

// Clean repairs desynchronized bookkeeping and reclaims tombstones.
// The alias, date, and archived tables are rebuilt from each live
// node's own fields (slot order, so a later slot wins a contested
// alias), dead edges are dropped, roots are rederived, and the
// survivors are densely renumbered preserving relative slot order.
// The receiver is replaced wholesale at the end; callers never observe
// a partially rewritten graph.
func (g *Graph) Clean() {
	g.Aliases = map[string]int{}
	g.Dates = map[string]int{}
	g.Archived = []int{}

	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		if n.Meta.Alias != "" {
			g.Aliases[n.Meta.Alias] = n.Meta.Index
		}
		if n.Kind == KindDate && n.Date != "" {
			g.Dates[n.Date] = n.Meta.Index
		}
		if n.Meta.Archived {
			g.Archived = append(g.Archived, n.Meta.Index)
		}
		n.Meta.Parents = g.retainLive(n.Meta.Parents)
		n.Meta.Children = g.retainLive(n.Meta.Children)
	}

	dateHandles := map[int]bool{}
	for _, h := range g.Dates {
		dateHandles[h] = true
	}
	g.Roots = []int{}
	for _, n := range g.Nodes {
		if n == nil || len(n.Meta.Parents) > 0 || dateHandles[n.Meta.Index] {
			continue
		}
		g.Roots = append(g.Roots, n.Meta.Index)
	}

	remap := make([]int, len(g.Nodes))
	next := 0
	for i, n := range g.Nodes {
		if n == nil {
			remap[i] = -1
			continue
		}
		remap[i] = next
		next++
	}

	fresh := New()
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		nn := n.Clone()
		nn.mapIndices(remap)
		fresh.Nodes = append(fresh.Nodes, nn)
	}
	for alias, h := range g.Aliases {
		fresh.Aliases[alias] = mustRemap(remap, h)
	}
	for _, r := range g.Roots {
		fresh.Roots = append(fresh.Roots, mustRemap(remap, r))
	}
	for date, h := range g.Dates {
		fresh.Dates[date] = mustRemap(remap, h)
	}
	for _, a := range g.Archived {
		fresh.Archived = append(fresh.Archived, mustRemap(remap, a))
	}

	*g = *fresh
}

func (g *Graph) retainLive(handles []int) []int {
	out := handles[:0]
	for _, h := range handles {
		if g.Live(h) {
			out = append(out, h)
		}
	}
	return out
}

// mustRemap fires on a table entry surviving phase one while pointing
// at a reclaimed slot, which the rebuild just made impossible.
func mustRemap(remap []int, h int) int {
	nh := remap[h]
	if nh < 0 {
		panic(fmt.Sprintf("graph: compaction remapped dead handle %d", h))
	}
	return nh
}
