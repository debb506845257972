package tui

import (
	"sort"

	"knot-cli/internal/graph"
)

// row is one visible line of the tree pane. Text is rendered by the
// model when rows are rebuilt; the list delegate only pads and cuts.
type row struct {
	handle      int
	depth       int
	last        bool
	revisit     bool
	hasChildren bool
	collapsed   bool
	text        string
	filter      string
}

func (r row) FilterValue() string { return r.filter }
func (r row) Title() string       { return r.text }

// flatten walks the subtrees under starts depth first into the visible
// row sequence. A node reached through a second parent shows up as a
// one-line revisit and is not expanded again, so shared subtrees stay
// shallow and cycles terminate.
func flatten(g *graph.Graph, starts []int, collapsed map[int]bool, includeArchived bool) []row {
	out := []row{}
	seen := map[int]bool{}

	visible := func(h int) bool {
		if !g.Live(h) {
			return false
		}
		return includeArchived || !g.Nodes[h].Meta.Archived
	}

	var walk func(h, depth int, last bool)
	walk = func(h, depth int, last bool) {
		if seen[h] {
			out = append(out, row{handle: h, depth: depth, last: last, revisit: true})
			return
		}
		seen[h] = true

		kids := []int{}
		for _, c := range g.Nodes[h].Meta.Children {
			if visible(c) {
				kids = append(kids, c)
			}
		}
		out = append(out, row{
			handle:      h,
			depth:       depth,
			last:        last,
			hasChildren: len(kids) > 0,
			collapsed:   collapsed[h],
		})
		if collapsed[h] {
			return
		}
		for i, c := range kids {
			walk(c, depth+1, i == len(kids)-1)
		}
	}

	for i, s := range starts {
		if !visible(s) {
			continue
		}
		walk(s, 0, i == len(starts)-1)
	}
	return out
}

// dateStarts returns the date-node handles in date order, the same
// order lsd uses.
func dateStarts(g *graph.Graph) []int {
	keys := make([]string, 0, len(g.Dates))
	for k := range g.Dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	starts := make([]int, 0, len(keys))
	for _, k := range keys {
		starts = append(starts, g.Dates[k])
	}
	return starts
}

// archivedStarts returns the archived handles in handle order.
func archivedStarts(g *graph.Graph) []int {
	starts := append([]int{}, g.Archived...)
	sort.Ints(starts)
	return starts
}
