package blueprint

import (
	"knot-cli/internal/graph"
)

// Insert materializes the blueprint as a fresh subtree under parent
// and returns the handle of the inserted root. Titles and node kinds
// come from the document; completion states, aliases, and archival
// flags do not carry over, since a blueprint re-enters the graph as a
// template, not a restore. A non-empty title replaces the extracted
// root's own.
func Insert(g *graph.Graph, d *Doc, parent int, title string) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	if _, err := g.Node(parent); err != nil {
		return 0, err
	}
	positions := insertPositions(d, len(g.Nodes))
	bpRoot := d.Graph.Nodes[d.Parent]
	newParent, err := g.InsertChild(pickTitle(title, bpRoot), parent, bpRoot.Kind == graph.KindPseudo)
	if err != nil {
		return 0, err
	}
	if err := insertChildren(g, d, positions, d.Parent, newParent); err != nil {
		return 0, err
	}
	applyAdjacency(g, d, positions)
	return newParent, nil
}

// InsertRoot materializes the blueprint as a new root subtree.
func InsertRoot(g *graph.Graph, d *Doc, title string) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	positions := insertPositions(d, len(g.Nodes))
	bpRoot := d.Graph.Nodes[d.Parent]
	newParent := g.InsertRoot(pickTitle(title, bpRoot), bpRoot.Kind == graph.KindPseudo)
	if err := insertChildren(g, d, positions, d.Parent, newParent); err != nil {
		return 0, err
	}
	applyAdjacency(g, d, positions)
	return newParent, nil
}

// BuildGraph materializes the blueprint alone in an otherwise empty
// graph, the shape used to preview or edit one.
func BuildGraph(d *Doc) (*graph.Graph, error) {
	g := graph.New()
	if _, err := InsertRoot(g, d, ""); err != nil {
		return nil, err
	}
	return g, nil
}

func pickTitle(override string, n *graph.Node) string {
	if override != "" {
		return override
	}
	return n.Title
}

// insertPositions maps blueprint-local handles onto the arena slots
// insertion will allocate, numbering from base in the same depth-first
// first-discovery order the materialization walk uses.
func insertPositions(d *Doc, base int) map[int]int {
	positions := map[int]int{}
	next := base
	var walk func(int)
	walk = func(from int) {
		if _, seen := positions[from]; seen {
			return
		}
		positions[from] = next
		next++
		for _, c := range d.Graph.Nodes[from].Meta.Children {
			walk(c)
		}
	}
	walk(d.Parent)
	return positions
}

// insertChildren materializes the children of one blueprint node. A
// node whose slot is already live was reached on an earlier path and
// is not materialized twice.
func insertChildren(g *graph.Graph, d *Doc, positions map[int]int, from, parentHandle int) error {
	for _, c := range d.Graph.Nodes[from].Meta.Children {
		if g.Live(positions[c]) {
			continue
		}
		n := d.Graph.Nodes[c]
		handle, err := g.InsertChild(n.Title, parentHandle, n.Kind == graph.KindPseudo)
		if err != nil {
			return err
		}
		if err := insertChildren(g, d, positions, c, handle); err != nil {
			return err
		}
	}
	return nil
}

// applyAdjacency rewrites the freshly inserted nodes' edges wholesale
// from the blueprint through the position map, preserving child order
// and multi-parent shapes. The inserted root keeps the parents
// insertion gave it; unreachable blueprint nodes were never
// materialized and are skipped.
func applyAdjacency(g *graph.Graph, d *Doc, positions map[int]int) {
	for i, bn := range d.Graph.Nodes {
		pos, ok := positions[i]
		if !ok || !g.Live(pos) {
			continue
		}
		n := g.Nodes[pos]
		if i != d.Parent {
			n.Meta.Parents = remapDropping(bn.Meta.Parents, positions)
		}
		n.Meta.Children = remapDropping(bn.Meta.Children, positions)
	}
}
