package display

import (
	"fmt"
	"sort"
	"strings"

	"knot-cli/internal/graph"
)

// indent builds the prefix for a node at the given walk depth. Depth 1
// is flush left; deeper nodes get one arm and a bar column per level
// above that. Multi-parent nodes get the dotted arm so shared subtrees
// are recognizable in the tree.
func (r *Renderer) indent(depth int, multiParent bool) string {
	levels := depth - 1
	if levels <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < levels-1; i++ {
		if r.cfg.Display.BarIndent {
			b.WriteString(" " + r.bar.Render(r.cfg.Display.Icons.Bar.Value) + "  ")
		} else {
			b.WriteString("    ")
		}
	}
	ic := r.cfg.Display.Icons
	if multiParent {
		b.WriteString(" " + r.arm.Render(ic.ArmMultiparent.Value))
	} else {
		b.WriteString(" " + r.arm.Render(ic.Arm.Value))
	}
	return b.String()
}

func (r *Renderer) visit(n *graph.Node, depth int) {
	fmt.Fprintf(r.out, "%s%s\n", r.indent(depth, len(n.Meta.Parents) > 1), r.NodeLine(n))
}

// ListRoots prints every root subtree to maxDepth, 0 meaning
// unbounded.
func (r *Renderer) ListRoots(g *graph.Graph, maxDepth int, includeArchived bool) error {
	return g.Traverse(g.Roots, includeArchived, maxDepth, r.visit)
}

// ListChildren prints the target node and its subtree to maxDepth.
func (r *Renderer) ListChildren(g *graph.Graph, target, maxDepth int, includeArchived bool) error {
	if _, err := g.Node(target); err != nil {
		return err
	}
	return g.Traverse([]int{target}, includeArchived, maxDepth, r.visit)
}

// ListDates prints all date nodes in calendar order.
func (r *Renderer) ListDates(g *graph.Graph, includeArchived bool) error {
	keys := make([]string, 0, len(g.Dates))
	for k := range g.Dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	starts := make([]int, 0, len(keys))
	for _, k := range keys {
		starts = append(starts, g.Dates[k])
	}
	return g.Traverse(starts, includeArchived, 1, r.visit)
}

// ListArchived prints all archived nodes, one level deep.
func (r *Renderer) ListArchived(g *graph.Graph) error {
	return g.Traverse(g.Archived, true, 1, r.visit)
}
