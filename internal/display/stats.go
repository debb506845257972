package display

import (
	"fmt"
	"sort"

	"knot-cli/internal/graph"
)

// Stats prints one node's full record: state, identity, and both edge
// lists with the neighbors' own lines.
func (r *Renderer) Stats(g *graph.Graph, handle int) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Title   : %s\n", n.Title)
	fmt.Fprintf(r.out, "Kind    : %s\n", n.Kind)
	if n.Kind == graph.KindTask {
		fmt.Fprintf(r.out, "State   : %s\n", n.State)
	}
	if n.Date != "" {
		fmt.Fprintf(r.out, "Date    : %s\n", r.FormatDate(n.Date))
	}
	if n.Meta.Alias != "" {
		fmt.Fprintf(r.out, "Alias   : %s\n", n.Meta.Alias)
	}
	if n.Meta.Archived {
		fmt.Fprintf(r.out, "Archived: yes\n")
	}
	fmt.Fprintf(r.out, "Parents :\n")
	for _, p := range n.Meta.Parents {
		if g.Live(p) {
			fmt.Fprintf(r.out, " * %s\n", r.NodeLine(g.Nodes[p]))
		}
	}
	fmt.Fprintf(r.out, "Children:\n")
	for _, c := range n.Meta.Children {
		if g.Live(c) {
			fmt.Fprintf(r.out, " * %s\n", r.NodeLine(g.Nodes[c]))
		}
	}
	return nil
}

// Summary prints whole-graph counts.
func (r *Renderer) Summary(g *graph.Graph) {
	fmt.Fprintf(r.out, "Nodes   : %d live of %d slots\n", g.NodeCount(), len(g.Nodes))
	fmt.Fprintf(r.out, "Roots   : %d\n", g.RootCount())
	fmt.Fprintf(r.out, "Dates   : %d\n", g.DateCount())
	fmt.Fprintf(r.out, "Aliases : %d\n", g.AliasCount())
	fmt.Fprintf(r.out, "Archived: %d\n", len(g.Archived))
}

// Aliases prints the alias table sorted by name.
func (r *Renderer) Aliases(g *graph.Graph) {
	fmt.Fprintln(r.out, "Aliases:")
	if len(g.Aliases) == 0 {
		fmt.Fprintln(r.out, "No added alias.")
		return
	}
	names := make([]string, 0, len(g.Aliases))
	for a := range g.Aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	for _, a := range names {
		fmt.Fprintf(r.out, " * %s\n", r.ID(g.Aliases[a], a))
	}
}

// ParentsChoice lists a node's parents when a command picks the first
// one by default.
func (r *Renderer) ParentsChoice(g *graph.Graph, parents []int) {
	fmt.Fprintln(r.out, "Parents:")
	for _, p := range parents {
		if !g.Live(p) {
			continue
		}
		n := g.Nodes[p]
		fmt.Fprintf(r.out, " * %s (%s)\n", r.ID(p, n.Meta.Alias), n.Title)
	}
}

// BlueprintHeader prints the title line above a blueprint preview.
func (r *Renderer) BlueprintHeader(name, author string) {
	if author != "" {
		fmt.Fprintf(r.out, "Blueprint %q by %s\n", name, author)
		return
	}
	fmt.Fprintf(r.out, "Blueprint %q\n", name)
}

// BlueprintList prints the stored blueprint names.
func (r *Renderer) BlueprintList(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(r.out, "No stored blueprints.")
		return
	}
	fmt.Fprintln(r.out, "Blueprints:")
	for _, n := range names {
		fmt.Fprintf(r.out, " * %s\n", n)
	}
}

func (r *Renderer) BlueprintWritten(path string) {
	fmt.Fprintf(r.out, "Blueprint written to %s\n", path)
}

func (r *Renderer) BlueprintDeleted(path string) {
	fmt.Fprintf(r.out, "Blueprint deleted at %s\n", path)
}

func (r *Renderer) BlueprintInserted(name string, handle int) {
	fmt.Fprintf(r.out, "Blueprint %q -> %s\n", name, r.ID(handle, ""))
}
