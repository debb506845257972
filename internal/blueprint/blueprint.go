// Package blueprint extracts a reachable subtree into a portable,
// re-indexed document and re-inserts such documents as fresh subtrees,
// possibly into a different graph.
package blueprint

import (
	"fmt"

	"knot-cli/internal/doc"
	"knot-cli/internal/graph"
)

// NodeList is the extracted arena slice. Handles inside it are
// blueprint-local, densely numbered from the extracted root at 0.
type NodeList struct {
	Nodes []*graph.Node `yaml:"nodes" json:"nodes"`
}

// Doc is the persisted blueprint: the subtree plus enough context to
// re-insert it. Parent is the blueprint-local handle of the extracted
// root, always 0 in documents this package writes.
type Doc struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Author  string   `yaml:"author,omitempty" json:"author,omitempty"`
	Version int      `yaml:"version" json:"version"`
	Parent  int      `yaml:"parent" json:"parent"`
	Graph   NodeList `yaml:"graph" json:"graph"`
}

// FormatError reports a blueprint document that refers outside itself.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "malformed blueprint: " + e.Reason
}

// Extract copies the subtree reachable from root into a blueprint.
// Handles are renumbered to a dense blueprint-local space in
// depth-first discovery order; references leaving the subtree are
// dropped, and the extracted root keeps no parents at all.
func Extract(g *graph.Graph, root int, name, author string) (*Doc, error) {
	if _, err := g.Node(root); err != nil {
		return nil, err
	}
	positions := map[int]int{}
	discover(g, positions, root, new(int))

	nodes := make([]*graph.Node, len(positions))
	for handle, pos := range positions {
		n := g.Nodes[handle].Clone()
		n.Meta.Index = pos
		n.Meta.Parents = remapDropping(n.Meta.Parents, positions)
		n.Meta.Children = remapDropping(n.Meta.Children, positions)
		nodes[pos] = n
	}
	nodes[0].Meta.Parents = []int{}

	return &Doc{
		Name:    name,
		Author:  author,
		Version: doc.Version,
		Parent:  0,
		Graph:   NodeList{Nodes: nodes},
	}, nil
}

// discover assigns dense blueprint positions in depth-first
// first-discovery order. Revisits recurse no further, so shared
// children get one position and cycles terminate.
func discover(g *graph.Graph, positions map[int]int, handle int, next *int) {
	if _, seen := positions[handle]; seen {
		return
	}
	positions[handle] = *next
	*next++
	for _, c := range g.Nodes[handle].Meta.Children {
		if g.Live(c) {
			discover(g, positions, c, next)
		}
	}
}

func remapDropping(handles []int, positions map[int]int) []int {
	out := []int{}
	for _, h := range handles {
		if pos, ok := positions[h]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// Validate bounds-checks every reference in an untrusted document so
// insertion can index freely afterwards.
func (d *Doc) Validate() error {
	count := len(d.Graph.Nodes)
	if count == 0 {
		return &FormatError{Reason: "no nodes"}
	}
	if d.Parent < 0 || d.Parent >= count {
		return &FormatError{Reason: fmt.Sprintf("parent %d outside %d nodes", d.Parent, count)}
	}
	for i, n := range d.Graph.Nodes {
		if n == nil {
			return &FormatError{Reason: fmt.Sprintf("node %d is null", i)}
		}
		for _, p := range n.Meta.Parents {
			if p < 0 || p >= count {
				return &FormatError{Reason: fmt.Sprintf("node %d parent %d outside %d nodes", i, p, count)}
			}
		}
		for _, c := range n.Meta.Children {
			if c < 0 || c >= count {
				return &FormatError{Reason: fmt.Sprintf("node %d child %d outside %d nodes", i, c, count)}
			}
		}
	}
	return nil
}
