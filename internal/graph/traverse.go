package graph

// Visit pairs a node with its nesting depth in a walk. Depth starts at
// 1 for the start handles themselves.
type Visit struct {
	Node  *Node
	Depth int
}

// Traverse walks depth-first from each start handle, children in
// stored order. maxDepth bounds the nesting, 0 meaning unbounded. With
// includeArchived false an archived node hides together with its whole
// subtree. Shared descendants are visited once per path that reaches
// them; re-reaching the start handle of the current walk fails with
// CycleError instead of looping forever.
func (g *Graph) Traverse(starts []int, includeArchived bool, maxDepth int, visit func(*Node, int)) error {
	for _, s := range starts {
		n, err := g.Node(s)
		if err != nil {
			return err
		}
		if !includeArchived && n.Meta.Archived {
			continue
		}
		visit(n, 1)
		if err := g.traverseRecurse(cloneHandles(n.Meta.Children), includeArchived, maxDepth, 2, s, visit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) traverseRecurse(handles []int, includeArchived bool, maxDepth, depth, start int, visit func(*Node, int)) error {
	if maxDepth > 0 && depth > maxDepth {
		return nil
	}
	for _, h := range handles {
		if h == start {
			return &CycleError{Start: start, Reentered: h}
		}
		n := g.mustNode(h)
		if !includeArchived && n.Meta.Archived {
			continue
		}
		visit(n, depth)
		if err := g.traverseRecurse(cloneHandles(n.Meta.Children), includeArchived, maxDepth, depth+1, start, visit); err != nil {
			return err
		}
	}
	return nil
}

// Flatten collects a walk into visit order.
func (g *Graph) Flatten(starts []int, includeArchived bool, maxDepth int) ([]Visit, error) {
	var out []Visit
	err := g.Traverse(starts, includeArchived, maxDepth, func(n *Node, depth int) {
		out = append(out, Visit{Node: n, Depth: depth})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
