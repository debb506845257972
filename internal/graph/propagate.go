package graph

// SetState assigns a task node's completion state. With propagate set,
// the state floods down through every descendant first, then the
// ancestor chain is recomputed bottom-up. Pseudo children are skipped
// entirely on the way down, subtree included; reaching a date node
// below a task is an error since dates carry no state.
func (g *Graph) SetState(handle int, state State, propagate bool) error {
	n, err := g.Node(handle)
	if err != nil {
		return err
	}
	if n.Kind != KindTask {
		return &NotTaskError{Handle: handle}
	}
	n.State = state
	if !propagate {
		return nil
	}
	if err := g.setStateRecurse(cloneHandles(n.Meta.Children), state); err != nil {
		return err
	}
	g.recomputeParents(cloneHandles(n.Meta.Parents))
	return nil
}

func (g *Graph) setStateRecurse(children []int, state State) error {
	for _, c := range children {
		n := g.mustNode(c)
		if n.Kind == KindPseudo {
			continue
		}
		if n.Kind != KindTask {
			return &NotTaskError{Handle: c}
		}
		n.State = state
		if err := g.setStateRecurse(cloneHandles(n.Meta.Children), state); err != nil {
			return err
		}
		g.recomputeParents(cloneHandles(n.Meta.Parents))
	}
	return nil
}

// recomputeParents rederives each handle's state from its direct
// children, then walks the same recomputation further up. A task
// parent is done when every counted child is done and at least one
// child counts; pseudo children are excluded from the count entirely,
// while date children count against completion without ever providing
// it. Pseudo parents keep no state and stop the walk; date parents
// pass it through unchanged. Recomputation is idempotent, so diamond
// fan-in may revisit an ancestor once per path without harm.
func (g *Graph) recomputeParents(parents []int) {
	for _, p := range parents {
		if !g.Live(p) {
			continue
		}
		n := g.Nodes[p]

		done := 0
		pseudo := 0
		total := 0
		partial := false
		for _, c := range n.Meta.Children {
			if !g.Live(c) {
				continue
			}
			total++
			child := g.Nodes[c]
			switch child.Kind {
			case KindPseudo:
				pseudo++
			case KindTask:
				switch child.State {
				case StatePartial:
					partial = true
				case StateDone:
					partial = true
					done++
				}
			}
		}

		if n.Kind == KindTask {
			completed := done > 0 && done == total-pseudo
			switch {
			case completed:
				n.State = StateDone
			case partial:
				n.State = StatePartial
			default:
				n.State = StateNone
			}
		}

		if n.Kind == KindPseudo {
			continue
		}
		g.recomputeParents(cloneHandles(n.Meta.Parents))
	}
}
