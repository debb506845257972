package tui

import (
	"testing"

	"knot-cli/internal/graph"
)

func mustChild(t *testing.T, g *graph.Graph, title string, parent int) int {
	t.Helper()
	h, err := g.InsertChild(title, parent, false)
	if err != nil {
		t.Fatalf("InsertChild(%q, %d): %v", title, parent, err)
	}
	return h
}

func TestFlattenMarksRevisits(t *testing.T) {
	g := graph.New()
	top := g.InsertRoot("top", false)
	left := mustChild(t, g, "left", top)
	right := mustChild(t, g, "right", top)
	shared := mustChild(t, g, "shared", left)
	mustChild(t, g, "deep", shared)
	if err := g.Link(right, shared); err != nil {
		t.Fatalf("Link: %v", err)
	}

	rows := flatten(g, g.Roots, map[int]bool{}, false)

	var first, second *row
	for i := range rows {
		if rows[i].handle == shared {
			if first == nil {
				first = &rows[i]
			} else {
				second = &rows[i]
			}
		}
	}
	if first == nil || second == nil {
		t.Fatalf("expected the shared node twice, rows: %+v", rows)
	}
	if first.revisit {
		t.Fatalf("first occurrence should not be a revisit")
	}
	if !second.revisit {
		t.Fatalf("second occurrence should be a revisit")
	}
	// The revisit must not expand the subtree again.
	deepCount := 0
	for _, r := range rows {
		if g.Nodes[r.handle].Title == "deep" {
			deepCount++
		}
	}
	if deepCount != 1 {
		t.Fatalf("shared subtree expanded %d times, want 1", deepCount)
	}
}

func TestFlattenHonorsCollapse(t *testing.T) {
	g := graph.New()
	top := g.InsertRoot("top", false)
	kid := mustChild(t, g, "kid", top)
	mustChild(t, g, "grandkid", kid)

	rows := flatten(g, g.Roots, map[int]bool{top: true}, false)
	if len(rows) != 1 {
		t.Fatalf("collapsed root should flatten to one row, got %d", len(rows))
	}
	if !rows[0].collapsed || !rows[0].hasChildren {
		t.Fatalf("row should be marked collapsed with children: %+v", rows[0])
	}
}

func TestFlattenSkipsArchivedUnlessAsked(t *testing.T) {
	g := graph.New()
	top := g.InsertRoot("top", false)
	hidden := mustChild(t, g, "hidden", top)
	if err := g.SetArchived(hidden, true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}

	rows := flatten(g, g.Roots, map[int]bool{}, false)
	for _, r := range rows {
		if r.handle == hidden {
			t.Fatalf("archived node should be hidden by default")
		}
	}
	if rows[0].hasChildren {
		t.Fatalf("only child is archived, parent should flatten as a leaf")
	}

	rows = flatten(g, g.Roots, map[int]bool{}, true)
	found := false
	for _, r := range rows {
		if r.handle == hidden {
			found = true
		}
	}
	if !found {
		t.Fatalf("archived node should show when included")
	}
}

func TestFlattenMarksLastSiblings(t *testing.T) {
	g := graph.New()
	top := g.InsertRoot("top", false)
	mustChild(t, g, "first", top)
	last := mustChild(t, g, "second", top)

	rows := flatten(g, g.Roots, map[int]bool{}, false)
	for _, r := range rows {
		want := r.handle == last || r.handle == top
		if r.last != want {
			t.Fatalf("handle %d last=%v, want %v", r.handle, r.last, want)
		}
	}
}

func TestDateStartsSorted(t *testing.T) {
	g := graph.New()
	g.InsertDate("", "2026-03-01")
	g.InsertDate("", "2026-01-15")
	g.InsertDate("", "2026-02-01")

	starts := dateStarts(g)
	prev := ""
	for _, h := range starts {
		key := g.Nodes[h].Date
		if key < prev {
			t.Fatalf("dates out of order: %s after %s", key, prev)
		}
		prev = key
	}
	if len(starts) != 3 {
		t.Fatalf("want 3 date starts, got %d", len(starts))
	}
}
