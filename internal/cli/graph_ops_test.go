package cli

import (
	"strings"
	"testing"

	"knot-cli/internal/graph"
)

func TestLinkAddsSecondParent(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "add", "-r", "other")

	out := mustRun(t, home, "link", "3", "1")
	if !strings.Contains(string(out), "(3) -> (1)") {
		t.Fatalf("link output = %q", out)
	}

	g := loadSaved(t, home)
	parents := g.Nodes[1].Meta.Parents
	if len(parents) != 2 || parents[0] != 0 || parents[1] != 3 {
		t.Fatalf("parents = %v, want [0 3]", parents)
	}
}

func TestLinkExistingEdgeIsANoOp(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	mustRun(t, home, "link", "0", "1")
	g := loadSaved(t, home)
	if len(g.Nodes[1].Meta.Parents) != 1 {
		t.Fatalf("parents = %v, edge duplicated", g.Nodes[1].Meta.Parents)
	}
}

func TestUnlinkLastParentReRoots(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	out := mustRun(t, home, "unlink", "0", "1")
	if !strings.Contains(string(out), "(0) -x- (1)") {
		t.Fatalf("unlink output = %q", out)
	}

	g := loadSaved(t, home)
	if len(g.Nodes[1].Meta.Parents) != 0 {
		t.Fatalf("parents = %v, want none", g.Nodes[1].Meta.Parents)
	}
	found := false
	for _, r := range g.Roots {
		if r == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("roots = %v, orphan not promoted", g.Roots)
	}
}

func TestMoveDetachesFromAllParents(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "add", "-r", "other")
	mustRun(t, home, "link", "3", "1")

	mustRun(t, home, "mv", "1", "2")

	g := loadSaved(t, home)
	parents := g.Nodes[1].Meta.Parents
	if len(parents) != 1 || parents[0] != 2 {
		t.Fatalf("parents = %v, want [2]", parents)
	}
	for _, c := range g.Nodes[0].Meta.Children {
		if c == 1 {
			t.Fatalf("old parent still holds the node: %v", g.Nodes[0].Meta.Children)
		}
	}
}

func TestListReportsLoop(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "link", "1", "0")

	_, _, err := runCLI(t, knotArgs(home, "ls", "0", "-r"))
	if err == nil || !strings.Contains(err.Error(), "looped back") {
		t.Fatalf("err = %v, want a loop report", err)
	}
}

func TestCopySingleNode(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "check", "1")

	mustRun(t, home, "cp", "1", "2")

	g := loadSaved(t, home)
	cp := g.Nodes[3]
	if cp == nil || cp.Title != "write docs" {
		t.Fatalf("copy = %+v", cp)
	}
	if len(cp.Meta.Parents) != 1 || cp.Meta.Parents[0] != 2 {
		t.Fatalf("copy parents = %v, want [2]", cp.Meta.Parents)
	}
	if cp.State != graph.StateDone {
		t.Fatalf("copy state = %q, source state should carry over", cp.State)
	}
	if g.Nodes[1].State != graph.StateDone {
		t.Fatalf("source state = %q, source must be untouched", g.Nodes[1].State)
	}
}

func TestCopyRecursiveIntoFreshDate(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	mustRun(t, home, "cp", "0", "2026-07-04", "-r")

	g := loadSaved(t, home)
	dh, ok := g.Dates["2026-07-04"]
	if !ok {
		t.Fatalf("date node not created, dates = %v", g.Dates)
	}
	kids := g.Nodes[dh].Meta.Children
	if len(kids) != 2 {
		t.Fatalf("date children = %v, want the two copied tasks", kids)
	}
	titles := map[string]bool{}
	for _, c := range kids {
		titles[g.Nodes[c].Title] = true
	}
	if !titles["write docs"] || !titles["write tests"] {
		t.Fatalf("copied titles = %v", titles)
	}
	if !g.Live(0) || !g.Live(1) || !g.Live(2) {
		t.Fatalf("source subtree must survive a copy")
	}
}

func TestCopyToFreshDateRequiresRecursive(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "cp", "0", "2026-07-04"))
	if err == nil || !strings.Contains(err.Error(), "--recursive") {
		t.Fatalf("err = %v", err)
	}
}

func TestCopyToUnknownTargetFails(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "cp", "1", "nosuch"))
	if err == nil || !strings.Contains(err.Error(), "target node not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestOrderShiftsAndClamps(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	mustRun(t, home, "ord", "1", "down")
	g := loadSaved(t, home)
	kids := g.Nodes[0].Meta.Children
	if len(kids) != 2 || kids[0] != 2 || kids[1] != 1 {
		t.Fatalf("children = %v, want [2 1]", kids)
	}

	// Shifting past the end clamps instead of failing.
	mustRun(t, home, "ord", "1", "down", "5")
	g = loadSaved(t, home)
	kids = g.Nodes[0].Meta.Children
	if kids[1] != 1 {
		t.Fatalf("children = %v after clamped shift", kids)
	}

	mustRun(t, home, "ord", "1", "up", "5")
	g = loadSaved(t, home)
	kids = g.Nodes[0].Meta.Children
	if kids[0] != 1 {
		t.Fatalf("children = %v, want node 1 first", kids)
	}
}

func TestOrderListsParentsWhenAmbiguous(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "add", "-r", "other")
	mustRun(t, home, "link", "3", "1")

	out := mustRun(t, home, "ord", "1", "down")
	if !strings.Contains(string(out), "Parents:") {
		t.Fatalf("expected the parent listing, got %q", out)
	}
}

func TestOrderRejectsNonParent(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "ord", "1", "down", "-p", "2"))
	if err == nil || !strings.Contains(err.Error(), "not a parent") {
		t.Fatalf("err = %v", err)
	}
}

func TestOrderRootHasNoParents(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "ord", "0", "down"))
	if err == nil || !strings.Contains(err.Error(), "no parents") {
		t.Fatalf("err = %v", err)
	}
}

func TestOrderRejectsBadDirection(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "ord", "1", "sideways"))
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Fatalf("err = %v", err)
	}
}

func TestRandPicksAmongChildren(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	old := pickIndex
	pickIndex = func(n int) int { return 0 }
	defer func() { pickIndex = old }()

	out := mustRun(t, home, "rand", "0")
	if !strings.Contains(string(out), "Title   : write docs") {
		t.Fatalf("rand output = %q", out)
	}
}

func TestRandUncheckedSkipsDone(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "check", "1")

	old := pickIndex
	pickIndex = func(n int) int { return 0 }
	defer func() { pickIndex = old }()

	out := mustRun(t, home, "rand", "0", "-u")
	if !strings.Contains(string(out), "Title   : write tests") {
		t.Fatalf("rand -u output = %q", out)
	}
}

func TestRandFiltersAreExclusive(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "rand", "0", "-u", "-c"))
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("err = %v", err)
	}
}

func TestRandWithoutChildrenFails(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)

	_, _, err := runCLI(t, knotArgs(home, "rand", "1"))
	if err == nil || !strings.Contains(err.Error(), "no children") {
		t.Fatalf("err = %v", err)
	}
}

func TestCleanRenumbersAndKeepsAliases(t *testing.T) {
	home := testHome(t)
	seedTree(t, home)
	mustRun(t, home, "alias", "2", "tst")
	mustRun(t, home, "rm", "1")

	mustRun(t, home, "clean")

	g := loadSaved(t, home)
	if len(g.Nodes) != 2 {
		t.Fatalf("slots = %d, want a dense arena of 2", len(g.Nodes))
	}
	if g.Nodes[1].Title != "write tests" {
		t.Fatalf("node 1 = %+v after renumbering", g.Nodes[1])
	}

	mustRun(t, home, "check", "tst")
	g = loadSaved(t, home)
	if g.Nodes[1].State != graph.StateDone {
		t.Fatalf("alias broke across clean, state = %q", g.Nodes[1].State)
	}
}

func TestCalendarHeader(t *testing.T) {
	home := testHome(t)
	mustRun(t, home, "add", "-d", "2026-05-09")

	out := mustRun(t, home, "cal", "2026-05-01")
	s := string(out)
	if !strings.Contains(s, "May 2026") {
		t.Fatalf("calendar missing title:\n%s", s)
	}
	if !strings.Contains(s, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("calendar missing weekday header:\n%s", s)
	}
}
