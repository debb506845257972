package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"knot-cli/internal/config"
	"knot-cli/internal/graph"
)

func plainRenderer(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	ApplyColorProfile(true)
	var buf bytes.Buffer
	return New(&buf, config.Default()), &buf
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestNodeLineShapes(t *testing.T) {
	r, _ := plainRenderer(t)

	g := graph.New()
	milk := g.InsertRoot("buy milk", false)
	pay := g.InsertRoot("pay rent", false)
	if err := g.SetAlias(pay, "pay"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}
	if err := g.SetState(pay, graph.StateDone, true); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	group := g.InsertRoot("chores", true)
	day := g.InsertDate("", "2026-08-09")

	want := map[int]string{
		milk:  "[ ] buy milk (0)",
		pay:   "[x] pay rent (1:pay)",
		group: "[*] chores (2)",
		day:   "[#] 2026-08-09 (3)",
	}
	for h, w := range want {
		if got := r.NodeLine(g.Nodes[h]); got != w {
			t.Fatalf("NodeLine(%d) = %q, want %q", h, got, w)
		}
	}
}

func TestTreeIndentation(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	root := g.InsertRoot("top", false)
	mid, err := g.InsertChild("mid", root, false)
	if err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	if _, err := g.InsertChild("deep", mid, false); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	if err := r.ListRoots(g, 0, false); err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	got := lines(buf)
	want := []string{
		"[ ] top (0)",
		" +--[ ] mid (1)",
		"     +--[ ] deep (2)",
	}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTreeBarIndent(t *testing.T) {
	ApplyColorProfile(true)
	cfg := config.Default()
	cfg.Display.BarIndent = true
	var buf bytes.Buffer
	r := New(&buf, cfg)

	g := graph.New()
	root := g.InsertRoot("top", false)
	mid, err := g.InsertChild("mid", root, false)
	if err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	if _, err := g.InsertChild("deep", mid, false); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	if err := r.ListRoots(g, 0, false); err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	got := lines(&buf)
	if got[2] != " |   +--[ ] deep (2)" {
		t.Fatalf("bar indent line = %q", got[2])
	}
}

func TestTreeMarksMultiParentNodes(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	a := g.InsertRoot("a", false)
	b := g.InsertRoot("b", false)
	shared, err := g.InsertChild("shared", a, false)
	if err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	if err := g.Link(b, shared); err != nil {
		t.Fatalf("Link: %v", err)
	}

	if err := r.ListRoots(g, 0, false); err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, " +..[ ] shared (2)") {
		t.Fatalf("multi-parent arm missing:\n%s", out)
	}
	if strings.Contains(out, " +--[ ] shared (2)") {
		t.Fatalf("shared node drawn with single-parent arm:\n%s", out)
	}
}

func TestListChildrenShowsSelf(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	root := g.InsertRoot("top", false)
	if _, err := g.InsertChild("kid", root, false); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	if err := r.ListChildren(g, root, 0, false); err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	got := lines(buf)
	if got[0] != "[ ] top (0)" || got[1] != " +--[ ] kid (1)" {
		t.Fatalf("unexpected output %q", got)
	}

	buf.Reset()
	if err := r.ListChildren(g, 99, 0, false); err == nil {
		t.Fatalf("expected error for dead target")
	}
}

func TestListDatesSorted(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	g.InsertDate("", "2026-09-01")
	g.InsertDate("", "2026-01-15")
	g.InsertDate("", "2026-05-20")

	if err := r.ListDates(g, false); err != nil {
		t.Fatalf("ListDates: %v", err)
	}
	got := lines(buf)
	want := []string{
		"[#] 2026-01-15 (1)",
		"[#] 2026-05-20 (2)",
		"[#] 2026-09-01 (0)",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArchivedHiddenFromRootsListing(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	g.InsertRoot("visible", false)
	hidden := g.InsertRoot("hidden", false)
	if err := g.SetArchived(hidden, true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}

	if err := r.ListRoots(g, 0, false); err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("archived root listed:\n%s", buf.String())
	}

	buf.Reset()
	if err := r.ListArchived(g); err != nil {
		t.Fatalf("ListArchived: %v", err)
	}
	if !strings.Contains(buf.String(), "hidden") {
		t.Fatalf("archived listing missing node:\n%s", buf.String())
	}
}

func TestStatsListsEdges(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	root := g.InsertRoot("project", false)
	kid, err := g.InsertChild("step", root, false)
	if err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	if err := g.SetAlias(kid, "s1"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}

	if err := r.Stats(g, kid); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Title   : step",
		"Kind    : task",
		"State   : none",
		"Alias   : s1",
		" * [ ] project (0)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}

	if err := r.Stats(g, 42); err == nil {
		t.Fatalf("expected error for dead handle")
	}
}

func TestAliasesListing(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	a := g.InsertRoot("a", false)
	b := g.InsertRoot("b", false)
	if err := g.SetAlias(a, "zulu"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}
	if err := g.SetAlias(b, "alpha"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}

	r.Aliases(g)
	got := lines(buf)
	want := []string{"Aliases:", " * (1:alpha)", " * (0:zulu)"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	buf.Reset()
	r.Aliases(graph.New())
	if !strings.Contains(buf.String(), "No added alias.") {
		t.Fatalf("empty table message missing:\n%s", buf.String())
	}
}

func TestConnectionMessages(t *testing.T) {
	r, buf := plainRenderer(t)

	r.Linked(0, 1)
	r.Unlinked(0, 1)
	r.LinkedRoot(2)
	r.LinkedDates(3)
	r.Removed(4, false)
	r.Removed(4, true)

	got := lines(buf)
	want := []string{
		"(0) -> (1)",
		"(0) -x- (1)",
		"(2) -> (root)",
		"(3) -> (dates)",
		"(4) -x- (parents)",
		"(4) -x- (all)",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCalendarGrid(t *testing.T) {
	r, buf := plainRenderer(t)

	g := graph.New()
	day := g.InsertDate("", "2030-01-15")
	root := g.InsertRoot("task", false)
	if err := g.Link(day, root); err != nil {
		t.Fatalf("Link: %v", err)
	}

	r.Calendar(g, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.Local))
	got := lines(buf)

	if !strings.Contains(got[0], "January 2030") {
		t.Fatalf("header = %q", got[0])
	}
	if got[1] != "Su Mo Tu We Th Fr Sa" {
		t.Fatalf("weekday row = %q", got[1])
	}
	// January 2030 starts on a Tuesday.
	want := []string{
		"       1  2  3  4  5",
		" 6  7  8  9 10 11 12",
		"13 14 15 16 17 18 19",
		"20 21 22 23 24 25 26",
		"27 28 29 30 31",
	}
	for i, w := range want {
		if got[2+i] != w {
			t.Fatalf("week %d = %q, want %q", i, got[2+i], w)
		}
	}
}
