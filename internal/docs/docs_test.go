package docs

import (
	"strings"
	"testing"
)

func TestTopicsListsEmbeddedContent(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no topics embedded")
	}
	for _, want := range []string{"overview", "graph", "dates", "blueprints", "config"} {
		found := false
		for _, tp := range topics {
			if tp == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("topic %q missing from %v", want, topics)
		}
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1] > topics[i] {
			t.Fatalf("topics not sorted: %v", topics)
		}
	}
}

func TestGetNormalizesTopicName(t *testing.T) {
	body, ok := Get("  Overview  ")
	if !ok {
		t.Fatalf("Get failed for padded mixed-case topic")
	}
	if !strings.Contains(body, "# knot") {
		t.Fatalf("unexpected body start: %q", body[:40])
	}

	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("expected miss for unknown topic")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected miss for empty topic")
	}
}

func TestRenderFallsBackGracefully(t *testing.T) {
	out := Render("# Title\n\nbody", 40)
	if strings.TrimSpace(out) == "" {
		t.Fatalf("render produced nothing")
	}
	if !strings.Contains(out, "Title") {
		t.Fatalf("render lost the heading: %q", out)
	}
}
