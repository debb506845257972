package activity

import (
	"context"
	"path/filepath"
	"testing"
)

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	j := Open(filepath.Join(t.TempDir(), ".knot"))

	for _, e := range []struct{ action, detail string }{
		{"add", "(0) buy milk"},
		{"check", "(0)"},
		{"rm", "(0)"},
	} {
		if err := j.Append(ctx, e.action, e.detail); err != nil {
			t.Fatalf("Append(%s): %v", e.action, err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != "check" || got[1].Action != "rm" {
		t.Fatalf("order = %s, %s; want check, rm", got[0].Action, got[1].Action)
	}
	if got[0].ID >= got[1].ID {
		t.Fatalf("ids not ascending: %d, %d", got[0].ID, got[1].ID)
	}
	if got[1].Detail != "(0)" {
		t.Fatalf("detail = %q", got[1].Detail)
	}
	if got[0].TS.IsZero() {
		t.Fatalf("timestamp not recorded")
	}

	all, err := j.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(all) != 3 || all[0].Action != "add" {
		t.Fatalf("full listing wrong: %+v", all)
	}
}

func TestRecentOnFreshJournal(t *testing.T) {
	ctx := context.Background()
	j := Open(filepath.Join(t.TempDir(), ".knot"))

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("fresh journal should list empty, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	j := Open(filepath.Join(t.TempDir(), ".knot"))

	if err := j.Append(ctx, "add", "(0) x"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := j.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("journal not cleared: %+v", got)
	}
}
