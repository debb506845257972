package blueprint

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func storeFixture(t *testing.T) (*Store, *Doc) {
	t.Helper()
	g := exampleGraph(t)
	d, err := Extract(g, 2, "sub", "me")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return NewStore(filepath.Join(t.TempDir(), "blueprints")), d
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s, d := storeFixture(t)
	path, err := s.Save("sub", d, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != s.Path("sub") {
		t.Fatalf("path = %q, want %q", path, s.Path("sub"))
	}
	back, err := s.Load("sub")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(d, back) {
		t.Fatalf("round trip drifted:\nwant %+v\ngot  %+v", d, back)
	}
}

func TestStoreRefusesOverwrite(t *testing.T) {
	s, d := storeFixture(t)
	if _, err := s.Save("sub", d, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Save("sub", d, false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := s.Save("sub", d, true); err != nil {
		t.Fatalf("Save with overwrite: %v", err)
	}
}

func TestStoreListAndRemove(t *testing.T) {
	s, d := storeFixture(t)

	// a store directory that was never created lists as empty
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("fresh store listed %v", names)
	}

	for _, name := range []string{"weekly", "release", "alpha"} {
		if _, err := s.Save(name, d, false); err != nil {
			t.Fatalf("Save(%q): %v", name, err)
		}
	}
	names, err = s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"alpha", "release", "weekly"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("List = %v, want %v", names, want)
	}

	if _, err := s.Remove("release"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	names, _ = s.List()
	if want := []string{"alpha", "weekly"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("List after remove = %v, want %v", names, want)
	}
	if _, err := s.Remove("release"); err == nil {
		t.Fatal("expected error removing a missing blueprint")
	}
}

func TestStoreRejectsBadNames(t *testing.T) {
	s, d := storeFixture(t)
	for _, name := range []string{"", "  ", "a/b", `a\b`} {
		if _, err := s.Save(name, d, false); err == nil {
			t.Fatalf("Save(%q) accepted a bad name", name)
		}
		if _, err := s.Load(name); err == nil {
			t.Fatalf("Load(%q) accepted a bad name", name)
		}
	}
}

func TestLoadFileAndParse(t *testing.T) {
	s, d := storeFixture(t)
	path, err := s.Save("sub", d, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if back.Name != "sub" || back.Author != "me" {
		t.Fatalf("header = %+v", back)
	}

	var fe *FormatError
	if _, err := Parse([]byte("nodes: [")); !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for bad yaml, got %v", err)
	}
	if _, err := Parse([]byte("version: 5\nparent: 9\ngraph:\n  nodes: []\n")); !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for empty node list, got %v", err)
	}
}
