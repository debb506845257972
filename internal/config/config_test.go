package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("missing file should load defaults")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "graph:\n  auto_clean: true\ndisplay:\n  icons:\n    node_checked: {icon: \"[v]\", color: \"10\"}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Graph.AutoClean {
		t.Fatalf("auto_clean not applied")
	}
	if cfg.Display.Icons.NodeChecked.Value != "[v]" || cfg.Display.Icons.NodeChecked.Color != "10" {
		t.Fatalf("node_checked not applied: %+v", cfg.Display.Icons.NodeChecked)
	}
	if cfg.Display.Icons.NodeNone != Default().Display.Icons.NodeNone {
		t.Fatalf("unset icon lost its default")
	}
	if !cfg.Display.ShowConnections || cfg.Display.DateFormat != "2006-01-02" {
		t.Fatalf("unset display values lost their defaults")
	}
}

func TestLoadToleratesWrongTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "graph:\n  auto_clean: true\ndisplay:\n  show_connections: \"maybe\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Graph.AutoClean {
		t.Fatalf("well-formed key skipped because of a malformed sibling")
	}
	if !cfg.Display.ShowConnections {
		t.Fatalf("malformed value should keep its default")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("{{{:"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unparseable config")
	}
}

func TestPathHonorsEnvOverride(t *testing.T) {
	t.Setenv("KNOT_CONFIG", "/tmp/elsewhere.yaml")
	p, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if p != "/tmp/elsewhere.yaml" {
		t.Fatalf("Path = %q, want env override", p)
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("template does not decode back to the defaults")
	}

	if err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("forced WriteDefault: %v", err)
	}
}
