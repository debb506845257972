// Package doc is the versioned on-disk document around a graph: a
// strict codec for the current schema, a tolerant fallback for older
// ones, and the save-file plumbing shared by every command.
package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"knot-cli/internal/graph"
)

// Version is bumped whenever the persisted shape of Doc or Graph
// changes. Older versions stay loadable through the compat decoders.
const Version = 5

// Doc wraps a graph with the schema version it was written under.
type Doc struct {
	Version int          `yaml:"version" json:"version"`
	Graph   *graph.Graph `yaml:"graph" json:"graph"`
}

// New wraps a graph in a current-version document.
func New(g *graph.Graph) *Doc {
	return &Doc{Version: Version, Graph: g}
}

// ParseError reports a payload that could not be decoded under any
// known document version.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// Decode reads a persisted document. An empty payload is the valid
// "no graph yet" state and decodes to a fresh graph. Anything else
// goes through a strict current-schema decode first and falls back to
// the tolerant per-version decoders on mismatch.
func Decode(data []byte) (*graph.Graph, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return graph.New(), nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var d Doc
	if err := dec.Decode(&d); err == nil && d.Version == Version && d.Graph != nil {
		normalize(d.Graph)
		finishLoad(d.Graph)
		return d.Graph, nil
	}
	return decodeCompat(data)
}

// Encode serializes the graph under the current version.
func Encode(g *graph.Graph) ([]byte, error) {
	return yaml.Marshal(New(g))
}

// EncodeJSON serializes the graph in the interchange encoding used by
// export and import. The field set is identical to the primary
// encoding.
func EncodeJSON(g *graph.Graph) ([]byte, error) {
	return json.Marshal(New(g))
}

// DecodeJSON reads an interchange payload, taking the same compat
// route as Decode for documents written under older versions.
func DecodeJSON(data []byte) (*graph.Graph, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return graph.New(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var d Doc
	if err := dec.Decode(&d); err == nil && d.Version == Version && d.Graph != nil {
		normalize(d.Graph)
		finishLoad(d.Graph)
		return d.Graph, nil
	}
	// JSON parses as YAML, so the per-version decoders apply unchanged.
	return decodeCompat(data)
}

// Load reads the save file at path. A missing file loads as a fresh
// empty graph; the first Save creates it.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return graph.New(), nil
		}
		return nil, err
	}
	return Decode(data)
}

// Save writes the graph to path under the current version. The write
// goes through a temp file and rename so a crash cannot leave a
// half-written save behind.
func Save(path string, g *graph.Graph) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o644)
	return os.Rename(tmp, path)
}

// normalize fills the nil slices and maps a sparse decode leaves
// behind so the engine never sees untyped nils.
func normalize(g *graph.Graph) {
	if g.Nodes == nil {
		g.Nodes = []*graph.Node{}
	}
	if g.Roots == nil {
		g.Roots = []int{}
	}
	if g.Archived == nil {
		g.Archived = []int{}
	}
	if g.Dates == nil {
		g.Dates = map[string]int{}
	}
	if g.Aliases == nil {
		g.Aliases = map[string]int{}
	}
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		if n.Meta.Parents == nil {
			n.Meta.Parents = []int{}
		}
		if n.Meta.Children == nil {
			n.Meta.Children = []int{}
		}
	}
}

// finishLoad reconciles the alias and date tables with node-local
// truth: a node's own alias field wins over a stale table entry,
// aliases pointing at tombstones are dropped, the winners are written
// back to the nodes, and date nodes recover their key from the table
// when the node record carries none.
func finishLoad(g *graph.Graph) {
	for _, n := range g.Nodes {
		if n != nil && n.Meta.Alias != "" {
			g.Aliases[n.Meta.Alias] = n.Meta.Index
		}
	}
	for alias, h := range g.Aliases {
		if !g.Live(h) {
			delete(g.Aliases, alias)
		}
	}
	for alias, h := range g.Aliases {
		g.Nodes[h].Meta.Alias = alias
	}
	for key, h := range g.Dates {
		if g.Live(h) && g.Nodes[h].Date == "" {
			g.Nodes[h].Date = key
		}
	}
}
