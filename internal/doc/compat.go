package doc

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"knot-cli/internal/graph"
)

// legacyDecoders maps a declared document version onto its shape.
// Versions 1 through 3 used flat node records with the node kind
// folded into the state string; version 4 split kind out into a type
// field; version 5 is the current nested-metadata shape, decoded
// tolerantly here when the strict pass rejects a file.
var legacyDecoders = map[int]func(*yaml.Node) (*graph.Graph, error){
	1: decodeFlatConflated,
	2: decodeFlatConflated,
	3: decodeFlatConflated,
	4: decodeFlatTyped,
	5: decodeCurrent,
}

// decodeCompat hand-walks the YAML tree so missing fields default
// instead of failing. Only a missing version field or an unknown
// version number is fatal.
func decodeCompat(data []byte) (*graph.Graph, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	top := documentRoot(&root)
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, &ParseError{Reason: "document is not a mapping"}
	}
	version, ok := intField(top, "version")
	if !ok {
		return nil, &ParseError{Reason: "version field does not exist"}
	}
	decode, ok := legacyDecoders[version]
	if !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("no decoder for document version %d", version)}
	}
	return decode(mapField(top, "graph"))
}

func decodeFlatConflated(graphDoc *yaml.Node) (*graph.Graph, error) {
	return decodeFlat(graphDoc, true)
}

func decodeFlatTyped(graphDoc *yaml.Node) (*graph.Graph, error) {
	return decodeFlat(graphDoc, false)
}

func decodeFlat(graphDoc *yaml.Node, conflated bool) (*graph.Graph, error) {
	g := decodeTables(graphDoc)
	if nodes := mapField(graphDoc, "nodes"); nodes != nil && nodes.Kind == yaml.SequenceNode {
		for slot, nd := range nodes.Content {
			if isNull(nd) {
				g.Nodes = append(g.Nodes, nil)
				continue
			}
			g.Nodes = append(g.Nodes, flatNode(nd, slot, conflated))
		}
	}
	finishLoad(g)
	return g, nil
}

// flatNode reads the legacy record shape: everything at one level and
// the title under "message".
func flatNode(nd *yaml.Node, slot int, conflated bool) *graph.Node {
	n := &graph.Node{
		Title: strFieldOr(nd, "message", ""),
		Kind:  graph.KindTask,
	}
	n.Meta.Index = intFieldOr(nd, "index", slot)
	n.Meta.Archived = boolFieldOr(nd, "archived", false)
	n.Meta.Alias = strFieldOr(nd, "alias", "")
	n.Meta.Parents = intList(mapField(nd, "parents"))
	n.Meta.Children = intList(mapField(nd, "children"))

	state := strFieldOr(nd, "state", "")
	if conflated {
		switch state {
		case "pseudo":
			n.Kind = graph.KindPseudo
		case "date":
			n.Kind = graph.KindDate
		case "partial":
			n.State = graph.StatePartial
		case "done":
			n.State = graph.StateDone
		default:
			n.State = graph.StateNone
		}
		return n
	}

	switch strFieldOr(nd, "type", "normal") {
	case "date":
		n.Kind = graph.KindDate
	case "pseudo":
		n.Kind = graph.KindPseudo
	default:
		switch state {
		case "partial":
			n.State = graph.StatePartial
		case "done":
			n.State = graph.StateDone
		default:
			n.State = graph.StateNone
		}
	}
	return n
}

func decodeCurrent(graphDoc *yaml.Node) (*graph.Graph, error) {
	g := decodeTables(graphDoc)
	if nodes := mapField(graphDoc, "nodes"); nodes != nil && nodes.Kind == yaml.SequenceNode {
		for slot, nd := range nodes.Content {
			if isNull(nd) {
				g.Nodes = append(g.Nodes, nil)
				continue
			}
			g.Nodes = append(g.Nodes, currentNode(nd, slot))
		}
	}
	finishLoad(g)
	return g, nil
}

func currentNode(nd *yaml.Node, slot int) *graph.Node {
	n := &graph.Node{
		Title: strFieldOr(nd, "title", ""),
		Date:  strFieldOr(nd, "date", ""),
	}
	switch strFieldOr(nd, "type", "task") {
	case "date":
		n.Kind = graph.KindDate
	case "pseudo":
		n.Kind = graph.KindPseudo
	default:
		n.Kind = graph.KindTask
		switch strFieldOr(nd, "state", "none") {
		case "partial":
			n.State = graph.StatePartial
		case "done":
			n.State = graph.StateDone
		default:
			n.State = graph.StateNone
		}
	}

	meta := mapField(nd, "metadata")
	n.Meta.Index = intFieldOr(meta, "index", slot)
	n.Meta.Archived = boolFieldOr(meta, "archived", false)
	n.Meta.Alias = strFieldOr(meta, "alias", "")
	n.Meta.Parents = intList(mapField(meta, "parents"))
	n.Meta.Children = intList(mapField(meta, "children"))
	return n
}

// decodeTables reads the four top-level graph tables, defaulting each
// to empty when absent.
func decodeTables(graphDoc *yaml.Node) *graph.Graph {
	g := graph.New()
	g.Roots = intList(mapField(graphDoc, "roots"))
	g.Archived = intList(mapField(graphDoc, "archived"))
	g.Dates = intMap(mapField(graphDoc, "dates"))
	g.Aliases = intMap(mapField(graphDoc, "aliases"))
	return g
}

func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

// mapField returns the value node for key inside a mapping, nil when
// the mapping or the key is absent.
func mapField(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Tag == "!!null"
}

func intField(m *yaml.Node, key string) (int, bool) {
	v := mapField(m, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return 0, false
	}
	i, err := strconv.Atoi(v.Value)
	if err != nil {
		return 0, false
	}
	return i, true
}

func intFieldOr(m *yaml.Node, key string, fallback int) int {
	if i, ok := intField(m, key); ok {
		return i
	}
	return fallback
}

func strFieldOr(m *yaml.Node, key, fallback string) string {
	v := mapField(m, key)
	if v == nil || v.Kind != yaml.ScalarNode || isNull(v) {
		return fallback
	}
	return v.Value
}

func boolFieldOr(m *yaml.Node, key string, fallback bool) bool {
	v := mapField(m, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return fallback
	}
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return fallback
	}
	return b
}

// intList reads a sequence of integers, skipping entries that are not
// integers rather than failing the whole load.
func intList(n *yaml.Node) []int {
	out := []int{}
	if n == nil || n.Kind != yaml.SequenceNode {
		return out
	}
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			continue
		}
		if i, err := strconv.Atoi(item.Value); err == nil {
			out = append(out, i)
		}
	}
	return out
}

func intMap(n *yaml.Node) map[string]int {
	out := map[string]int{}
	if n == nil || n.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			continue
		}
		if idx, err := strconv.Atoi(v.Value); err == nil {
			out[k.Value] = idx
		}
	}
	return out
}
