package graph

// Kind discriminates what a node represents.
type Kind string

const (
	KindTask   Kind = "task"
	KindDate   Kind = "date"
	KindPseudo Kind = "pseudo"
)

// State is the completion state carried by task nodes. Date nodes have
// none, and pseudo nodes never count toward completion at all.
type State string

const (
	StateNone    State = "none"
	StatePartial State = "partial"
	StateDone    State = "done"
)

// Meta is the bookkeeping attached to every node. Index mirrors the
// node's slot in the arena and is rewritten only by Clean.
type Meta struct {
	Archived bool   `yaml:"archived" json:"archived"`
	Index    int    `yaml:"index" json:"index"`
	Alias    string `yaml:"alias,omitempty" json:"alias,omitempty"`
	Parents  []int  `yaml:"parents" json:"parents"`
	Children []int  `yaml:"children" json:"children"`
}

// Node is a single entry in the graph arena. Date nodes carry their
// canonical YYYY-MM-DD key in Date so the date table can always be
// rebuilt from the nodes alone.
type Node struct {
	Title string `yaml:"title" json:"title"`
	Kind  Kind   `yaml:"type" json:"type"`
	State State  `yaml:"state,omitempty" json:"state,omitempty"`
	Date  string `yaml:"date,omitempty" json:"date,omitempty"`
	Meta  Meta   `yaml:"metadata" json:"metadata"`
}

func newNode(title string, index int, kind Kind) *Node {
	n := &Node{Title: title, Kind: kind}
	if kind == KindTask {
		n.State = StateNone
	}
	n.Meta.Index = index
	n.Meta.Parents = []int{}
	n.Meta.Children = []int{}
	return n
}

// Clone returns a deep copy sharing no adjacency storage with the
// receiver.
func (n *Node) Clone() *Node {
	c := *n
	c.Meta.Parents = append([]int{}, n.Meta.Parents...)
	c.Meta.Children = append([]int{}, n.Meta.Children...)
	return &c
}

// mapIndices rewrites the node's own handle and adjacency through a
// dense remap produced by Clean. A -1 entry marks a reclaimed slot.
func (n *Node) mapIndices(remap []int) {
	n.Meta.Index = remap[n.Meta.Index]
	n.Meta.Parents = mapLive(n.Meta.Parents, remap)
	n.Meta.Children = mapLive(n.Meta.Children, remap)
}

func mapLive(handles, remap []int) []int {
	out := make([]int, 0, len(handles))
	for _, h := range handles {
		if nh := remap[h]; nh >= 0 {
			out = append(out, nh)
		}
	}
	return out
}

func cloneHandles(handles []int) []int {
	return append([]int{}, handles...)
}

func removeHandle(handles []int, h int) []int {
	out := handles[:0]
	for _, x := range handles {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}

func containsHandle(handles []int, h int) bool {
	for _, x := range handles {
		if x == h {
			return true
		}
	}
	return false
}
