package trie

import (
	"path/filepath"

	"github.com/ashwch/nmenu/internal/rules"
)

type Kind int

const (
	Placeholder Kind = iota
	Literal
	Path
	// Pattern is reserved for regular-expression matches. No rule produces it yet
	// and the matcher never selects it.
	Pattern
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Literal:
		return "literal"
	case Path:
		return "path"
	case Pattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Node is a trie level. Children are owned exclusively by their parent; Command
// points into the retained rule program and is nil for non-terminal nodes.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Command  *rules.Value
}

func NewLiteral(s string) *Node { return &Node{Kind: Literal, Text: s} }

func NewPath(p string) *Node { return &Node{Kind: Path, Text: filepath.Clean(p)} }

// put appends a fresh placeholder child and returns it.
func (n *Node) put() *Node {
	child := &Node{}
	n.Children = append(n.Children, child)
	return child
}

// Equal compares identity only: kind plus payload, never children or command.
func (n *Node) Equal(other *Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case Placeholder:
		return true
	case Literal, Path:
		return n.Text == other.Text
	default:
		return false
	}
}

// Value is what `last` expands to when this node is selected.
func (n *Node) Value() string {
	return n.Text
}

// Label is the display text for a suggestion built from this node.
func (n *Node) Label() string {
	if n.Kind == Path {
		return filepath.Base(n.Text)
	}
	return n.Text
}

// Walk visits n and its descendants depth first, stopping early when fn returns false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}
