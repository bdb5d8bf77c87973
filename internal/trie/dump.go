package trie

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ashwch/nmenu/internal/rules"
)

// WriteDot renders the trie as a Graphviz digraph.
func WriteDot(w io.Writer, root *Node) error {
	if _, err := fmt.Fprintln(w, "digraph Suggestion_Tree {"); err != nil {
		return err
	}
	ids := map[*Node]int{}
	id := func(n *Node) int {
		if v, ok := ids[n]; ok {
			return v
		}
		ids[n] = len(ids)
		return ids[n]
	}

	var err error
	root.Walk(func(n *Node, _ int) bool {
		if _, err = fmt.Fprintf(w, "Node_%d [label=%s];\n", id(n), dotLabel(n)); err != nil {
			return false
		}
		if n.Command != nil {
			label := ""
			if len(n.Command.List) > 0 {
				label = n.Command.List[0].Str
				if n.Command.List[0].Kind == rules.KindNumber {
					label = n.Command.List[0].String()
				}
			}
			if _, err = fmt.Fprintf(w, "Cmd_%d [shape=box,label=%s];\nNode_%d -> Cmd_%d;\n", id(n), strconv.Quote(label), id(n), id(n)); err != nil {
				return false
			}
		}
		for _, child := range n.Children {
			if _, err = fmt.Fprintf(w, "Node_%d -> Node_%d;\n", id(n), id(child)); err != nil {
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "}")
	return err
}

func dotLabel(n *Node) string {
	switch n.Kind {
	case Placeholder:
		return strconv.Quote("<>")
	case Pattern:
		return "regex"
	default:
		return strconv.Quote(n.Label())
	}
}

type yamlNode struct {
	Kind     string      `yaml:"kind"`
	Text     string      `yaml:"text,omitempty"`
	Command  string      `yaml:"command,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

func toYAML(n *Node) *yamlNode {
	out := &yamlNode{Kind: n.Kind.String(), Text: n.Text}
	if n.Command != nil {
		out.Command = n.Command.String()
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toYAML(child))
	}
	return out
}

// WriteYAML renders the trie structure as a YAML document.
func WriteYAML(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(root)); err != nil {
		return fmt.Errorf("could not encode trie: %w", err)
	}
	return enc.Close()
}
