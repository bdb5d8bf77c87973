package trie

import "slices"

// Optimize simplifies the subtree rooted at n until a full pass changes nothing.
// It returns the number of passes that made a change.
func (n *Node) Optimize() int {
	passes := 0
	for n.simplify() {
		passes++
	}
	return passes
}

// simplify runs one pass: children first, then sibling merging, then placeholder
// flattening. It reports whether anything changed.
func (n *Node) simplify() bool {
	changed := false
	for _, child := range n.Children {
		if child.simplify() {
			changed = true
		}
	}

	for i := 0; i < len(n.Children); i++ {
		merged := false
		for j := i + 1; j < len(n.Children); {
			if !n.Children[i].Equal(n.Children[j]) {
				j++
				continue
			}
			n.Children[i].absorb(n.Children[j])
			n.Children = slices.Delete(n.Children, j, j+1)
			merged = true
		}
		if merged {
			changed = true
			n.Children[i].simplify()
		}
	}

	if len(n.Children) == 1 && n.Children[0].routingOnly() {
		n.Children = n.Children[0].Children
		changed = true
	}

	if n.Kind == Placeholder {
		for i := 0; i < len(n.Children); {
			child := n.Children[i]
			if !child.routingOnly() {
				i++
				continue
			}
			n.Children = slices.Delete(n.Children, i, i+1)
			n.Children = append(n.Children, child.Children...)
			changed = true
		}
	}
	return changed
}

// absorb moves other's children under n. A command on other survives only when
// n has none.
func (n *Node) absorb(other *Node) {
	n.Children = append(n.Children, other.Children...)
	other.Children = nil
	if n.Command == nil {
		n.Command = other.Command
	}
}

// routingOnly reports whether n is a placeholder that can be spliced into its parent.
func (n *Node) routingOnly() bool {
	return n.Kind == Placeholder && n.Command == nil
}
