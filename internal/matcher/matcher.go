package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashwch/nmenu/internal/trie"
)

// ErrLiteralOverrun is returned when a typed token extends past a whole literal,
// for example "gitx" against the literal "git".
var ErrLiteralOverrun = errors.New("token extends past literal")

// Suggestion is a display entry and the trie node it was derived from.
type Suggestion struct {
	Text string
	Node *trie.Node
}

// Runnable reports whether choosing s can produce a command.
func (s Suggestion) Runnable() bool {
	return s.Node != nil && s.Node.Command != nil
}

// Match walks root with the text typed so far and returns the current suggestions.
// It keeps no state between calls.
func Match(root *trie.Node, input string) ([]Suggestion, error) {
	text := Fold(strings.TrimSpace(input))
	cursor := root
	var filters []string

	for {
		cursor = skipRouting(cursor)
		if text == "" {
			return children(cursor), nil
		}

		token, rest := SplitToken(text)
		next, found, err := scan(cursor, token, filters)
		if err != nil {
			return nil, err
		}

		switch {
		case next != nil:
			// exact literal: descend and continue with the following token
			cursor = next
		case rest != "":
			// not a literal at this level: keep it as a basename filter
			filters = append(filters, token)
		default:
			return found, nil
		}
		text = rest
	}
}

// scan classifies every child of cursor against token. It returns the child to
// descend into on an exact literal match, otherwise the candidates found. A token
// running past a literal is an error only when no sibling matches it at all.
func scan(cursor *trie.Node, token string, filters []string) (*trie.Node, []Suggestion, error) {
	var found []Suggestion
	var overrun error
	for _, child := range cursor.Children {
		switch child.Kind {
		case trie.Path:
			base := Fold(child.Label())
			if !containsAll(base, filters) {
				continue
			}
			if strings.Contains(base, token) {
				found = append(found, Suggestion{Text: child.Label(), Node: child})
			}

		case trie.Literal:
			literal := Fold(child.Text)
			common := commonPrefixLen(literal, token)
			switch {
			case common == 0:
			case common == len(token) && common < len(literal):
				found = append(found, Suggestion{Text: child.Text, Node: child})
			case common == len(token):
				return child, nil, nil
			case common == len(literal):
				if overrun == nil {
					overrun = fmt.Errorf("%w: %q after %q", ErrLiteralOverrun, token, child.Text)
				}
			}
		}
	}
	if overrun != nil && len(found) == 0 {
		return nil, nil, overrun
	}
	return nil, found, nil
}

func skipRouting(n *trie.Node) *trie.Node {
	for len(n.Children) == 1 && n.Children[0].Kind == trie.Placeholder {
		n = n.Children[0]
	}
	return n
}

func children(n *trie.Node) []Suggestion {
	out := make([]Suggestion, 0, len(n.Children))
	for _, child := range n.Children {
		switch child.Kind {
		case trie.Literal, trie.Path:
			out = append(out, Suggestion{Text: child.Label(), Node: child})
		}
	}
	return out
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
