package trie

import (
	"errors"
	"fmt"

	"github.com/ashwch/nmenu/internal/rules"
)

var ErrBadRule = errors.New("invalid rule")

const OneOf = "one-of"

// Generators expands a generator call such as (find-dirs "~") into paths.
type Generators interface {
	Generate(call rules.Value) ([]string, error)
}

// Build expands every action of prog under a fresh placeholder root.
func Build(prog *rules.Program, gens Generators) (*Node, error) {
	root := &Node{}
	for _, action := range prog.Actions {
		if err := Expand(root.put(), action.Rule, action.Command, gens); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Expand builds the chain for tokens starting at n, one token per level, and
// attaches command to every node that terminates the rule.
func Expand(n *Node, tokens []rules.Value, command *rules.Value, gens Generators) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty rule", ErrBadRule)
	}
	token, rest := tokens[0], tokens[1:]

	switch token.Kind {
	case rules.KindNil:
		return fmt.Errorf("%w: nil cannot be rule", ErrBadRule)
	case rules.KindNumber:
		return fmt.Errorf("%w: number cannot be rule: %d", ErrBadRule, token.Num)
	case rules.KindSymbol:
		switch token.Str {
		case "match-email":
			return fmt.Errorf("%w: matching email is not implemented yet", ErrBadRule)
		case "match-url":
			return fmt.Errorf("%w: matching url is not implemented yet", ErrBadRule)
		}
		return fmt.Errorf("%w: unrecognized symbol %q", ErrBadRule, token.Str)
	case rules.KindString:
		n.Kind = Literal
		n.Text = token.Str
		if len(rest) == 0 {
			n.Command = command
			return nil
		}
		return Expand(n.put(), rest, command, gens)
	}

	if token.IsCallTo(OneOf) {
		alternatives := token.Args()
		if len(alternatives) == 0 {
			return fmt.Errorf("%w: one-of needs at least one alternative", ErrBadRule)
		}
		for _, alt := range alternatives {
			branch := append([]rules.Value{alt}, rest...)
			if err := Expand(n.put(), branch, command, gens); err != nil {
				return err
			}
		}
		return nil
	}

	if token.Head() == "" {
		return fmt.Errorf("%w: unrecognized function call %s", ErrBadRule, token)
	}
	paths, err := gens.Generate(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRule, err)
	}
	for _, path := range paths {
		child := NewPath(path)
		n.Children = append(n.Children, child)
		if len(rest) == 0 {
			child.Command = command
			continue
		}
		if err := Expand(child.put(), rest, command, gens); err != nil {
			return err
		}
	}
	return nil
}
