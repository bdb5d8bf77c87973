package rules

import (
	"errors"
	"fmt"
)

var ErrBadAction = errors.New("action requires rule definition and command declaration")

// LastSymbol is the back-reference to the matched value inside a command template.
const LastSymbol = "last"

// Action pairs a rule's token sequence with its command template. Command points
// into the owning Program's tree and is only checked when a selection evaluates it.
type Action struct {
	Rule    []Value
	Command *Value
}

// Program is a parsed rule file, wrapped as (do (action RULE COMMAND) ...).
type Program struct {
	Root    Value
	Actions []Action
}

// Parse reads src and validates every top-level form as an action.
func Parse(src string) (*Program, error) {
	forms, err := ReadAll(src)
	if err != nil {
		return nil, err
	}
	root := List(append([]Value{Symbol("do")}, forms...)...)
	return FromValue(root)
}

// FromValue validates an already read (do ...) form.
func FromValue(root Value) (*Program, error) {
	if !root.IsCallTo("do") {
		return nil, fmt.Errorf("expected do call, got %s", root)
	}
	p := &Program{Root: root}
	for i := 1; i < len(p.Root.List); i++ {
		form := &p.Root.List[i]
		if !form.IsCallTo("action") {
			return nil, fmt.Errorf("expected action call, got %s", form)
		}
		if len(form.List) != 3 {
			return nil, fmt.Errorf("%w: %s", ErrBadAction, form)
		}
		rule, command := form.List[1], &form.List[2]
		if rule.Kind != KindList {
			return nil, fmt.Errorf("%w: rule must be a list, got %s", ErrBadAction, rule)
		}
		if len(rule.List) == 0 {
			return nil, fmt.Errorf("%w: rule cannot be empty", ErrBadAction)
		}
		p.Actions = append(p.Actions, Action{Rule: rule.List, Command: command})
	}
	return p, nil
}
