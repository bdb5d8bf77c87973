// Package command turns a selected trie node and its command template into a
// shell command line.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/ashwch/nmenu/internal/rules"
	"github.com/ashwch/nmenu/internal/trie"
)

var (
	ErrNoCommand   = errors.New("selected entry has no command")
	ErrBadTemplate = errors.New("unsupported command template element")
)

// Eval renders node's command template. Every element is shell-quoted; the
// symbol last is replaced by the node's matched value.
func Eval(node *trie.Node) (string, error) {
	if node == nil || node.Command == nil {
		return "", ErrNoCommand
	}
	return Render(*node.Command, node.Value())
}

// Render evaluates tmpl with last bound to value.
func Render(tmpl rules.Value, value string) (string, error) {
	if tmpl.Kind != rules.KindList || len(tmpl.List) == 0 {
		return "", fmt.Errorf("%w: %s", ErrBadTemplate, tmpl)
	}

	args := make([]string, 0, len(tmpl.List))
	for _, elem := range tmpl.List {
		switch elem.Kind {
		case rules.KindString:
			args = append(args, shellescape.Quote(elem.Str))
		case rules.KindNumber:
			args = append(args, shellescape.Quote(strconv.FormatUint(elem.Num, 10)))
		case rules.KindSymbol:
			if elem.Str != rules.LastSymbol {
				return "", fmt.Errorf("%w: symbol %s", ErrBadTemplate, elem.Str)
			}
			args = append(args, shellescape.Quote(value))
		default:
			return "", fmt.Errorf("%w: %s %s", ErrBadTemplate, elem.Kind, elem)
		}
	}
	return strings.Join(args, " "), nil
}
