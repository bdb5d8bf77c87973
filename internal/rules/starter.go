package rules

import _ "embed"

//go:embed starter.lisp
var starter []byte

// Starter returns the rule file written by `nmenu init`.
func Starter() []byte {
	return append([]byte(nil), starter...)
}
