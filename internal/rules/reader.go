package rules

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrUnterminatedList   = errors.New("unterminated list")
	ErrBadNumber          = errors.New("number literal out of range")
)

// SyntaxError reports malformed rule source at a byte offset.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rules: offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Reader produces successive values from rule-language source.
type Reader struct {
	src string
	pos int
}

func NewReader(src string) *Reader {
	return &Reader{src: src}
}

// Next returns the next top-level value. A Nil value means the input is exhausted.
func (r *Reader) Next() (Value, error) {
	v, closed, err := r.read()
	if err != nil {
		return Value{}, err
	}
	if closed {
		// a stray ')' at top level ends the program the same way end of input does
		return Value{}, nil
	}
	return v, nil
}

// ReadAll reads every top-level value in src.
func ReadAll(src string) ([]Value, error) {
	r := NewReader(src)
	var out []Value
	for {
		v, err := r.Next()
		if err != nil {
			return nil, err
		}
		if v.IsNil() {
			return out, nil
		}
		out = append(out, v)
	}
}

// read returns closed=true when it consumed a ')' instead of a value.
func (r *Reader) read() (Value, bool, error) {
	r.skipBlank()
	if r.pos >= len(r.src) {
		return Value{}, false, nil
	}

	start := r.pos
	c := r.src[r.pos]
	switch {
	case c == '"':
		end := r.pos + 1
		for ; end < len(r.src); end++ {
			if r.src[end] == '"' && r.src[end-1] != '\\' {
				break
			}
		}
		if end >= len(r.src) {
			return Value{}, false, &SyntaxError{Offset: start, Err: ErrUnterminatedString}
		}
		r.pos = end + 1
		return String(r.src[start+1 : end]), false, nil

	case isDigit(c):
		end := r.pos
		for end < len(r.src) && isDigit(r.src[end]) {
			end++
		}
		n, err := strconv.ParseUint(r.src[start:end], 10, 64)
		if err != nil {
			return Value{}, false, &SyntaxError{Offset: start, Err: ErrBadNumber}
		}
		r.pos = end
		return Number(n), false, nil

	case c == '(':
		r.pos++
		list := List()
		for {
			elem, closed, err := r.read()
			if err != nil {
				return Value{}, false, err
			}
			if closed {
				return list, false, nil
			}
			if elem.IsNil() {
				return Value{}, false, &SyntaxError{Offset: start, Err: ErrUnterminatedList}
			}
			list.List = append(list.List, elem)
		}

	case c == ')':
		r.pos++
		return Value{}, true, nil
	}

	end := r.pos
	for end < len(r.src) && isSymbolByte(r.src[end]) {
		end++
	}
	r.pos = end
	return Symbol(r.src[start:end]), false, nil
}

func (r *Reader) skipBlank() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case isSpace(c):
			r.pos++
		case c == ';':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSymbolByte(c byte) bool {
	return !isSpace(c) && c != '(' && c != ')' && c != '"'
}
