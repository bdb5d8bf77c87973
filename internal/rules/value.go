package rules

import (
	"strconv"
	"strings"
)

type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindSymbol
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a node of the rule tree. Lists own their elements.
type Value struct {
	Kind Kind
	Str  string
	Num  uint64
	List []Value
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func Number(n uint64) Value { return Value{Kind: KindNumber, Num: n} }

func Symbol(s string) Value { return Value{Kind: KindSymbol, Str: s} }

func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindList, List: elems}
}

func (v Value) IsNil() bool { return v.Kind == KindNil }

func (v Value) IsSymbol(name string) bool {
	return v.Kind == KindSymbol && v.Str == name
}

// IsCallTo reports whether v is a list whose head is the symbol name.
func (v Value) IsCallTo(name string) bool {
	return v.Kind == KindList && len(v.List) > 0 && v.List[0].IsSymbol(name)
}

// Head returns the symbol name of a call form, or "" when v is not one.
func (v Value) Head() string {
	if v.Kind != KindList || len(v.List) == 0 || v.List[0].Kind != KindSymbol {
		return ""
	}
	return v.List[0].Str
}

// Args returns the elements after the head of a list.
func (v Value) Args() []Value {
	if v.Kind != KindList || len(v.List) == 0 {
		return nil
	}
	return v.List[1:]
}

// String renders v back into rule-language source.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case KindNil:
		b.WriteString("nil")
	case KindString:
		b.WriteByte('"')
		b.WriteString(v.Str)
		b.WriteByte('"')
	case KindNumber:
		b.WriteString(strconv.FormatUint(v.Num, 10))
	case KindSymbol:
		b.WriteString(v.Str)
	case KindList:
		b.WriteByte('(')
		for i, elem := range v.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			elem.write(b)
		}
		b.WriteByte(')')
	}
}
