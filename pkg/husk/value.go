package husk

import (
	"context"
	"strconv"
	"strings"
)

// Value represents a runtime value in the Husk language.
type Value interface {
	String() string
}

// VoidValue is the "no meaningful result" value. By convention it is
// truthy; everything except False is.
type VoidValue struct{}

func (VoidValue) String() string { return "void" }

// FalseValue is the sole falsy value.
type FalseValue struct{}

func (FalseValue) String() string { return "#f" }

// IntValue is an unsigned 64-bit integer.
type IntValue struct {
	Val uint64
}

func (v IntValue) String() string { return strconv.FormatUint(v.Val, 10) }

// FuncValue is a user-defined function. Params and Body are shared by
// every copy of the value; duplicating a FuncValue never deep-copies
// its code.
type FuncValue struct {
	Params []Ident
	Body   []Node
}

func (v FuncValue) String() string {
	var b strings.Builder
	b.WriteString(`(\(`)
	for i, p := range v.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	for _, n := range v.Body {
		b.WriteByte(' ')
		b.WriteString(n.String())
	}
	b.WriteByte(')')
	return b.String()
}

// NativeFunc is a host-supplied callable. It receives the eagerly
// evaluated argument values and returns a result the evaluator passes
// through without validation. Being an ordinary Go func value, a host
// can register closures with captured state, not just free functions.
type NativeFunc func(ctx context.Context, args []Value) Value

// BuiltinValue wraps a NativeFunc registered into an environment by the
// host. Opaque to the evaluator beyond "callable".
type BuiltinValue struct {
	Name string
	Fn   NativeFunc
}

func (v BuiltinValue) String() string { return "builtin:" + v.Name }

// Equal reports structural equality. It is defined only for Void, False
// and Int; FuncValue and BuiltinValue are never equal to anything,
// themselves included. Built-in equality testing relies on this.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case VoidValue:
		_, ok := b.(VoidValue)
		return ok
	case FalseValue:
		_, ok := b.(FalseValue)
		return ok
	case IntValue:
		y, ok := b.(IntValue)
		return ok && x.Val == y.Val
	default:
		return false
	}
}
