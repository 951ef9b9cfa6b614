package husk

import (
	"context"
	"strings"
)

// Node is one syntax-tree element. Nodes exclusively own their children.
type Node interface {
	String() string

	// Eval reduces the node to a value against env, possibly mutating it.
	Eval(ctx context.Context, env *Env) (Value, error)
}

// Literal is an embedded constant.
type Literal struct {
	Val Value
}

func (n Literal) String() string { return n.Val.String() }

// Variable is a name reference.
type Variable struct {
	Name Ident
}

func (n Variable) String() string { return n.Name.String() }

// Call applies a callee expression to ordered argument expressions.
type Call struct {
	Fn   Node
	Args []Node
}

func (n Call) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Fn.String())
	for _, a := range n.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Define binds the result of evaluating Val to Name in the current scope.
type Define struct {
	Name Ident
	Val  Node
}

func (n Define) String() string {
	return "(= " + n.Name.String() + " " + n.Val.String() + ")"
}
