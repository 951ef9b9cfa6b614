package husk

import (
	"iter"
	"maps"
)

// Env is the mutable name-to-value mapping active during evaluation.
// There is no parent chain: entering a function call snapshots the whole
// environment with Clone instead of delegating to an enclosing scope,
// which is what makes the language dynamically scoped.
type Env struct {
	vars map[Ident]Value
}

// NewEnv returns an empty environment. The host seeds it with
// BuiltinValue bindings before the first evaluation.
func NewEnv() *Env {
	return &Env{vars: make(map[Ident]Value)}
}

// Get looks up a binding.
func (e *Env) Get(name Ident) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set inserts or overwrites a binding in place.
func (e *Env) Set(name Ident, val Value) {
	e.vars[name] = val
}

// Clone takes a full snapshot: every existing binding is duplicated into
// the new scope, so mutations there never leak back.
func (e *Env) Clone() *Env {
	return &Env{vars: maps.Clone(e.vars)}
}

// Len reports the number of bindings.
func (e *Env) Len() int {
	return len(e.vars)
}

// Bindings iterates over the environment's bindings in no particular
// order.
func (e *Env) Bindings() iter.Seq2[Ident, Value] {
	return func(yield func(Ident, Value) bool) {
		for name, v := range e.vars {
			if !yield(name, v) {
				break
			}
		}
	}
}
