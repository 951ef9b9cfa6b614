package husk

import (
	"context"
	"log/slog"
)

// Eval reduces one expression to a value against env. Fatal conditions
// (an undefined variable, or calling something that is not a function)
// abort the whole evaluation with an error; there is no per-node
// recovery. Recursion rides the host call stack, so unbounded recursion
// in evaluated programs will exhaust it.
func Eval(ctx context.Context, node Node, env *Env) (Value, error) {
	return node.Eval(ctx, env)
}

// EvalProgram evaluates a sequence of top-level expressions against one
// shared environment and returns the value of the last, or Void for an
// empty program.
func EvalProgram(ctx context.Context, nodes []Node, env *Env) (Value, error) {
	var out Value = VoidValue{}
	for _, node := range nodes {
		v, err := node.Eval(ctx, env)
		if err != nil {
			return nil, err
		}
		out = v
	}
	return out, nil
}

func (n Literal) Eval(ctx context.Context, env *Env) (Value, error) {
	return n.Val, nil
}

func (n Variable) Eval(ctx context.Context, env *Env) (Value, error) {
	v, ok := env.Get(n.Name)
	if !ok {
		return nil, UndefinedVariableError{Name: n.Name}
	}
	return v, nil
}

func (n Call) Eval(ctx context.Context, env *Env) (Value, error) {
	callee, err := n.Fn.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case FuncValue:
		// Snapshot the caller's environment so Defines in the body never
		// leak back out. The body still sees the caller's bindings as of
		// call time; scoping is dynamic, not lexical.
		scope := env.Clone()

		if len(n.Args) != len(fn.Params) {
			slog.Warn("function called with incorrect number of arguments",
				"expected", len(fn.Params),
				"got", len(n.Args))
		}

		// Arguments are evaluated in the caller's environment, not the
		// snapshot. The shorter of params/args wins; the surplus side is
		// ignored, and surplus arguments are never evaluated.
		for i, param := range fn.Params {
			if i >= len(n.Args) {
				break
			}
			val, err := n.Args[i].Eval(ctx, env)
			if err != nil {
				return nil, err
			}
			scope.Set(param, val)
		}

		var out Value = VoidValue{}
		for _, stmt := range fn.Body {
			out, err = stmt.Eval(ctx, scope)
			if err != nil {
				return nil, err
			}
		}
		return out, nil

	case BuiltinValue:
		// Eager, left to right, in the caller's environment.
		args := make([]Value, len(n.Args))
		for i, arg := range n.Args {
			v, err := arg.Eval(ctx, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn.Fn(ctx, args), nil

	default:
		return nil, NotCallableError{Val: callee}
	}
}

func (n Define) Eval(ctx context.Context, env *Env) (Value, error) {
	val, err := n.Val.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	env.Set(n.Name, val)
	return VoidValue{}, nil
}
