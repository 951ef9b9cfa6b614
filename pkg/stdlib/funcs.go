package stdlib

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/husklang/husk/pkg/husk"
)

func init() {
	// add: sums its arguments. Non-int arguments are reported and
	// contribute nothing.
	Builtin("add").
		Doc("sums its integer arguments").
		Impl(func(ctx context.Context, args []husk.Value) husk.Value {
			var out uint64
			for _, v := range args {
				if i, ok := v.(husk.IntValue); ok {
					out += i.Val
				} else {
					slog.Warn("tried to add a non-int", "value", v.String())
				}
			}
			return husk.IntValue{Val: out}
		})

	// eq: void when all arguments are structurally equal to the first,
	// #f otherwise. Void stands in for true since everything except #f
	// is truthy. Function values are never equal, even to themselves.
	Builtin("eq").
		Doc("compares its arguments for structural equality").
		Impl(func(ctx context.Context, args []husk.Value) husk.Value {
			if len(args) == 0 {
				return husk.VoidValue{}
			}
			first := args[0]
			for _, v := range args[1:] {
				if !husk.Equal(v, first) {
					return husk.FalseValue{}
				}
			}
			return husk.VoidValue{}
		})

	// if: (if cond then else?). Both branches were already evaluated by
	// the time we run; there is no laziness. To defer a branch, wrap it
	// in a zero-parameter function and call the result.
	Builtin("if").
		Doc("returns its second argument unless the first is #f, else its third (or void)").
		Impl(func(ctx context.Context, args []husk.Value) husk.Value {
			switch {
			case len(args) < 2:
				slog.Warn("if called with too few arguments", "got", len(args))
				return husk.VoidValue{}
			case len(args) > 3:
				slog.Warn("if called with too many arguments", "got", len(args))
			}
			if _, isFalse := args[0].(husk.FalseValue); isFalse {
				if len(args) >= 3 {
					return args[2]
				}
				return husk.VoidValue{}
			}
			return args[1]
		})
}

// printFn writes each argument on its own line to w.
func printFn(w io.Writer) husk.NativeFunc {
	return func(ctx context.Context, args []husk.Value) husk.Value {
		for _, v := range args {
			fmt.Fprintln(w, v)
		}
		return husk.VoidValue{}
	}
}
