package husk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []Node {
	t.Helper()
	nodes, err := Parse("", src)
	require.NoError(t, err)
	return nodes
}

func run(t *testing.T, src string, env *Env) Value {
	t.Helper()
	val, err := EvalProgram(context.Background(), mustParse(t, src), env)
	require.NoError(t, err)
	return val
}

// addNative is the classic host-provided arithmetic for tests: the
// language itself has none.
func addNative(ctx context.Context, args []Value) Value {
	var out uint64
	for _, v := range args {
		if i, ok := v.(IntValue); ok {
			out += i.Val
		}
	}
	return IntValue{Val: out}
}

func envWithAdd() *Env {
	env := NewEnv()
	env.Set(Intern("add"), BuiltinValue{Name: "add", Fn: addNative})
	return env
}

func TestEvalLiteral(t *testing.T) {
	env := NewEnv()
	assert.Equal(t, IntValue{Val: 9}, run(t, "9", env))
	assert.Equal(t, FalseValue{}, run(t, "#f", env))
	assert.Zero(t, env.Len(), "literals don't touch the environment")
}

func TestEvalVariable(t *testing.T) {
	t.Run("bound", func(t *testing.T) {
		env := NewEnv()
		env.Set(Intern("x"), IntValue{Val: 3})
		assert.Equal(t, IntValue{Val: 3}, run(t, "x", env))
	})

	t.Run("undefined is fatal", func(t *testing.T) {
		_, err := EvalProgram(context.Background(), mustParse(t, "nosuch"), NewEnv())
		require.Error(t, err)
		var undef UndefinedVariableError
		require.ErrorAs(t, err, &undef)
		assert.Equal(t, Intern("nosuch"), undef.Name)
		assert.Contains(t, err.Error(), "nosuch")
	})
}

func TestCallNonFunction(t *testing.T) {
	env := NewEnv()
	env.Set(Intern("x"), IntValue{Val: 3})
	_, err := EvalProgram(context.Background(), mustParse(t, "(x)"), env)
	require.Error(t, err)
	var notFn NotCallableError
	require.ErrorAs(t, err, &notFn)
	assert.Contains(t, err.Error(), "non-function")
}

func TestDefine(t *testing.T) {
	env := NewEnv()
	val := run(t, "(= x 5)", env)
	assert.Equal(t, VoidValue{}, val, "define yields void")

	got, ok := env.Get(Intern("x"))
	require.True(t, ok)
	assert.Equal(t, IntValue{Val: 5}, got)

	run(t, "(= x 6)", env)
	got, _ = env.Get(Intern("x"))
	assert.Equal(t, IntValue{Val: 6}, got, "define overwrites in place")
}

func TestDeterminism(t *testing.T) {
	nodes := mustParse(t, `((\(a) (= b a) (add a b)) 3)`)

	for range 3 {
		val, err := EvalProgram(context.Background(), nodes, envWithAdd())
		require.NoError(t, err)
		assert.Equal(t, IntValue{Val: 6}, val)
	}
}

func TestScopeIsolation(t *testing.T) {
	env := NewEnv()
	run(t, `((\(x) (= inner x)) 5)`, env)

	_, ok := env.Get(Intern("inner"))
	assert.False(t, ok, "defines inside a call must not leak to the caller")
	_, ok = env.Get(Intern("x"))
	assert.False(t, ok, "parameters must not leak to the caller")
}

func TestDynamicScopeResolution(t *testing.T) {
	// f's body references n, which does not exist when f is defined.
	// Each call resolves n against the caller's bindings at call time.
	env := NewEnv()
	run(t, `(= f (\(ignored) n))`, env)

	run(t, "(= n 1)", env)
	assert.Equal(t, IntValue{Val: 1}, run(t, "(f 0)", env))

	run(t, "(= n 2)", env)
	assert.Equal(t, IntValue{Val: 2}, run(t, "(f 0)", env))
}

func TestSequentialDefinitionAccumulation(t *testing.T) {
	// The body's second statement sees the first statement's define.
	val := run(t, `((\(a) (= b a) (add a b)) 3)`, envWithAdd())
	assert.Equal(t, IntValue{Val: 6}, val)
}

func TestArityMismatch(t *testing.T) {
	t.Run("fewer arguments than parameters", func(t *testing.T) {
		// Only a is bound; b stays unbound, and that's fine as long as
		// the body never reads it.
		val := run(t, `((\(a b) a) 7)`, NewEnv())
		assert.Equal(t, IntValue{Val: 7}, val)
	})

	t.Run("more arguments than parameters", func(t *testing.T) {
		// The surplus argument is not even evaluated: nosuch would be a
		// fatal undefined-variable error otherwise.
		val := run(t, `((\(a) a) 1 nosuch)`, NewEnv())
		assert.Equal(t, IntValue{Val: 1}, val)
	})

	t.Run("unbound parameter read is still fatal", func(t *testing.T) {
		_, err := EvalProgram(context.Background(), mustParse(t, `((\(a b) b) 7)`), NewEnv())
		var undef UndefinedVariableError
		require.ErrorAs(t, err, &undef)
	})
}

func TestEmptyBodyReturnsVoid(t *testing.T) {
	val := run(t, `((\()))`, NewEnv())
	assert.Equal(t, VoidValue{}, val)
}

func TestSnapshotTakenBeforeArguments(t *testing.T) {
	// Argument expressions run in the caller's environment after the
	// callee's scope was already snapshotted, so a define performed by
	// an argument lands in the caller but is invisible to the body.
	env := NewEnv()
	_, err := EvalProgram(context.Background(), mustParse(t, `((\(x) y) (= y 1))`), env)
	var undef UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, Intern("y"), undef.Name)

	got, ok := env.Get(Intern("y"))
	require.True(t, ok, "the argument's define mutates the caller")
	assert.Equal(t, IntValue{Val: 1}, got)
}

func TestInbuiltArgumentsEagerLeftToRight(t *testing.T) {
	var seen []Value
	env := NewEnv()
	env.Set(Intern("record"), BuiltinValue{
		Name: "record",
		Fn: func(ctx context.Context, args []Value) Value {
			seen = append(seen, args...)
			return VoidValue{}
		},
	})
	env.Set(Intern("a"), IntValue{Val: 1})
	env.Set(Intern("b"), IntValue{Val: 2})

	run(t, "(record a b 3)", env)
	assert.Equal(t, []Value{IntValue{Val: 1}, IntValue{Val: 2}, IntValue{Val: 3}}, seen)
}

func TestNativeClosureCapturesState(t *testing.T) {
	// Natives are ordinary func values, so hosts can register closures.
	var calls int
	env := NewEnv()
	env.Set(Intern("tick"), BuiltinValue{
		Name: "tick",
		Fn: func(ctx context.Context, args []Value) Value {
			calls++
			return IntValue{Val: uint64(calls)}
		},
	})

	run(t, "(tick)", env)
	val := run(t, "(tick)", env)
	assert.Equal(t, IntValue{Val: 2}, val)
}

func TestEndToEnd(t *testing.T) {
	t.Run("identity application", func(t *testing.T) {
		val := run(t, `((\(x) x) 7)`, NewEnv())
		assert.Equal(t, IntValue{Val: 7}, val)
	})

	t.Run("define then reference across top-level expressions", func(t *testing.T) {
		env := NewEnv()
		run(t, "(= x 5)", env)
		assert.Equal(t, IntValue{Val: 5}, run(t, "x", env))
	})

	t.Run("function calling function", func(t *testing.T) {
		env := envWithAdd()
		run(t, `(= increment (\(a) (add a 1)))`, env)
		run(t, "(= someval (increment 2))", env)
		assert.Equal(t, IntValue{Val: 3}, run(t, "someval", env))
	})
}

func TestEvalProgramEmpty(t *testing.T) {
	val, err := EvalProgram(context.Background(), nil, NewEnv())
	require.NoError(t, err)
	assert.Equal(t, VoidValue{}, val)
}
