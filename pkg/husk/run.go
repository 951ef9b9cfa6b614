package husk

import (
	"context"
	"os"
)

// RunSource parses src and evaluates every top-level expression against
// env, returning the value of the last one.
func RunSource(ctx context.Context, filename, src string, env *Env) (Value, error) {
	nodes, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return EvalProgram(ctx, nodes, env)
}

// RunFile reads and runs a script file against env.
func RunFile(ctx context.Context, path string, env *Env) (Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return RunSource(ctx, path, string(src), env)
}
