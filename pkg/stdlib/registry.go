// Package stdlib is the host side of the Husk language: a registry of
// native functions installed into an environment before evaluation. The
// language itself defines none of these, not even arithmetic or
// branching, so an environment without them can only shuffle values
// around.
package stdlib

import (
	"io"
	"os"

	"github.com/husklang/husk/pkg/husk"
)

// Def describes one native function.
type Def struct {
	Name string
	Doc  string
	Fn   husk.NativeFunc
}

var registry []Def

// Register adds a native definition to the registry.
func Register(def Def) {
	registry = append(registry, def)
}

// ForEach iterates over registered natives in registration order.
func ForEach(fn func(Def)) {
	for _, def := range registry {
		fn(def)
	}
}

// Builder provides a fluent API for defining natives.
type Builder struct {
	def Def
}

// Builtin creates a new native function builder.
func Builtin(name string) *Builder {
	return &Builder{def: Def{Name: name}}
}

// Doc sets the documentation string.
func (b *Builder) Doc(doc string) *Builder {
	b.def.Doc = doc
	return b
}

// Impl sets the implementation and registers the native.
func (b *Builder) Impl(fn husk.NativeFunc) {
	b.def.Fn = fn
	Register(b.def)
}

// Option configures Install.
type Option func(*settings)

type settings struct {
	out io.Writer
}

// WithOutput directs print's output somewhere other than stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// Install binds every registered native into env, plus a print function
// capturing the configured output writer.
func Install(env *husk.Env, opts ...Option) {
	s := settings{out: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	for _, def := range registry {
		env.Set(husk.Intern(def.Name), husk.BuiltinValue{Name: def.Name, Fn: def.Fn})
	}
	// print is built here rather than in the static registry so that the
	// closure can capture the writer.
	env.Set(husk.Intern("print"), husk.BuiltinValue{Name: "print", Fn: printFn(s.out)})
}
