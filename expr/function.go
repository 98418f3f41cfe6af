package expr

import (
	"sort"
	"sync"

	"github.com/npillmayer/fo/value"
)

// Function is a function of the expression language.
type Function interface {
	Name() string
	// Arity returns the minimum and maximum number of arguments.
	Arity() (min, max int)
	// Eval evaluates the function for already evaluated arguments. The
	// number of arguments has been checked against Arity.
	Eval(args []value.Value, ctx *Context) (value.Value, error)
}

// Registry maps function names to functions. A registry is immutable after
// construction and may be shared between goroutines.
type Registry struct {
	functions map[string]Function
}

// NewRegistry creates a registry from a set of functions. Functions later
// in the argument list replace functions of the same name earlier in the
// list.
func NewRegistry(functions ...Function) *Registry {
	r := &Registry{functions: make(map[string]Function, len(functions))}
	for _, f := range functions {
		if f == nil {
			continue
		}
		r.functions[f.Name()] = f
	}
	return r
}

// Lookup finds a function by name.
func (r *Registry) Lookup(name string) (Function, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.functions[name]
	return f, ok
}

// Names returns the names of all functions in r, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extend creates a new registry with all functions of r plus additional
// ones. r is left unchanged.
func (r *Registry) Extend(functions ...Function) *Registry {
	all := make([]Function, 0, len(r.functions)+len(functions))
	for _, f := range r.functions {
		all = append(all, f)
	}
	return NewRegistry(append(all, functions...)...)
}

var defaultRegistry *Registry
var defaultRegistryOnce sync.Once

// DefaultRegistry returns the registry of built-in functions.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(Builtins()...)
		tracer().Debugf("function registry initialized with %d functions", len(defaultRegistry.functions))
	})
	return defaultRegistry
}

// --- Function adapter ------------------------------------------------------

type evalFunc func(args []value.Value, ctx *Context) (value.Value, error)

type function struct {
	name     string
	min, max int
	eval     evalFunc
}

func (f function) Name() string      { return f.name }
func (f function) Arity() (int, int) { return f.min, f.max }
func (f function) Eval(args []value.Value, ctx *Context) (value.Value, error) {
	return f.eval(args, ctx)
}

// NewFunction creates a function from an evaluation callback, to be used
// for extending registries.
func NewFunction(name string, min, max int, eval func([]value.Value, *Context) (value.Value, error)) Function {
	return function{name: name, min: min, max: max, eval: eval}
}
