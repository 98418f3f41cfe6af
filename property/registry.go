package property

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/fo/expr"
)

// Registry maps property names to makers. A registry is constructed once
// and is read-only afterwards; it is safe for concurrent use.
type Registry struct {
	makers     map[string]Maker
	shorthands map[string]*shorthand
	functions  *expr.Registry
	config     Config
}

// Option configures a registry during construction.
type Option func(*builder) error

type builder struct {
	config    Config
	overrides map[string]string
	makers    []Maker
	functions *expr.Registry
}

// WithConfig sets the configuration of a registry.
func WithConfig(c Config) Option {
	return func(b *builder) error {
		b.config = c
		return nil
	}
}

// WithDefaultOverrides replaces the initial expressions of built-in
// properties. Overrides for shorthands are distributed to their components.
func WithDefaultOverrides(overrides map[string]string) Option {
	return func(b *builder) error {
		for k, v := range overrides {
			b.overrides[k] = v
		}
		return nil
	}
}

// WithMakers adds makers, replacing built-in makers of the same name.
func WithMakers(makers ...Maker) Option {
	return func(b *builder) error {
		b.makers = append(b.makers, makers...)
		return nil
	}
}

// WithFunctions sets the function library for expressions.
func WithFunctions(functions *expr.Registry) Option {
	return func(b *builder) error {
		if functions == nil {
			return fmt.Errorf("function registry is nil")
		}
		b.functions = functions
		return nil
	}
}

// NewRegistry creates a registry with the built-in makers.
func NewRegistry(opts ...Option) (*Registry, error) {
	b := &builder{
		config:    DefaultConfig(),
		overrides: make(map[string]string),
		functions: expr.DefaultRegistry(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if _, err := b.config.fontSize(); err != nil {
		return nil, fmt.Errorf("configured font size: %w", err)
	}
	r := &Registry{
		makers:     make(map[string]Maker),
		shorthands: make(map[string]*shorthand),
		functions:  b.functions,
		config:     b.config,
	}
	if r.config.MaxDepth <= 0 {
		r.config.MaxDepth = DefaultConfig().MaxDepth
	}
	builtin := make(map[string]*maker)
	for _, m := range standardMakers(r.config) {
		builtin[m.name] = m
		r.makers[m.name] = m
	}
	for _, sh := range standardShorthands() {
		r.shorthands[sh.name] = sh
	}
	if err := r.override(builtin, b.overrides); err != nil {
		return nil, err
	}
	for _, m := range b.makers {
		r.makers[m.Name()] = m
	}
	tracer().Debugf("property registry with %d makers", len(r.makers))
	return r, nil
}

func (r *Registry) override(builtin map[string]*maker, overrides map[string]string) error {
	expanded := make(map[string]string, len(overrides))
	for name, text := range overrides {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: empty initial value for %s", ErrInvalidValue, name)
		}
		sh, ok := r.shorthands[name]
		if !ok {
			continue
		}
		comps, err := sh.expandDefault(text)
		if err != nil {
			return err
		}
		for c, t := range comps {
			expanded[c] = t
		}
	}
	for name, text := range overrides { // explicit components take precedence
		if _, ok := r.shorthands[name]; !ok {
			expanded[name] = text
		}
	}
	for name, text := range expanded {
		m, ok := builtin[name]
		if !ok {
			return fmt.Errorf("%w: cannot override initial value of %q", ErrUnknownProperty, name)
		}
		if m.noInitial {
			return fmt.Errorf("%w: %s", ErrNoDefault, name)
		}
		if m.dflt != nil && m.corresponding != nil {
			return fmt.Errorf("%w: initial value of %s follows its absolute counterpart", ErrInvalidValue, name)
		}
		tracer().Debugf("initial value of %s overridden: %s", name, text)
		m.initial = strings.TrimSpace(text)
	}
	return nil
}

var defaultRegistry *Registry
var defaultRegistryOnce sync.Once

// DefaultRegistry returns a registry with the built-in makers and the
// default configuration.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		var err error
		if defaultRegistry, err = NewRegistry(); err != nil {
			panic(err) // built-in configuration is valid
		}
	})
	return defaultRegistry
}

// Maker returns the maker for a property.
func (r *Registry) Maker(name string) (Maker, bool) {
	m, ok := r.makers[name]
	return m, ok
}

// IsShorthand is true if name is a shorthand property.
func (r *Registry) IsShorthand(name string) bool {
	_, ok := r.shorthands[name]
	return ok
}

// Names returns the names of all properties, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.makers))
	for name := range r.makers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config returns the configuration of a registry.
func (r *Registry) Config() Config {
	return r.config
}
