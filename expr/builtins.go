package expr

import (
	"fmt"

	"github.com/npillmayer/fo/value"
)

// Builtins returns the core function library.
func Builtins() []Function {
	return []Function{
		numericFunction("ceiling", value.Numeric.Ceiling),
		numericFunction("floor", value.Numeric.Floor),
		numericFunction("round", value.Numeric.Round),
		numericFunction("abs", value.Numeric.Abs),
		comparingFunction("min", value.Numeric.Min),
		comparingFunction("max", value.Numeric.Max),
		function{name: "rgb", min: 3, max: 3, eval: evalRGB},
		sourceFunction("from-table-column", PropertySource.FromTableColumn),
		sourceFunction("inherited-property-value", PropertySource.InheritedPropertyValue),
		sourceFunction("from-parent", PropertySource.FromParent),
		sourceFunction("from-nearest-specified-value", PropertySource.FromNearestSpecified),
		function{name: "proportional-column-width", min: 1, max: 1, eval: evalProportionalColumnWidth},
		function{name: "label-end", eval: func(_ []value.Value, ctx *Context) (value.Value, error) {
			src, err := source(ctx, "label-end")
			if err != nil {
				return nil, err
			}
			return src.LabelEnd()
		}},
		function{name: "body-start", eval: func(_ []value.Value, ctx *Context) (value.Value, error) {
			src, err := source(ctx, "body-start")
			if err != nil {
				return nil, err
			}
			return src.BodyStart()
		}},
		function{name: "_fo-property-value", min: 1, max: 1, eval: func(args []value.Value, ctx *Context) (value.Value, error) {
			src, err := source(ctx, "_fo-property-value")
			if err != nil {
				return nil, err
			}
			name, err := propertyName(args, 0, "")
			if err != nil {
				return nil, err
			}
			return src.PropertyValue(name)
		}},
	}
}

// numericFunction creates a function of one numeric argument.
func numericFunction(name string, op func(value.Numeric) (value.Numeric, error)) Function {
	return function{name: name, min: 1, max: 1,
		eval: func(args []value.Value, ctx *Context) (value.Value, error) {
			n, ok := value.AsNumeric(args[0])
			if !ok {
				return nil, fmt.Errorf("%w to %s: %s", ErrNonNumericOperand, name, args[0])
			}
			return op(n)
		},
	}
}

// comparingFunction creates a function of two numeric arguments.
func comparingFunction(name string, op func(value.Numeric, value.Numeric) (value.Numeric, error)) Function {
	return function{name: name, min: 2, max: 2,
		eval: func(args []value.Value, ctx *Context) (value.Value, error) {
			a, ok1 := value.AsNumeric(args[0])
			b, ok2 := value.AsNumeric(args[1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w to %s", ErrNonNumericOperand, name)
			}
			return op(a, b)
		},
	}
}

// sourceFunction creates a function which looks up a property in the
// formatting tree. The optional argument names the property; it defaults
// to the property being resolved.
func sourceFunction(name string, lookup func(PropertySource, string) (value.Value, error)) Function {
	return function{name: name, min: 0, max: 1,
		eval: func(args []value.Value, ctx *Context) (value.Value, error) {
			src, err := source(ctx, name)
			if err != nil {
				return nil, err
			}
			prop, err := propertyName(args, 0, ctx.Property)
			if err != nil {
				return nil, err
			}
			return lookup(src, prop)
		},
	}
}

func evalRGB(args []value.Value, ctx *Context) (value.Value, error) {
	var ch [3]float64
	for i, arg := range args {
		n, ok := value.AsNumber(arg)
		if !ok {
			return nil, fmt.Errorf("%w to rgb: %s", ErrNonNumberOperand, arg)
		}
		ch[i] = float64(n)
	}
	return value.RGB(ch[0], ch[1], ch[2]), nil
}

// evalProportionalColumnWidth creates a length in table units. It is legal
// only as an outermost function of property column-width.
func evalProportionalColumnWidth(args []value.Value, ctx *Context) (value.Value, error) {
	if ctx.Property != "column-width" {
		return nil, fmt.Errorf("%w: proportional-column-width used for property %q",
			ErrIllegalContext, ctx.Property)
	}
	if ctx.Depth() > 1 {
		return nil, fmt.Errorf("%w: proportional-column-width nested in function %s",
			ErrIllegalContext, ctx.stack[ctx.Depth()-2].Name())
	}
	n, ok := value.AsNumber(args[0])
	if !ok {
		return nil, fmt.Errorf("%w to proportional-column-width: %s", ErrNonNumberOperand, args[0])
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: proportional-column-width(%s) must be positive", ErrIllegalContext, n)
	}
	return value.TableUnits(float64(n)), nil
}

func source(ctx *Context, fname string) (PropertySource, error) {
	if ctx.Source == nil {
		return nil, fmt.Errorf("%w: %s needs a formatting tree", ErrIllegalContext, fname)
	}
	return ctx.Source, nil
}

// propertyName extracts a property name from argument i, which may be a
// name or a string literal.
func propertyName(args []value.Value, i int, dflt string) (string, error) {
	if i >= len(args) {
		if dflt == "" {
			return "", fmt.Errorf("%w: missing property name", ErrArityMismatch)
		}
		return dflt, nil
	}
	var name string
	switch m := args[i].Match(); m {
	case m.Name(&name), m.Str(&name):
		return name, nil
	}
	return "", fmt.Errorf("%w: property name expected, have %s", ErrSyntax, args[i])
}
