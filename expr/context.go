package expr

import (
	"github.com/npillmayer/fo/value"
)

// DefaultFontSize is the font size used for `em` units if a context does
// not provide one.
var DefaultFontSize = value.Points(12)

// PropertySource gives functions access to the formatting tree. It is
// implemented by the property resolver, bound to the node a property is
// resolved for. All methods take the name of a property; if the name is
// empty, the property currently being resolved is meant.
type PropertySource interface {
	// InheritedPropertyValue returns the computed value of a property on the
	// parent node, following inheritance.
	InheritedPropertyValue(name string) (value.Value, error)
	// FromParent returns the computed value of a property on the parent node.
	FromParent(name string) (value.Value, error)
	// FromNearestSpecified returns the computed value of a property on the
	// nearest ancestor which specifies it explicitly.
	FromNearestSpecified(name string) (value.Value, error)
	// FromTableColumn returns the value of a property on the table column
	// a table cell belongs to.
	FromTableColumn(name string) (value.Value, error)
	// LabelEnd returns the end of the label of the enclosing list item.
	LabelEnd() (value.Value, error)
	// BodyStart returns the start of the body of the enclosing list item.
	BodyStart() (value.Value, error)
	// PropertyValue returns the computed value of another property on the
	// same node.
	PropertyValue(name string) (value.Value, error)
}

// Context is the environment of the evaluation of a single property
// expression. A context must not be shared between concurrent evaluations.
type Context struct {
	Property    string                       // name of the property being resolved
	PercentBase value.PercentBase            // percent base of the property, may be nil
	FontSize    func() (value.Length, error) // current font size, for `em` units
	Source      PropertySource               // access to the formatting tree, may be nil
	Functions   *Registry                    // function library; DefaultRegistry if nil
	stack       []Function                   // active functions, innermost last
}

// Evaluate parses and evaluates a property expression within ctx.
func (ctx *Context) Evaluate(text string) (value.Value, error) {
	return Parse(text, ctx)
}

func (ctx *Context) push(f Function) {
	ctx.stack = append(ctx.stack, f)
}

func (ctx *Context) pop() {
	if len(ctx.stack) > 0 {
		ctx.stack[len(ctx.stack)-1] = nil
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
	}
}

// Depth returns the number of active functions. During evaluation of the
// arguments of a function f and during f.Eval, f is the innermost active
// function.
func (ctx *Context) Depth() int {
	return len(ctx.stack)
}

// Enclosing returns the innermost active function, or nil.
func (ctx *Context) Enclosing() Function {
	if len(ctx.stack) == 0 {
		return nil
	}
	return ctx.stack[len(ctx.stack)-1]
}

// InFunction is true if a function with the given name is active.
func (ctx *Context) InFunction(name string) bool {
	for _, f := range ctx.stack {
		if f.Name() == name {
			return true
		}
	}
	return false
}

func (ctx *Context) fontSize() (value.Length, error) {
	if ctx.FontSize == nil {
		return DefaultFontSize, nil
	}
	return ctx.FontSize()
}

func (ctx *Context) registry() *Registry {
	if ctx.Functions == nil {
		return DefaultRegistry()
	}
	return ctx.Functions
}
