package property

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fo/expr"
	"github.com/npillmayer/fo/value"
)

// Resolve computes the value of a property for a node.
//
// The registry does not cache resolved values; callers are expected to do
// so and to report cached values by Node.ResolvedProperty.
func (r *Registry) Resolve(node Node, name string) (value.Value, error) {
	res := r.newResolution()
	return r.resolve(res, node, name)
}

// PropertyList gives makers access to the properties of a single node
// during a resolution.
type PropertyList struct {
	reg  *Registry
	node Node
	res  *resolution
}

// Node returns the node whose properties are resolved.
func (pl *PropertyList) Node() Node {
	return pl.node
}

// Registry returns the registry the resolution runs in.
func (pl *PropertyList) Registry() *Registry {
	return pl.reg
}

// Get resolves another property of the node.
func (pl *PropertyList) Get(name string) (value.Value, error) {
	return pl.reg.resolve(pl.res, pl.node, name)
}

// Inherited returns the value of a property on the parent node. At the
// root, the initial value of the property is returned.
func (pl *PropertyList) Inherited(name string) (value.Value, error) {
	if parent := pl.node.ParentNode(); parent != nil {
		return pl.reg.resolve(pl.res, parent, name)
	}
	m, ok := pl.reg.Maker(name)
	if !ok {
		return nil, resolutionError(pl.node, name, ErrUnknownProperty)
	}
	return m.Default(pl)
}

// IsSpecified is true if a property or one of its shorthands is set
// explicitly on the node.
func (pl *PropertyList) IsSpecified(name string) bool {
	m, ok := pl.reg.Maker(name)
	if !ok {
		return false
	}
	return pl.reg.isSpecified(pl, m)
}

// WritingMode returns the writing mode of the node.
func (pl *PropertyList) WritingMode() (WritingMode, error) {
	v, err := pl.Get("writing-mode")
	if err != nil {
		return LrTb, err
	}
	return ParseWritingMode(v.String())
}

// FontSize returns the computed font size of the node.
func (pl *PropertyList) FontSize() (value.Length, error) {
	v, err := pl.Get("font-size")
	if err != nil {
		return value.ZeroLength, err
	}
	return asLength(v)
}

// ParentFontSize returns the computed font size of the parent node, or
// the configured default font size at the root.
func (pl *PropertyList) ParentFontSize() (value.Length, error) {
	parent := pl.node.ParentNode()
	if parent == nil {
		return pl.reg.config.fontSize()
	}
	return pl.at(parent).FontSize()
}

func (pl *PropertyList) at(node Node) *PropertyList {
	return &PropertyList{reg: pl.reg, node: node, res: pl.res}
}

// sum adds the lengths of a list of properties.
func (pl *PropertyList) sum(names ...string) (value.Numeric, error) {
	total := value.LengthNumeric(value.ZeroLength)
	for _, name := range names {
		v, err := pl.Get(name)
		if err != nil {
			return total, err
		}
		n, ok := value.AsNumeric(v)
		if !ok {
			if v == value.Name("auto") {
				continue
			}
			return total, fmt.Errorf("%w: %s = %s is not a length", ErrInvalidValue, name, v)
		}
		if total, err = total.Add(n); err != nil {
			return total, err
		}
	}
	return total, nil
}

func (pl *PropertyList) percentBase(kind BaseKind) value.PercentBase {
	switch kind {
	case ContainingWidth, ContainingHeight:
		return pl.node.PercentBase(kind)
	case FontSizeBase, ParentFontSize:
		var fs value.Length
		var err error
		if kind == FontSizeBase {
			fs, err = pl.FontSize()
		} else {
			fs, err = pl.ParentFontSize()
		}
		if err != nil {
			return errorBase{err: err}
		}
		return value.LengthBase(fs)
	}
	return nil
}

// errorBase is a percent base which could not be computed.
type errorBase struct {
	err error
}

func (b errorBase) Dimension() int              { return 1 }
func (b errorBase) BaseValue() (float64, error) { return 0, b.err }

// evaluate evaluates an expression for maker m in the context of pl.
func (pl *PropertyList) evaluate(m Maker, text string) (value.Value, error) {
	if vm, ok := m.(Verbatim); ok && vm.IsVerbatim() {
		return value.Str(strings.TrimSpace(text)), nil
	}
	name := m.Name()
	ctx := &expr.Context{
		Property:  name,
		Source:    &source{pl: pl, property: m.Name()},
		Functions: pl.reg.functions,
	}
	if strings.Contains(text, "%") { // percent bases may need resolution of other properties
		ctx.PercentBase = m.PercentBase(pl)
	}
	if name == "font-size" {
		ctx.FontSize = pl.ParentFontSize
	} else {
		ctx.FontSize = pl.FontSize
	}
	return expr.Parse(text, ctx)
}

// --- Resolution ------------------------------------------------------------

// resolution tracks the properties currently being resolved, to detect
// cycles. A resolution is owned by a single call to Resolve.
type resolution struct {
	inflight map[frame]struct{}
	depth    int
	maxDepth int
}

type frame struct {
	node Node
	name string
}

func (r *Registry) newResolution() *resolution {
	return &resolution{
		inflight: make(map[frame]struct{}),
		maxDepth: r.config.MaxDepth,
	}
}

func (res *resolution) enter(node Node, name string) error {
	f := frame{node: node, name: name}
	if _, ok := res.inflight[f]; ok {
		return fmt.Errorf("%w: %s of <%s> depends on itself", ErrResolutionCycle, name, node.ElementName())
	}
	if res.depth >= res.maxDepth {
		return fmt.Errorf("%w: nesting of property references exceeds %d", ErrResolutionCycle, res.maxDepth)
	}
	res.inflight[f] = struct{}{}
	res.depth++
	return nil
}

func (res *resolution) leave(node Node, name string) {
	delete(res.inflight, frame{node: node, name: name})
	res.depth--
}

func (r *Registry) resolve(res *resolution, node Node, name string) (value.Value, error) {
	if v, ok := node.ResolvedProperty(name); ok {
		return v, nil
	}
	m, ok := r.Maker(name)
	if !ok {
		return nil, resolutionError(node, name, ErrUnknownProperty)
	}
	if err := res.enter(node, name); err != nil {
		return nil, resolutionError(node, name, err)
	}
	defer res.leave(node, name)
	v, err := r.compute(m, &PropertyList{reg: r, node: node, res: res})
	if err != nil {
		return nil, resolutionError(node, name, err)
	}
	return v, nil
}

// compute runs the resolution steps for a property of a node.
func (r *Registry) compute(m Maker, pl *PropertyList) (value.Value, error) {
	name := m.Name()
	// 1. explicit value
	if text, ok := explicit(pl.node, m); ok {
		if isInherit(text) {
			return pl.Inherited(name)
		}
		v, err := pl.evaluate(m, text)
		if err != nil {
			return nil, err
		}
		return m.Convert(v, pl)
	}
	// 1b. set by a shorthand
	for _, sh := range m.Shorthands() {
		text, ok := pl.node.ExplicitProperty(sh)
		if !ok {
			continue
		}
		v, found, err := r.fromShorthand(pl, m, sh, text)
		if err != nil || found {
			return v, err
		}
	}
	// 2. forced by a corresponding property; not cached
	if m.IsCorresponding() {
		v, forced, err := m.Corresponding(pl)
		if err != nil || forced {
			return v, err
		}
	}
	// 3. inherited
	if m.IsInherited() {
		return r.inherit(pl, m)
	}
	// 4. initial value
	return m.Default(pl)
}

// inherit finds the nearest ancestor specifying the property and resolves
// it there. The walk is iterative; only ancestors actually specifying the
// property count towards the nesting limit.
func (r *Registry) inherit(pl *PropertyList, m Maker) (value.Value, error) {
	name := m.Name()
	last := pl.node
	for a := pl.node.ParentNode(); a != nil; a = a.ParentNode() {
		if v, ok := a.ResolvedProperty(name); ok {
			return v, nil
		}
		apl := pl.at(a)
		if r.isSpecified(apl, m) {
			return r.resolve(pl.res, a, name)
		}
		if m.IsCorresponding() {
			v, forced, err := r.correspondingAt(apl, m)
			if err != nil || forced {
				return v, err
			}
		}
		last = a
	}
	return m.Default(pl.at(last))
}

func (r *Registry) correspondingAt(pl *PropertyList, m Maker) (value.Value, bool, error) {
	if err := pl.res.enter(pl.node, m.Name()); err != nil {
		return nil, false, err
	}
	defer pl.res.leave(pl.node, m.Name())
	return m.Corresponding(pl)
}

func (r *Registry) isSpecified(pl *PropertyList, m Maker) bool {
	if _, ok := explicit(pl.node, m); ok {
		return true
	}
	for _, sh := range m.Shorthands() {
		if _, ok := pl.node.ExplicitProperty(sh); ok {
			return true
		}
	}
	return false
}

// explicit looks up the explicit expression of a property. For conditional
// properties, the component `<name>.length` is accepted as well.
func explicit(node Node, m Maker) (string, bool) {
	if text, ok := node.ExplicitProperty(m.Name()); ok {
		return text, true
	}
	if m.Conditionality() != NotConditional {
		return node.ExplicitProperty(m.Name() + ".length")
	}
	return "", false
}

func isInherit(text string) bool {
	return strings.TrimSpace(text) == "inherit"
}

func asLength(v value.Value) (value.Length, error) {
	n, ok := value.AsNumeric(v)
	if !ok || n.Dimension() != 1 {
		return value.ZeroLength, fmt.Errorf("%w: %s is not a length", ErrInvalidValue, v)
	}
	return n.Length(), nil
}
