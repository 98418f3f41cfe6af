package property

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/fo/expr"
	"github.com/npillmayer/fo/value"
)

// Maker is the strategy for computing a single property. Makers are
// long-lived and shared between resolutions; implementations must be safe
// for concurrent use.
type Maker interface {
	Name() string
	IsInherited() bool
	IsCorresponding() bool
	// Shorthands lists shorthand properties which may set this property,
	// most specific first.
	Shorthands() []string
	// PercentBase returns the reference for percentages in expressions
	// for this property.
	PercentBase(pl *PropertyList) value.PercentBase
	// Convert converts the result of an expression into a value suitable
	// for this property.
	Convert(v value.Value, pl *PropertyList) (value.Value, error)
	// Default returns the initial value of the property.
	Default(pl *PropertyList) (value.Value, error)
	// Corresponding computes the property from a corresponding property, if
	// that is specified on the node (forced == true).
	Corresponding(pl *PropertyList) (v value.Value, forced bool, err error)
	Conditionality() Conditionality
}

// Verbatim is implemented by makers which take the text of an explicit
// property as a string without evaluating it.
type Verbatim interface {
	IsVerbatim() bool
}

// --- Generic maker ---------------------------------------------------------

type convertFunc func(m *maker, v value.Value, pl *PropertyList) (value.Value, error)
type correspondingFunc func(m *maker, pl *PropertyList) (value.Value, bool, error)
type defaultFunc func(m *maker, pl *PropertyList) (value.Value, error)

// maker is the implementation of all built-in makers. The kind of a
// property is expressed by its conversion function; corresponding
// properties and node dependent initial values are handled by hooks.
type maker struct {
	name          string
	inherited     bool
	verbatim      bool
	nodeDependent bool // initial value depends on the node
	noInitial     bool
	shorthands    []string
	base          BaseKind
	initial       string                 // expression of the initial value
	keywords      map[string]value.Value // keyword substitutions
	convert       convertFunc
	corresponding correspondingFunc
	dflt          defaultFunc // replaces the initial expression
	cond          Conditionality

	once       sync.Once // guards cached initial value
	initialVal value.Value
	initialErr error
}

// makerOption configures a maker during construction.
type makerOption func(*maker)

func newMaker(name string, initial string, convert convertFunc, opts ...makerOption) *maker {
	m := &maker{name: name, initial: initial, convert: convert}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func inherited() makerOption {
	return func(m *maker) { m.inherited = true }
}

func verbatim() makerOption {
	return func(m *maker) { m.verbatim = true }
}

func noInitial() makerOption {
	return func(m *maker) { m.noInitial = true }
}

func percentOf(kind BaseKind) makerOption {
	return func(m *maker) { m.base = kind }
}

func setBy(shorthands ...string) makerOption {
	return func(m *maker) { m.shorthands = shorthands }
}

func keywords(kw map[string]value.Value) makerOption {
	return func(m *maker) { m.keywords = kw }
}

func conditional(c Conditionality) makerOption {
	return func(m *maker) { m.cond = c }
}

func nodeDependent() makerOption {
	return func(m *maker) { m.nodeDependent = true }
}

func correspondsTo(f correspondingFunc) makerOption {
	return func(m *maker) { m.corresponding = f }
}

func initialFrom(f defaultFunc) makerOption {
	return func(m *maker) {
		m.dflt = f
		m.nodeDependent = true
	}
}

// Name is part of interface Maker.
func (m *maker) Name() string { return m.name }

// IsInherited is part of interface Maker.
func (m *maker) IsInherited() bool { return m.inherited }

// IsCorresponding is part of interface Maker.
func (m *maker) IsCorresponding() bool { return m.corresponding != nil }

// IsVerbatim is part of interface Verbatim.
func (m *maker) IsVerbatim() bool { return m.verbatim }

// Shorthands is part of interface Maker.
func (m *maker) Shorthands() []string { return m.shorthands }

// Conditionality is part of interface Maker.
func (m *maker) Conditionality() Conditionality { return m.cond }

// PercentBase is part of interface Maker.
func (m *maker) PercentBase(pl *PropertyList) value.PercentBase {
	return pl.percentBase(m.base)
}

// Convert is part of interface Maker.
func (m *maker) Convert(v value.Value, pl *PropertyList) (value.Value, error) {
	if n, ok := v.(value.Name); ok && m.keywords != nil {
		if kw, ok := m.keywords[string(n)]; ok {
			v = kw
		}
	}
	if m.convert == nil {
		return v, nil
	}
	return m.convert(m, v, pl)
}

// Corresponding is part of interface Maker.
func (m *maker) Corresponding(pl *PropertyList) (value.Value, bool, error) {
	if m.corresponding == nil {
		return nil, false, nil
	}
	return m.corresponding(m, pl)
}

// Default is part of interface Maker.
//
// Initial values are computed once and cached, if they do not depend on the
// node. Otherwise they are re-computed for every call.
func (m *maker) Default(pl *PropertyList) (value.Value, error) {
	if m.noInitial {
		return nil, ErrNoDefault
	}
	if m.dflt != nil {
		return m.dflt(m, pl)
	}
	if !m.cacheable() {
		return m.computeInitial(pl)
	}
	m.once.Do(func() {
		m.initialVal, m.initialErr = m.computeInitial(pl)
		tracer().Debugf("initial value of %s = %v", m.name, m.initialVal)
	})
	return m.initialVal, m.initialErr
}

func (m *maker) computeInitial(pl *PropertyList) (value.Value, error) {
	v, err := pl.evaluate(m, m.initial)
	if err != nil {
		return nil, err
	}
	return m.Convert(v, pl)
}

func (m *maker) cacheable() bool {
	return !m.nodeDependent && !m.verbatim && isContextFree(m.initial)
}

// isContextFree is true for expressions which do not contain percentages,
// font-relative lengths or function calls.
func isContextFree(text string) bool {
	tokens, err := expr.Tokens(text)
	if err != nil {
		return false
	}
	for _, t := range tokens {
		switch t.Type {
		case expr.PERCENT, expr.FUNCTION_LPAR:
			return false
		case expr.NUMERIC:
			if strings.HasSuffix(t.Text, "em") {
				return false
			}
		}
	}
	return true
}

func (m *maker) String() string {
	return fmt.Sprintf("maker(%s)", m.name)
}

func invalid(m *maker, v value.Value) error {
	return fmt.Errorf("%w for %s: %s", ErrInvalidValue, m.name, v)
}

// --- Conversion functions per kind -----------------------------------------

// lengthKind accepts lengths, zero and a set of keywords.
func lengthKind(names ...string) convertFunc {
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		var n value.Numeric
		var s string
		switch mt := v.Match(); mt {
		case mt.Name(&s):
			if contains(names, s) {
				return v, nil
			}
		case mt.Numeric(&n):
			if n.Dimension() == 1 {
				return n.Length(), nil
			}
			if n.Scalar() == 0 {
				return value.ZeroLength, nil
			}
		}
		return nil, invalid(m, v)
	}
}

// numberKind accepts numbers and a set of keywords.
func numberKind(names ...string) convertFunc {
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		var s string
		if v.Match().Name(&s) != nil && contains(names, s) {
			return v, nil
		}
		if n, ok := value.AsNumber(v); ok {
			return n, nil
		}
		return nil, invalid(m, v)
	}
}

// lengthOrNumberKind accepts lengths, numbers (factors) and keywords,
// as needed for line-height.
func lengthOrNumberKind(names ...string) convertFunc {
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		var n value.Numeric
		var s string
		switch mt := v.Match(); mt {
		case mt.Name(&s):
			if contains(names, s) {
				return v, nil
			}
		case mt.Numeric(&n):
			return n.Value(), nil
		}
		return nil, invalid(m, v)
	}
}

// enumKind accepts one of a set of names.
func enumKind(names ...string) convertFunc {
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		var s string
		switch mt := v.Match(); mt {
		case mt.Name(&s), mt.Str(&s):
			if contains(names, s) {
				return value.Name(s), nil
			}
		}
		return nil, invalid(m, v)
	}
}

// colorKind accepts colors, color names and `transparent`.
func colorKind(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
	var s string
	switch mt := v.Match(); mt {
	case mt.Color(nil):
		return v, nil
	case mt.Name(&s), mt.Str(&s):
		if s == "transparent" {
			return value.Name(s), nil
		}
		if c, ok := value.NamedColor(s); ok {
			return c, nil
		}
		if c, err := value.ParseColor(s); err == nil {
			return c, nil
		}
	}
	return nil, invalid(m, v)
}

// stringKind accepts anything and represents it as a string.
func stringKind(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
	if s, ok := v.(value.Str); ok {
		return s, nil
	}
	return value.Str(v.String()), nil
}

// writingModeKind normalizes writing mode abbreviations.
func writingModeKind(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
	var s string
	switch mt := v.Match(); mt {
	case mt.Name(&s), mt.Str(&s):
		wm, err := ParseWritingMode(s)
		if err != nil {
			return nil, err
		}
		return value.Name(wm.String()), nil
	}
	return nil, invalid(m, v)
}

// borderWidthKind converts border widths. A border with style none or
// hidden has a computed width of zero.
func borderWidthKind(styleProperty string) convertFunc {
	asLength := lengthKind()
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		l, err := asLength(m, v, pl)
		if err != nil {
			return nil, err
		}
		style, err := pl.Get(styleProperty)
		if err != nil {
			return nil, err
		}
		if style == value.Name("none") || style == value.Name("hidden") {
			return value.ZeroLength, nil
		}
		return l, nil
	}
}

func contains(names []string, s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}
