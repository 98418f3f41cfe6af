package value

import "reflect"

// Matcher matches values by kind. Every matcher method returns the matcher
// itself on success (after extracting the value into its argument, if
// non-nil) and nil otherwise. This allows type switches of the form
//
//     switch m := v.Match(); m {
//     case m.Number(&n):
//     case m.Length(&l):
//     }
//
type Matcher struct {
	v Value
}

// Number matches a Number.
func (m *Matcher) Number(n *float64) *Matcher {
	if x, ok := m.v.(Number); ok {
		if n != nil {
			*n = float64(x)
		}
		return m
	}
	return nil
}

// Length matches a Length.
func (m *Matcher) Length(l *Length) *Matcher {
	if x, ok := m.v.(Length); ok {
		if l != nil {
			*l = x
		}
		return m
	}
	return nil
}

// Numeric matches anything convertible to a numeric, i.e. numbers, lengths
// and numerics.
func (m *Matcher) Numeric(n *Numeric) *Matcher {
	if x, ok := AsNumeric(m.v); ok {
		if n != nil {
			*n = x
		}
		return m
	}
	return nil
}

// Str matches a string literal.
func (m *Matcher) Str(s *string) *Matcher {
	if x, ok := m.v.(Str); ok {
		if s != nil {
			*s = string(x)
		}
		return m
	}
	return nil
}

// Name matches a name.
func (m *Matcher) Name(s *string) *Matcher {
	if x, ok := m.v.(Name); ok {
		if s != nil {
			*s = string(x)
		}
		return m
	}
	return nil
}

// Keyword matches a name equal to kw.
func (m *Matcher) Keyword(kw string) *Matcher {
	if x, ok := m.v.(Name); ok && string(x) == kw {
		return m
	}
	return nil
}

// Color matches a color.
func (m *Matcher) Color(c *Color) *Matcher {
	if x, ok := m.v.(Color); ok {
		if c != nil {
			*c = x
		}
		return m
	}
	return nil
}

// List matches a list.
func (m *Matcher) List(l *List) *Matcher {
	if x, ok := m.v.(List); ok {
		if l != nil {
			*l = x
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// Patterns holds one result per value kind, to be selected by
// MatchExpr.OneOf.
type Patterns[T any] struct {
	Number  T
	Length  T
	Numeric T
	Str     T
	Name    T
	Color   T
	List    T
	Default T
}

// Pattern starts a pattern matching expression over v.
func Pattern[T any](v Value) *MatchExpr[T] {
	return &MatchExpr[T]{v: v}
}

// MatchExpr is a pattern matching expression with result type T.
type MatchExpr[T any] struct {
	v    Value
	bind *T
}

// With binds a variable, which will receive the result of OneOf.
func (e *MatchExpr[T]) With(x *T) *MatchExpr[T] {
	e.bind = x
	return e
}

// OneOf selects the pattern matching the kind of the value. Kinds left
// unset (zero) in p select p.Default.
func (e *MatchExpr[T]) OneOf(p Patterns[T]) T {
	r := p.Default
	if e.v != nil {
		switch e.v.Kind() {
		case KindNumber:
			r = p.Number
		case KindLength:
			r = p.Length
		case KindNumeric:
			r = p.Numeric
		case KindString:
			r = p.Str
		case KindName:
			r = p.Name
		case KindColor:
			r = p.Color
		case KindList:
			r = p.List
		}
		if reflect.ValueOf(&r).Elem().IsZero() {
			r = p.Default
		}
	}
	if e.bind != nil {
		*e.bind = r
	}
	return r
}
