package value

import (
	"errors"
	"strconv"
	"strings"
)

// Errors of the value algebra.
var (
	ErrIncompatibleDimensions  = errors.New("operands have incompatible dimensions")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrUnknownUnit             = errors.New("unknown unit")
	ErrUnresolvedTableUnits    = errors.New("proportional table units cannot be made absolute")
	ErrInvalidColor            = errors.New("invalid color specification")
	ErrIllegalPercentDimension = errors.New("percent base has illegal dimension")
)

// Kind is the type tag of a value.
type Kind uint8

// Kinds of values.
const (
	KindNone Kind = iota
	KindNumber
	KindLength
	KindNumeric
	KindString
	KindName
	KindColor
	KindList
)

var kindNames = [...]string{"none", "number", "length", "numeric", "string", "name", "color", "list"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown>"
}

// Value is a resolved (or partially resolved) property value.
type Value interface {
	Kind() Kind
	String() string
	Match() *Matcher
}

// --- Number ----------------------------------------------------------------

// Number is a dimensionless value.
type Number float64

// Kind is part of interface Value.
func (n Number) Kind() Kind { return KindNumber }

// Match is part of interface Value.
func (n Number) Match() *Matcher { return &Matcher{v: n} }

func (n Number) String() string {
	return formatFloat(float64(n))
}

// --- Strings and names -----------------------------------------------------

// Str is a string literal, e.g. 'Times' or "serif".
type Str string

// Kind is part of interface Value.
func (s Str) Kind() Kind { return KindString }

// Match is part of interface Value.
func (s Str) Match() *Matcher { return &Matcher{v: s} }

func (s Str) String() string { return string(s) }

// Name is an identifier, most often a keyword like `auto` or `lr-tb`.
type Name string

// Kind is part of interface Value.
func (n Name) Kind() Kind { return KindName }

// Match is part of interface Value.
func (n Name) Match() *Matcher { return &Matcher{v: n} }

func (n Name) String() string { return string(n) }

// --- List ------------------------------------------------------------------

// List is an ordered sequence of values, resulting from space separated
// terms in an expression (e.g. "1cm 2cm").
type List []Value

// Kind is part of interface Value.
func (l List) Kind() Kind { return KindList }

// Match is part of interface Value.
func (l List) Match() *Matcher { return &Matcher{v: l} }

// Len returns the number of items in l.
func (l List) Len() int { return len(l) }

// At returns item i of l or nil.
func (l List) At(i int) Value {
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

func (l List) String() string {
	var b strings.Builder
	for i, v := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		if v == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// ---------------------------------------------------------------------------

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
