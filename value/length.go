package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
)

// Length is a value of dimension 1.
//
// A length is a sum of up to three terms: a unit-tagged magnitude, a
// percentage of a PercentBase and a count of proportional table units.
// Only the first term is known at parse time in general; the others are
// resolved as late as possible.
type Length struct {
	mag  float64
	unit Unit
	pct  float64     // fraction, 50% = 0.5
	base PercentBase // anchor of pct
	tu   float64     // proportional table units
}

// ZeroLength is a length of 0.
var ZeroLength = Length{}

// NewLength creates a length from a magnitude and a unit.
// Em is not a legal unit for lengths and will be treated as points.
func NewLength(mag float64, unit Unit) Length {
	if unit == Em {
		tracer().Errorf("font-relative length %gem created without font size", mag)
		unit = Pt
	}
	return Length{mag: mag, unit: unit}
}

// Points creates a length of p points.
func Points(p float64) Length {
	return Length{mag: p, unit: Pt}
}

// PercentLength creates a length as a fraction of a base of dimension 1.
func PercentLength(pct float64, base PercentBase) Length {
	return Length{pct: pct, base: base}
}

// TableUnits creates a length of n proportional table units.
func TableUnits(n float64) Length {
	return Length{tu: n}
}

// Kind is part of interface Value.
func (l Length) Kind() Kind { return KindLength }

// Match is part of interface Value.
func (l Length) Match() *Matcher { return &Matcher{v: l} }

// Magnitude returns the magnitude of the unit-tagged term of l.
func (l Length) Magnitude() float64 { return l.mag }

// Unit returns the unit tag of l.
func (l Length) Unit() Unit { return l.unit }

// Percentage returns the percentage term of l and its anchor.
func (l Length) Percentage() (float64, PercentBase) { return l.pct, l.base }

// HasPercentage is true if l contains a non-zero percentage term.
func (l Length) HasPercentage() bool { return l.pct != 0 && l.base != nil }

// TableUnits returns the count of proportional table units in l.
func (l Length) TableUnits() float64 { return l.tu }

// HasTableUnits is true if l contains proportional table units.
func (l Length) HasTableUnits() bool { return l.tu != 0 }

// IsZero is true if all terms of l are zero.
func (l Length) IsZero() bool {
	return l.mag == 0 && l.pct == 0 && l.tu == 0
}

// Points returns l in points, resolving a percentage term against its base.
// Lengths containing table units cannot be resolved.
func (l Length) Points() (float64, error) {
	if l.tu != 0 {
		return 0, ErrUnresolvedTableUnits
	}
	p := l.mag * l.unit.Points()
	if l.pct != 0 && l.base != nil {
		b, err := l.base.BaseValue()
		if err != nil {
			return 0, err
		}
		p += l.pct * b
	}
	return p, nil
}

// Absolute returns l in design units.
func (l Length) Absolute() (dimen.DU, error) {
	p, err := l.Points()
	if err != nil {
		return 0, err
	}
	return PointsToDU(p), nil
}

// ResolveTableUnits replaces the table-unit term of l by a multiple of
// perUnit.
func (l Length) ResolveTableUnits(perUnit Length) (Length, error) {
	if l.tu == 0 {
		return l, nil
	}
	n := l.tu
	l.tu = 0
	return addLengths(l, perUnit.scale(n))
}

// InUnit converts the unit-tagged term of l to unit u. Percentage and
// table-unit terms are left untouched.
func (l Length) InUnit(u Unit) Length {
	if u == Em || u == NoUnit || l.unit == u {
		return l
	}
	l.mag = l.mag * l.unit.Points() / u.Points()
	l.unit = u
	return l
}

func (l Length) scale(f float64) Length {
	return Length{
		mag:  l.mag * f,
		unit: l.unit,
		pct:  l.pct * f,
		base: l.base,
		tu:   l.tu * f,
	}
}

// addLengths adds two lengths. If both unit tags agree, the result keeps the
// unit; otherwise the result is in points. Percentages anchored to different
// bases are resolved eagerly.
func addLengths(a, b Length) (Length, error) {
	r := Length{tu: a.tu + b.tu}
	switch {
	case a.unit == b.unit:
		r.mag, r.unit = a.mag+b.mag, a.unit
	case a.mag == 0 && a.unit == NoUnit:
		r.mag, r.unit = b.mag, b.unit
	case b.mag == 0 && b.unit == NoUnit:
		r.mag, r.unit = a.mag, a.unit
	default:
		r.mag = a.mag*a.unit.Points() + b.mag*b.unit.Points()
		r.unit = Pt
	}
	switch {
	case a.pct == 0 || a.base == nil:
		r.pct, r.base = b.pct, b.base
	case b.pct == 0 || b.base == nil:
		r.pct, r.base = a.pct, a.base
	case sameBase(a.base, b.base):
		r.pct, r.base = a.pct+b.pct, a.base
	default:
		pa, err := PercentLength(a.pct, a.base).Points()
		if err != nil {
			return ZeroLength, err
		}
		pb, err := PercentLength(b.pct, b.base).Points()
		if err != nil {
			return ZeroLength, err
		}
		r = r.InUnit(Pt)
		r.mag += pa + pb
	}
	return r, nil
}

func sameBase(a, b PercentBase) (same bool) {
	defer func() {
		if recover() != nil { // not comparable
			same = false
		}
	}()
	return a == b
}

func (l Length) String() string {
	var terms []string
	if l.mag != 0 || (l.pct == 0 && l.tu == 0) {
		u := l.unit
		if u == NoUnit {
			u = Pt
		}
		terms = append(terms, formatFloat(l.mag)+u.String())
	}
	if l.pct != 0 {
		terms = append(terms, formatFloat(l.pct*100)+"%")
	}
	if l.tu != 0 {
		terms = append(terms, fmt.Sprintf("%s*", formatFloat(l.tu)))
	}
	return strings.Join(terms, " + ")
}

// roundHalfUp rounds x to the nearest integer, with halves rounded towards
// positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
