package value

import (
	"math"
)

// Numeric is the arithmetic closure over numbers and lengths.
// Its dimension is 0 for numbers and 1 for lengths.
type Numeric struct {
	dim    int
	scalar float64
	length Length
}

// NumberNumeric wraps a scalar.
func NumberNumeric(x float64) Numeric {
	return Numeric{scalar: x}
}

// LengthNumeric wraps a length.
func LengthNumeric(l Length) Numeric {
	return Numeric{dim: 1, length: l}
}

// AsNumeric accepts numbers, lengths and numerics.
func AsNumeric(v Value) (Numeric, bool) {
	switch x := v.(type) {
	case Number:
		return NumberNumeric(float64(x)), true
	case Length:
		return LengthNumeric(x), true
	case Numeric:
		return x, true
	}
	return Numeric{}, false
}

// AsNumber accepts numbers and numerics of dimension 0.
func AsNumber(v Value) (Number, bool) {
	switch x := v.(type) {
	case Number:
		return x, true
	case Numeric:
		if x.dim == 0 {
			return Number(x.scalar), true
		}
	}
	return 0, false
}

// Kind is part of interface Value.
func (n Numeric) Kind() Kind { return KindNumeric }

// Match is part of interface Value.
func (n Numeric) Match() *Matcher { return &Matcher{v: n} }

// Dimension is 0 for scalars and 1 for lengths.
func (n Numeric) Dimension() int { return n.dim }

// Scalar returns the value of a numeric of dimension 0.
func (n Numeric) Scalar() float64 { return n.scalar }

// Length returns the value of a numeric of dimension 1.
func (n Numeric) Length() Length { return n.length }

// Value unwraps n to a Number or a Length.
func (n Numeric) Value() Value {
	if n.dim == 0 {
		return Number(n.scalar)
	}
	return n.length
}

func (n Numeric) String() string {
	if n.dim == 0 {
		return formatFloat(n.scalar)
	}
	return n.length.String()
}

// Add returns n+o. A scalar added to a length is interpreted in the unit of
// the length, i.e. 5pt + 3 = 8pt.
func (n Numeric) Add(o Numeric) (Numeric, error) {
	switch {
	case n.dim == 0 && o.dim == 0:
		return NumberNumeric(n.scalar + o.scalar), nil
	case n.dim == 1 && o.dim == 1:
		l, err := addLengths(n.length, o.length)
		if err != nil {
			return Numeric{}, err
		}
		return LengthNumeric(l), nil
	case n.dim == 1:
		return LengthNumeric(addScalar(n.length, o.scalar)), nil
	}
	return LengthNumeric(addScalar(o.length, n.scalar)), nil
}

func addScalar(l Length, s float64) Length {
	if l.unit == NoUnit {
		l.unit = Pt
	}
	l.mag += s
	return l
}

// Subtract returns n-o.
func (n Numeric) Subtract(o Numeric) (Numeric, error) {
	return n.Add(o.Negate())
}

// Negate returns -n.
func (n Numeric) Negate() Numeric {
	if n.dim == 0 {
		return NumberNumeric(-n.scalar)
	}
	return LengthNumeric(n.length.scale(-1))
}

// Multiply returns n*o. Multiplying two lengths is an error.
func (n Numeric) Multiply(o Numeric) (Numeric, error) {
	switch {
	case n.dim == 0 && o.dim == 0:
		return NumberNumeric(n.scalar * o.scalar), nil
	case n.dim == 1 && o.dim == 1:
		return Numeric{}, ErrIncompatibleDimensions
	case n.dim == 1:
		return LengthNumeric(n.length.scale(o.scalar)), nil
	}
	return LengthNumeric(o.length.scale(n.scalar)), nil
}

// Divide returns n/o. Dividing two lengths yields their ratio, dividing a
// scalar by a length is an error.
func (n Numeric) Divide(o Numeric) (Numeric, error) {
	switch {
	case o.dim == 0:
		if o.scalar == 0 {
			return Numeric{}, ErrDivisionByZero
		}
		if n.dim == 0 {
			return NumberNumeric(n.scalar / o.scalar), nil
		}
		return LengthNumeric(n.length.scale(1 / o.scalar)), nil
	case n.dim == 0:
		return Numeric{}, ErrIncompatibleDimensions
	}
	num, err := n.length.Points()
	if err != nil {
		return Numeric{}, err
	}
	den, err := o.length.Points()
	if err != nil {
		return Numeric{}, err
	}
	if den == 0 {
		return Numeric{}, ErrDivisionByZero
	}
	return NumberNumeric(num / den), nil
}

// Abs returns |n|.
func (n Numeric) Abs() (Numeric, error) {
	return n.apply(math.Abs)
}

// Ceiling returns the smallest integral value not less than n.
func (n Numeric) Ceiling() (Numeric, error) {
	return n.apply(math.Ceil)
}

// Floor returns the largest integral value not greater than n.
func (n Numeric) Floor() (Numeric, error) {
	return n.apply(math.Floor)
}

// Round returns the integral value closest to n, with halves rounded
// towards positive infinity.
func (n Numeric) Round() (Numeric, error) {
	return n.apply(roundHalfUp)
}

// apply applies f to the magnitude of n. Lengths with relative terms are
// resolved to points first.
func (n Numeric) apply(f func(float64) float64) (Numeric, error) {
	if n.dim == 0 {
		return NumberNumeric(f(n.scalar)), nil
	}
	l := n.length
	if l.pct == 0 && l.tu == 0 {
		unit := l.unit
		if unit == NoUnit {
			unit = Pt
		}
		return LengthNumeric(Length{mag: f(l.mag), unit: unit}), nil
	}
	p, err := l.Points()
	if err != nil {
		return Numeric{}, err
	}
	return LengthNumeric(Points(f(p))), nil
}

// Compare returns -1, 0 or +1 if n is less, equal or greater than o.
// Operands must have the same dimension.
func (n Numeric) Compare(o Numeric) (int, error) {
	if n.dim != o.dim {
		return 0, ErrIncompatibleDimensions
	}
	var a, b float64
	if n.dim == 0 {
		a, b = n.scalar, o.scalar
	} else {
		var err error
		if a, err = n.length.Points(); err != nil {
			return 0, err
		}
		if b, err = o.length.Points(); err != nil {
			return 0, err
		}
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

// Min returns the smaller of n and o.
func (n Numeric) Min(o Numeric) (Numeric, error) {
	c, err := n.Compare(o)
	if err != nil {
		return Numeric{}, err
	}
	if c <= 0 {
		return n, nil
	}
	return o, nil
}

// Max returns the greater of n and o.
func (n Numeric) Max(o Numeric) (Numeric, error) {
	c, err := n.Compare(o)
	if err != nil {
		return Numeric{}, err
	}
	if c >= 0 {
		return n, nil
	}
	return o, nil
}
