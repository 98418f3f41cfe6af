package value

// PercentBase is the reference a percentage refers to. For dimension 0,
// BaseValue is a plain scalar; for dimension 1 it is a length in points.
//
// Implementations must be comparable, as lengths anchored to the same base
// are combined by comparing bases.
type PercentBase interface {
	Dimension() int
	BaseValue() (float64, error)
}

type scalarBase float64

func (b scalarBase) Dimension() int              { return 0 }
func (b scalarBase) BaseValue() (float64, error) { return float64(b), nil }

// ScalarBase creates a dimensionless percent base, e.g. for line-height
// factors.
func ScalarBase(x float64) PercentBase {
	return scalarBase(x)
}

type lengthBase struct {
	l Length
}

func (b lengthBase) Dimension() int              { return 1 }
func (b lengthBase) BaseValue() (float64, error) { return b.l.Points() }

// LengthBase creates a percent base of dimension 1 with a fixed reference
// length.
func LengthBase(l Length) PercentBase {
	return lengthBase{l: l}
}

// DimensionBase creates a percent base of an arbitrary dimension. It is used
// to reject percentages where properties would need an area or other
// unsupported reference.
func DimensionBase(dim int, x float64) PercentBase {
	return dimBase{dim: dim, x: x}
}

type dimBase struct {
	dim int
	x   float64
}

func (b dimBase) Dimension() int              { return b.dim }
func (b dimBase) BaseValue() (float64, error) { return b.x, nil }

// Percent converts a percentage pct (given as a fraction, i.e. 50% = 0.5)
// with respect to base. If base is nil, the bare fraction is returned as a
// number.
func Percent(pct float64, base PercentBase) (Value, error) {
	if base == nil {
		return Number(pct), nil
	}
	switch base.Dimension() {
	case 0:
		b, err := base.BaseValue()
		if err != nil {
			return nil, err
		}
		return Number(pct * b), nil
	case 1:
		return PercentLength(pct, base), nil
	}
	return nil, ErrIllegalPercentDimension
}
