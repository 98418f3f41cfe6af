package value

import (
	"github.com/npillmayer/tyse/core/dimen"
)

// Unit is the unit tag of a length.
type Unit uint8

// Units of lengths. NoUnit is used for the zero length and for lengths
// consisting of percentage or table-unit terms only.
// Em is never stored in a length: font-relative lengths are resolved
// against the font size of the context as soon as they are read.
const (
	NoUnit Unit = iota
	Pt
	Pc
	In
	Cm
	Mm
	Px
	Bp
	Em
)

var unitNames = [...]string{"", "pt", "pc", "in", "cm", "mm", "px", "bp", "em"}

// points per unit
var unitPoints = [...]float64{
	1,         // none
	1,         // pt
	12,        // pc
	72,        // in
	72 / 2.54, // cm
	72 / 25.4, // mm
	0.75,      // px
	1,         // bp
	0,         // em: relative
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "<unit?>"
}

// Points returns the number of points one u is worth. For Em, Points
// returns 0.
func (u Unit) Points() float64 {
	if int(u) < len(unitPoints) {
		return unitPoints[u]
	}
	return 0
}

// IsAbsolute is false for font-relative units.
func (u Unit) IsAbsolute() bool {
	return u != Em
}

// ParseUnit looks up a unit identifier. Lookup is case sensitive.
func ParseUnit(s string) (Unit, bool) {
	for u, name := range unitNames {
		if u > 0 && name == s {
			return Unit(u), true
		}
	}
	return NoUnit, false
}

// PointsToDU converts a dimension in points to design units.
func PointsToDU(p float64) dimen.DU {
	return dimen.DU(roundHalfUp(p * float64(dimen.PT)))
}
