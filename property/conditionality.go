package property

import (
	"fmt"
	"strings"
)

// Conditionality tells layout whether a border or padding at a break is
// kept or dropped.
type Conditionality uint8

// Conditionality values. NotConditional is reported by makers of
// properties without a conditionality component.
const (
	NotConditional Conditionality = iota
	Discard
	Retain
)

func (c Conditionality) String() string {
	switch c {
	case Discard:
		return "discard"
	case Retain:
		return "retain"
	}
	return "n/a"
}

// ParseConditionality reads "discard" or "retain".
func ParseConditionality(s string) (Conditionality, error) {
	switch strings.TrimSpace(s) {
	case "discard":
		return Discard, nil
	case "retain":
		return Retain, nil
	}
	return NotConditional, fmt.Errorf("%w: conditionality %q", ErrInvalidValue, s)
}

// Conditionality returns the conditionality of a property on a node.
// An explicit component "<name>.conditionality" overrides the default of
// the property's maker.
func (r *Registry) Conditionality(node Node, name string) (Conditionality, error) {
	m, ok := r.Maker(name)
	if !ok {
		return NotConditional, resolutionError(node, name, ErrUnknownProperty)
	}
	c := m.Conditionality()
	if c == NotConditional {
		return c, nil
	}
	if text, ok := node.ExplicitProperty(name + ".conditionality"); ok {
		explicit, err := ParseConditionality(text)
		if err != nil {
			return c, resolutionError(node, name, err)
		}
		return explicit, nil
	}
	return c, nil
}
