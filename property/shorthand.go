package property

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fo/value"
)

// shorthand describes a property which sets a group of component
// properties at once.
type shorthand struct {
	name       string
	components []string
	sided      bool // components are the four sides, top first
	// extract selects the value of a component from the evaluated items of
	// the shorthand.
	extract func(items []value.Value, component string) (value.Value, bool, error)
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}

// fourSided creates a shorthand of 1 to 4 values for the physical sides,
// e.g. `margin` or `border-color`.
func fourSided(name, prefix, suffix string) *shorthand {
	var comps []string
	for _, dir := range fourDirs {
		comps = append(comps, compose(prefix, dir, suffix))
	}
	sh := &shorthand{name: name, components: comps, sided: true}
	sh.extract = func(items []value.Value, component string) (value.Value, bool, error) {
		sides, err := expandFour(items)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s", err, sh.name)
		}
		for i, c := range sh.components {
			if c == component {
				return sides[i], true, nil
			}
		}
		return nil, false, nil
	}
	return sh
}

// expandFour distributes 1 to 4 items to the sides top, right, bottom and
// left, following the CSS rules:
//
//     a       → a a a a
//     a b     → a b a b
//     a b c   → a b c b
//     a b c d → a b c d
//
func expandFour[T any](items []T) ([4]T, error) {
	var r [4]T
	l := len(items)
	if l == 0 || l > 4 {
		return r, fmt.Errorf("%w: expecting 1-4 values, have %d", ErrInvalidValue, l)
	}
	r[0] = items[0]
	if l >= 2 {
		r[1] = items[1]
		if l >= 3 {
			r[2] = items[2]
			if l == 4 {
				r[3] = items[3]
			} else {
				r[3] = items[1]
			}
		} else {
			r[2] = items[0]
			r[3] = items[1]
		}
	} else {
		r[1] = items[0]
		r[2] = items[0]
		r[3] = items[0]
	}
	return r, nil
}

var borderStyles = []string{"none", "hidden", "dotted", "dashed", "solid",
	"double", "groove", "ridge", "inset", "outset"}

var borderWidths = []string{"thin", "medium", "thick"}

// byType creates a shorthand for border width, style and color in any
// order, e.g. `border-top: 1pt solid red`.
func byType(name string, sides ...string) *shorthand {
	var comps []string
	for _, side := range sides {
		for _, suffix := range []string{"width", "style", "color"} {
			comps = append(comps, compose("border", side, suffix))
		}
	}
	return &shorthand{name: name, components: comps, extract: extractBorderPart}
}

func extractBorderPart(items []value.Value, component string) (value.Value, bool, error) {
	if len(items) > 3 {
		return nil, false, fmt.Errorf("%w: at most 3 border values expected, have %d", ErrInvalidValue, len(items))
	}
	var accept func(value.Value) bool
	switch {
	case strings.HasSuffix(component, "-width"):
		accept = isBorderWidth
	case strings.HasSuffix(component, "-style"):
		accept = isBorderStyle
	case strings.HasSuffix(component, "-color"):
		accept = isColor
	default:
		return nil, false, nil
	}
	for _, item := range items {
		if accept(item) {
			return item, true, nil
		}
	}
	return nil, false, nil
}

func isBorderWidth(v value.Value) bool {
	var s string
	switch m := v.Match(); m {
	case m.Numeric(nil):
		return true
	case m.Name(&s):
		return contains(borderWidths, s)
	}
	return false
}

func isBorderStyle(v value.Value) bool {
	var s string
	return v.Match().Name(&s) != nil && contains(borderStyles, s)
}

func isColor(v value.Value) bool {
	var s string
	switch m := v.Match(); m {
	case m.Color(nil):
		return true
	case m.Name(&s):
		if s == "transparent" {
			return true
		}
		_, ok := value.NamedColor(s)
		return ok
	}
	return false
}

func items(v value.Value) []value.Value {
	if l, ok := v.(value.List); ok {
		return l
	}
	return []value.Value{v}
}

// fromShorthand computes a component property from an explicit shorthand.
// Components missing from a shorthand are set to their initial value.
func (r *Registry) fromShorthand(pl *PropertyList, m Maker, name, text string) (value.Value, bool, error) {
	sh, ok := r.shorthands[name]
	if !ok {
		return nil, false, nil
	}
	if isInherit(text) {
		v, err := pl.Inherited(m.Name())
		return v, true, err
	}
	v, err := pl.evaluate(m, text)
	if err != nil {
		return nil, true, err
	}
	c, found, err := sh.extract(items(v), m.Name())
	if err != nil {
		return nil, true, err
	}
	if !found {
		v, err = m.Default(pl)
		return v, true, err
	}
	v, err = m.Convert(c, pl)
	return v, true, err
}

// expandDefault splits the text of a shorthand into the texts of its
// components. It is used for initial values, where no node is available.
func (sh *shorthand) expandDefault(text string) (map[string]string, error) {
	comps := make(map[string]string, len(sh.components))
	if sh.sided {
		sides, err := expandFour(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, sh.name)
		}
		for i, c := range sh.components {
			comps[c] = sides[i]
		}
		return comps, nil
	}
	for _, field := range strings.Fields(text) {
		var v value.Value = value.Name(field)
		if c, err := value.ParseColor(field); err == nil {
			v = c
		} else if looksNumeric(field) {
			v = value.Number(0)
		}
		for _, suffix := range []string{"-width", "-style", "-color"} {
			if _, ok, _ := extractBorderPart([]value.Value{v}, suffix); ok {
				for _, c := range sh.components {
					if strings.HasSuffix(c, suffix) {
						comps[c] = field
					}
				}
			}
		}
	}
	return comps, nil
}

// looksNumeric is true for fields starting like a number.
func looksNumeric(field string) bool {
	if field == "" {
		return false
	}
	c := field[0]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}
