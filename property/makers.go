package property

import (
	"math"

	"github.com/npillmayer/fo/value"
)

// standardMakers creates the makers of the built-in properties.
func standardMakers(cfg Config) []*maker {
	makers := []*maker{
		// inherited
		newMaker("font-size", cfg.FontSize, fontSizeKind(cfg), inherited(), percentOf(ParentFontSize)),
		newMaker("font-family", "serif", stringKind, inherited(), verbatim()),
		newMaker("font-weight", "normal", numberKind("normal", "bold", "bolder", "lighter"), inherited()),
		newMaker("font-style", "normal", enumKind("normal", "italic", "oblique", "backslant"), inherited()),
		newMaker("line-height", "normal", lengthOrNumberKind("normal"), inherited(), percentOf(FontSizeBase)),
		newMaker("color", "black", colorKind, inherited()),
		newMaker("text-align", "start", enumKind("start", "center", "end", "justify",
			"inside", "outside", "left", "right"), inherited()),
		newMaker("text-indent", "0pt", lengthKind(), inherited(), percentOf(ContainingWidth)),
		newMaker("start-indent", "0pt", lengthKind(), inherited(), percentOf(ContainingWidth),
			correspondsTo(indentFrom(Start))),
		newMaker("end-indent", "0pt", lengthKind(), inherited(), percentOf(ContainingWidth),
			correspondsTo(indentFrom(End))),
		newMaker("writing-mode", "lr-tb", writingModeKind, inherited()),
		newMaker("provisional-distance-between-starts", "24pt", lengthKind(), inherited(),
			percentOf(ContainingWidth)),
		newMaker("provisional-label-separation", "6pt", lengthKind(), inherited(),
			percentOf(ContainingWidth)),
		newMaker("hyphenate", "false", enumKind("true", "false"), inherited()),
		newMaker("visibility", "visible", enumKind("visible", "hidden", "collapse"), inherited()),
		newMaker("display-align", "auto", enumKind("auto", "before", "center", "after"), inherited()),
		// not inherited
		newMaker("width", "auto", lengthKind("auto"), percentOf(ContainingWidth)),
		newMaker("height", "auto", lengthKind("auto"), percentOf(ContainingHeight)),
		newMaker("space-before", "0pt", lengthKind(), percentOf(ContainingWidth), conditional(Discard)),
		newMaker("space-after", "0pt", lengthKind(), percentOf(ContainingWidth), conditional(Discard)),
		newMaker("background-color", "transparent", colorKind),
		newMaker("column-width", "auto", lengthKind("auto"), percentOf(ContainingWidth)),
		newMaker("column-number", "", numberKind(), noInitial()),
		newMaker("number-columns-spanned", "1", numberKind()),
		newMaker("id", "", stringKind, verbatim(), noInitial()),
		newMaker("page-width", "auto", lengthKind("auto", "indefinite")),
		newMaker("page-height", "auto", lengthKind("auto", "indefinite")),
		newMaker("content-type", "auto", stringKind, verbatim()),
	}
	for _, abs := range []AbsDir{Top, Right, Bottom, Left} {
		dir := abs.String()
		makers = append(makers,
			newMaker(compose("margin", dir, ""), "0pt", lengthKind("auto"),
				percentOf(ContainingWidth), setBy("margin")),
			newMaker(compose("padding", dir, ""), "0pt", lengthKind(),
				percentOf(ContainingWidth), setBy("padding"), conditional(Discard),
				initialFrom(fromRelative("padding", abs, ""))),
			newMaker(compose("border", dir, "width"), "medium", borderWidthKind(compose("border", dir, "style")),
				keywords(borderWidthKeywords), setBy(compose("border", dir, ""), "border-width", "border"),
				conditional(Discard), initialFrom(fromRelative("border", abs, "width"))),
			newMaker(compose("border", dir, "style"), "none", enumKind(borderStyles...),
				setBy(compose("border", dir, ""), "border-style", "border"),
				initialFrom(fromRelative("border", abs, "style"))),
			newMaker(compose("border", dir, "color"), "_fo-property-value(color)", colorKind,
				setBy(compose("border", dir, ""), "border-color", "border"),
				initialFrom(fromRelative("border", abs, "color"))),
		)
	}
	for _, rel := range []RelDir{Before, End, After, Start} {
		dir := rel.String()
		makers = append(makers,
			newMaker(compose("padding", dir, ""), "0pt", lengthKind(),
				percentOf(ContainingWidth), conditional(Discard),
				correspondsTo(followsAbsolute("padding", rel, "")),
				initialFrom(sameAsAbsolute("padding", rel, ""))),
			newMaker(compose("border", dir, "width"), "medium", borderWidthKind(compose("border", dir, "style")),
				keywords(borderWidthKeywords), conditional(Discard),
				correspondsTo(followsAbsolute("border", rel, "width")),
				initialFrom(sameAsAbsolute("border", rel, "width"))),
			newMaker(compose("border", dir, "style"), "none", enumKind(borderStyles...),
				correspondsTo(followsAbsolute("border", rel, "style")),
				initialFrom(sameAsAbsolute("border", rel, "style"))),
			newMaker(compose("border", dir, "color"), "", colorKind,
				correspondsTo(followsAbsolute("border", rel, "color")),
				initialFrom(sameAsAbsolute("border", rel, "color"))),
		)
	}
	for _, sh := range standardShorthands() {
		base := NoPercentBase
		if sh.name == "margin" || sh.name == "padding" {
			base = ContainingWidth
		}
		makers = append(makers, newMaker(sh.name, "", nil, percentOf(base),
			initialFrom(componentsOf(sh))))
	}
	return makers
}

func standardShorthands() []*shorthand {
	return []*shorthand{
		fourSided("margin", "margin", ""),
		fourSided("padding", "padding", ""),
		fourSided("border-width", "border", "width"),
		fourSided("border-style", "border", "style"),
		fourSided("border-color", "border", "color"),
		byType("border-top", "top"),
		byType("border-right", "right"),
		byType("border-bottom", "bottom"),
		byType("border-left", "left"),
		byType("border", "top", "right", "bottom", "left"),
	}
}

var borderWidthKeywords = map[string]value.Value{
	"thin":   value.Points(0.5),
	"medium": value.Points(1),
	"thick":  value.Points(2),
}

// --- Font size -------------------------------------------------------------

var fontSizeSteps = map[string]float64{
	"xx-small": -3,
	"x-small":  -2,
	"small":    -1,
	"medium":   0,
	"large":    1,
	"x-large":  2,
	"xx-large": 3,
}

const fontScale = 1.2

// fontSizeKind converts font sizes. Absolute size keywords scale the
// configured font size, relative keywords scale the parent's font size.
func fontSizeKind(cfg Config) convertFunc {
	asLength := lengthKind()
	return func(m *maker, v value.Value, pl *PropertyList) (value.Value, error) {
		var s string
		if v.Match().Name(&s) == nil {
			return asLength(m, v, pl)
		}
		var size value.Length
		var f float64
		var err error
		if step, ok := fontSizeSteps[s]; ok {
			size, err = cfg.fontSize()
			f = math.Pow(fontScale, step)
		} else if s == "larger" || s == "smaller" {
			size, err = pl.ParentFontSize()
			f = fontScale
			if s == "smaller" {
				f = 1 / fontScale
			}
		} else {
			return nil, invalid(m, v)
		}
		if err != nil {
			return nil, err
		}
		n, err := value.LengthNumeric(size).Multiply(value.NumberNumeric(f))
		if err != nil {
			return nil, err
		}
		return n.Length(), nil
	}
}

// --- Indents ---------------------------------------------------------------

// indentFrom computes start-indent or end-indent from the margin of the
// same side, if that is specified:
//
//     indent = inherited indent + margin + border width + padding
//
func indentFrom(rel RelDir) correspondingFunc {
	return func(m *maker, pl *PropertyList) (value.Value, bool, error) {
		wm, err := pl.WritingMode()
		if err != nil {
			return nil, false, err
		}
		margin := compose("margin", wm.RelToAbs(rel).String(), "")
		if !pl.IsSpecified(margin) {
			return nil, false, nil
		}
		inh, err := pl.Inherited(m.name)
		if err != nil {
			return nil, true, err
		}
		indent, ok := value.AsNumeric(inh)
		if !ok {
			return nil, true, invalid(m, inh)
		}
		sum, err := pl.sum(margin, compose("border", rel.String(), "width"), compose("padding", rel.String(), ""))
		if err != nil {
			return nil, true, err
		}
		if indent, err = indent.Add(sum); err != nil {
			return nil, true, err
		}
		v, err := m.Convert(indent.Value(), pl)
		return v, true, err
	}
}

// --- Corresponding properties ----------------------------------------------

// followsAbsolute forces a relative property to the value of its absolute
// counterpart, if that is specified directly or by a shorthand.
func followsAbsolute(prefix string, rel RelDir, suffix string) correspondingFunc {
	return func(m *maker, pl *PropertyList) (value.Value, bool, error) {
		wm, err := pl.WritingMode()
		if err != nil {
			return nil, false, err
		}
		abs := compose(prefix, wm.RelToAbs(rel).String(), suffix)
		if !pl.IsSpecified(abs) {
			return nil, false, nil
		}
		v, err := pl.Get(abs)
		return v, true, err
	}
}

// sameAsAbsolute makes the initial value of a relative property the
// computed value of its absolute counterpart.
func sameAsAbsolute(prefix string, rel RelDir, suffix string) defaultFunc {
	return func(m *maker, pl *PropertyList) (value.Value, error) {
		wm, err := pl.WritingMode()
		if err != nil {
			return nil, err
		}
		return pl.Get(compose(prefix, wm.RelToAbs(rel).String(), suffix))
	}
}

// fromRelative makes an absolute property take the value of an explicit
// relative counterpart. Otherwise the initial expression is evaluated.
func fromRelative(prefix string, abs AbsDir, suffix string) defaultFunc {
	return func(m *maker, pl *PropertyList) (value.Value, error) {
		wm, err := pl.WritingMode()
		if err != nil {
			return nil, err
		}
		rel := compose(prefix, wm.AbsToRel(abs).String(), suffix)
		if rm, ok := pl.reg.Maker(rel); ok {
			if _, ok := explicit(pl.node, rm); ok {
				return pl.Get(rel)
			}
		}
		return m.computeInitial(pl)
	}
}

// componentsOf computes the value of a shorthand not specified explicitly
// as the list of its components.
func componentsOf(sh *shorthand) defaultFunc {
	return func(m *maker, pl *PropertyList) (value.Value, error) {
		l := make(value.List, 0, len(sh.components))
		for _, c := range sh.components {
			v, err := pl.Get(c)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	}
}
