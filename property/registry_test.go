package property_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/value"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShorthands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	for _, tc := range []struct {
		margin string
		sides  [4]float64
	}{
		{"1pt", [4]float64{1, 1, 1, 1}},
		{"1pt 2pt", [4]float64{1, 2, 1, 2}},
		{"1pt 2pt 3pt", [4]float64{1, 2, 3, 2}},
		{"1pt 2pt 3pt 4pt", [4]float64{1, 2, 3, 4}},
	} {
		n := fo("block", nil, "margin", tc.margin)
		for i, side := range []string{"top", "right", "bottom", "left"} {
			v := resolve(t, reg, n, "margin-"+side)
			assert.Equal(t, tc.sides[i], points(t, v), "margin %q, side %s", tc.margin, side)
		}
	}
	// explicit components take precedence
	n := fo("block", nil, "margin", "1pt", "margin-left", "9pt")
	assert.Equal(t, 9.0, points(t, resolve(t, reg, n, "margin-left")))
	assert.Equal(t, 1.0, points(t, resolve(t, reg, n, "margin-right")))
	tooMany := fo("block", nil, "margin", "1pt 2pt 3pt 4pt 5pt")
	_, err := reg.Resolve(tooMany, "margin-top")
	assert.True(t, errors.Is(err, property.ErrInvalidValue))
	// unspecified shorthands are lists of their components
	v := resolve(t, reg, fo("block", nil, "margin-top", "2pt"), "margin")
	l, ok := v.(value.List)
	require.True(t, ok, "expected list, have %v", v)
	assert.Equal(t, "2pt 0pt 0pt 0pt", l.String())
	assert.True(t, reg.IsShorthand("border-color"))
	assert.False(t, reg.IsShorthand("border-top-color"))
}

func TestBorderShorthands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	red, _ := value.NamedColor("red")
	blue, _ := value.NamedColor("blue")
	n := fo("block", nil, "color", "blue", "border", "solid 3pt red", "border-top", "dashed")
	assert.Equal(t, 3.0, points(t, resolve(t, reg, n, "border-left-width")))
	assert.Equal(t, value.Name("solid"), resolve(t, reg, n, "border-left-style"))
	assert.Equal(t, red, resolve(t, reg, n, "border-left-color"))
	// components missing from a shorthand take their initial value
	assert.Equal(t, value.Name("dashed"), resolve(t, reg, n, "border-top-style"))
	assert.Equal(t, 1.0, points(t, resolve(t, reg, n, "border-top-width")))
	assert.Equal(t, blue, resolve(t, reg, n, "border-top-color"))
	// relative properties follow the shorthands
	assert.Equal(t, value.Name("dashed"), resolve(t, reg, n, "border-before-style"))
	assert.Equal(t, 3.0, points(t, resolve(t, reg, n, "border-end-width")))
	widths := fo("block", nil, "border-style", "solid", "border-width", "thin thick")
	assert.Equal(t, 0.5, points(t, resolve(t, reg, widths, "border-top-width")))
	assert.Equal(t, 2.0, points(t, resolve(t, reg, widths, "border-right-width")))
	assert.Equal(t, 2.0, points(t, resolve(t, reg, widths, "border-start-width")))
	assert.Equal(t, 0.5, points(t, resolve(t, reg, widths, "border-after-width")))
}

func TestWritingModes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	for _, tc := range []struct {
		wm   string
		want [4]property.AbsDir // before, end, after, start
	}{
		{"lr-tb", [4]property.AbsDir{property.Top, property.Right, property.Bottom, property.Left}},
		{"rl", [4]property.AbsDir{property.Top, property.Left, property.Bottom, property.Right}},
		{"tb-rl", [4]property.AbsDir{property.Right, property.Bottom, property.Left, property.Top}},
		{"tb-lr", [4]property.AbsDir{property.Left, property.Bottom, property.Right, property.Top}},
	} {
		wm, err := property.ParseWritingMode(tc.wm)
		require.NoError(t, err)
		for i, rel := range []property.RelDir{property.Before, property.End, property.After, property.Start} {
			abs := wm.RelToAbs(rel)
			assert.Equal(t, tc.want[i], abs, "%s: %s", tc.wm, rel)
			assert.Equal(t, rel, wm.AbsToRel(abs), "%s: %s", tc.wm, abs)
		}
	}
	_, err := property.ParseWritingMode("bt-lr")
	assert.Error(t, err)
}

func TestDefaultOverrides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	overrides, err := property.DefaultsFromCSS(`
		* { font-size: 11pt; padding: 1pt 2pt; border: thin solid #00ff00 }
		p { color: red }
	`)
	require.NoError(t, err)
	assert.Equal(t, "11pt", overrides["font-size"])
	assert.NotContains(t, overrides, "color")
	reg := newRegistry(t, property.WithDefaultOverrides(overrides))
	root := fo("root", nil)
	assert.Equal(t, 11.0, points(t, resolve(t, reg, root, "font-size")))
	assert.Equal(t, 2.0, points(t, resolve(t, reg, root, "padding-left")))
	assert.Equal(t, 0.5, points(t, resolve(t, reg, root, "border-bottom-width")))
	green, _ := value.NamedColor("lime")
	assert.Equal(t, green, resolve(t, reg, root, "border-top-color"))
	// declarations only
	overrides, err = property.DefaultsFromCSS("color: navy; line-height: 1.5")
	require.NoError(t, err)
	reg = newRegistry(t, property.WithDefaultOverrides(overrides))
	assert.Equal(t, value.Number(1.5), resolve(t, reg, root, "line-height"))
	navy, _ := value.NamedColor("navy")
	assert.Equal(t, navy, resolve(t, reg, root, "color"))
	// a single declaration without terminating semicolon
	overrides, err = property.DefaultsFromCSS("font-weight: 700")
	require.NoError(t, err)
	assert.Equal(t, "700", overrides["font-weight"])
	_, err = property.NewRegistry(property.WithDefaultOverrides(map[string]string{"color": " "}))
	assert.True(t, errors.Is(err, property.ErrInvalidValue), "empty initial value must be rejected")
	_, err = property.NewRegistry(property.WithDefaultOverrides(map[string]string{"no-such-thing": "1"}))
	assert.True(t, errors.Is(err, property.ErrUnknownProperty))
}

func TestConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	conf := testconfig.Conf{
		"fo.maxdepth": "32",
		"fo.fontsize": "10pt",
		"fo.workers":  "2",
	}
	cfg := property.ConfigFrom(conf)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "210mm", cfg.PageWidth)
	reg := newRegistry(t, property.WithConfig(cfg))
	assert.Equal(t, 10.0, points(t, resolve(t, reg, fo("root", nil), "font-size")))
	assert.Equal(t, 10.0, points(t, resolve(t, reg, fo("root", nil, "font-size", "medium"), "font-size")))
	cfg.FontSize = "blue"
	_, err := property.NewRegistry(property.WithConfig(cfg))
	assert.Error(t, err)
	l, err := property.EvalLength("297mm")
	require.NoError(t, err)
	assert.InDelta(t, 297*72/25.4, points(t, l), 1e-9)
}

func TestDefaultRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := property.DefaultRegistry()
	assert.Same(t, reg, property.DefaultRegistry())
	names := reg.Names()
	assert.Contains(t, names, "padding-start")
	assert.Contains(t, names, "border")
	m, ok := reg.Maker("start-indent")
	require.True(t, ok)
	assert.True(t, m.IsInherited())
	assert.True(t, m.IsCorresponding())
	m, _ = reg.Maker("margin-top")
	assert.Equal(t, []string{"margin"}, m.Shorthands())
}
