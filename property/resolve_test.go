package property_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInheritanceWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil, "font-size", "14pt", "color", "red", "margin-top", "5pt")
	flow := fo("flow", root)
	block := fo("block", flow)
	inline := fo("inline", block)
	assert.Equal(t, 14.0, points(t, resolve(t, reg, inline, "font-size")))
	red, _ := value.NamedColor("red")
	assert.Equal(t, red, resolve(t, reg, inline, "color"))
	assert.Equal(t, resolve(t, reg, root, "font-size"), resolve(t, reg, block, "font-size"))
	// margins are not inherited
	assert.Equal(t, 0.0, points(t, resolve(t, reg, block, "margin-top")))
	// unless asked to
	inh := fo("block", root, "margin-top", "inherit")
	assert.Equal(t, 5.0, points(t, resolve(t, reg, inh, "margin-top")))
}

func TestInitialValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil)
	assert.Equal(t, 12.0, points(t, resolve(t, reg, root, "font-size")))
	assert.Equal(t, value.Name("auto"), resolve(t, reg, root, "width"))
	assert.Equal(t, value.Name("lr-tb"), resolve(t, reg, root, "writing-mode"))
	assert.Equal(t, value.Name("transparent"), resolve(t, reg, root, "background-color"))
	assert.Equal(t, value.Str("auto"), resolve(t, reg, root, "content-type"))
	// border style none makes the width zero
	assert.Equal(t, 0.0, points(t, resolve(t, reg, root, "border-top-width")))
	_, err := reg.Resolve(root, "id")
	assert.True(t, errors.Is(err, property.ErrNoDefault), "expected id to have no initial value")
}

func TestDefaultCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	a := fo("block", fo("root", nil))
	b := fo("inline", fo("block", fo("root", nil)))
	assert.Equal(t, resolve(t, reg, a, "space-before"), resolve(t, reg, b, "space-before"))
	assert.Equal(t, resolve(t, reg, a, "color"), resolve(t, reg, b, "color"))
	// the initial value of padding-start depends on the node
	lr := fo("block", nil, "writing-mode", "lr-tb", "padding", "1pt 2pt 3pt 4pt")
	rl := fo("block", nil, "writing-mode", "rl-tb", "padding", "1pt 2pt 3pt 4pt")
	tb := fo("block", nil, "writing-mode", "tb-rl", "padding", "1pt 2pt 3pt 4pt")
	assert.Equal(t, 4.0, points(t, resolve(t, reg, lr, "padding-start")))
	assert.Equal(t, 2.0, points(t, resolve(t, reg, rl, "padding-start")))
	assert.Equal(t, 1.0, points(t, resolve(t, reg, tb, "padding-start")))
	assert.Equal(t, 2.0, points(t, resolve(t, reg, tb, "padding-before")))
}

func TestCorrespondingForced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	lr := fo("block", nil, "padding-left", "5pt", "padding-right", "7pt")
	rl := fo("block", nil, "writing-mode", "rl", "padding-left", "5pt", "padding-right", "7pt")
	assert.Equal(t, 5.0, points(t, resolve(t, reg, lr, "padding-start")))
	assert.Equal(t, 7.0, points(t, resolve(t, reg, rl, "padding-start")))
	assert.Equal(t, 5.0, points(t, resolve(t, reg, rl, "padding-end")))
	// explicit relative value wins
	n := fo("block", nil, "padding-left", "5pt", "padding-start", "9pt")
	assert.Equal(t, 9.0, points(t, resolve(t, reg, n, "padding-start")))
	// an explicit relative value sets the absolute counterpart
	n = fo("block", nil, "border-start-width", "thick", "border-start-style", "solid")
	assert.Equal(t, 2.0, points(t, resolve(t, reg, n, "border-left-width")))
	assert.Equal(t, value.Name("solid"), resolve(t, reg, n, "border-left-style"))
}

func TestStartIndent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil)
	root.width = 400
	outer := fo("block", root, "margin-left", "10pt", "padding-left", "2pt",
		"border-left-width", "1pt", "border-left-style", "solid")
	inner := fo("block", outer)
	nested := fo("block", inner, "margin-left", "5%")
	assert.Equal(t, 13.0, points(t, resolve(t, reg, outer, "start-indent")))
	assert.Equal(t, 13.0, points(t, resolve(t, reg, inner, "start-indent")))
	assert.Equal(t, 33.0, points(t, resolve(t, reg, nested, "start-indent")))
	assert.Equal(t, 0.0, points(t, resolve(t, reg, nested, "end-indent")))
	explicit := fo("block", outer, "start-indent", "1cm", "margin-left", "3pt")
	assert.InDelta(t, 72/2.54, points(t, resolve(t, reg, explicit, "start-indent")), 1e-9)
}

func TestPercentages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil, "font-size", "10pt")
	root.width = 400
	block := fo("block", root, "margin-left", "10%", "font-size", "150%", "line-height", "200%")
	assert.Equal(t, 40.0, points(t, resolve(t, reg, block, "margin-left")))
	assert.Equal(t, 15.0, points(t, resolve(t, reg, block, "font-size")))
	assert.Equal(t, 30.0, points(t, resolve(t, reg, block, "line-height")))
	factor := fo("block", root, "line-height", "1.2")
	assert.Equal(t, value.Number(1.2), resolve(t, reg, factor, "line-height"))
}

func TestFontSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil, "font-size", "10pt")
	em := fo("block", root, "font-size", "2em", "text-indent", "2em")
	assert.Equal(t, 20.0, points(t, resolve(t, reg, em, "font-size")))
	assert.Equal(t, 40.0, points(t, resolve(t, reg, em, "text-indent")))
	larger := fo("inline", root, "font-size", "larger")
	assert.InDelta(t, 12.0, points(t, resolve(t, reg, larger, "font-size")), 1e-9)
	medium := fo("inline", root, "font-size", "medium")
	assert.Equal(t, 12.0, points(t, resolve(t, reg, medium, "font-size")))
	large := fo("inline", root, "font-size", "x-large")
	assert.InDelta(t, 12*1.44, points(t, resolve(t, reg, large, "font-size")), 1e-9)
	bad := fo("inline", root, "font-size", "huge")
	_, err := reg.Resolve(bad, "font-size")
	assert.True(t, errors.Is(err, property.ErrInvalidValue))
}

func TestResolutionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil, "margin-top", "3pt +")
	_, err := reg.Resolve(root, "margin-top")
	require.Error(t, err)
	var rerr *property.ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "margin-top", rerr.Property)
	assert.Equal(t, "root", rerr.Node)
	_, err = reg.Resolve(root, "no-such-property")
	assert.True(t, errors.Is(err, property.ErrUnknownProperty))
	invalid := fo("block", root, "text-align", "sideways")
	_, err = reg.Resolve(invalid, "text-align")
	assert.True(t, errors.Is(err, property.ErrInvalidValue))
}

func TestCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	self := fo("block", nil, "width", "_fo-property-value(width)")
	_, err := reg.Resolve(self, "width")
	assert.True(t, errors.Is(err, property.ErrResolutionCycle), "expected cycle, have %v", err)
	pair := fo("block", nil,
		"start-indent", "_fo-property-value(end-indent)",
		"end-indent", "_fo-property-value(start-indent) + 1pt")
	_, err = reg.Resolve(pair, "start-indent")
	assert.True(t, errors.Is(err, property.ErrResolutionCycle), "expected cycle, have %v", err)
	// a deep chain of parent references exceeds the depth bound
	cfg := property.DefaultConfig()
	cfg.MaxDepth = 5
	shallow := newRegistry(t, property.WithConfig(cfg))
	n := fo("root", nil, "font-size", "10pt")
	for i := 0; i < 10; i++ {
		n = fo("block", n, "font-size", "from-parent() + 1pt")
	}
	_, err = shallow.Resolve(n, "font-size")
	assert.True(t, errors.Is(err, property.ErrResolutionCycle), "expected depth bound, have %v", err)
	v, err := reg.Resolve(n, "font-size")
	require.NoError(t, err)
	assert.Equal(t, 20.0, points(t, v))
}

func TestTreeFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil, "font-size", "10pt", "space-before", "4pt")
	mid := fo("block", root, "font-size", "16pt")
	leaf := fo("inline", mid,
		"font-size", "inherited-property-value()",
		"space-before", "from-nearest-specified-value() * 2",
		"space-after", "from-parent(font-size)",
		"text-indent", "_fo-property-value(font-size) div 2")
	assert.Equal(t, 16.0, points(t, resolve(t, reg, leaf, "font-size")))
	assert.Equal(t, 8.0, points(t, resolve(t, reg, leaf, "space-before")))
	assert.Equal(t, 16.0, points(t, resolve(t, reg, leaf, "space-after")))
	assert.Equal(t, 8.0, points(t, resolve(t, reg, leaf, "text-indent")))
}

func TestInheritedValueOfNonInheritedProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	parent := fo("block", fo("root", nil), "margin-top", "5pt")
	inh := fo("block", parent, "margin-top", "inherited-property-value()")
	fromParent := fo("block", parent, "margin-top", "from-parent()")
	assert.Equal(t, 0.0, points(t, resolve(t, reg, inh, "margin-top")))
	assert.Equal(t, 5.0, points(t, resolve(t, reg, fromParent, "margin-top")))
}

func TestNearestSpecifiedIncludesNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	parent := fo("block", fo("root", nil), "space-before", "2pt")
	child := fo("block", parent, "space-before", "9pt",
		"space-after", "from-nearest-specified-value(space-before)")
	assert.Equal(t, 9.0, points(t, resolve(t, reg, child, "space-after")))
	// for the property itself, the search starts at the parent
	self := fo("block", parent, "space-before", "from-nearest-specified-value(space-before) + 1pt")
	assert.Equal(t, 3.0, points(t, resolve(t, reg, self, "space-before")))
}

func TestFromTableColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	table := fo("table", nil)
	table.width = 300
	col := fo("table-column", table, "column-width", "proportional-column-width(2)",
		"background-color", "#ff0000")
	cell := fo("table-cell", table, "background-color", "from-table-column()")
	cell.column = col
	block := fo("block", cell, "color", "from-table-column(background-color)")
	red, _ := value.NamedColor("red")
	assert.Equal(t, red, resolve(t, reg, cell, "background-color"))
	assert.Equal(t, red, resolve(t, reg, block, "color"))
	w := resolve(t, reg, col, "column-width")
	l, ok := w.(value.Length)
	require.True(t, ok, "expected column width to be a length, is %v", w)
	assert.Equal(t, 2.0, l.TableUnits())
	lonely := fo("block", table, "color", "from-table-column()")
	_, err := reg.Resolve(lonely, "color")
	assert.True(t, errors.Is(err, property.ErrNoTableColumn))
	wrong := fo("block", table, "width", "proportional-column-width(1)")
	_, err = reg.Resolve(wrong, "width")
	assert.Error(t, err)
}

func TestListFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	root := fo("root", nil)
	root.width = 400
	list := fo("list-block", root,
		"provisional-distance-between-starts", "30pt",
		"provisional-label-separation", "6pt",
		"start-indent", "10pt")
	item := fo("list-item", list)
	label := fo("list-item-label", item, "end-indent", "label-end()")
	body := fo("list-item-body", item, "start-indent", "body-start()")
	assert.Equal(t, 366.0, points(t, resolve(t, reg, label, "end-indent")))
	assert.Equal(t, 40.0, points(t, resolve(t, reg, body, "start-indent")))
	stray := fo("block", root, "start-indent", "body-start()")
	_, err := reg.Resolve(stray, "start-indent")
	assert.True(t, errors.Is(err, property.ErrNotInListItem))
}

func TestConditionality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.property")
	defer teardown()
	//
	reg := newRegistry(t)
	n := fo("block", nil, "padding-before.length", "3pt", "padding-after.conditionality", "retain")
	c, err := reg.Conditionality(n, "padding-before")
	require.NoError(t, err)
	assert.Equal(t, property.Discard, c)
	c, err = reg.Conditionality(n, "padding-after")
	require.NoError(t, err)
	assert.Equal(t, property.Retain, c)
	c, err = reg.Conditionality(n, "color")
	require.NoError(t, err)
	assert.Equal(t, property.NotConditional, c)
	assert.Equal(t, 3.0, points(t, resolve(t, reg, n, "padding-before")))
	bad := fo("block", nil, "padding-start.conditionality", "sometimes")
	_, err = reg.Conditionality(bad, "padding-start")
	assert.True(t, errors.Is(err, property.ErrInvalidValue))
}
