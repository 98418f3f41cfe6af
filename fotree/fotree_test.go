package fotree

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/tree"
	"github.com/npillmayer/fo/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const document = `<?xml version="1.0" encoding="UTF-8"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format" xmlns:x="urn:example"
         font-size="10pt" x:note="ignored">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="p" page-width="400pt" page-height="600pt"/>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="p">
    <fo:flow flow-name="xsl-region-body">
      <fo:block margin-left="10pt" font-size="150%">
        <fo:block width="50%" start-indent="inherited-property-value() + 5pt">Hello</fo:block>
        <x:foreign/>
      </fo:block>
      <fo:block-container width="200pt">
        <fo:block width="25%"/>
      </fo:block-container>
      <fo:table>
        <fo:table-column column-width="100pt"/>
        <fo:table-column column-width="50pt" background-color="red"/>
        <fo:table-body>
          <fo:table-row>
            <fo:table-cell><fo:block/></fo:table-cell>
            <fo:table-cell background-color="from-table-column()"><fo:block/></fo:table-cell>
          </fo:table-row>
        </fo:table-body>
      </fo:table>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

func parse(t *testing.T) *Node {
	t.Helper()
	root, err := Parse(strings.NewReader(document), property.DefaultConfig())
	require.NoError(t, err)
	return root
}

func points(t *testing.T, v value.Value) float64 {
	t.Helper()
	n, ok := value.AsNumeric(v)
	require.True(t, ok, "expected length, have %v", v)
	p, err := n.Length().Points()
	require.NoError(t, err)
	return p
}

func find(root *Node, name string, nth int) *Node {
	var found *Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if found != nil {
			return
		}
		if n.name == name {
			if nth == 0 {
				found = n
				return
			}
			nth--
		}
		for _, ch := range n.ChildFOs() {
			walk(ch)
		}
	}
	walk(root)
	return found
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	root := parse(t)
	assert.Equal(t, "root", root.ElementName())
	assert.Nil(t, root.ParentNode())
	assert.Equal(t, []string{"font-size"}, root.Attributes())
	w, h, ok := root.Extent()
	require.True(t, ok)
	assert.Equal(t, 400.0, points(t, w))
	assert.Equal(t, 600.0, points(t, h))
	outer := find(root, "block", 0)
	require.NotNil(t, outer)
	assert.Equal(t, 1, outer.ChildCount(), "foreign element should be skipped")
	_, err := Parse(strings.NewReader(`<html/>`), property.DefaultConfig())
	assert.True(t, errors.Is(err, ErrNoFormattingObjects))
	_, err = Parse(strings.NewReader(`<fo:root`), property.DefaultConfig())
	assert.Error(t, err)
}

func TestPropertiesOfParsedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	reg := property.DefaultRegistry()
	root := parse(t)
	outer := find(root, "block", 0)
	inner := find(root, "block", 1)
	v, err := inner.Property(reg, "font-size")
	require.NoError(t, err)
	assert.Equal(t, 15.0, points(t, v))
	v, err = inner.Property(reg, "width")
	require.NoError(t, err)
	assert.Equal(t, 200.0, points(t, v))
	v, err = inner.Property(reg, "start-indent")
	require.NoError(t, err)
	assert.Equal(t, 15.0, points(t, v))
	v, err = outer.Property(reg, "start-indent")
	require.NoError(t, err)
	assert.Equal(t, 10.0, points(t, v))
	// percentages refer to the nearest area with known extent
	boxed := find(root, "block", 2)
	v, err = boxed.Property(reg, "width")
	require.NoError(t, err)
	assert.Equal(t, 50.0, points(t, v))
	_, cached := inner.ResolvedProperty("width")
	assert.True(t, cached)
}

func TestTableColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	reg := property.DefaultRegistry()
	root := parse(t)
	first := find(root, "table-cell", 0)
	second := find(root, "table-cell", 1)
	col, ok := first.TableColumn()
	require.True(t, ok)
	assert.Equal(t, find(root, "table-column", 0), col)
	col, ok = second.TableColumn()
	require.True(t, ok)
	assert.Equal(t, find(root, "table-column", 1), col)
	v, err := second.Property(reg, "background-color")
	require.NoError(t, err)
	red, _ := value.NamedColor("red")
	assert.Equal(t, red, v)
	_, ok = find(root, "table", 0).TableColumn()
	assert.False(t, ok)
}

func TestTableColumnSpanned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	table := NewNode("table", nil)
	c1 := NewNode("table-column", nil)
	c2 := NewNode("table-column", nil)
	c3 := NewNode("table-column", map[string]string{"column-number": "3"})
	row := NewNode("table-row", nil)
	wide := NewNode("table-cell", map[string]string{"number-columns-spanned": "2"})
	last := NewNode("table-cell", nil)
	explicit := NewNode("table-cell", map[string]string{"column-number": "2"})
	table.Append(c1, c2, c3, row.Append(wide, last, explicit))
	col, ok := last.TableColumn()
	require.True(t, ok)
	assert.Equal(t, c3, col)
	col, ok = explicit.TableColumn()
	require.True(t, ok)
	assert.Equal(t, c2, col)
}

func TestResolveAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	reg := property.DefaultRegistry()
	names := []string{"font-size", "color", "start-indent", "width", "id", "border-top-width"}
	concurrent := parse(t)
	require.NoError(t, ResolveAll(concurrent, reg, names, 8))
	sequential := parse(t)
	require.NoError(t, ResolveAll(sequential, reg, names, 1))
	for i := 0; i < 3; i++ {
		a, b := find(concurrent, "block", i), find(sequential, "block", i)
		for _, name := range names[:4] {
			va, ok := a.ResolvedProperty(name)
			require.True(t, ok, "%s should be cached", name)
			vb, _ := b.ResolvedProperty(name)
			assert.Equal(t, vb.String(), va.String(), "property %s of block #%d", name, i)
		}
	}
	_, ok := find(concurrent, "block", 0).ResolvedProperty("id")
	assert.False(t, ok, "id has no initial value")
}

func TestResolveAllErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fo.fotree")
	defer teardown()
	//
	reg := property.DefaultRegistry()
	root := NewNode("root", nil)
	bad1 := NewNode("block", map[string]string{"font-size": "wobbly"})
	bad2 := NewNode("block", map[string]string{"color": "1pt"})
	child := NewNode("block", nil)
	root.Append(bad1.Append(child), bad2)
	err := ResolveAll(root, reg, []string{"font-size", "color"}, 2)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	_, ok := child.ResolvedProperty("font-size")
	assert.False(t, ok, "branch below failing node should be skipped")
	assert.True(t, errors.Is(ResolveAll(nil, reg, nil, 1), tree.ErrEmptyTree))
}
