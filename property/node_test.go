package property_test

import (
	"testing"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/value"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal formatting node. Nodes without a width use the
// width of their parent as percent base.
type fakeNode struct {
	name   string
	parent *fakeNode
	attrs  map[string]string
	width  float64
	column *fakeNode
}

func fo(name string, parent *fakeNode, attrs ...string) *fakeNode {
	n := &fakeNode{name: name, parent: parent, attrs: make(map[string]string)}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

func (n *fakeNode) ParentNode() property.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) ElementName() string { return n.name }

func (n *fakeNode) ExplicitProperty(name string) (string, bool) {
	text, ok := n.attrs[name]
	return text, ok
}

func (n *fakeNode) PercentBase(kind property.BaseKind) value.PercentBase {
	if kind != property.ContainingWidth && kind != property.ContainingHeight {
		return nil
	}
	for a := n; a != nil; a = a.parent {
		if a.width > 0 {
			return value.LengthBase(value.Points(a.width))
		}
	}
	return nil
}

func (n *fakeNode) ResolvedProperty(name string) (value.Value, bool) {
	return nil, false
}

func (n *fakeNode) TableColumn() (property.Node, bool) {
	if n.column == nil {
		return nil, false
	}
	return n.column, true
}

func resolve(t *testing.T, reg *property.Registry, n *fakeNode, name string) value.Value {
	t.Helper()
	v, err := reg.Resolve(n, name)
	require.NoError(t, err, "resolving %s of <%s>", name, n.name)
	return v
}

func points(t *testing.T, v value.Value) float64 {
	t.Helper()
	n, ok := value.AsNumeric(v)
	require.True(t, ok, "expected length, have %v", v)
	require.Equal(t, 1, n.Dimension(), "expected length, have %v", v)
	p, err := n.Length().Points()
	require.NoError(t, err)
	return p
}

func newRegistry(t *testing.T, opts ...property.Option) *property.Registry {
	t.Helper()
	reg, err := property.NewRegistry(opts...)
	require.NoError(t, err)
	return reg
}
