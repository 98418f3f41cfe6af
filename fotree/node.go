package fotree

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/tree"
	"github.com/npillmayer/fo/value"
)

// Node is a formatting object, the building block of the formatting tree.
type Node struct {
	tree.Node[*Node] // we build on top of general purpose tree
	name             string
	attrs            map[string]string
	mx               sync.RWMutex // guards extent and resolved
	extent           *extent
	resolved         map[string]value.Value
}

type extent struct {
	width, height value.Length
}

// NewNode creates a formatting object with its explicit attributes. name is
// the local name of the element, e.g. "block".
func NewNode(name string, attrs map[string]string) *Node {
	n := &Node{name: name, attrs: attrs}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.Payload = n // Payload will always reference the node itself
	return n
}

// Wrap gets the formatting node from a generic tree node.
func Wrap(tn *tree.Node[*Node]) *Node {
	if tn == nil {
		return nil
	}
	return tn.Payload
}

// Append adds children to a node and returns it.
func (n *Node) Append(children ...*Node) *Node {
	for _, ch := range children {
		n.AddChild(&ch.Node)
	}
	return n
}

// ParentNode is part of interface property.Node.
func (n *Node) ParentNode() property.Node {
	if p := n.ParentFO(); p != nil {
		return p
	}
	return nil
}

// ParentFO returns the parent formatting object, or nil for the root.
func (n *Node) ParentFO() *Node {
	return Wrap(n.Parent())
}

// ChildFOs returns the children of a formatting object.
func (n *Node) ChildFOs() []*Node {
	children := n.Children()
	fos := make([]*Node, 0, len(children))
	for _, ch := range children {
		fos = append(fos, ch.Payload)
	}
	return fos
}

// ElementName is part of interface property.Node.
func (n *Node) ElementName() string {
	return n.name
}

// ExplicitProperty is part of interface property.Node.
func (n *Node) ExplicitProperty(name string) (string, bool) {
	text, ok := n.attrs[name]
	return text, ok
}

// Attributes returns the names of the explicit attributes of a node,
// sorted.
func (n *Node) Attributes() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetExtent sets the extent of the reference area established by a node.
func (n *Node) SetExtent(width, height value.Length) {
	n.mx.Lock()
	defer n.mx.Unlock()
	n.extent = &extent{width: width, height: height}
}

// Extent returns the extent of the reference area established by a node,
// if known.
func (n *Node) Extent() (width, height value.Length, ok bool) {
	n.mx.RLock()
	defer n.mx.RUnlock()
	if n.extent == nil {
		return value.ZeroLength, value.ZeroLength, false
	}
	return n.extent.width, n.extent.height, true
}

// PercentBase is part of interface property.Node. Percentages refer to the
// nearest ancestor with a known extent; the root refers to itself.
func (n *Node) PercentBase(kind property.BaseKind) value.PercentBase {
	if kind != property.ContainingWidth && kind != property.ContainingHeight {
		return nil
	}
	a := n.ParentFO()
	if a == nil {
		a = n
	}
	for ; a != nil; a = a.ParentFO() {
		if w, h, ok := a.Extent(); ok {
			if kind == property.ContainingWidth {
				return value.LengthBase(w)
			}
			return value.LengthBase(h)
		}
	}
	return nil
}

// ResolvedProperty is part of interface property.Node.
func (n *Node) ResolvedProperty(name string) (value.Value, bool) {
	n.mx.RLock()
	defer n.mx.RUnlock()
	v, ok := n.resolved[name]
	return v, ok
}

// Property returns the value of a property, resolving and caching it if
// necessary.
func (n *Node) Property(reg *property.Registry, name string) (value.Value, error) {
	if v, ok := n.ResolvedProperty(name); ok {
		return v, nil
	}
	v, err := reg.Resolve(n, name)
	if err != nil {
		return nil, err
	}
	n.mx.Lock()
	defer n.mx.Unlock()
	if n.resolved == nil {
		n.resolved = make(map[string]value.Value)
	}
	n.resolved[name] = v
	return v, nil
}

// TableColumn is part of interface property.TableColumnLocator. For a
// table-cell, it finds the table-column the cell starts in, either by an
// explicit column-number or by counting the columns spanned by preceding
// cells.
func (n *Node) TableColumn() (property.Node, bool) {
	if n.name != "table-cell" {
		return nil, false
	}
	tn, ok := n.AncestorWith(func(a *tree.Node[*Node]) bool {
		return a.Payload.name == "table"
	})
	if !ok {
		return nil, false
	}
	col := n.columnNumber()
	for i, c := range columnsOf(Wrap(tn)) {
		number := i + 1
		if text, ok := c.attrs["column-number"]; ok {
			number = atoi(text, number)
		}
		if number == col {
			return c, true
		}
	}
	return nil, false
}

func (n *Node) columnNumber() int {
	if text, ok := n.attrs["column-number"]; ok {
		return atoi(text, 1)
	}
	col := 1
	if p := n.ParentFO(); p != nil {
		for _, sib := range p.ChildFOs() {
			if sib == n {
				break
			}
			if sib.name == "table-cell" {
				col += atoi(sib.attrs["number-columns-spanned"], 1)
			}
		}
	}
	return col
}

func columnsOf(table *Node) []*Node {
	var cols []*Node
	for _, ch := range table.ChildFOs() {
		if ch.name == "table-column" {
			cols = append(cols, ch)
		}
	}
	return cols
}

func atoi(text string, dflt int) int {
	if i, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		return i
	}
	return dflt
}

var _ property.Node = &Node{}
var _ property.TableColumnLocator = &Node{}
