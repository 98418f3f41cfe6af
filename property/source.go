package property

import (
	"fmt"

	"github.com/npillmayer/fo/value"
)

// source binds the tree-accessing expression functions to the node a
// property is resolved for.
type source struct {
	pl       *PropertyList
	property string // the property being resolved
}

// InheritedPropertyValue yields the parent's value for inherited
// properties and the initial value otherwise.
func (src *source) InheritedPropertyValue(name string) (value.Value, error) {
	m, ok := src.pl.reg.Maker(name)
	if !ok {
		return nil, resolutionError(src.pl.node, name, ErrUnknownProperty)
	}
	if !m.IsInherited() {
		return m.Default(src.pl)
	}
	return src.pl.Inherited(name)
}

func (src *source) FromParent(name string) (value.Value, error) {
	return src.pl.Inherited(name)
}

// FromNearestSpecified includes the node itself, unless name is the
// property being resolved. Then the search starts at the parent.
func (src *source) FromNearestSpecified(name string) (value.Value, error) {
	pl := src.pl
	m, ok := pl.reg.Maker(name)
	if !ok {
		return nil, resolutionError(pl.node, name, ErrUnknownProperty)
	}
	start := pl.node
	if name == src.property {
		start = pl.node.ParentNode()
	}
	last := pl.node
	for a := start; a != nil; a = a.ParentNode() {
		if pl.reg.isSpecified(pl.at(a), m) {
			return pl.reg.resolve(pl.res, a, name)
		}
		last = a
	}
	return m.Default(pl.at(last))
}

func (src *source) FromTableColumn(name string) (value.Value, error) {
	pl := src.pl
	for n := pl.node; n != nil; n = n.ParentNode() {
		if loc, ok := n.(TableColumnLocator); ok {
			if col, ok := loc.TableColumn(); ok {
				return pl.reg.resolve(pl.res, col, name)
			}
		}
	}
	return nil, fmt.Errorf("%w for <%s>", ErrNoTableColumn, pl.node.ElementName())
}

// LabelEnd computes
//
//     100% - (provisional-distance-between-starts + start-indent
//             - provisional-label-separation)
//
// with properties of the list-block enclosing the current list-item.
func (src *source) LabelEnd() (value.Value, error) {
	lb, err := src.listBlock("label-end")
	if err != nil {
		return nil, err
	}
	base := lb.node.PercentBase(ContainingWidth)
	if base == nil {
		return nil, fmt.Errorf("%w: list-block has no reference width", ErrInvalidValue)
	}
	indent, err := lb.sum("provisional-distance-between-starts", "start-indent")
	if err != nil {
		return nil, err
	}
	sep, err := lb.sum("provisional-label-separation")
	if err != nil {
		return nil, err
	}
	width := value.LengthNumeric(value.PercentLength(1, base))
	if indent, err = indent.Subtract(sep); err != nil {
		return nil, err
	}
	end, err := width.Subtract(indent)
	if err != nil {
		return nil, err
	}
	return end.Value(), nil
}

// BodyStart computes start-indent + provisional-distance-between-starts
// of the list-block enclosing the current list-item.
func (src *source) BodyStart() (value.Value, error) {
	lb, err := src.listBlock("body-start")
	if err != nil {
		return nil, err
	}
	start, err := lb.sum("start-indent", "provisional-distance-between-starts")
	if err != nil {
		return nil, err
	}
	return start.Value(), nil
}

func (src *source) PropertyValue(name string) (value.Value, error) {
	return src.pl.Get(name)
}

// listBlock finds the list-block of the nearest enclosing list-item.
func (src *source) listBlock(fname string) (*PropertyList, error) {
	n := src.pl.node
	for n != nil && n.ElementName() != "list-item" {
		n = n.ParentNode()
	}
	for n != nil && n.ElementName() != "list-block" {
		n = n.ParentNode()
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s() in <%s>", ErrNotInListItem, fname, src.pl.node.ElementName())
	}
	return src.pl.at(n), nil
}
