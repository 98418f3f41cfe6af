package property

import (
	"github.com/npillmayer/fo/value"
)

// Node is a node of a formatting tree, as seen by property resolution.
// Resolution walks a tree upwards only and never changes it.
//
// Implementations must be comparable (usually pointer types), as nodes
// are tracked during resolution to detect cycles.
type Node interface {
	// ParentNode returns the parent of a node, or nil for the root.
	// Implementations must return an untyped nil, not a nil pointer.
	ParentNode() Node
	// ElementName returns the local name of the formatting object, e.g.
	// "block" or "list-item".
	ElementName() string
	// ExplicitProperty returns the expression text of a property, if it has
	// been specified on this node.
	ExplicitProperty(name string) (string, bool)
	// PercentBase returns the reference for percentages of a given kind,
	// or nil.
	PercentBase(kind BaseKind) value.PercentBase
	// ResolvedProperty returns a cached value of a property, if present.
	ResolvedProperty(name string) (value.Value, bool)
}

// TableColumnLocator is implemented by nodes which know the table column
// they belong to, usually table cells.
type TableColumnLocator interface {
	TableColumn() (Node, bool)
}

// BaseKind selects the reference of percentages.
type BaseKind uint8

// Kinds of percent bases.
const (
	NoPercentBase    BaseKind = iota
	ContainingWidth           // width of the containing reference area
	ContainingHeight          // height of the containing reference area
	FontSizeBase              // computed font size of the node
	ParentFontSize            // computed font size of the parent node
)

func (k BaseKind) String() string {
	switch k {
	case ContainingWidth:
		return "containing-width"
	case ContainingHeight:
		return "containing-height"
	case FontSizeBase:
		return "font-size"
	case ParentFontSize:
		return "parent-font-size"
	}
	return "none"
}
