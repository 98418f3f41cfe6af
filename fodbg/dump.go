package fodbg

import (
	"fmt"
	"io"

	"github.com/npillmayer/fo/fotree"
	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/value"
	tp "github.com/xlab/treeprint"
)

// Dump writes a formatting tree as indented text. Every node lists the
// values of the given properties, or of its explicit properties if names
// is empty. Properties which fail to resolve are listed with their error.
func Dump(w io.Writer, root *fotree.Node, reg *property.Registry, names []string) error {
	p := tp.New()
	p.SetValue(root.ElementName())
	dumpProperties(p, root, reg, names)
	for _, ch := range root.ChildFOs() {
		dumpNode(p, ch, reg, names)
	}
	_, err := io.WriteString(w, p.String())
	return err
}

func dumpNode(p tp.Tree, n *fotree.Node, reg *property.Registry, names []string) {
	branch := p.AddBranch(n.ElementName())
	dumpProperties(branch, n, reg, names)
	for _, ch := range n.ChildFOs() {
		dumpNode(branch, ch, reg, names)
	}
}

func dumpProperties(p tp.Tree, n *fotree.Node, reg *property.Registry, names []string) {
	for _, pv := range propertiesOf(n, reg, names) {
		p.AddMetaNode(pv.Kind, fmt.Sprintf("%s = %s", pv.Name, pv.Value))
	}
}

// propertyValue is a property of a node, prepared for output.
type propertyValue struct {
	Name  string
	Value string
	Kind  string
	Color string // for diagrams
}

func propertiesOf(n *fotree.Node, reg *property.Registry, names []string) []propertyValue {
	if len(names) == 0 {
		names = n.Attributes()
	}
	pvs := make([]propertyValue, 0, len(names))
	for _, name := range names {
		v, err := n.Property(reg, name)
		if err != nil {
			pvs = append(pvs, propertyValue{Name: name, Value: err.Error(), Kind: "error", Color: "red"})
			continue
		}
		color := value.Pattern[string](v).OneOf(value.Patterns[string]{
			Number:  "black",
			Length:  "blue4",
			Numeric: "blue4",
			Str:     "darkgreen",
			Name:    "purple4",
			Color:   "chocolate4",
			List:    "grey30",
			Default: "black",
		})
		pvs = append(pvs, propertyValue{Name: name, Value: v.String(), Kind: v.Kind().String(), Color: color})
	}
	return pvs
}
