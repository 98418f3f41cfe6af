package fotree

import (
	"errors"

	"github.com/npillmayer/fo/property"
	"github.com/npillmayer/fo/tree"
	"go.uber.org/multierr"
)

// ResolveAll resolves a set of properties for every node of a tree,
// caching the values at the nodes. Parents are resolved before their
// children, which lets inheritance find cached values. Properties without
// an initial value are skipped where not specified.
//
// If workers is less than 1, the number of workers configured for reg is
// used. Errors for all nodes are collected and returned combined; the
// subtree below a failing node is not resolved.
func ResolveAll(root *Node, reg *property.Registry, names []string, workers int) error {
	if root == nil {
		return tree.ErrEmptyTree
	}
	if workers < 1 {
		workers = reg.Config().Workers
	}
	err := tree.TopDown(&root.Node, workers, func(tn, _ *tree.Node[*Node], _ int) error {
		n := Wrap(tn)
		var errs error
		for _, name := range names {
			if _, err := n.Property(reg, name); err != nil && !errors.Is(err, property.ErrNoDefault) {
				errs = multierr.Append(errs, err)
			}
		}
		return errs
	})
	if err != nil {
		tracer().Errorf("%d errors resolving formatting tree", len(multierr.Errors(err)))
	}
	return err
}
