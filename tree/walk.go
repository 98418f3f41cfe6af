package tree

import (
	"errors"
	"sync"

	"go.uber.org/multierr"
)

// ErrEmptyTree is returned if a traversal is started on an empty tree.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrInvalidAction is returned if a traversal is started without an action.
var ErrInvalidAction = errors.New("action is nil")

// Action is a function type to operate on tree nodes. parent is the parent
// of n (nil for the root), position is the index of n within the children
// of parent.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) error

// TopDown traverses a tree starting at (and including) the root node.
// The traversal guarantees that parents are always processed before
// their children. Up to workers actions run concurrently; siblings are
// processed in no particular order.
//
// If the action function returns an error for a node, descending the
// branch below this node is skipped. TopDown waits for all other branches
// to complete and returns the errors of all failed nodes, combined.
func TopDown[T comparable](root *Node[T], workers int, action Action[T]) error {
	if root == nil {
		return ErrEmptyTree
	}
	if action == nil {
		return ErrInvalidAction
	}
	if workers < 1 {
		workers = 1
	}
	w := &walker[T]{action: action, slots: make(chan struct{}, workers)}
	position := 0
	if root.parent != nil {
		position = root.parent.IndexOfChild(root)
	}
	w.visit(root, root.parent, position)
	w.wg.Wait()
	if w.err != nil {
		tracer().Debugf("top-down walk: %d actions failed", len(multierr.Errors(w.err)))
	}
	return w.err
}

type walker[T comparable] struct {
	action Action[T]
	slots  chan struct{} // semaphore limiting concurrent actions
	wg     sync.WaitGroup
	mx     sync.Mutex // guards err
	err    error
}

func (w *walker[T]) visit(n, parent *Node[T], position int) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.slots <- struct{}{}
		err := w.action(n, parent, position)
		<-w.slots
		if err != nil {
			w.mx.Lock()
			w.err = multierr.Append(w.err, err)
			w.mx.Unlock()
			return // do not descend further
		}
		for i, ch := range n.Children() {
			w.visit(ch, n, i)
		}
	}()
}
