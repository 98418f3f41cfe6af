package property

import (
	"errors"
	"fmt"
)

// Errors of property resolution.
var (
	ErrResolutionCycle = errors.New("property resolution does not terminate")
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid property value")
	ErrNoDefault       = errors.New("property has no initial value")
	ErrNotInListItem   = errors.New("function needs an enclosing list-item")
	ErrNoTableColumn   = errors.New("no table column found")
)

// ResolutionError is returned for a property which could not be resolved.
type ResolutionError struct {
	Property string
	Node     string // element name of the node
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("property %s of <%s>: %v", e.Property, e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionError(node Node, name string, err error) error {
	var rerr *ResolutionError
	if errors.As(err, &rerr) {
		return err
	}
	return &ResolutionError{Property: name, Node: node.ElementName(), Err: err}
}
