package expr

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fo/value"
)

// Errors of expression evaluation. They are returned wrapped into a
// *PropertyError and may be checked with errors.Is.
var (
	ErrSyntax                  = errors.New("syntax error")
	ErrUnknownFunction         = errors.New("unknown function")
	ErrArityMismatch           = errors.New("wrong number of arguments for function")
	ErrNonNumericOperand       = errors.New("non-numeric operand")
	ErrNonNumberOperand        = errors.New("non-number operand")
	ErrIllegalPercentDimension = value.ErrIllegalPercentDimension
	ErrIllegalContext          = errors.New("function not allowed in this context")
)

// PropertyError is the error type of failed expression evaluations.
type PropertyError struct {
	Expr string // the expression text
	Pos  int    // byte offset of the offending token
	Err  error  // underlying error, one of the Err… variables or a collaborator error
	Msg  string // optional detail
}

func (e *PropertyError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("property expression %q at %d: %v", e.Expr, e.Pos, e.Err)
	}
	return fmt.Sprintf("property expression %q at %d: %v: %s", e.Expr, e.Pos, e.Err, e.Msg)
}

// Unwrap returns the underlying error.
func (e *PropertyError) Unwrap() error {
	return e.Err
}
