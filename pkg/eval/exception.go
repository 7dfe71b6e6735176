package eval

import (
	"errors"
	"fmt"

	"src.slt.sh/pkg/diag"
)

// Exception is an error raised when evaluating a program. It carries the
// reason and the source context of the node being evaluated.
type Exception struct {
	Reason  error
	Context diag.Context
}

// Sentinel reasons. Exceptions wrap them and can be matched with errors.Is.
var (
	ErrUndefined       = errors.New("undefined variable")
	ErrType            = errors.New("type error")
	ErrDivideByZero    = errors.New("division by zero")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotCallable     = errors.New("value is not callable")
	ErrArity           = errors.New("arity mismatch")
	ErrCallDepth       = errors.New("maximum call depth exceeded")
	ErrBadConversion   = errors.New("cannot convert")
)

const exceptionTag = "runtime error"

// Error returns a plain text representation of the exception.
func (e *Exception) Error() string {
	line, col := e.Context.Position()
	return fmt.Sprintf("%s: %s:%d:%d: %v",
		exceptionTag, e.Context.Name, line, col, e.Reason)
}

// Unwrap returns the reason.
func (e *Exception) Unwrap() error { return e.Reason }

// Range returns the range of the node that raised the exception.
func (e *Exception) Range() diag.Ranging { return e.Context.Range() }

// Show shows the exception.
func (e *Exception) Show(indent string) string {
	return fmt.Sprintf("Runtime error: %v\n%s  %s",
		e.Reason, indent, e.Context.ShowCompact(indent+"  "))
}

func typeError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrType}, args...)...)
}
