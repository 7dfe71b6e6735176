package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrorTag is used to parameterize [Error] into different concrete types. The
// ErrorTag method is called with a zero value, and its return value is used
// in [Error.Error] and [Error.Show].
type ErrorTag interface {
	ErrorTag() string
}

// Error represents an error with context that can be showed.
type Error[T ErrorTag] struct {
	Message string
	Context Context
	// Indicates whether the error may be caused by partial input. More
	// formally, this field is true when the error happens at the end of the
	// source and would disappear if more text were appended.
	Partial bool
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	line, col := e.Context.Position()
	return fmt.Sprintf("%s: %s:%d:%d: %s",
		errorTag[T](), e.Context.Name, line, col, e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error[T]) Show(indent string) string {
	header := fmt.Sprintf("%s: %s\n", title(errorTag[T]()), e.Message)
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

func errorTag[T ErrorTag]() string {
	var t T
	return t.ErrorTag()
}

// UnpackErrors returns the constituent errors of err that have type
// *Error[T], looking through errors.Join-style wrappers.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error[T]); ok {
		return []*Error[T]{e}
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []*Error[T]
		for _, e := range multi.Unwrap() {
			errs = append(errs, UnpackErrors[T](e)...)
		}
		return errs
	}
	var e *Error[T]
	if errors.As(err, &e) {
		return []*Error[T]{e}
	}
	return nil
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
