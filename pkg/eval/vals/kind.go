// Package vals contains basic facilities for manipulating values used in slt.
//
// The value types are nil (null), bool, int, float64, string and List, plus
// any type satisfying the Kinder interface, like functions.
package vals

import "fmt"

// Kinder wraps the Kind method.
type Kinder interface {
	Kind() string
}

// Kind returns the runtime type name of the value. It is implemented for the
// builtin nil, bool, int, float64 and string types, the List type, and types
// satisfying the Kinder interface. For other types, it returns the Go type
// name of the argument preceded by "!!".
func Kind(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case List:
		return "list"
	case Kinder:
		return v.Kind()
	default:
		return fmt.Sprintf("!!%T", v)
	}
}
