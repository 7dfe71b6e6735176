package vals

import (
	"fmt"
	"strconv"
	"strings"

	"src.slt.sh/pkg/parse"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents a value. The string is either a
	// literal of that value that evaluates to an equal value (like `[1, 2]`
	// for a list), or a string enclosed in "<>" containing the kind and
	// identity of the value (like `<fn f>`).
	Repr() string
}

// Repr returns the representation for a value. It differs from ToString only
// for strings, which are quoted.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat64(v)
	case string:
		return parse.Quote(v)
	case List:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(elem))
		}
		sb.WriteByte(']')
		return sb.String()
	case Reprer:
		return v.Repr()
	case Stringer:
		return v.String()
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}
