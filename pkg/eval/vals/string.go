package vals

import (
	"math"
	"strconv"
	"strings"
)

// Stringer wraps the String method.
type Stringer interface {
	// Stringer converts the receiver to a string.
	String() string
}

// ToString converts a value to its text form. Strings are returned as is;
// other values are converted with Repr.
func ToString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	default:
		return Repr(v)
	}
}

func formatFloat64(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Go's 'g' format switches to scientific notation at exponent 21, which
	// is too aggressive for numbers like 1e7. Use plain notation for
	// moderately sized numbers.
	if strings.ContainsRune(s, 'e') && math.Abs(f) >= 1e-4 && math.Abs(f) < 1e21 {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Always keep a marker that distinguishes floats from ints.
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
