package vals

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the receiver to another value. Two equal values must have
	// the same hash code.
	Equal(other any) bool
}

// Equal returns whether two values are equal. Numbers compare by value, so
// 1 == 1.0; Lists compare elementwise; values satisfying Equaler use their
// Equal method; other values compare with ==, which for functions is
// identity.
func Equal(x, y any) bool {
	switch x := x.(type) {
	case int:
		switch y := y.(type) {
		case int:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := y.(type) {
		case int:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case List:
		y, ok := y.(List)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	case Equaler:
		return x.Equal(y)
	}
	return x == y
}
