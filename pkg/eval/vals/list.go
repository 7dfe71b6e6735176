package vals

// List is an immutable list of values. The zero value is an empty list.
type List struct {
	elems []any
}

// MakeList creates a List from the arguments. The argument slice is copied.
func MakeList(elems ...any) List {
	return List{append([]any(nil), elems...)}
}

// Len returns the number of elements.
func (l List) Len() int { return len(l.elems) }

// Index returns the element at index i, and whether i is in range. Negative
// indices count from the end.
func (l List) Index(i int) (any, bool) {
	if i < 0 {
		i += len(l.elems)
	}
	if i < 0 || i >= len(l.elems) {
		return nil, false
	}
	return l.elems[i], true
}

// Append returns a new List with the given values appended.
func (l List) Append(vs ...any) List {
	elems := make([]any, 0, len(l.elems)+len(vs))
	return List{append(append(elems, l.elems...), vs...)}
}

// Concat returns a new List with the elements of both lists.
func (l List) Concat(r List) List {
	return l.Append(r.elems...)
}
