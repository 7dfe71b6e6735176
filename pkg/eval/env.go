package eval

// Env is a mutable set of variable bindings. Bindings are kept in insertion
// order. An Env may have a parent, which is consulted by Lookup when a name is
// not bound in the Env itself.
type Env struct {
	parent *Env
	names  []string
	values map[string]any
}

// NewEnv creates an empty Env with the given parent, which may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]any)}
}

// Get returns the value bound to name in the Env itself, ignoring parents.
func (e *Env) Get(name string) (any, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Lookup returns the value bound to name in the Env or its closest ancestor
// that binds it.
func (e *Env) Lookup(name string) (any, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name to v in the Env. A new name is appended to the end of the
// binding order; rebinding an existing name keeps its position.
func (e *Env) Set(name string, v any) {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = v
}

// Names returns the names bound in the Env itself, in insertion order.
func (e *Env) Names() []string {
	return append([]string(nil), e.names...)
}

// Len returns the number of bindings in the Env itself.
func (e *Env) Len() int { return len(e.names) }
