package eval

import (
	"fmt"
	"strings"

	"src.slt.sh/pkg/eval/vals"
	"src.slt.sh/pkg/parse"
)

// Callable is a value that can be called. It is implemented by *Closure and
// *Builtin.
type Callable interface {
	vals.Kinder
	call(fm *frame, args []any) (any, error)
}

// Closure is a function defined with a fn literal. It captures the Env in
// which it was defined, and the source it was defined in.
type Closure struct {
	// Name is the name of the variable the closure was first assigned to, or
	// empty if it was never assigned.
	Name   string
	Params []string
	Body   *parse.Block
	Env    *Env
	Source parse.Source
}

var _ Callable = (*Closure)(nil)

// Kind returns "fn".
func (*Closure) Kind() string { return "fn" }

// Repr returns "<fn name>", or "<fn>" for an anonymous closure.
func (c *Closure) Repr() string {
	if c.Name == "" {
		return "<fn>"
	}
	return "<fn " + c.Name + ">"
}

func (c *Closure) call(fm *frame, args []any) (any, error) {
	if len(args) != len(c.Params) {
		return nil, fmt.Errorf("%w: want %d arguments, got %d",
			ErrArity, len(c.Params), len(args))
	}
	env := NewEnv(c.Env)
	for i, param := range c.Params {
		env.Set(param, args[i])
	}
	callee := &frame{ev: fm.ev, src: c.Source, env: env, depth: fm.depth + 1}
	v, returned, err := callee.execStmts(c.Body.Stmts)
	if err != nil || !returned {
		// A function without an explicit return statement returns null.
		return nil, err
	}
	return v, nil
}

// Builtin is a function implemented in Go.
type Builtin struct {
	name string
	// Number of arguments accepted; maxArgs of -1 means unlimited.
	minArgs, maxArgs int
	impl             func(ev *Evaler, args []any) (any, error)
}

var _ Callable = (*Builtin)(nil)

// Kind returns "builtin".
func (*Builtin) Kind() string { return "builtin" }

// Name returns the name of the builtin.
func (b *Builtin) Name() string { return b.name }

// Repr returns "<builtin name>".
func (b *Builtin) Repr() string { return "<builtin " + b.name + ">" }

func (b *Builtin) call(fm *frame, args []any) (any, error) {
	if len(args) < b.minArgs || (b.maxArgs >= 0 && len(args) > b.maxArgs) {
		var want string
		switch {
		case b.minArgs == b.maxArgs:
			want = fmt.Sprint(b.minArgs)
		case b.maxArgs < 0:
			want = fmt.Sprintf("at least %d", b.minArgs)
		default:
			want = fmt.Sprintf("%d to %d", b.minArgs, b.maxArgs)
		}
		return nil, fmt.Errorf("%w: %s wants %s arguments, got %d",
			ErrArity, b.name, want, len(args))
	}
	return b.impl(fm.ev, args)
}

func printValues(ev *Evaler, args []any) (any, error) {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = vals.ToString(arg)
	}
	_, err := fmt.Fprintln(ev.Out, strings.Join(strs, " "))
	return nil, err
}
