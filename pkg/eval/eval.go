// Package eval evaluates parsed slt programs.
package eval

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"src.slt.sh/pkg/diag"
	"src.slt.sh/pkg/eval/vals"
	"src.slt.sh/pkg/logutil"
	"src.slt.sh/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// DefaultMaxCallDepth is the default value of Evaler.MaxCallDepth.
const DefaultMaxCallDepth = 1000

// Program is a parsed piece of source code that can be evaluated. Root is
// either a *parse.Chunk or a parse.Expr.
type Program struct {
	Source parse.Source
	Root   parse.Node
}

// Evaler provides the builtin environment and settings shared by all
// evaluations.
type Evaler struct {
	// Destination of the print builtin.
	Out io.Writer
	// Maximum depth of nested function calls.
	MaxCallDepth int

	builtins *Env
}

// NewEvaler creates a new Evaler that prints to os.Stdout.
func NewEvaler() *Evaler {
	ev := &Evaler{Out: os.Stdout, MaxCallDepth: DefaultMaxCallDepth}
	ev.builtins = NewEnv(nil)
	for _, b := range builtins {
		ev.builtins.Set(b.name, b)
	}
	return ev
}

// NewGlobal creates an empty Env whose parent is the builtin environment. It
// is suitable for passing to Eval.
func (ev *Evaler) NewGlobal() *Env {
	return NewEnv(ev.builtins)
}

// BuiltinNames returns the names of all builtin functions, sorted.
func (ev *Evaler) BuiltinNames() []string {
	names := ev.builtins.Names()
	sort.Strings(names)
	return names
}

// Eval evaluates the program in env. Evaluating a chunk yields the value of
// its last executed statement, or nil if it has none; evaluating an
// expression yields its value. Bindings made before an exception is raised
// stay in env.
//
// The returned error, if not nil, is always an *Exception.
func (ev *Evaler) Eval(p Program, env *Env) (any, error) {
	fm := &frame{ev: ev, src: p.Source, env: env}
	switch root := p.Root.(type) {
	case *parse.Chunk:
		v, _, err := fm.execStmts(root.Stmts)
		return v, err
	case parse.Expr:
		return fm.eval(root)
	default:
		return nil, fmt.Errorf("cannot evaluate %T", p.Root)
	}
}

// The state of evaluating code from one source in one environment.
type frame struct {
	ev    *Evaler
	src   parse.Source
	env   *Env
	depth int
}

func (fm *frame) errorp(r diag.Ranger, reason error) error {
	var exc *Exception
	if errors.As(reason, &exc) {
		return reason
	}
	return &Exception{reason, *diag.NewContext(fm.src.Name, fm.src.Code, r)}
}

// Executes statements, returning the value of the last one, and whether a
// return statement was executed.
func (fm *frame) execStmts(stmts []parse.Stmt) (any, bool, error) {
	var v any
	for _, st := range stmts {
		var returned bool
		var err error
		v, returned, err = fm.exec(st)
		if err != nil || returned {
			return v, returned, err
		}
	}
	return v, false, nil
}

func (fm *frame) exec(st parse.Stmt) (any, bool, error) {
	switch st := st.(type) {
	case *parse.Assign:
		v, err := fm.eval(st.Value)
		if err != nil {
			return nil, false, err
		}
		if c, ok := v.(*Closure); ok && c.Name == "" {
			c.Name = st.Name
		}
		fm.env.Set(st.Name, v)
		return v, false, nil
	case *parse.ExprStmt:
		v, err := fm.eval(st.Expr)
		return v, false, err
	case *parse.Block:
		return fm.execStmts(st.Stmts)
	case *parse.If:
		cond, err := fm.evalBool(st.Cond)
		if err != nil {
			return nil, false, err
		}
		if cond {
			return fm.execStmts(st.Body.Stmts)
		} else if st.Else != nil {
			return fm.exec(st.Else)
		}
		return nil, false, nil
	case *parse.While:
		var v any
		for {
			cond, err := fm.evalBool(st.Cond)
			if err != nil || !cond {
				return v, false, err
			}
			var returned bool
			v, returned, err = fm.execStmts(st.Body.Stmts)
			if err != nil || returned {
				return v, returned, err
			}
		}
	case *parse.Return:
		if st.Value == nil {
			return nil, true, nil
		}
		v, err := fm.eval(st.Value)
		return v, err == nil, err
	default:
		return nil, false, fm.errorp(st, fmt.Errorf("unknown statement %T", st))
	}
}

func (fm *frame) evalBool(e parse.Expr) (bool, error) {
	v, err := fm.eval(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fm.errorp(e, typeError("condition must be bool, got %s", vals.Kind(v)))
	}
	return b, nil
}

func (fm *frame) eval(e parse.Expr) (any, error) {
	switch e := e.(type) {
	case *parse.Number:
		return e.Value, nil
	case *parse.String:
		return e.Value, nil
	case *parse.Bool:
		return e.Value, nil
	case *parse.Null:
		return nil, nil
	case *parse.Ident:
		v, ok := fm.env.Lookup(e.Name)
		if !ok {
			return nil, fm.errorp(e, fmt.Errorf("%w: %s", ErrUndefined, e.Name))
		}
		return v, nil
	case *parse.List:
		elems := make([]any, len(e.Elems))
		for i, elemExpr := range e.Elems {
			v, err := fm.eval(elemExpr)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return vals.MakeList(elems...), nil
	case *parse.Fn:
		return &Closure{Params: e.Params, Body: e.Body, Env: fm.env, Source: fm.src}, nil
	case *parse.Unary:
		operand, err := fm.eval(e.Operand)
		if err != nil {
			return nil, err
		}
		v, err := unaryOp(e.Op, operand)
		if err != nil {
			return nil, fm.errorp(e, err)
		}
		return v, nil
	case *parse.Binary:
		return fm.evalBinary(e)
	case *parse.Call:
		return fm.evalCall(e)
	case *parse.Index:
		target, err := fm.eval(e.Target)
		if err != nil {
			return nil, err
		}
		key, err := fm.eval(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := index(target, key)
		if err != nil {
			return nil, fm.errorp(e, err)
		}
		return v, nil
	default:
		return nil, fm.errorp(e, fmt.Errorf("unknown expression %T", e))
	}
}

func (fm *frame) evalBinary(e *parse.Binary) (any, error) {
	left, err := fm.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == "&&" || e.Op == "||" {
		l, ok := left.(bool)
		if !ok {
			return nil, fm.errorp(e.Left, typeError("operand of %s must be bool, got %s", e.Op, vals.Kind(left)))
		}
		if l == (e.Op == "||") {
			return l, nil
		}
		return fm.evalBool(e.Right)
	}
	right, err := fm.eval(e.Right)
	if err != nil {
		return nil, err
	}
	v, err := binaryOp(e.Op, left, right)
	if err != nil {
		return nil, fm.errorp(e, err)
	}
	return v, nil
}

func (fm *frame) evalCall(e *parse.Call) (any, error) {
	callee, err := fm.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(e.Args))
	for i, argExpr := range e.Args {
		args[i], err = fm.eval(argExpr)
		if err != nil {
			return nil, err
		}
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, fm.errorp(e.Callee, fmt.Errorf("%w: %s", ErrNotCallable, vals.Kind(callee)))
	}
	if fm.depth >= fm.ev.MaxCallDepth {
		logger.Printf("call depth %d exceeded at %s", fm.ev.MaxCallDepth, fm.src.Name)
		return nil, fm.errorp(e, ErrCallDepth)
	}
	v, err := fn.call(fm, args)
	if err != nil {
		return nil, fm.errorp(e, err)
	}
	return v, nil
}

func unaryOp(op string, v any) (any, error) {
	switch op {
	case "-":
		switch v := v.(type) {
		case int:
			return -v, nil
		case float64:
			return -v, nil
		}
		return nil, typeError("operand of - must be number, got %s", vals.Kind(v))
	case "!":
		if b, ok := v.(bool); ok {
			return !b, nil
		}
		return nil, typeError("operand of ! must be bool, got %s", vals.Kind(v))
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func binaryOp(op string, l, r any) (any, error) {
	switch op {
	case "==":
		return vals.Equal(l, r), nil
	case "!=":
		return !vals.Equal(l, r), nil
	case "<", "<=", ">", ">=":
		return compare(op, l, r)
	case "+":
		switch l := l.(type) {
		case string:
			if r, ok := r.(string); ok {
				return l + r, nil
			}
		case vals.List:
			if r, ok := r.(vals.List); ok {
				return l.Concat(r), nil
			}
		}
	}
	return arith(op, l, r)
}

func arith(op string, l, r any) (any, error) {
	if li, ok := l.(int); ok {
		if ri, ok := r.(int); ok {
			switch op {
			case "+":
				return li + ri, nil
			case "-":
				return li - ri, nil
			case "*":
				return li * ri, nil
			case "/", "%":
				if ri == 0 {
					return nil, ErrDivideByZero
				}
				if op == "/" {
					return li / ri, nil
				}
				return li % ri, nil
			}
		}
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok || op == "%" {
		return nil, typeError("unsupported operand types for %s: %s and %s",
			op, vals.Kind(l), vals.Kind(r))
	}
	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, ErrDivideByZero
		}
		return lf / rf, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func compare(op string, l, r any) (any, error) {
	var c int
	if ls, ok := l.(string); ok {
		rs, ok := r.(string)
		if !ok {
			return nil, typeError("cannot compare string and %s", vals.Kind(r))
		}
		c = cmpOrdered(ls, rs)
	} else {
		lf, lok := toFloat(l)
		rf, rok := toFloat(r)
		if !lok || !rok {
			return nil, typeError("cannot compare %s and %s", vals.Kind(l), vals.Kind(r))
		}
		c = cmpOrdered(lf, rf)
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

func cmpOrdered[T string | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func index(target, key any) (any, error) {
	i, ok := key.(int)
	if !ok {
		return nil, typeError("index must be int, got %s", vals.Kind(key))
	}
	switch target := target.(type) {
	case vals.List:
		v, ok := target.Index(i)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
		}
		return v, nil
	case string:
		n := utf8.RuneCountInString(target)
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
		}
		return string([]rune(target)[i]), nil
	}
	return nil, typeError("cannot index %s", vals.Kind(target))
}
