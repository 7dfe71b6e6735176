package repl

import (
	"fmt"

	"src.slt.sh/pkg/eval"
	"src.slt.sh/pkg/eval/vals"
	"src.slt.sh/pkg/parse"
)

// Program is an opaque parsed piece of input, produced by one of the parse
// methods of an Interpreter and consumed by its Evaluate and Render methods.
type Program any

// Environment is the persistent set of variable bindings of a session. The
// session only reads it; it is mutated by Interpreter.Evaluate.
type Environment interface {
	// Names returns the bound names in a stable order.
	Names() []string
	// Get returns the value bound to a name.
	Get(name string) (any, bool)
}

// Interpreter is the language implementation driven by a Session.
type Interpreter interface {
	// NewEnvironment creates an empty Environment.
	NewEnvironment() Environment
	// ParseScript parses source as a sequence of statements.
	ParseScript(src parse.Source) (Program, error)
	// ParseExpression parses source as a single expression.
	ParseExpression(src parse.Source) (Program, error)
	// Evaluate evaluates a Program, possibly mutating env.
	Evaluate(p Program, env Environment) (any, error)
	// Render returns a multi-line dump of the Program's structure, using
	// leading whitespace for nesting.
	Render(p Program) string
	// TypeNameOf returns the runtime type name of a non-nil value.
	TypeNameOf(v any) string
	// TextFormOf returns the text form of a non-nil value.
	TextFormOf(v any) string
}

// NewInterpreter returns an Interpreter for slt, backed by the parse and eval
// packages.
func NewInterpreter(ev *eval.Evaler) Interpreter {
	return sltInterpreter{ev}
}

type sltInterpreter struct {
	ev *eval.Evaler
}

func (si sltInterpreter) NewEnvironment() Environment {
	return si.ev.NewGlobal()
}

func (sltInterpreter) ParseScript(src parse.Source) (Program, error) {
	chunk, err := parse.ParseScript(src)
	if err != nil {
		return nil, err
	}
	return eval.Program{Source: src, Root: chunk}, nil
}

func (sltInterpreter) ParseExpression(src parse.Source) (Program, error) {
	expr, err := parse.ParseExpression(src)
	if err != nil {
		return nil, err
	}
	return eval.Program{Source: src, Root: expr}, nil
}

func (si sltInterpreter) Evaluate(p Program, env Environment) (any, error) {
	program, ok := p.(eval.Program)
	if !ok {
		return nil, fmt.Errorf("cannot evaluate %T", p)
	}
	globals, ok := env.(*eval.Env)
	if !ok {
		return nil, fmt.Errorf("cannot evaluate in %T", env)
	}
	return si.ev.Eval(program, globals)
}

func (sltInterpreter) Render(p Program) string {
	if program, ok := p.(eval.Program); ok {
		return parse.Render(program.Root)
	}
	return ""
}

func (sltInterpreter) TypeNameOf(v any) string { return vals.Kind(v) }

func (sltInterpreter) TextFormOf(v any) string { return vals.ToString(v) }
