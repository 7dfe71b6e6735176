// Package repl implements the evaluation core of an interactive session.
//
// A Session accepts one chunk of input at a time with Submit, and exposes
// three views of the result: the value or error of the last input
// (ResultView), the variables bound so far (VariablesView), and the structure
// of the last parsed program (StructureView).
//
// A Session is not safe for concurrent use. Submit runs to completion before
// returning, and there is no way to interrupt an evaluation that does not
// terminate.
package repl

import (
	"errors"
	"fmt"

	"src.slt.sh/pkg/logutil"
	"src.slt.sh/pkg/parse"
)

var logger = logutil.GetLogger("[repl] ")

// ErrInternal is wrapped by the error recorded when the interpreter panics.
var ErrInternal = errors.New("internal error")

// Mode is how a piece of input was parsed.
type Mode int

const (
	// NotParsed means that the input could not be parsed in any mode.
	NotParsed Mode = iota
	// ScriptMode means that the input was parsed as a script.
	ScriptMode
	// ExpressionMode means that the input failed to parse as a script but was
	// parsed as an expression.
	ExpressionMode
)

func (m Mode) String() string {
	switch m {
	case ScriptMode:
		return "script"
	case ExpressionMode:
		return "expression"
	default:
		return "not parsed"
	}
}

// Outcome is the result of evaluating one piece of input. Exactly one of
// Value and Err is meaningful: when Err is nil, Value is the result (which
// may itself be nil).
type Outcome struct {
	Value any
	Err   error
}

// Failed reports whether the outcome is a failure.
func (o *Outcome) Failed() bool { return o.Err != nil }

// The part of the session state replaced by each Submit. A snapshot is never
// modified after it is published.
type snapshot struct {
	program Program
	mode    Mode
	outcome *Outcome
}

// Session holds the state of an interactive session: one Environment, and
// the program and outcome of the last input.
type Session struct {
	interp Interpreter
	env    Environment
	last   *snapshot
	inputs int
}

// NewSession creates a Session with a fresh Environment.
func NewSession(interp Interpreter) *Session {
	return &Session{interp: interp, env: interp.NewEnvironment(), last: &snapshot{}}
}

// Env returns the Environment of the session.
func (s *Session) Env() Environment { return s.env }

// Program returns the last successfully parsed program, or nil if no input
// has been parsed successfully.
func (s *Session) Program() Program { return s.last.program }

// Mode returns how the last input was parsed.
func (s *Session) Mode() Mode { return s.last.mode }

// Outcome returns the outcome of the last input, or nil if there has been
// no input.
func (s *Session) Outcome() *Outcome { return s.last.outcome }

// Submit parses and evaluates one piece of input, and records the outcome.
//
// The input is first parsed as a script. If that fails, it is parsed as an
// expression; if that also fails, the error of the expression parse becomes
// the outcome and the last program is kept. Otherwise the parsed program
// replaces the last program and is evaluated in the session's Environment,
// whether or not the evaluation succeeds. Changes made to the Environment
// before an evaluation fails are kept.
//
// Submit never panics because of a fault in the interpreter; such faults are
// recorded as outcomes wrapping ErrInternal.
func (s *Session) Submit(text string) {
	s.inputs++
	s.SubmitSource(parse.Source{Name: fmt.Sprintf("[repl %d]", s.inputs), Code: text})
}

// SubmitSource is like Submit, but takes the name used in error messages
// from src instead of numbering the input.
func (s *Session) SubmitSource(src parse.Source) {
	next := &snapshot{program: s.last.program}
	program, mode, err := s.parse(src)
	if err != nil {
		next.outcome = &Outcome{Err: err}
	} else {
		next.program, next.mode = program, mode
		v, err := protect(func() (any, error) {
			return s.interp.Evaluate(program, s.env)
		})
		if err != nil {
			next.outcome = &Outcome{Err: err}
		} else {
			next.outcome = &Outcome{Value: v}
		}
	}
	logger.Printf("%s parsed as %s, failed: %t", src.Name, next.mode, next.outcome.Failed())
	s.last = next
}

// Parses the source as a script, falling back to an expression. The error of
// the script parse is discarded.
func (s *Session) parse(src parse.Source) (Program, Mode, error) {
	program, err := protect(func() (Program, error) {
		return s.interp.ParseScript(src)
	})
	if err == nil {
		return program, ScriptMode, nil
	}
	program, err = protect(func() (Program, error) {
		return s.interp.ParseExpression(src)
	})
	if err == nil {
		return program, ExpressionMode, nil
	}
	return nil, NotParsed, err
}

// Calls f, converting a panic into an error.
func protect[T any](f func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("recovered from panic: %v", r)
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return f()
}
