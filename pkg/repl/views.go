package repl

import (
	"strings"
	"unicode"

	"src.slt.sh/pkg/diag"
)

const (
	// ErrorMarker starts the result view of a failed input.
	ErrorMarker = "[error] "
	// NullText is shown in place of an absent value.
	NullText = "null"
	// UntypedLabel is shown in place of the type name of an absent value.
	UntypedLabel = "?"
	// MaxVariables is the maximum number of entries in the variables view.
	MaxVariables = 16
)

// Variable is an entry in the variables view.
type Variable struct {
	Type  string
	Name  string
	Value string
}

// TreeLine is a line in the structure view. Indent is the number of
// whitespace characters the line was indented with in the dump.
type TreeLine struct {
	Indent int
	Text   string
}

// Failed reports whether the last input failed to parse or evaluate.
func (s *Session) Failed() bool {
	return s.last.outcome != nil && s.last.outcome.Failed()
}

// ResultView shows the outcome of the last input. A failure is shown as
// ErrorMarker followed by the error; errors that can show their source
// context do so. A success is shown as the text form of the value, or
// NullText if the value is nil or there has been no input.
func (s *Session) ResultView() string {
	outcome := s.last.outcome
	switch {
	case outcome == nil:
		return NullText
	case outcome.Failed():
		if shower, ok := outcome.Err.(diag.Shower); ok {
			return ErrorMarker + shower.Show("")
		}
		return ErrorMarker + outcome.Err.Error()
	case outcome.Value == nil:
		return NullText
	default:
		return s.interp.TextFormOf(outcome.Value)
	}
}

// VariablesView lists the bindings of the Environment in its order, up to
// MaxVariables entries.
func (s *Session) VariablesView() []Variable {
	names := s.env.Names()
	if len(names) > MaxVariables {
		names = names[:MaxVariables]
	}
	view := make([]Variable, len(names))
	for i, name := range names {
		view[i] = Variable{Type: UntypedLabel, Name: name, Value: NullText}
		if v, _ := s.env.Get(name); v != nil {
			view[i].Type = s.interp.TypeNameOf(v)
			view[i].Value = s.interp.TextFormOf(v)
		}
	}
	return view
}

// StructureView shows the structure of the last successfully parsed program,
// one entry per non-blank line of its dump. It is empty if no input has been
// parsed successfully.
func (s *Session) StructureView() []TreeLine {
	if s.last.program == nil {
		return nil
	}
	var view []TreeLine
	for _, line := range strings.Split(s.interp.Render(s.last.program), "\n") {
		text := strings.TrimLeftFunc(line, unicode.IsSpace)
		if text == "" {
			continue
		}
		indent := len([]rune(line)) - len([]rune(text))
		view = append(view, TreeLine{Indent: indent, Text: strings.TrimRightFunc(text, unicode.IsSpace)})
	}
	return view
}
