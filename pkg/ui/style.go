package ui

import "strings"

// Style specifies how a piece of text shall be displayed.
type Style struct {
	Foreground *Color
	Bold       bool
	Dim        bool
	Underlined bool
}

// SGR returns the SGR sequence for the style, without the leading "\033["
// and the trailing "m".
func (s Style) SGR() string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Underlined, "4")
	if s.Foreground != nil {
		sgr = append(sgr, s.Foreground.fgSGR())
	}

	return strings.Join(sgr, ";")
}

// Styling specifies a change to a Style.
type Styling interface{ transform(*Style) }

type setForeground struct{ c Color }

func (s setForeground) transform(st *Style) {
	c := s.c
	st.Foreground = &c
}

type boolOn func(*Style) *bool

func (f boolOn) transform(st *Style) { *f(st) = true }

// Common stylings.
var (
	FgRed     Styling = setForeground{Red}
	FgGreen   Styling = setForeground{Green}
	FgYellow  Styling = setForeground{Yellow}
	FgCyan    Styling = setForeground{Cyan}
	FgWhite   Styling = setForeground{White}
	Bold      Styling = boolOn(func(s *Style) *bool { return &s.Bold })
	Dim       Styling = boolOn(func(s *Style) *bool { return &s.Dim })
	Underline Styling = boolOn(func(s *Style) *bool { return &s.Underlined })
)

// Fg returns a Styling that sets the foreground color.
func Fg(c Color) Styling { return setForeground{c} }

// ApplyStyling returns a copy of the Style with the Stylings applied.
func ApplyStyling(s Style, ts ...Styling) Style {
	for _, t := range ts {
		if t != nil {
			t.transform(&s)
		}
	}
	return s
}
