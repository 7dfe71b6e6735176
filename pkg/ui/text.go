// Package ui contains types for styled text, and helpers for laying out text
// on a terminal.
package ui

import (
	"fmt"
	"strings"
)

// Segment is a string with a Style.
type Segment struct {
	Style
	Text string
}

// VTString renders the segment using VT-style escape sequences.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return s.Text
	}
	return fmt.Sprintf("\033[%sm%s\033[m", sgr, s.Text)
}

// Text is a list of styled Segments.
type Text []*Segment

// T constructs a Text with a single Segment, with the Stylings applied.
func T(s string, ts ...Styling) Text {
	return Text{&Segment{ApplyStyling(Style{}, ts...), s}}
}

// Concat returns a new Text with the segments of all the Texts.
func Concat(ts ...Text) Text {
	var result Text
	for _, t := range ts {
		result = append(result, t...)
	}
	return result
}

// String returns the content of the Text without any styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString renders the Text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}

// Render returns the VTString of the Text if color is true, and its String
// otherwise.
func (t Text) Render(color bool) string {
	if color {
		return t.VTString()
	}
	return t.String()
}
