package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wcswidth returns the width of a string when displayed on the terminal.
func Wcswidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates s so that it is at most width columns wide, ending it
// with "…" if anything was cut off. A non-positive width leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || Wcswidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width columns.
func PadRight(s string, width int) string {
	if w := Wcswidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
