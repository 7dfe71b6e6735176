package ui

import (
	"strconv"
	"strings"
)

// Color is a foreground color of the 8-color ANSI palette, optionally
// brightened.
type Color struct {
	index  int
	bright bool
}

// Colors of the ANSI palette.
var (
	Black   = Color{index: 0}
	Red     = Color{index: 1}
	Green   = Color{index: 2}
	Yellow  = Color{index: 3}
	Blue    = Color{index: 4}
	Magenta = Color{index: 5}
	Cyan    = Color{index: 6}
	White   = Color{index: 7}
)

// Bright returns the bright variant of the color.
func (c Color) Bright() Color { return Color{c.index, true} }

var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// String returns the name of the color, like "red" or "bright-red".
func (c Color) String() string {
	if c.bright {
		return "bright-" + colorNames[c.index]
	}
	return colorNames[c.index]
}

func (c Color) fgSGR() string {
	if c.bright {
		return strconv.Itoa(90 + c.index)
	}
	return strconv.Itoa(30 + c.index)
}

// ParseColor parses a color name as returned by Color.String.
func ParseColor(name string) (Color, bool) {
	name, bright := strings.CutPrefix(name, "bright-")
	for i, colorName := range colorNames {
		if name == colorName {
			return Color{i, bright}, true
		}
	}
	return Color{}, false
}
