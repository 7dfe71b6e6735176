// Package sys provides system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// DefaultWidth is the width assumed for outputs that are not terminals, or
// whose size cannot be determined.
const DefaultWidth = 80

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns (-1, -1) if the size cannot be determined.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// TermWidth returns the number of columns of the terminal referenced by the
// given file, or DefaultWidth if it is not a terminal.
func TermWidth(file *os.File) int {
	if !IsATTY(file.Fd()) {
		return DefaultWidth
	}
	if _, col := WinSize(file); col > 0 {
		return col
	}
	return DefaultWidth
}
