// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"src.slt.sh/pkg/env"
)

// Cleanuper wraps the Cleanup method. It is a subset of testing.TB, thus
// satisfied by *testing.T and *testing.B.
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v for the duration of a test.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	SaveEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable for the duration of a test.
func Unsetenv(c Cleanuper, name string) {
	SaveEnv(c, name)
	os.Unsetenv(name)
}

// SaveEnv saves the current value of an environment variable so that it will
// be restored after a test has finished.
func SaveEnv(c Cleanuper, name string) {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}

// TempHome points HOME, XDG_CONFIG_HOME and XDG_DATA_HOME at fresh
// directories under dir for the duration of a test, and returns the home
// directory.
func TempHome(c Cleanuper, dir string) string {
	home := filepath.Join(dir, "home")
	Setenv(c, env.HOME, home)
	Setenv(c, env.XDG_CONFIG_HOME, filepath.Join(home, ".config"))
	Setenv(c, env.XDG_DATA_HOME, filepath.Join(home, ".local", "share"))
	return home
}

// Dedent removes the longest common indentation of the non-blank lines of
// text, and a leading newline. Blank lines become empty.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		switch {
		case first:
			margin, first = indent, false
		case strings.HasPrefix(indent, margin):
		case strings.HasPrefix(margin, indent):
			margin = indent
		default:
			margin = commonPrefix(margin, indent)
		}
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}
