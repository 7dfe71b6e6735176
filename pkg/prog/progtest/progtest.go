// Package progtest contains utilities for testing subprograms of slt.
package progtest

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"src.slt.sh/pkg/must"
	"src.slt.sh/pkg/prog"
)

// Case is a test case for Test. It is built with ThatSlt and the methods of
// Case.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit                           int
	stdout, stderr                 string
	stdoutContains, stderrContains []string
	checkStdout, checkStderr       bool
}

// ThatSlt returns a new Case with the given command-line arguments, not
// including the program name.
func ThatSlt(args ...string) Case {
	return Case{args: append([]string{"slt"}, args...)}
}

// WithStdin returns an altered Case that feeds the given text to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// ExitsWith returns an altered Case that requires the given exit status.
func (c Case) ExitsWith(exit int) Case {
	c.want.exit = exit
	return c
}

// WritesStdout returns an altered Case that requires the exact stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout, c.want.checkStdout = s, true
	return c
}

// WritesStdoutContaining returns an altered Case that requires stdout to
// contain the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdoutContains = append(c.want.stdoutContains, s)
	return c
}

// WritesStderr returns an altered Case that requires the exact stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr, c.want.checkStderr = s, true
	return c
}

// WritesStderrContaining returns an altered Case that requires stderr to
// contain the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderrContains = append(c.want.stderrContains, s)
	return c
}

// DoesNothing returns an altered Case that requires no output and a zero exit
// status.
func (c Case) DoesNothing() Case {
	return c.WritesStdout("").WritesStderr("").ExitsWith(0)
}

// Test runs the program with each of the Cases.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			if exit != c.want.exit {
				t.Errorf("got exit %v, want %v", exit, c.want.exit)
			}
			if c.want.checkStdout && stdout != c.want.stdout {
				t.Errorf("got stdout %q, want %q", stdout, c.want.stdout)
			}
			for _, s := range c.want.stdoutContains {
				if !strings.Contains(stdout, s) {
					t.Errorf("got stdout %q, want one containing %q", stdout, s)
				}
			}
			if c.want.checkStderr && stderr != c.want.stderr {
				t.Errorf("got stderr %q, want %q", stderr, c.want.stderr)
			}
			for _, s := range c.want.stderrContains {
				if !strings.Contains(stderr, s) {
					t.Errorf("got stderr %q, want one containing %q", stderr, s)
				}
			}
		})
	}
}

// Run runs a Program with the given stdin and arguments (including the
// program name), and returns the exit status and outputs.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
		wg.Done()
	}()
	go func() {
		stdout = must.ReadAllAndClose(r1)
		wg.Done()
	}()
	go func() {
		stderr = must.ReadAllAndClose(r2)
		wg.Done()
	}()

	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	r0.Close()
	wg.Wait()
	return exit, stdout, stderr
}
