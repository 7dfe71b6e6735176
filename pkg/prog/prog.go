// Package prog parses the command line of slt and dispatches to one of its
// subprograms: the REPL, the script runner or the language server.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"src.slt.sh/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log, CPUProfile string

	Help, Version, BuildInfo, JSON bool

	CodeInArg, CompileOnly, NoRc bool
	RC                           string

	DB string

	LSP, Plain bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("slt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Help, "h", false, "same as -help")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON; useful with -compileonly")

	fs.BoolVar(&f.CodeInArg, "c", false, "take first argument as code to execute")
	fs.BoolVar(&f.CompileOnly, "compileonly", false, "parse but do not execute")
	fs.BoolVar(&f.NoRc, "norc", false, "run slt without reading rc.yaml")
	fs.StringVar(&f.RC, "rc", "", "path to rc.yaml")

	fs.StringVar(&f.DB, "db", "", "path to the history database")

	fs.BoolVar(&f.LSP, "lsp", false, "run the language server instead of the REPL")
	fs.BoolVar(&f.Plain, "plain", false, "disable colors and line editing")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: slt [flags] [script]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses the flags in args[1:], runs p, and returns the exit status.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(fds[2], err)
		usage(fds[2], fs)
		return 2
	}

	if f.CPUProfile != "" {
		defer startCPUProfile(fds[2], f.CPUProfile)()
	}
	if f.Log != "" {
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutputFile("")
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err := p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	if errors.As(err, new(badUsageError)) {
		usage(fds[2], fs)
	}
	return exitStatus(err)
}

// Starts writing a CPU profile to path and returns a function that stops it.
// A failure is only a warning.
func startCPUProfile(w io.Writer, path string) func() {
	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(w, "Warning: cannot create CPU profile:", err)
		fmt.Fprintln(w, "Continuing without CPU profiling.")
		return func() {}
	}
	if err := pprof.StartCPUProfile(out); err != nil {
		fmt.Fprintln(w, "Warning: cannot start CPU profile:", err)
		out.Close()
		return func() {}
	}
	return func() {
		pprof.StopCPUProfile()
		out.Close()
	}
}

func exitStatus(err error) int {
	var exit exitError
	if errors.As(err, &exit) {
		return exit.exit
	}
	return 2
}

// Composite returns a Program that runs the first of programs that does not
// return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		if err := p.Run(fds, f, args); err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// ErrNotSuitable is returned by a Program that does not handle the given
// flags.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns an error that makes Run print msg followed by the usage,
// and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that makes Run exit with the given status and print
// nothing. Exit(0) is nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program is a subprogram of slt.
type Program interface {
	Run(fds [3]*os.File, f *Flags, args []string) error
}
