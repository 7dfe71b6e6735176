package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	. "src.slt.sh/pkg/prog"
	"src.slt.sh/pkg/prog/progtest"
)

var (
	Test    = progtest.Test
	ThatSlt = progtest.ThatSlt
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatSlt("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		ThatSlt("-h").
			WritesStdoutContaining("Usage: slt [flags] [script]").
			WritesStdoutContaining("-help"),

		ThatSlt("-help").
			WritesStdoutContaining("Usage: slt [flags] [script]").
			WritesStdoutContaining("-lsp"),

		ThatSlt("-cpuprofile", cpuprof).DoesNothing(),
		ThatSlt("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
		ThatSlt("-log", filepath.Join(dir, "log")).DoesNothing(),
		ThatSlt("-log", filepath.Join(dir, "no-such-dir", "log")).
			WritesStderrContaining("no-such-dir"),
	)

	if _, err := os.Stat(cpuprof); err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestFlagsPassedToProgram(t *testing.T) {
	var got *Flags
	var gotArgs []string
	p := programFunc(func(fds [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = f, args
		return nil
	})
	progtest.Run(p, "", "slt", "-c", "-compileonly", "-json", "-norc",
		"-rc", "rc.yaml", "-db", "h.db", "-plain", "x = 1")

	want := Flags{CodeInArg: true, CompileOnly: true, JSON: true, NoRc: true,
		RC: "rc.yaml", DB: "h.db", Plain: true}
	if got == nil || *got != want {
		t.Errorf("got flags %+v, want %+v", got, want)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "x = 1" {
		t.Errorf("got args %q, want [\"x = 1\"]", gotArgs)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatSlt().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatSlt().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatSlt().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatSlt().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatSlt().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatSlt().ExitsWith(3).WritesStderr(""),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatSlt().ExitsWith(0),
	)
}

func TestStdin(t *testing.T) {
	p := programFunc(func(fds [3]*os.File, _ *Flags, _ []string) error {
		buf := make([]byte, 5)
		n, _ := fds[0].Read(buf)
		fds[1].Write(buf[:n])
		return nil
	})
	Test(t, p, ThatSlt().WithStdin("hello").WritesStdout("hello"))
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type programFunc func(fds [3]*os.File, f *Flags, args []string) error

func (p programFunc) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
