package shell

import (
	"strings"
	"testing"

	"src.slt.sh/pkg/eval"
	"src.slt.sh/pkg/rc"
	"src.slt.sh/pkg/repl"
	"src.slt.sh/pkg/ui"
)

func newTestSession(inputs ...string) *repl.Session {
	s := repl.NewSession(repl.NewInterpreter(eval.NewEvaler()))
	for _, input := range inputs {
		s.Submit(input)
	}
	return s
}

func TestRenderer_Color(t *testing.T) {
	var sb strings.Builder
	r := &renderer{out: &sb, color: true, panes: rc.PanesConfig{Variables: true}}
	r.render(newTestSession("x = 1"))

	want := "1\n" +
		"\033[2m-- variables --\033[m\n" +
		"\033[36mint\033[m \033[33mx\033[m\033[37m =\033[m \033[36m1\033[m\n"
	if got := sb.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	sb.Reset()
	r.panes = rc.PanesConfig{}
	r.render(newTestSession("y"))
	if got := sb.String(); !strings.HasPrefix(got, "\033[31m[error] Runtime error") {
		t.Errorf("failure rendered as %q, want red error", got)
	}
}

func TestRenderer_Width(t *testing.T) {
	var sb strings.Builder
	r := &renderer{out: &sb, width: 12, panes: rc.PanesConfig{Variables: true, Structure: true}}
	r.render(newTestSession(`s = "a long string value"`))

	want := `a long string value` + "\n" +
		"-- variables --\n" +
		"string s = …\n" +
		"-- structure --\n" +
		`Chunk/Assig…` + "\n" +
		`  String Va…` + "\n"
	if got := sb.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderer_MultilineValue(t *testing.T) {
	var sb strings.Builder
	r := &renderer{out: &sb, panes: rc.PanesConfig{Variables: true}}
	r.render(newTestSession(`s = "a\nb"`))
	if want := "a\nb\n-- variables --\nstring s = a\\nb\n"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestFit(t *testing.T) {
	r := &renderer{width: 5}
	got := r.fit(ui.Concat(ui.T("ab", ui.FgCyan), ui.T("cdef", ui.FgYellow)))
	if got.String() != "abcd…" {
		t.Errorf("fit -> %q, want %q", got.String(), "abcd…")
	}
	if got.VTString() != "\033[36mab\033[m\033[33mcd…\033[m" {
		t.Errorf("fit lost styles: %q", got.VTString())
	}
}
