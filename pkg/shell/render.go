package shell

import (
	"fmt"
	"io"
	"strings"

	"src.slt.sh/pkg/rc"
	"src.slt.sh/pkg/repl"
	"src.slt.sh/pkg/ui"
)

// Writes the panes of a session after each input.
type renderer struct {
	out   io.Writer
	color bool
	// Maximum width of lines in the variables and structure panes; 0 means
	// unlimited.
	width int
	panes rc.PanesConfig
}

func (r *renderer) render(s *repl.Session) {
	r.writeText(resultPane(s))
	if r.panes.Variables {
		if vars := s.VariablesView(); len(vars) > 0 {
			r.writeText(paneHeader("variables"))
			for _, v := range vars {
				r.writeText(r.fit(variableLine(v)))
			}
		}
	}
	if r.panes.Structure {
		if tree := s.StructureView(); len(tree) > 0 {
			r.writeText(paneHeader("structure"))
			for _, line := range tree {
				r.writeText(r.fit(ui.T(strings.Repeat(" ", line.Indent) + line.Text)))
			}
		}
	}
}

func (r *renderer) writeText(t ui.Text) {
	fmt.Fprintln(r.out, t.Render(r.color))
}

// Truncates a single-line Text to the width of the renderer.
func (r *renderer) fit(t ui.Text) ui.Text {
	if r.width <= 0 || ui.Wcswidth(t.String()) <= r.width {
		return t
	}
	var fitted ui.Text
	remaining := r.width
	for _, seg := range t {
		w := ui.Wcswidth(seg.Text)
		if w < remaining {
			fitted = append(fitted, seg)
			remaining -= w
			continue
		}
		fitted = append(fitted, &ui.Segment{Style: seg.Style, Text: ui.Truncate(seg.Text, remaining)})
		break
	}
	return fitted
}

func resultPane(s *repl.Session) ui.Text {
	if s.Failed() {
		return ui.T(s.ResultView(), ui.FgRed)
	}
	return ui.T(s.ResultView())
}

func paneHeader(name string) ui.Text {
	return ui.T("-- "+name+" --", ui.Dim)
}

func variableLine(v repl.Variable) ui.Text {
	return ui.Concat(
		ui.T(v.Type, ui.FgCyan), ui.T(" "),
		ui.T(v.Name, ui.FgYellow),
		ui.T(" =", ui.FgWhite), ui.T(" "),
		ui.T(oneLine(v.Value), ui.FgCyan))
}

func oneLine(s string) string {
	return strings.NewReplacer("\n", `\n`, "\r", `\r`).Replace(s)
}
