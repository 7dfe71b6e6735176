package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"src.slt.sh/pkg/diag"
	"src.slt.sh/pkg/env"
	"src.slt.sh/pkg/errutil"
	"src.slt.sh/pkg/eval"
	"src.slt.sh/pkg/parse"
	"src.slt.sh/pkg/rc"
	"src.slt.sh/pkg/repl"
	"src.slt.sh/pkg/store"
	"src.slt.sh/pkg/store/storedefs"
	"src.slt.sh/pkg/sys"
)

const continuationPrompt = ". "

const helpText = `Enter a script (like "x = 1") or an expression (like "x + 1").
Unclosed brackets continue the input on the next line.
Commands:
  :help               Show this help
  :config             Show the configuration in effect
  :history [prefix]   Show the inputs, or only those starting with prefix
  :history delete N   Delete input N from the history
  :redo [prefix]      Run the last input again, or the last one starting with prefix
  :quit               Exit the REPL (Ctrl-D also works)`

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Config *rc.Config
	// Path of the history database; "" disables the persistent history.
	DBPath string
	// Disables colors and line editing.
	Plain bool
}

// Interact runs an interactive REPL session until the input ends or :quit is
// entered.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	rcCfg := cfg.Config
	if rcCfg == nil {
		rcCfg = rc.Default()
	}

	ev := eval.NewEvaler()
	ev.Out = fds[1]
	session := repl.NewSession(repl.NewInterpreter(ev))

	hist := openHistory(fds[2], cfg.DBPath, rcCfg.History.Size)
	defer hist.close(fds[2])

	var ed editor
	if !cfg.Plain && canUseLiner(fds[0], fds[1], sys.IsATTY) {
		ed = newLineEditor(func(prefix string) []string {
			return complete(prefix, parse.Keywords(), ev.BuiltinNames(), session.Env().Names())
		})
	} else {
		ed = newMinEditor(fds[0], fds[2])
	}
	defer ed.Close()
	for _, line := range hist.recent() {
		ed.AddHistory(oneLine(line))
	}

	r := &renderer{
		out:   fds[1],
		color: rcCfg.Color && !cfg.Plain && sys.IsATTY(fds[1].Fd()) && os.Getenv(env.NO_COLOR) == "",
		width: sys.TermWidth(fds[1]),
		panes: rcCfg.Panes,
	}

	for i, code := range rcCfg.Prelude {
		session.SubmitSource(parse.Source{Name: fmt.Sprintf("[prelude %d]", i+1), Code: code})
		if session.Failed() {
			fmt.Fprintln(fds[2], "Warning: prelude input failed:")
			diag.ShowError(fds[2], session.Outcome().Err)
		}
	}

	for {
		code, err := readCode(ed, rcCfg.Prompt)
		if err == io.EOF {
			break
		} else if errors.Is(err, errAborted) {
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			redo, quit := runCommand(fds[1], trimmed, rcCfg, hist)
			if quit {
				break
			}
			if redo == "" {
				continue
			}
			code = redo
		}

		session.Submit(code)
		ed.AddHistory(oneLine(code))
		hist.add(code)
		r.render(session)
	}
}

// Reads one input, continuing on more lines while it has unclosed brackets.
func readCode(ed editor, prompt string) (string, error) {
	var sb strings.Builder
	for {
		p := prompt
		if sb.Len() > 0 {
			p = continuationPrompt
		}
		line, err := ed.ReadLine(p)
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		if !parse.IsIncomplete(sb.String()) {
			return sb.String(), nil
		}
	}
}

// Runs a REPL command. It returns the input to run again for :redo, and
// whether the REPL should quit.
func runCommand(out io.Writer, cmd string, cfg *rc.Config, hist *history) (redo string, quit bool) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	var err error
	switch name {
	case ":quit", ":q", ":exit":
		return "", true
	case ":help":
		fmt.Fprintln(out, helpText)
	case ":config":
		var data []byte
		if data, err = cfg.Marshal(); err == nil {
			out.Write(data)
		}
	case ":history":
		fields := strings.Fields(arg)
		switch {
		case len(fields) == 0 || fields[0] != "delete":
			err = hist.list(out, arg)
		case len(fields) != 2:
			fmt.Fprintln(out, "usage: :history delete N")
		default:
			var seq int
			if seq, err = strconv.Atoi(fields[1]); err == nil {
				err = hist.delete(out, seq)
			}
		}
	case ":redo":
		redo, err = hist.last(arg)
		if err == nil {
			fmt.Fprintln(out, oneLine(redo))
		}
	default:
		fmt.Fprintf(out, "unknown command %s; try :help\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", name, err)
	}
	return redo, false
}

// The input history. It is kept in a database if one could be opened, and in
// memory otherwise.
type history struct {
	st   store.DBStore
	size int
}

// Opens the history store. Errors are shown as warnings, and leave the
// history in memory only.
func openHistory(w io.Writer, dbPath string, size int) *history {
	h := &history{st: store.NewMemStore(), size: size}
	if dbPath == "" || size <= 0 {
		return h
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintln(w, "Warning: cannot open history database:", err)
		fmt.Fprintln(w, "History will not be saved.")
		return h
	}
	h.st = st
	return h
}

// Returns the last inputs that are kept across sessions, oldest first.
func (h *history) recent() []string {
	cmds, err := h.st.LastCmds(h.size)
	if err != nil {
		logger.Println("failed to read history:", err)
	}
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = cmd.Text
	}
	return lines
}

func (h *history) add(code string) {
	if _, err := h.st.AddCmd(code); err != nil {
		logger.Println("failed to add to history:", err)
	}
}

// Writes the inputs starting with prefix, with their sequence numbers.
func (h *history) list(out io.Writer, prefix string) error {
	var cmds []storedefs.Cmd
	if prefix == "" {
		upto, err := h.st.NextCmdSeq()
		if err != nil {
			return err
		}
		if cmds, err = h.st.CmdsWithSeq(0, upto); err != nil {
			return err
		}
	} else {
		for from := 0; ; {
			cmd, err := h.st.NextCmd(from, prefix)
			if err == storedefs.ErrNoMatchingCmd {
				break
			} else if err != nil {
				return err
			}
			cmds = append(cmds, cmd)
			from = cmd.Seq + 1
		}
	}
	for _, cmd := range cmds {
		fmt.Fprintf(out, "%5d  %s\n", cmd.Seq, oneLine(cmd.Text))
	}
	return nil
}

func (h *history) delete(out io.Writer, seq int) error {
	text, err := h.st.Cmd(seq)
	if err != nil {
		return fmt.Errorf("input %d: %w", seq, err)
	}
	if err := h.st.DelCmd(seq); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %d  %s\n", seq, oneLine(text))
	return nil
}

// Returns the last input starting with prefix.
func (h *history) last(prefix string) (string, error) {
	upto, err := h.st.NextCmdSeq()
	if err != nil {
		return "", err
	}
	cmd, err := h.st.PrevCmd(upto, prefix)
	return cmd.Text, err
}

func (h *history) close(w io.Writer) {
	trimErr := h.st.Trim(h.size)
	if trimErr != nil {
		trimErr = fmt.Errorf("trim: %w", trimErr)
	}
	if err := errutil.Multi(trimErr, h.st.Close()); err != nil {
		fmt.Fprintln(w, "Warning: cannot close history database:", err)
	}
}
