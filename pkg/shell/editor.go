package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"src.slt.sh/pkg/parse"
)

// The interface that line editors have to satisfy.
type editor interface {
	// ReadLine shows the prompt and reads one line of input, without the line
	// ending. It returns io.EOF when the input ends, and errAborted when the
	// user cancels the line.
	ReadLine(prompt string) (string, error)
	AddHistory(line string)
	Close() error
}

var errAborted = liner.ErrPromptAborted

// An editor backed by liner. It only works on the process's own terminal.
type lineEditor struct {
	state *liner.State
}

func newLineEditor(completer func(prefix string) []string) *lineEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		head, word, tail := splitWord(line, pos)
		return head, completer(word), tail
	})
	return &lineEditor{state}
}

func (ed *lineEditor) ReadLine(prompt string) (string, error) {
	return ed.state.Prompt(prompt)
}

func (ed *lineEditor) AddHistory(line string) {
	ed.state.AppendHistory(line)
}

func (ed *lineEditor) Close() error {
	return ed.state.Close()
}

// An editor for inputs that are not terminals. It writes the prompt to out and
// reads lines from in.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newMinEditor(in io.Reader, out io.Writer) *minEditor {
	return &minEditor{bufio.NewReader(in), out}
}

func (ed *minEditor) ReadLine(prompt string) (string, error) {
	fmt.Fprint(ed.out, prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// Last line without a trailing newline.
		err = nil
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), err
}

func (ed *minEditor) AddHistory(string) {}

func (ed *minEditor) Close() error { return nil }

// Whether liner can be used for the given files. Liner always talks to the
// process's own stdin and stdout.
func canUseLiner(in, out *os.File, isATTY func(uintptr) bool) bool {
	return in == os.Stdin && out == os.Stdout && isATTY(in.Fd()) && isATTY(out.Fd())
}

// Splits line around the identifier that ends at the rune position pos.
func splitWord(line string, pos int) (head, word, tail string) {
	runes := []rune(line)
	if pos > len(runes) {
		pos = len(runes)
	}
	before := string(runes[:pos])
	i := parse.IdentStart(before, len(before))
	return before[:i], before[i:], string(runes[pos:])
}

// Returns the sorted, deduplicated candidates that start with prefix.
func complete(prefix string, candidates ...[]string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, list := range candidates {
		for _, c := range list {
			if strings.HasPrefix(c, prefix) && !seen[c] {
				seen[c] = true
				result = append(result, c)
			}
		}
	}
	sort.Strings(result)
	return result
}
