package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Context is a range of text in a source code. It is typically used for
// errors that can be associated with a part of the source code, like parse
// errors and runtime exceptions.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Position returns the 1-based line and column of the start of the range.
// Columns count codepoints.
func (c *Context) Position() (line, col int) {
	if c.checkPosition() != nil {
		return 0, 0
	}
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(lastLine(before))) + 1
	return line, col
}

// Show shows the context: a line with the source name and line number,
// followed by the relevant source line and a line of carets marking the
// culprit. Both source lines are prefixed with indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.lineRange() + "\n" + c.relevantSource(indent, indent)
}

// ShowCompact is like Show, but puts the source line on the same line as the
// source position description.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.Name + ", " + c.lineRange() + " "
	descIndent := strings.Repeat(" ", runewidth.StringWidth(desc))
	return desc + c.relevantSource("", indent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) lineRange() string {
	before := c.Source[:c.From]
	culprit := strings.TrimSuffix(c.Source[c.From:c.To], "\n")
	beginLine := strings.Count(before, "\n") + 1
	endLine := beginLine + strings.Count(culprit, "\n")
	if beginLine == endLine {
		return fmt.Sprintf("line %d:", beginLine)
	}
	return fmt.Sprintf("line %d-%d:", beginLine, endLine)
}

// Returns the line containing the start of the range, and a line of carets
// under the part of the range that falls on that line.
func (c *Context) relevantSource(firstIndent, caretIndent string) string {
	head := lastLine(c.Source[:c.From])
	culprit := firstLine(c.Source[c.From:c.To])
	tail := firstLine(c.Source[c.From+len(culprit):])

	carets := runewidth.StringWidth(culprit)
	if carets == 0 {
		carets = 1
	}
	return firstIndent + head + culprit + tail + "\n" +
		caretIndent + strings.Repeat(" ", runewidth.StringWidth(head)) +
		strings.Repeat("^", carets)
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
