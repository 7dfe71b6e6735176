package ui

import (
	"testing"

	"src.slt.sh/pkg/tt"
)

var (
	Test = tt.Test
	Args = tt.Args
)

func TestText_VTString(t *testing.T) {
	Test(t, Text.VTString,
		Args(T("plain")).Rets("plain"),
		Args(T("err", FgRed)).Rets("\033[31merr\033[m"),
		Args(T("x", Bold, FgCyan)).Rets("\033[1;36mx\033[m"),
		Args(T("y", Fg(Yellow.Bright()), Underline)).Rets("\033[4;93my\033[m"),
		Args(Concat(T("a", FgYellow), T(" = "), T("1", Dim))).Rets("\033[33ma\033[m = \033[2m1\033[m"),
	)
}

func TestText_String(t *testing.T) {
	Test(t, Text.String,
		Args(Concat(T("int", FgCyan), T(" "), T("x", FgYellow))).Rets("int x"),
		Args(Text(nil)).Rets(""),
	)
}

func TestText_Render(t *testing.T) {
	text := T("a", FgGreen)
	if got := text.Render(false); got != "a" {
		t.Errorf("Render(false) -> %q, want %q", got, "a")
	}
	if got := text.Render(true); got != "\033[32ma\033[m" {
		t.Errorf("Render(true) -> %q", got)
	}
}

func TestParseColor(t *testing.T) {
	Test(t, ParseColor,
		Args("red").Rets(Red, true),
		Args("bright-cyan").Rets(Cyan.Bright(), true),
		Args("purple").Rets(Color{}, false),
		Args("bright-").Rets(Color{}, false),
	)
	for _, c := range []Color{Black, Blue, Magenta.Bright(), White} {
		if got, ok := ParseColor(c.String()); got != c || !ok {
			t.Errorf("ParseColor(%q) -> %v, %v", c.String(), got, ok)
		}
	}
}

func TestWidth(t *testing.T) {
	Test(t, Wcswidth,
		Args("abc").Rets(3),
		Args("你好").Rets(4),
		Args("").Rets(0),
	)
	Test(t, Truncate,
		Args("abcdef", 4).Rets("abc…"),
		Args("abc", 4).Rets("abc"),
		Args("abcdef", 0).Rets("abcdef"),
		Args("你好世界", 5).Rets("你好…"),
	)
	Test(t, PadRight,
		Args("ab", 4).Rets("ab  "),
		Args("你", 3).Rets("你 "),
		Args("abcde", 4).Rets("abcde"),
	)
}
