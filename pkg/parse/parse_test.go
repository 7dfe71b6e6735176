package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.slt.sh/pkg/diag"
	. "src.slt.sh/pkg/tt"
)

func renderScript(code string) (string, error) {
	chunk, err := ParseScript(Source{Name: "[test]", Code: code})
	if err != nil {
		return "", err
	}
	return Render(chunk), nil
}

func renderExpression(code string) (string, error) {
	expr, err := ParseExpression(Source{Name: "[test]", Code: code})
	if err != nil {
		return "", err
	}
	return Render(expr), nil
}

func TestParseScript(t *testing.T) {
	Test(t, renderScript,
		Args("").Rets("Chunk\n", nil),
		Args(" \n ;\n").Rets("Chunk\n", nil),
		Args("x = 5").Rets(
			"Chunk/Assign Name=\"x\"\n"+
				"  Number Value=5\n", nil),
		Args("x = 5\ny = x;").Rets(
			"Chunk\n"+
				"  Assign Name=\"x\"\n"+
				"    Number Value=5\n"+
				"  Assign Name=\"y\"\n"+
				"    Ident Name=\"x\"\n", nil),
		Args("1 + 2;").Rets(
			"Chunk/ExprStmt\n"+
				"  Binary Op=\"+\"\n"+
				"    Number Value=1\n"+
				"    Number Value=2\n", nil),
		Args("if x { y = 1; } else { y = 2.5; }").Rets(
			"Chunk/If\n"+
				"  Ident Name=\"x\"\n"+
				"  Block\n"+
				"    Assign Name=\"y\"\n"+
				"      Number Value=1\n"+
				"  Block\n"+
				"    Assign Name=\"y\"\n"+
				"      Number Value=2.5\n", nil),
		Args("while i < 3 { i = i + 1 }").Rets(
			"Chunk/While\n"+
				"  Binary Op=\"<\"\n"+
				"    Ident Name=\"i\"\n"+
				"    Number Value=3\n"+
				"  Block\n"+
				"    Assign Name=\"i\"\n"+
				"      Binary Op=\"+\"\n"+
				"        Ident Name=\"i\"\n"+
				"        Number Value=1\n", nil),
		Args("f = fn(a, b) { return a * b; }").Rets(
			"Chunk/Assign Name=\"f\"\n"+
				"  Fn Params=[\"a\" \"b\"]\n"+
				"    Block\n"+
				"      Return\n"+
				"        Binary Op=\"*\"\n"+
				"          Ident Name=\"a\"\n"+
				"          Ident Name=\"b\"\n", nil),
		// Bare expressions are not scripts.
		Args("1 + 2").Rets("", ErrorMatching("expression statement not terminated, should be ';'")),
		Args("x").Rets("", ErrorMatching("should be ';'")),
		Args("x = 1 y = 2").Rets("", ErrorMatching("should be ';' or newline")),
		Args("if x { y = 1;").Rets("", ErrorMatching("should be '}'")),
	)
}

func TestParseExpression(t *testing.T) {
	Test(t, renderExpression,
		Args("1 + 2 * 3").Rets(
			"Binary Op=\"+\"\n"+
				"  Number Value=1\n"+
				"  Binary Op=\"*\"\n"+
				"    Number Value=2\n"+
				"    Number Value=3\n", nil),
		Args("(1 + 2) * 3").Rets(
			"Binary Op=\"*\"\n"+
				"  Binary Op=\"+\"\n"+
				"    Number Value=1\n"+
				"    Number Value=2\n"+
				"  Number Value=3\n", nil),
		Args("\n-x\n").Rets(
			"Unary Op=\"-\"\n"+
				"  Ident Name=\"x\"\n", nil),
		Args(`f("a\tb", [1, true], null)[0]`).Rets(
			"Index\n"+
				"  Call\n"+
				"    Ident Name=\"f\"\n"+
				"    String Value=\"a\\tb\"\n"+
				"    List\n"+
				"      Number Value=1\n"+
				"      Bool Value=true\n"+
				"    Null\n"+
				"  Number Value=0\n", nil),
		Args("a || b && !c").Rets(
			"Binary Op=\"||\"\n"+
				"  Ident Name=\"a\"\n"+
				"  Binary Op=\"&&\"\n"+
				"    Ident Name=\"b\"\n"+
				"    Unary Op=\"!\"\n"+
				"      Ident Name=\"c\"\n", nil),
		Args("x = 5").Rets("", ErrorMatching(`unexpected "="`)),
		Args("1 +").Rets("", ErrorMatching("should be expression")),
		Args("").Rets("", ErrorMatching("should be expression")),
		Args(`"abc`).Rets("", ErrorMatching("string not terminated")),
		Args(`"\q"`).Rets("", ErrorMatching("invalid escape sequence")),
		Args("1 $ 2").Rets("", ErrorMatching(`unexpected rune '$'`)),
		Args("[1, 2").Rets("", ErrorMatching("should be ',' or ']'")),
	)
}

func TestParseError(t *testing.T) {
	_, err := ParseExpression(Source{Name: "[test]", Code: "1 +"})
	errs := UnpackErrors(err)
	if len(errs) != 1 {
		t.Fatalf("got %d parse errors, want 1", len(errs))
	}
	e := errs[0]
	if e.Range() != diag.PointRanging(3) {
		t.Errorf("got range %v, want 3-3", e.Range())
	}
	if !e.Partial {
		t.Errorf("error at end of input is not partial")
	}

	_, err = ParseExpression(Source{Name: "[test]", Code: "1 + )"})
	e = UnpackErrors(err)[0]
	if e.Range() != (diag.Ranging{From: 4, To: 5}) {
		t.Errorf("got range %v, want 4-5", e.Range())
	}
	if e.Partial {
		t.Errorf("error in the middle of input is partial")
	}
}

func TestSourceText(t *testing.T) {
	chunk, err := ParseScript(Source{Name: "[test]", Code: "x = [1, 2]\nf(x);"})
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, ch := range Children(chunk) {
		texts = append(texts, SourceText(ch))
	}
	want := []string{"x = [1, 2]", "f(x);"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("source texts (-want +got):\n%s", diff)
	}
}

func TestNumberLiterals(t *testing.T) {
	for code, want := range map[string]any{
		"42": 42, "1.5": 1.5, "1e3": 1000.0, "2E-1": 0.2,
	} {
		expr, err := ParseExpression(Source{Name: "[test]", Code: code})
		if err != nil {
			t.Errorf("ParseExpression(%q) errors: %v", code, err)
			continue
		}
		if got := expr.(*Number).Value; got != want {
			t.Errorf("ParseExpression(%q) -> %v, want %v", code, got, want)
		}
	}
}

func TestIsIncomplete(t *testing.T) {
	Test(t, IsIncomplete,
		Args("if x {").Rets(true),
		Args("f(1,").Rets(true),
		Args("f(1)").Rets(false),
		Args("1 +").Rets(false),
		Args(`"{`).Rets(false),
		Args("}").Rets(false),
	)
}

func TestQuote(t *testing.T) {
	Test(t, Quote,
		Args("foo").Rets(`"foo"`),
		Args("a\"b\\c\nd").Rets(`"a\"b\\c\nd"`),
	)
}

func TestIdentStart(t *testing.T) {
	Test(t, IdentStart,
		Args("x = total", 9).Rets(4),
		Args("x = total", 6).Rets(4),
		Args("f(a_1", 5).Rets(2),
		Args("é + héllo", 11).Rets(5),
		Args("1 + ", 4).Rets(4),
		Args("", 0).Rets(0),
	)
}

func TestIsIdentRune(t *testing.T) {
	Test(t, IsIdentRune,
		Args('_').Rets(true),
		Args('é').Rets(true),
		Args('9').Rets(true),
		Args(' ').Rets(false),
		Args('+').Rets(false),
	)
}
