package shell

import (
	"path/filepath"
	"testing"

	"src.slt.sh/pkg/must"
	. "src.slt.sh/pkg/prog/progtest"
)

func TestScript(t *testing.T) {
	dir := t.TempDir()
	hello := filepath.Join(dir, "hello.slt")
	must.WriteFile(hello, `print("hello");`)
	invalid := filepath.Join(dir, "invalid-utf8.slt")
	must.WriteFile(invalid, "\xff")
	value := filepath.Join(dir, "value.slt")
	must.WriteFile(value, "sq = fn(n) { return n * n; }\nsq(9);\n")

	Test(t, &Program{},
		ThatSlt(hello).WritesStdout("hello\n"),
		ThatSlt(value).WritesStdout("81\n"),
		ThatSlt("-c", "1 + 2").WritesStdout("3\n"),
		ThatSlt("-c", "x = 2\nx * 3;").WritesStdout("6\n"),
		ThatSlt("-c", `"a" + "b"`).WritesStdout("ab\n"),
		ThatSlt("-c", "null").DoesNothing(),

		ThatSlt(invalid).
			ExitsWith(2).
			WritesStderrContaining("cannot read script"),
		ThatSlt(filepath.Join(dir, "non-existent.slt")).
			ExitsWith(2).
			WritesStderrContaining("cannot read script"),
		ThatSlt("-c").
			ExitsWith(2).
			WritesStderrContaining("-c requires an argument"),
		ThatSlt("-compileonly").
			ExitsWith(2).
			WritesStderrContaining("-compileonly requires a script or -c"),

		// parse error
		ThatSlt("-c", "1 +").
			ExitsWith(2).
			WritesStdout("").
			WritesStderrContaining("Parse error: should be expression"),
		// parse error with -compileonly
		ThatSlt("-compileonly", "-c", "1 +").
			ExitsWith(2).
			WritesStderrContaining("Parse error"),
		// parse error with -compileonly -json
		ThatSlt("-compileonly", "-json", "-c", "1 +").
			ExitsWith(2).
			WritesStdout(`[{"fileName":"code from -c","start":3,"end":3,"message":"should be expression"}]`+"\n"),
		ThatSlt("-compileonly", "-json", "-c", "x = ").
			ExitsWith(2).
			WritesStdout(`[{"fileName":"code from -c","start":4,"end":4,"message":"should be expression"}]`+"\n"),
		// no errors with -compileonly -json
		ThatSlt("-compileonly", "-json", "-c", "1 + 2").
			WritesStdout("[]\n"),

		// runtime error
		ThatSlt("-c", "1 / 0").
			ExitsWith(2).
			WritesStdout("").
			WritesStderrContaining("Runtime error: division by zero"),
		// runtime error with -compileonly
		ThatSlt("-compileonly", "-c", "1 / 0").DoesNothing(),
	)
}
