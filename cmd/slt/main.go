// Slt is an interactive evaluator for a small expression language. It shows
// the result of each input together with the variables bound so far and the
// structure of the parsed program.
package main

import (
	"os"

	"src.slt.sh/pkg/buildinfo"
	"src.slt.sh/pkg/lsp"
	"src.slt.sh/pkg/prog"
	"src.slt.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
