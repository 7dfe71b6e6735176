package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.slt.sh/pkg/diag"
	"src.slt.sh/pkg/eval"
	"src.slt.sh/pkg/parse"
	"src.slt.sh/pkg/repl"
)

// ScriptConfig keeps configuration for the script mode.
type ScriptConfig struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
}

// Script runs a script file, or code given with -c, as a single input. It
// prints the value of the script if it is not null, and returns the exit
// status.
func Script(fds [3]*os.File, args []string, cfg *ScriptConfig) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	src := parse.Source{Name: name, Code: code}
	if cfg.CompileOnly {
		err := check(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	ev := eval.NewEvaler()
	ev.Out = fds[1]
	session := repl.NewSession(repl.NewInterpreter(ev))
	session.SubmitSource(src)
	if session.Failed() {
		diag.ShowError(fds[2], session.Outcome().Err)
		return 2
	}
	if session.Outcome().Value != nil {
		fmt.Fprintln(fds[1], session.ResultView())
	}
	return 0
}

// Checks that the source parses as a script or as an expression. If neither
// works, it returns the error from parsing it as a script.
func check(src parse.Source) error {
	_, err := parse.ParseScript(src)
	if err == nil {
		return nil
	}
	if _, exprErr := parse.ParseExpression(src); exprErr == nil {
		return nil
	}
	return err
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range parse.UnpackErrors(err) {
		converted = append(converted,
			errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Message})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
