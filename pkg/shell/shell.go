// Package shell is the entry point for the terminal interface of slt.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"src.slt.sh/pkg/logutil"
	"src.slt.sh/pkg/prog"
	"src.slt.sh/pkg/rc"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		exit := Script(fds, args, &ScriptConfig{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON})
		return prog.Exit(exit)
	}
	if f.CodeInArg {
		return prog.BadUsage("-c requires an argument")
	}
	if f.CompileOnly {
		return prog.BadUsage("-compileonly requires a script or -c")
	}

	cfg := loadRC(fds, f)
	Interact(fds, &InteractConfig{Config: cfg, DBPath: dbPath(fds, f, cfg), Plain: f.Plain})
	return nil
}

// Loads rc.yaml, falling back to the defaults with a warning on errors.
func loadRC(fds [3]*os.File, f *prog.Flags) *rc.Config {
	if f.NoRc {
		return rc.Default()
	}
	path := f.RC
	if path == "" {
		var err error
		path, err = rc.Path()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return rc.Default()
		}
	}
	cfg, err := rc.Load(path)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot load rc file:", err)
		fmt.Fprintln(fds[2], "Using default configuration.")
	}
	return cfg
}

// Returns the path of the history database, respecting the -db flag. It
// returns "" if the history is disabled or the path cannot be determined.
func dbPath(fds [3]*os.File, f *prog.Flags, cfg *rc.Config) string {
	if cfg.History.Size == 0 {
		return ""
	}
	db := f.DB
	if db == "" {
		db = cfg.History.DB
	}
	if db == "" {
		var err error
		db, err = rc.DBPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return ""
		}
	}
	if err := os.MkdirAll(filepath.Dir(db), 0700); err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
		return ""
	}
	return db
}
