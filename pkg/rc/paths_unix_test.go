//go:build unix

package rc

import (
	"path/filepath"
	"testing"

	"src.slt.sh/pkg/env"
	"src.slt.sh/pkg/testutil"
)

func TestPaths(t *testing.T) {
	home := testutil.TempHome(t, t.TempDir())

	if p, err := Path(); p != filepath.Join(home, ".config", "slt", "rc.yaml") || err != nil {
		t.Errorf("Path() -> %q, %v", p, err)
	}
	if p, err := DBPath(); p != filepath.Join(home, ".local", "share", "slt", "history.db") || err != nil {
		t.Errorf("DBPath() -> %q, %v", p, err)
	}

	testutil.Unsetenv(t, env.XDG_CONFIG_HOME)
	testutil.Setenv(t, env.XDG_DATA_HOME, "relative")
	if p, _ := Path(); p != filepath.Join(home, ".config", "slt", "rc.yaml") {
		t.Errorf("Path() without XDG_CONFIG_HOME -> %q", p)
	}
	if p, _ := DBPath(); p != filepath.Join(home, ".local", "share", "slt", "history.db") {
		t.Errorf("DBPath() with relative XDG_DATA_HOME -> %q", p)
	}
}
