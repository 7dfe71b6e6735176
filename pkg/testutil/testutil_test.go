package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.slt.sh/pkg/env"
	. "src.slt.sh/pkg/tt"
)

func TestDedent(t *testing.T) {
	Test(t, Dedent,
		Args("\n  a\n    b\n  c\n").Rets("a\n  b\nc\n"),
		Args("  a\n\n  b").Rets("a\n\nb"),
		Args("\ta\n  b").Rets("\ta\n  b"),
		Args("    a\n  \n  b").Rets("  a\n\nb"),
		Args("no indent").Rets("no indent"),
	)
}

func TestSet(t *testing.T) {
	x := 1
	t.Run("inner", func(t *testing.T) {
		Set(t, &x, 2)
		if x != 2 {
			t.Errorf("x = %d inside test, want 2", x)
		}
	})
	if x != 1 {
		t.Errorf("x = %d after test, want 1", x)
	}
}

const envName = "SLT_TESTUTIL_TEST_VAR"

func TestSetenv(t *testing.T) {
	os.Unsetenv(envName)
	t.Run("inner", func(t *testing.T) {
		if v := Setenv(t, envName, "value"); v != "value" {
			t.Errorf("Setenv returned %q", v)
		}
		if os.Getenv(envName) != "value" {
			t.Errorf("variable not set")
		}
	})
	if _, ok := os.LookupEnv(envName); ok {
		t.Errorf("variable not unset after test")
	}
}

func TestUnsetenv(t *testing.T) {
	os.Setenv(envName, "old")
	defer os.Unsetenv(envName)
	t.Run("inner", func(t *testing.T) {
		Unsetenv(t, envName)
		if _, ok := os.LookupEnv(envName); ok {
			t.Errorf("variable not unset")
		}
	})
	if os.Getenv(envName) != "old" {
		t.Errorf("variable not restored after test")
	}
}

func TestTempHome(t *testing.T) {
	dir := t.TempDir()
	home := TempHome(t, dir)
	if home != filepath.Join(dir, "home") || os.Getenv(env.HOME) != home {
		t.Errorf("HOME not set to %s", home)
	}
	if got := os.Getenv(env.XDG_CONFIG_HOME); got != filepath.Join(home, ".config") {
		t.Errorf("XDG_CONFIG_HOME = %q", got)
	}
}
