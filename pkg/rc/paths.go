package rc

import (
	"errors"
	"os"
	"path/filepath"

	"src.slt.sh/pkg/env"
)

const appName = "slt"

// Path returns the path of rc.yaml, under the configuration home.
func Path() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appName, "rc.yaml"), nil
}

// DBPath returns the default path of the history database, under the data
// home.
func DBPath() (string, error) {
	home, err := dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appName, "history.db"), nil
}

// Returns the value of an environment variable holding a directory, falling
// back to the result of def if the variable is unset or not absolute.
func xdgDir(name string, def func() (string, error)) (string, error) {
	if dir := os.Getenv(name); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	return def()
}

func homeDir() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("cannot determine home directory")
	}
	return home, nil
}
