//go:build unix

package rc

import (
	"path/filepath"

	"src.slt.sh/pkg/env"
)

func configHome() (string, error) {
	return xdgDir(env.XDG_CONFIG_HOME, func() (string, error) {
		home, err := homeDir()
		return filepath.Join(home, ".config"), err
	})
}

func dataHome() (string, error) {
	return xdgDir(env.XDG_DATA_HOME, func() (string, error) {
		home, err := homeDir()
		return filepath.Join(home, ".local", "share"), err
	})
}
