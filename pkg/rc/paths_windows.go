package rc

import (
	"golang.org/x/sys/windows"
	"src.slt.sh/pkg/env"
)

func configHome() (string, error) {
	return xdgDir(env.XDG_CONFIG_HOME, roamingAppData)
}

func dataHome() (string, error) {
	return xdgDir(env.XDG_DATA_HOME, localAppData)
}

func localAppData() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_LocalAppData, windows.KF_FLAG_CREATE)
}

func roamingAppData() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_RoamingAppData, windows.KF_FLAG_CREATE)
}
